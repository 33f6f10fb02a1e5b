package dto

// ImportRejectionResponse explains why a group of spreadsheet rows was not imported.
type ImportRejectionResponse struct {
	Row       int    `json:"row"`
	Reference string `json:"reference,omitempty"`
	Reason    string `json:"reason"`
}

// ImportResultResponse summarises a spreadsheet import.
type ImportResultResponse struct {
	DryRun     bool                      `json:"dryRun"`
	Imported   int                       `json:"imported"`
	InvoiceIDs []string                  `json:"invoiceIDs"`
	Rejected   []ImportRejectionResponse `json:"rejected"`
}

// GoogleSheetExportRequest targets an existing Google spreadsheet shared with the service account.
type GoogleSheetExportRequest struct {
	SpreadsheetID string `json:"spreadsheetID" binding:"required,max=200"`
	SheetName     string `json:"sheetName" binding:"omitempty,max=100"`
}

// GoogleSheetExportResponse reports what was written.
type GoogleSheetExportResponse struct {
	SpreadsheetID string `json:"spreadsheetID"`
	UpdatedRange  string `json:"updatedRange"`
	Rows          int    `json:"rows"`
}
