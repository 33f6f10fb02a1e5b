package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/SscSPs/invoice_management_app/internal/spreadsheet"
	"github.com/gin-gonic/gin"
)

// maxImportBytes bounds uploaded spreadsheets.
const maxImportBytes = 10 << 20

// maxImportBodyBytes leaves room for the multipart envelope around the file.
const maxImportBodyBytes = maxImportBytes + 1<<20

// spreadsheetHandler handles import and export of invoice spreadsheets.
type spreadsheetHandler struct {
	spreadsheetService portssvc.SpreadsheetSvc
}

func newSpreadsheetHandler(ss portssvc.SpreadsheetSvc) *spreadsheetHandler {
	return &spreadsheetHandler{spreadsheetService: ss}
}

// registerSpreadsheetRoutes registers the spreadsheet routes.
func registerSpreadsheetRoutes(rg *gin.RouterGroup, spreadsheetService portssvc.SpreadsheetSvc) {
	h := newSpreadsheetHandler(spreadsheetService)

	sheets := rg.Group("/spreadsheets")
	{
		sheets.GET("/export", h.exportInvoices)
		sheets.POST("/import", h.importInvoices)
		sheets.POST("/export/google-sheets", h.exportToGoogleSheets)
	}
}

// exportInvoices godoc
// @Summary Export invoices
// @Description Downloads all of the user's invoices, one row per line item.
// @Tags spreadsheets
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce text/csv
// @Param format query string false "File format" Enums(xlsx, csv) default(xlsx)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /spreadsheets/export [get]
func (h *spreadsheetHandler) exportInvoices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	format, err := spreadsheet.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, err, "Invalid export format")
		return
	}

	var buf bytes.Buffer
	if err := h.spreadsheetService.ExportInvoices(c.Request.Context(), userID, format, &buf); err != nil {
		respondError(c, err, "Failed to export invoices")
		return
	}

	filename := fmt.Sprintf("invoices-%s.%s", time.Now().UTC().Format("2006-01-02"), format.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// importInvoices godoc
// @Summary Import invoices
// @Description Reads an xlsx or csv upload, saves every valid invoice in one transaction and reports rejected rows.
// @Tags spreadsheets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet"
// @Param format query string false "Overrides the format derived from the file name" Enums(xlsx, csv)
// @Param dryRun query bool false "Validate without saving"
// @Success 200 {object} dto.ImportResultResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /spreadsheets/import [post]
func (h *spreadsheetHandler) importInvoices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBodyBytes)
	fileHeader, err := c.FormFile("file")
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Spreadsheet is too large"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A spreadsheet must be uploaded in the 'file' field"})
		return
	}
	if fileHeader.Size > maxImportBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Spreadsheet is too large"})
		return
	}

	var format spreadsheet.Format
	if raw := c.Query("format"); raw != "" {
		format, err = spreadsheet.ParseFormat(raw)
	} else {
		format, err = spreadsheet.FormatFromFilename(fileHeader.Filename)
	}
	if err != nil {
		respondError(c, err, "Unsupported spreadsheet format")
		return
	}

	dryRun := false
	if raw := c.Query("dryRun"); raw != "" {
		dryRun, err = strconv.ParseBool(raw)
		if err != nil {
			respondError(c, fmt.Errorf("%w: dryRun must be true or false", apperrors.ErrValidation), "Invalid dryRun")
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return
	}
	defer file.Close()

	result, err := h.spreadsheetService.ImportInvoices(c.Request.Context(), userID, format, file, dryRun)
	if err != nil {
		respondError(c, err, "Failed to import invoices")
		return
	}
	c.JSON(http.StatusOK, result)
}

// exportToGoogleSheets godoc
// @Summary Export invoices to Google Sheets
// @Description Replaces the contents of a sheet in an existing spreadsheet shared with the service account.
// @Tags spreadsheets
// @Accept json
// @Produce json
// @Param target body dto.GoogleSheetExportRequest true "Target spreadsheet"
// @Success 200 {object} dto.GoogleSheetExportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Google Sheets export not configured"
// @Security BearerAuth
// @Router /spreadsheets/export/google-sheets [post]
func (h *spreadsheetHandler) exportToGoogleSheets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.GoogleSheetExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.spreadsheetService.ExportToGoogleSheet(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to export to google sheets")
		return
	}
	c.JSON(http.StatusOK, resp)
}
