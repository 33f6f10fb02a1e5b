package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation keeps message", fmt.Errorf("%w: name is required", apperrors.ErrValidation), http.StatusBadRequest, "validation error: name is required"},
		{"wrapped not found", fmt.Errorf("get invoice: %w", apperrors.ErrNotFound), http.StatusNotFound, "Not found"},
		{"duplicate", apperrors.ErrDuplicate, http.StatusConflict, "resource already exists"},
		{"expired refresh token", apperrors.ErrRefreshTokenExpired, http.StatusUnauthorized, "Refresh token expired"},
		{"unauthorized hides cause", fmt.Errorf("token signature: %w", apperrors.ErrUnauthorized), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"not configured", apperrors.ErrNotConfigured, http.StatusServiceUnavailable, "integration not configured"},
		{"record error", apperrors.NewRecordError("inv-1", "unknown status"), http.StatusUnprocessableEntity, `invoice "inv-1": unknown status`},
		{"app error client code", apperrors.NewAppError(http.StatusRequestEntityTooLarge, "too big", nil), http.StatusRequestEntityTooLarge, "too big"},
		{"app error server code", apperrors.NewAppError(http.StatusBadGateway, "upstream", errors.New("boom")), http.StatusInternalServerError, ""},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusForError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
