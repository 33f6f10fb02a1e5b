package pgsql

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_done\\`, escapeLike(`100% _done\`))
	assert.Equal(t, "acme", escapeLike("acme"))
}

func TestBuildListInvoicesQueryOwnerOnly(t *testing.T) {
	query, args, err := buildListInvoicesQuery("owner-1", domain.InvoiceFilter{Search: "   "}, 21, nil)
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE owner_id = $1 ORDER BY created_at DESC, invoice_id DESC LIMIT $2;")
	assert.Equal(t, []any{"owner-1", 21}, args)
}

func TestBuildListInvoicesQueryAllFilters(t *testing.T) {
	status := domain.StatusOverdue
	direction := domain.Incoming
	lastCreatedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	token := pagination.EncodeToken(lastCreatedAt, "inv-9")

	query, args, err := buildListInvoicesQuery("owner-1", domain.InvoiceFilter{
		Status:    &status,
		Direction: &direction,
		Search:    " 50%_off ",
	}, 11, &token)
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE owner_id = $1 AND status = $2 AND direction = $3"+
		" AND (counterparty_name ILIKE $4 OR counterparty_email ILIKE $4)"+
		" AND (created_at, invoice_id) < ($5, $6)"+
		" ORDER BY created_at DESC, invoice_id DESC LIMIT $7;")
	require.Len(t, args, 7)
	assert.Equal(t, []any{"owner-1", "OVERDUE", "INCOMING", `%50\%\_off%`}, args[:4])
	assert.True(t, lastCreatedAt.Equal(args[4].(time.Time)))
	assert.Equal(t, "inv-9", args[5])
	assert.Equal(t, 11, args[6])
}

func TestBuildListInvoicesQuerySkipsMissingFilters(t *testing.T) {
	direction := domain.Outgoing
	empty := ""

	query, args, err := buildListInvoicesQuery("owner-1", domain.InvoiceFilter{Direction: &direction, Search: "acme"}, 6, &empty)
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE owner_id = $1 AND direction = $2"+
		" AND (counterparty_name ILIKE $3 OR counterparty_email ILIKE $3)"+
		" ORDER BY created_at DESC, invoice_id DESC LIMIT $4;")
	assert.Equal(t, []any{"owner-1", "OUTGOING", "%acme%", 6}, args)
}

func TestBuildListInvoicesQueryRejectsBadToken(t *testing.T) {
	token := "not base64!"

	_, _, err := buildListInvoicesQuery("owner-1", domain.InvoiceFilter{}, 21, &token)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}
