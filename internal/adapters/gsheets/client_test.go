package gsheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type recordedCall struct {
	method string
	path   string
	query  string
	body   map[string]any
}

func newTestClient(t *testing.T, status int) (*Client, *[]recordedCall) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recordedCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		calls = append(calls, recordedCall{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: body})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
			return
		}
		if strings.HasSuffix(r.URL.Path, ":clear") {
			_, _ = w.Write([]byte(`{"clearedRange":"Invoices!A1:Z1000"}`))
			return
		}
		_, _ = w.Write([]byte(`{"updatedRange":"Invoices!A1:B2","updatedRows":2}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return c, &calls
}

func TestWriteTableClearsThenUpdates(t *testing.T) {
	c, calls := newTestClient(t, http.StatusOK)

	updated, err := c.WriteTable(context.Background(), "sheet-123", "Invoices", [][]string{{"Reference", "Total"}, {"inv-1", "10.00"}})
	require.NoError(t, err)
	assert.Equal(t, "Invoices!A1:B2", updated)

	require.Len(t, *calls, 2)
	clear, update := (*calls)[0], (*calls)[1]

	assert.Equal(t, http.MethodPost, clear.method)
	assert.Equal(t, "/v4/spreadsheets/sheet-123/values/'Invoices':clear", clear.path)

	assert.Equal(t, http.MethodPut, update.method)
	assert.Equal(t, "/v4/spreadsheets/sheet-123/values/'Invoices'!A1", update.path)
	assert.Contains(t, update.query, "valueInputOption=RAW")
	assert.Equal(t, []any{[]any{"Reference", "Total"}, []any{"inv-1", "10.00"}}, update.body["values"])
}

func TestWriteTablePropagatesAPIErrors(t *testing.T) {
	c, calls := newTestClient(t, http.StatusForbidden)

	_, err := c.WriteTable(context.Background(), "sheet-123", "Invoices", [][]string{{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clear sheet")
	assert.Len(t, *calls, 1)
}

func TestQuoteSheet(t *testing.T) {
	assert.Equal(t, "'Invoices'", quoteSheet("Invoices"))
	assert.Equal(t, "'Bob''s sheet'", quoteSheet("Bob's sheet"))
}
