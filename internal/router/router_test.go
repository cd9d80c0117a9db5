package router

import (
	"coa-backend/internal/config"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	viewColumns = []string{"id", "serial_no", "ledger_code", "ledger_name", "sub_group_code",
		"sub_group_name", "main_group_code", "main_group_name", "status"}
	ledgerLinkColumns = []string{"id", "ledger_code", "ledger_name", "tally_report", "debit_credit",
		"trial_balance", "status", "link_status", "consolidated_sub_group_code", "consolidated_sub_group_name",
		"consolidated_main_group_code", "consolidated_main_group_name", "serial_no", "sub_group_code",
		"sub_group_name", "main_group_code", "main_group_name", "consolidation_status"}
)

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	mock.MatchExpectationsInOrder(false)

	app := fiber.New()
	Setup(app, sqlx.NewDb(conn, "mysql"), nil, &config.Config{AppName: "coa-test", ImportErrorLimit: 10})
	return app, mock
}

func get(t *testing.T, app *fiber.App, method, target string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, http.MethodGet, "/health")
	require.Equal(t, fiber.StatusOK, status)

	var health map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, false, health["async_imports"])
}

func TestConsolidatedRoutes(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`FROM consolidated_display ORDER BY serial_no`).WillReturnRows(sqlmock.NewRows(viewColumns))
	mock.ExpectQuery(`FROM consolidated_display ORDER BY serial_no`).WillReturnRows(sqlmock.NewRows(viewColumns))
	mock.ExpectQuery(`FROM consolidated_display WHERE ledger_code = \?`).
		WithArgs("L001").
		WillReturnRows(sqlmock.NewRows(viewColumns))
	mock.ExpectQuery(`MIN\(serial_no\)`).WillReturnRows(sqlmock.NewRows(ledgerLinkColumns))
	mock.ExpectQuery(`WHERE NOT EXISTS`).WillReturnRows(sqlmock.NewRows(ledgerLinkColumns))

	for _, target := range []string{
		"/consolidated",
		"/consolidated/",
		"/consolidated/ledger/L001",
		"/consolidated/active",
		"/consolidated/inactive",
	} {
		status, body := get(t, app, http.MethodGet, target)
		assert.Equal(t, fiber.StatusOK, status, target)
		assert.Equal(t, "[]", string(body), target)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsolidatedIDRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := get(t, app, http.MethodDelete, "/consolidated/abc")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = get(t, app, http.MethodPut, "/consolidated/active")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestEntityRoutes(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`FROM main_groups ORDER BY main_group_code`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "main_group_code", "main_group_name"}).
			AddRow(1, "MG001", "Current Assets"))

	status, body := get(t, app, http.MethodGet, "/main_groups")
	require.Equal(t, fiber.StatusOK, status)

	var groups []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "MG001", groups[0]["main_group_code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSpreadsheetRoutes(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := get(t, app, http.MethodGet, "/download-template/sub-groups")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = get(t, app, http.MethodGet, "/download-template/accounts")
	assert.Equal(t, fiber.StatusNotFound, status)

	// without Redis the job route still resolves, but no job can exist
	status, body := get(t, app, http.MethodGet, "/import/jobs/job-1")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Contains(t, string(body), "background imports are disabled")
}
