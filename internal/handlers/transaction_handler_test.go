package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cashbook/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionHandler_Create(t *testing.T) {
	t.Run("backdated deposit", func(t *testing.T) {
		srv := newTestServer(t, testOwner)
		srv.mock.ExpectQuery("INSERT INTO transactions").
			WithArgs(int64(1), testOwner, decimal.RequireFromString("19.99"), "deposit", "tips", "2024-02-29").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
		srv.mock.ExpectQuery(sumSQL).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("119.99"))

		w := srv.do(http.MethodPost, "/books/1/transactions",
			`{"amount": 19.99, "type": "deposit", "note": "tips", "date": "2024-02-29"}`)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var resp struct {
			Transaction models.Transaction `json:"transaction"`
			Balance     decimal.Decimal    `json:"balance"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(5), resp.Transaction.ID)
		assert.Equal(t, "2024-02-29", resp.Transaction.Date.String())
		assert.True(t, resp.Balance.Equal(decimal.RequireFromString("119.99")))
		assert.NoError(t, srv.mock.ExpectationsWereMet())
	})

	t.Run("invalid input", func(t *testing.T) {
		srv := newTestServer(t, testOwner)
		for name, body := range map[string]string{
			"zero amount":    `{"amount": 0, "type": "deposit"}`,
			"negative":       `{"amount": "-4", "type": "withdraw"}`,
			"three decimals": `{"amount": "1.234", "type": "deposit"}`,
			"not a number":   `{"amount": "ten", "type": "deposit"}`,
			"bad type":       `{"amount": 5, "type": "refund"}`,
			"bad date":       `{"amount": 5, "type": "deposit", "date": "29/02/2024"}`,
			"missing amount": `{"type": "deposit"}`,
		} {
			w := srv.do(http.MethodPost, "/books/1/transactions", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, name)
		}
		assert.NoError(t, srv.mock.ExpectationsWereMet())
	})

	t.Run("book of another owner", func(t *testing.T) {
		srv := newTestServer(t, testOwner)
		srv.mock.ExpectQuery("INSERT INTO transactions").WillReturnError(sql.ErrNoRows)

		w := srv.do(http.MethodPost, "/books/8/transactions", `{"amount": "5", "type": "deposit", "date": "2024-01-01"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTransactionHandler_List(t *testing.T) {
	srv := newTestServer(t, testOwner)
	srv.mock.ExpectQuery(ownedSQL).WithArgs(int64(1), testOwner).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	srv.mock.ExpectQuery("ORDER BY date ASC, id ASC").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(txCols).
			AddRow(int64(1), int64(1), "100.00", "deposit", nil, "2024-01-01", nil).
			AddRow(int64(2), int64(1), "30.00", "withdraw", "rent", "2024-01-05", nil).
			AddRow(int64(3), int64(1), "5.00", "deposit", nil, "2024-01-05", nil))

	w := srv.do(http.MethodGet, "/books/1/transactions?page_size=2", nil)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page models.TransactionPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, "desc", page.Order)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.Balance.Equal(decimal.RequireFromString("75")))
	require.Len(t, page.Entries, 2)
	assert.Equal(t, int64(3), page.Entries[0].ID)
	assert.True(t, page.Entries[0].BalanceAfter.Equal(decimal.RequireFromString("75")))
	assert.Equal(t, int64(2), page.Entries[1].ID)
	assert.True(t, page.Entries[1].BalanceAfter.Equal(decimal.RequireFromString("70")))
	assert.NoError(t, srv.mock.ExpectationsWereMet())
}

func TestTransactionHandler_ListRejectsUnknownOrder(t *testing.T) {
	srv := newTestServer(t, testOwner)

	w := srv.do(http.MethodGet, "/books/1/transactions?order=sideways", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, srv.mock.ExpectationsWereMet())
}

func TestTransactionHandler_Running(t *testing.T) {
	srv := newTestServer(t, testOwner)
	srv.mock.ExpectQuery(ownedSQL).WithArgs(int64(1), testOwner).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/books/1/transactions/running", nil).Code)

	srv.mock.ExpectQuery(ownedSQL).WithArgs(int64(1), testOwner).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	srv.mock.ExpectQuery("FROM transactions WHERE book_id").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(txCols))

	w := srv.do(http.MethodGet, "/books/1/transactions/running", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.NoError(t, srv.mock.ExpectationsWereMet())
}

func TestTransactionHandler_Update(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		srv := newTestServer(t, testOwner)
		srv.mock.ExpectQuery("UPDATE transactions").
			WithArgs(int64(4), int64(1), testOwner, nil, "withdraw", false, nil).
			WillReturnRows(sqlmock.NewRows(txCols).AddRow(int64(4), int64(1), "12.00", "withdraw", nil, "2024-01-03", nil))
		srv.mock.ExpectQuery(sumSQL).WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("-12.00"))

		w := srv.do(http.MethodPatch, "/books/1/transactions/4", `{"type": "withdraw"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.NoError(t, srv.mock.ExpectationsWereMet())
	})

	t.Run("date cannot be changed", func(t *testing.T) {
		srv := newTestServer(t, testOwner)

		w := srv.do(http.MethodPatch, "/books/1/transactions/4", `{"date": "2024-01-01"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, srv.mock.ExpectationsWereMet())
	})

	t.Run("missing transaction", func(t *testing.T) {
		srv := newTestServer(t, testOwner)
		srv.mock.ExpectQuery("UPDATE transactions").WillReturnError(sql.ErrNoRows)

		w := srv.do(http.MethodPatch, "/books/1/transactions/40", `{"amount": "3.10"}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTransactionHandler_GetAndDelete(t *testing.T) {
	srv := newTestServer(t, testOwner)
	srv.mock.ExpectQuery("FROM transactions t JOIN books b").WithArgs(int64(4), int64(1), testOwner).
		WillReturnRows(sqlmock.NewRows(txCols).AddRow(int64(4), int64(1), "12.00", "deposit", "gift", "2024-01-03", nil))
	srv.mock.ExpectExec("DELETE FROM transactions").WithArgs(int64(4), int64(1), testOwner).
		WillReturnResult(sqlmock.NewResult(0, 1))
	srv.mock.ExpectExec("DELETE FROM transactions").WithArgs(int64(4), int64(1), testOwner).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := srv.do(http.MethodGet, "/books/1/transactions/4", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "gift", decodeJSON(t, w)["note"])

	assert.Equal(t, http.StatusNoContent, srv.do(http.MethodDelete, "/books/1/transactions/4", nil).Code)
	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodDelete, "/books/1/transactions/4", nil).Code)
	assert.NoError(t, srv.mock.ExpectationsWereMet())
}
