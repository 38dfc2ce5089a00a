package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cashbook/backend/internal/config"
	"github.com/cashbook/backend/internal/middleware"
	"github.com/cashbook/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redismock/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectTransferResolve(mock sqlmock.Sqlmock, senderID int64, senderBID string, recipientID int64, recipientBID string) {
	mock.ExpectQuery(getBookSQL).WithArgs(senderID, testOwner).
		WillReturnRows(sqlmock.NewRows(bookCols).AddRow(senderID, senderBID, testOwner, "Wallet", nil, createdAt))
	mock.ExpectQuery("FROM books WHERE bid = \\$1").WithArgs(recipientBID).
		WillReturnRows(sqlmock.NewRows(bookCols).AddRow(recipientID, recipientBID, "user-2", "Savings", nil, createdAt))
}

func TestTransferHandler_Transfer(t *testing.T) {
	t.Run("committed", func(t *testing.T) {
		srv := newTestServer(t, testOwner)
		expectTransferResolve(srv.mock, 1, "000001", 2, "000002")
		srv.mock.ExpectBegin()
		srv.mock.ExpectExec("SET LOCAL lock_timeout").WillReturnResult(sqlmock.NewResult(0, 0))
		srv.mock.ExpectQuery("FOR UPDATE").WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "bid", "owner_id"}).AddRow(int64(1), "000001", testOwner))
		srv.mock.ExpectQuery("FOR UPDATE").WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "bid", "owner_id"}).AddRow(int64(2), "000002", "user-2"))
		srv.mock.ExpectQuery(sumSQL).WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("50.00"))
		srv.mock.ExpectQuery("INSERT INTO transactions").
			WithArgs(int64(1), sqlmock.AnyArg(), "withdraw", "Transfer to BID 000002: lunch", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(70)))
		srv.mock.ExpectQuery("INSERT INTO transactions").
			WithArgs(int64(2), sqlmock.AnyArg(), "deposit", "Transfer from BID 000001: lunch", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(71)))
		srv.mock.ExpectCommit()

		w := srv.do(http.MethodPost, "/books/1/transfers", `{"recipient_bid": "000002", "amount": 12.5, "note": "lunch"}`)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decodeJSON(t, w)
		assert.Equal(t, "37.5", body["sender_balance_after"])
		assert.NotEmpty(t, body["transfer_ref"])
		assert.NoError(t, srv.mock.ExpectationsWereMet())
	})

	t.Run("insufficient funds rolls back", func(t *testing.T) {
		srv := newTestServer(t, testOwner)
		expectTransferResolve(srv.mock, 1, "000001", 2, "000002")
		srv.mock.ExpectBegin()
		srv.mock.ExpectExec("SET LOCAL lock_timeout").WillReturnResult(sqlmock.NewResult(0, 0))
		srv.mock.ExpectQuery("FOR UPDATE").WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "bid", "owner_id"}).AddRow(int64(1), "000001", testOwner))
		srv.mock.ExpectQuery("FOR UPDATE").WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "bid", "owner_id"}).AddRow(int64(2), "000002", "user-2"))
		srv.mock.ExpectQuery(sumSQL).WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("5.00"))
		srv.mock.ExpectRollback()

		w := srv.do(http.MethodPost, "/books/1/transfers", `{"recipient_bid": "000002", "amount": "10"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
		assert.NoError(t, srv.mock.ExpectationsWereMet())
	})

	t.Run("to the same book", func(t *testing.T) {
		srv := newTestServer(t, testOwner)
		expectTransferResolve(srv.mock, 1, "000001", 1, "000001")

		w := srv.do(http.MethodPost, "/books/1/transfers", `{"recipient_bid": "000001", "amount": "10"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, srv.mock.ExpectationsWereMet())
	})

	t.Run("request validation", func(t *testing.T) {
		srv := newTestServer(t, testOwner)
		for name, body := range map[string]string{
			"short bid":      `{"recipient_bid": "123", "amount": "10"}`,
			"letters in bid": `{"recipient_bid": "12a456", "amount": "10"}`,
			"missing amount": `{"recipient_bid": "123456"}`,
			"bad amount":     `{"recipient_bid": "123456", "amount": "0.001"}`,
			"unknown field":  `{"recipient_bid": "123456", "amount": "1", "from": 3}`,
		} {
			w := srv.do(http.MethodPost, "/books/1/transfers", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, name)
		}
		assert.NoError(t, srv.mock.ExpectationsWereMet())
	})
}

func TestTransferHandler_RateLimited(t *testing.T) {
	client, rmock := redismock.NewClientMock()
	rmock.ExpectGet("transfer:ratelimit:" + testOwner).SetVal("5")

	cfg := config.Default()
	cfg.TransferRateLimit = 5
	h := NewTransferHandler(nil, services.NewTransferLimiter(client, cfg, zerolog.Nop()), zerolog.Nop())

	r := chi.NewRouter()
	h.Routes(r)
	req := httptest.NewRequest(http.MethodPost, "/books/1/transfers",
		strings.NewReader(`{"recipient_bid": "000002", "amount": "1"}`))
	req = req.WithContext(middleware.WithOwner(req.Context(), testOwner))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NoError(t, rmock.ExpectationsWereMet())
}
