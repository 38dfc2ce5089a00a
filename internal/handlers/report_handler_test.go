package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cashbook/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportHandler_Report(t *testing.T) {
	t.Run("ranged statement", func(t *testing.T) {
		srv := newTestServer(t, testOwner)
		srv.mock.ExpectQuery(getBookSQL).WithArgs(int64(1), testOwner).
			WillReturnRows(sqlmock.NewRows(bookCols).AddRow(int64(1), "123456", testOwner, "Wallet", nil, createdAt))
		srv.mock.ExpectQuery("date < \\$2").WithArgs(int64(1), "2024-02-01").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("100.00"))
		srv.mock.ExpectQuery("date >= \\$2 AND date <= \\$3").WithArgs(int64(1), "2024-02-01", "2024-02-29").
			WillReturnRows(sqlmock.NewRows(txCols).
				AddRow(int64(4), int64(1), "20.00", "withdraw", "food", "2024-02-03", nil).
				AddRow(int64(6), int64(1), "50.00", "deposit", nil, "2024-02-10", nil))

		w := srv.do(http.MethodGet, "/books/1/report?start=2024-02-01&end=2024-02-29", nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var data models.ReportData
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
		assert.Equal(t, "Wallet", data.BookName)
		assert.True(t, data.OpeningBalance.Equal(decimal.NewFromInt(100)))
		require.Len(t, data.Rows, 2)
		assert.Equal(t, int64(6), data.Rows[0].ID)
		assert.True(t, data.Rows[0].RunningBalance.Equal(decimal.NewFromInt(130)))
		assert.True(t, data.Rows[1].RunningBalance.Equal(decimal.NewFromInt(80)))
		assert.True(t, data.Totals.FinalBalance.Equal(decimal.NewFromInt(130)))
		assert.Equal(t, 1, data.Totals.DepositCount)
		assert.Equal(t, 1, data.Totals.WithdrawalCount)
		assert.NoError(t, srv.mock.ExpectationsWereMet())
	})

	t.Run("bad ranges", func(t *testing.T) {
		srv := newTestServer(t, testOwner)
		for _, q := range []string{
			"?start=2024-02-01",
			"?end=2024-02-01",
			"?start=2024-02-30&end=2024-03-01",
			"?start=2024-03-01&end=2024-02-01",
		} {
			w := srv.do(http.MethodGet, "/books/1/report"+q, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
		}
		assert.NoError(t, srv.mock.ExpectationsWereMet())
	})
}
