package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cashbook/backend/internal/audit"
	"github.com/cashbook/backend/internal/config"
	"github.com/cashbook/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testOwner = "user-1"
	otherUser = "user-2"
)

var (
	txCols    = []string{"id", "book_id", "amount", "type", "note", "date", "transfer_ref"}
	bookCols  = []string{"id", "bid", "owner_id", "name", "description", "created_at"}
	testToday = models.NewDate(2024, time.March, 15)
	createdAt = time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)
)

type testEnv struct {
	db       *sql.DB
	mock     sqlmock.Sqlmock
	cfg      *config.LedgerConfig
	books    *BookService
	ledger   *LedgerService
	balances *BalanceService
}

// newTestEnv wires the services against sqlmock with caching disabled.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	logger := zerolog.Nop()
	auditLog := audit.NewLogger(logger)

	ledger := NewLedgerService(db, nil, auditLog, logger, cfg)
	ledger.today = func() models.Date { return testToday }

	return &testEnv{
		db:       db,
		mock:     mock,
		cfg:      cfg,
		books:    NewBookService(db, nil, auditLog, logger, cfg),
		ledger:   ledger,
		balances: NewBalanceService(db, ledger, nil, logger),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string { return &s }

func bookRow(id int64, bid, owner, name string) *sqlmock.Rows {
	return sqlmock.NewRows(bookCols).AddRow(id, bid, owner, name, nil, createdAt)
}

func mkTx(id int64, date models.Date, typ models.TxType, amount string) models.Transaction {
	return models.Transaction{ID: id, BookID: 1, Amount: dec(amount), Type: typ, Date: date}
}

func txRows(txs ...models.Transaction) *sqlmock.Rows {
	rows := sqlmock.NewRows(txCols)
	for _, t := range txs {
		var note any
		if t.Note != nil {
			note = *t.Note
		}
		rows.AddRow(t.ID, t.BookID, t.Amount.StringFixed(2), string(t.Type), note, t.Date.String(), nil)
	}
	return rows
}
