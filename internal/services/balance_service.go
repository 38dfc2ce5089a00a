package services

import (
	"context"
	"database/sql"

	"github.com/cashbook/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// BalanceService derives balances from a book's transactions.
type BalanceService struct {
	db     *sql.DB
	ledger *LedgerService
	cache  *BalanceCache
	logger zerolog.Logger
}

func NewBalanceService(db *sql.DB, ledger *LedgerService, cache *BalanceCache, logger zerolog.Logger) *BalanceService {
	return &BalanceService{db: db, ledger: ledger, cache: cache, logger: logger}
}

// CurrentBalance is the sum of signed amounts of all the book's transactions,
// zero for an empty book.
func (s *BalanceService) CurrentBalance(ctx context.Context, bookID int64) (decimal.Decimal, error) {
	if cached, ok := s.cache.Get(ctx, bookID); ok {
		return cached, nil
	}

	balance, err := sumBook(ctx, s.db, bookID)
	if err != nil {
		return decimal.Zero, classifyStoreError(err)
	}

	s.cache.Set(ctx, bookID, balance)
	return balance, nil
}

// RunningBalances walks the book in ascending canonical order and returns each
// transaction with the balance right after it.
func (s *BalanceService) RunningBalances(ctx context.Context, bookID int64) ([]models.RunningEntry, error) {
	var (
		entries []models.RunningEntry
		balance decimal.Decimal
	)
	for tx, err := range s.ledger.Transactions(ctx, bookID, models.Ascending) {
		if err != nil {
			return nil, err
		}
		balance = balance.Add(tx.SignedAmount())
		entries = append(entries, models.RunningEntry{Transaction: tx, BalanceAfter: balance})
	}
	return entries, nil
}

// SumSigned returns the sum of signed amounts of txs.
func SumSigned(txs []models.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.SignedAmount())
	}
	return sum
}

// ComputeRunningBalances accumulates signed amounts over txs, which must
// already be in ascending canonical order, starting from opening.
func ComputeRunningBalances(opening decimal.Decimal, txs []models.Transaction) []models.RunningEntry {
	entries := make([]models.RunningEntry, len(txs))
	balance := opening
	for i, tx := range txs {
		balance = balance.Add(tx.SignedAmount())
		entries[i] = models.RunningEntry{Transaction: tx, BalanceAfter: balance}
	}
	return entries
}
