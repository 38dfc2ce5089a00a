package services

import (
	"context"
	"database/sql"
	"slices"
	"time"

	"github.com/cashbook/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ReportService assembles statement data for a book. Rendering is left to
// the caller.
type ReportService struct {
	db     *sql.DB
	books  *BookService
	logger zerolog.Logger
	today  func() models.Date
	now    func() time.Time
}

func NewReportService(db *sql.DB, books *BookService, logger zerolog.Logger) *ReportService {
	return &ReportService{
		db:     db,
		books:  books,
		logger: logger,
		today:  models.Today,
		now:    time.Now,
	}
}

// BuildReport collects the book's rows within rng (inclusive), or every row
// dated up to today when rng is nil, newest first with running balances.
func (s *ReportService) BuildReport(ctx context.Context, owner string, bookID int64, rng *models.DateRange) (*models.ReportData, error) {
	if rng != nil && rng.Start.After(rng.End) {
		return nil, ErrInvalidDateRange
	}

	book, err := s.books.GetBook(ctx, owner, bookID)
	if err != nil {
		return nil, err
	}

	opening := decimal.Zero
	through := s.today()
	var rows *sql.Rows
	if rng != nil {
		through = rng.End
		err = s.db.QueryRowContext(ctx,
			`SELECT `+signedSumSQL+` FROM transactions WHERE book_id = $1 AND date < $2`,
			bookID, rng.Start).Scan(&opening)
		if err != nil {
			return nil, classifyStoreError(err)
		}
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+transactionColumns+` FROM transactions
			WHERE book_id = $1 AND date >= $2 AND date <= $3
			ORDER BY date ASC, id ASC`,
			bookID, rng.Start, rng.End)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT `+transactionColumns+` FROM transactions
			WHERE book_id = $1 AND date <= $2
			ORDER BY date ASC, id ASC`,
			bookID, through)
	}
	if err != nil {
		return nil, classifyStoreError(err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, classifyStoreError(err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError(err)
	}

	reportRows, totals := summarize(opening, txs)
	s.logger.Debug().Int64("book_id", bookID).Int("rows", len(reportRows)).Msg("[REPORT] built")

	return &models.ReportData{
		BookID:         book.ID,
		BookName:       book.Name,
		BID:            book.BID,
		Range:          rng,
		Through:        through,
		OpeningBalance: opening,
		Rows:           reportRows,
		Totals:         totals,
		GeneratedAt:    s.now().UTC(),
	}, nil
}

// summarize turns ascending transactions into descending report rows and
// totals. Running balances start from opening.
func summarize(opening decimal.Decimal, txs []models.Transaction) ([]models.ReportRow, models.ReportTotals) {
	totals := models.ReportTotals{
		TotalDeposit:    decimal.Zero,
		TotalWithdrawal: decimal.Zero,
		FinalBalance:    opening,
	}
	rows := make([]models.ReportRow, 0, len(txs))

	for _, e := range ComputeRunningBalances(opening, txs) {
		switch e.Type {
		case models.Deposit:
			totals.TotalDeposit = totals.TotalDeposit.Add(e.Amount)
			totals.DepositCount++
		case models.Withdraw:
			totals.TotalWithdrawal = totals.TotalWithdrawal.Add(e.Amount)
			totals.WithdrawalCount++
		}
		totals.FinalBalance = e.BalanceAfter
		rows = append(rows, models.ReportRow{
			ID:             e.ID,
			Date:           e.Date,
			Type:           e.Type,
			SignedAmount:   e.SignedAmount(),
			RunningBalance: e.BalanceAfter,
			Note:           e.NoteText(),
		})
	}

	slices.Reverse(rows)
	return rows, totals
}
