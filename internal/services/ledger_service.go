package services

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/cashbook/backend/internal/audit"
	"github.com/cashbook/backend/internal/config"
	"github.com/cashbook/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// LedgerService records and reads the dated entries of a book.
type LedgerService struct {
	db     *sql.DB
	cache  *BalanceCache
	audit  *audit.Logger
	logger zerolog.Logger
	cfg    *config.LedgerConfig
	today  func() models.Date
}

func NewLedgerService(db *sql.DB, cache *BalanceCache, auditLog *audit.Logger, logger zerolog.Logger, cfg *config.LedgerConfig) *LedgerService {
	if cfg == nil {
		cfg = config.Default()
	}
	return &LedgerService{
		db:     db,
		cache:  cache,
		audit:  auditLog,
		logger: logger,
		cfg:    cfg,
		today:  models.Today,
	}
}

// CreateTransaction appends an entry to one of the owner's books.
// A zero date means today.
func (s *LedgerService) CreateTransaction(ctx context.Context, owner string, bookID int64, in models.NewTransaction) (*models.Transaction, error) {
	if err := ValidateAmount(in.Amount); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, ErrInvalidType
	}
	note, err := normalizeNote(in.Note)
	if err != nil {
		return nil, err
	}
	date := in.Date
	if date.IsZero() {
		date = s.today()
	}

	tx := &models.Transaction{
		BookID: bookID,
		Amount: in.Amount.Round(2),
		Type:   in.Type,
		Note:   note,
		Date:   date,
	}
	// The book filter makes ownership and existence part of the insert itself.
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO transactions (book_id, amount, type, note, date)
		SELECT id, $3::numeric, $4, $5, $6::date FROM books WHERE id = $1 AND owner_id = $2
		RETURNING id`,
		bookID, owner, tx.Amount, string(tx.Type), nullableString(note), date).Scan(&tx.ID)
	if err != nil {
		err = classifyStoreError(err)
		s.logger.Debug().Err(err).Int64("book_id", bookID).Msg("[LEDGER] create transaction failed")
		return nil, err
	}

	s.cache.Invalidate(ctx, bookID)
	s.audit.LogOperation(audit.EventTransactionCreated, owner, bookID, tx.ID, string(tx.Type)+" "+tx.Amount.StringFixed(2))
	return tx, nil
}

// UpdateTransaction applies the non-nil fields of patch. The date of an entry
// is fixed at creation.
func (s *LedgerService) UpdateTransaction(ctx context.Context, owner string, bookID, txID int64, patch models.TransactionPatch) (*models.Transaction, error) {
	if patch.Empty() {
		return s.GetTransaction(ctx, owner, bookID, txID)
	}

	var amount, txType any
	if patch.Amount != nil {
		if err := ValidateAmount(*patch.Amount); err != nil {
			return nil, err
		}
		amount = patch.Amount.Round(2)
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, ErrInvalidType
		}
		txType = string(*patch.Type)
	}
	noteSet := patch.Note != nil
	var note any
	if noteSet {
		n, err := normalizeNote(patch.Note)
		if err != nil {
			return nil, err
		}
		note = nullableString(n)
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE transactions t SET
			amount = COALESCE($4, t.amount),
			type = COALESCE($5, t.type),
			note = CASE WHEN $6 THEN $7 ELSE t.note END
		FROM books b
		WHERE t.id = $1 AND t.book_id = $2 AND b.id = t.book_id AND b.owner_id = $3
		RETURNING t.id, t.book_id, t.amount, t.type, t.note, t.date, t.transfer_ref`,
		txID, bookID, owner, amount, txType, noteSet, note)
	tx, err := scanTransaction(row)
	if err != nil {
		return nil, classifyStoreError(err)
	}

	s.cache.Invalidate(ctx, bookID)
	s.audit.LogOperation(audit.EventTransactionUpdated, owner, bookID, tx.ID, "")
	return &tx, nil
}

func (s *LedgerService) DeleteTransaction(ctx context.Context, owner string, bookID, txID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM transactions t USING books b
		WHERE t.id = $1 AND t.book_id = $2 AND b.id = t.book_id AND b.owner_id = $3`,
		txID, bookID, owner)
	if err != nil {
		return classifyStoreError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classifyStoreError(err)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.cache.Invalidate(ctx, bookID)
	s.audit.LogOperation(audit.EventTransactionDeleted, owner, bookID, txID, "")
	return nil
}

func (s *LedgerService) GetTransaction(ctx context.Context, owner string, bookID, txID int64) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.book_id, t.amount, t.type, t.note, t.date, t.transfer_ref
		FROM transactions t JOIN books b ON b.id = t.book_id
		WHERE t.id = $1 AND t.book_id = $2 AND b.owner_id = $3`,
		txID, bookID, owner)
	tx, err := scanTransaction(row)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return &tx, nil
}

// Transactions streams a book's entries in canonical order. Each range over
// the returned sequence issues a fresh query, so the sequence can be consumed
// any number of times. An unknown book yields nothing.
func (s *LedgerService) Transactions(ctx context.Context, bookID int64, order models.Order) iter.Seq2[models.Transaction, error] {
	return func(yield func(models.Transaction, error) bool) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT `+transactionColumns+` FROM transactions WHERE book_id = $1 ORDER BY `+order.SQL(), bookID)
		if err != nil {
			yield(models.Transaction{}, classifyStoreError(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			tx, err := scanTransaction(rows)
			if err != nil {
				yield(models.Transaction{}, classifyStoreError(err))
				return
			}
			if !yield(tx, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(models.Transaction{}, classifyStoreError(err))
		}
	}
}

// ListTransactions returns one page of the book with running balances computed
// over the whole book.
func (s *LedgerService) ListTransactions(ctx context.Context, owner string, bookID int64, order models.Order, page, pageSize int) (*models.TransactionPage, error) {
	if err := s.EnsureOwned(ctx, owner, bookID); err != nil {
		return nil, err
	}
	if pageSize < 1 {
		pageSize = s.cfg.TxPageSize
	}
	pageSize = min(pageSize, s.cfg.MaxPageSize)

	var txs []models.Transaction
	for tx, err := range s.Transactions(ctx, bookID, models.Ascending) {
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}

	entries := ComputeRunningBalances(decimal.Zero, txs)
	balance := decimal.Zero
	if len(entries) > 0 {
		balance = entries[len(entries)-1].BalanceAfter
	}
	if order == models.Descending {
		slices.Reverse(entries)
	}

	page, pages, lo, hi := pageBounds(page, pageSize, len(entries))
	return &models.TransactionPage{
		BookID:     bookID,
		Order:      order.String(),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: len(entries),
		TotalPages: pages,
		Balance:    balance,
		Entries:    entries[lo:hi],
	}, nil
}

// EnsureOwned returns ErrNotFound unless bookID exists and belongs to owner.
func (s *LedgerService) EnsureOwned(ctx context.Context, owner string, bookID int64) error {
	var owned bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM books WHERE id = $1 AND owner_id = $2)`, bookID, owner).Scan(&owned)
	if err != nil {
		return classifyStoreError(err)
	}
	if !owned {
		return ErrNotFound
	}
	return nil
}

// normalizeNote trims the note; blank notes are stored as NULL.
func normalizeNote(note *string) (*string, error) {
	if note == nil {
		return nil, nil
	}
	n := strings.TrimSpace(*note)
	if n == "" {
		return nil, nil
	}
	if len([]rune(n)) > maxNoteLen {
		return nil, fmt.Errorf("%w (got %d)", ErrNoteTooLong, len([]rune(n)))
	}
	return &n, nil
}
