package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cashbook/backend/internal/audit"
	"github.com/cashbook/backend/internal/config"
	"github.com/cashbook/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransferService moves funds between two books as one atomic pair of
// entries: a withdrawal on the sender and a deposit on the recipient.
type TransferService struct {
	db     *sql.DB
	books  *BookService
	cache  *BalanceCache
	audit  *audit.Logger
	logger zerolog.Logger
	cfg    *config.LedgerConfig
	today  func() models.Date
	newRef func() uuid.UUID
}

func NewTransferService(db *sql.DB, books *BookService, cache *BalanceCache, auditLog *audit.Logger, logger zerolog.Logger, cfg *config.LedgerConfig) *TransferService {
	if cfg == nil {
		cfg = config.Default()
	}
	return &TransferService{
		db:     db,
		books:  books,
		cache:  cache,
		audit:  auditLog,
		logger: logger,
		cfg:    cfg,
		today:  models.Today,
		newRef: uuid.New,
	}
}

type lockedBook struct {
	id      int64
	bid     string
	ownerID string
}

// Transfer runs the transfer to completion or leaves both books untouched.
func (s *TransferService) Transfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error) {
	res, err := s.transfer(ctx, req)
	if err != nil {
		s.logger.Info().Err(err).Int64("sender_book_id", req.SenderBookID).Str("recipient_bid", req.RecipientBID).
			Msg("[TRANSFER] rejected")
		s.audit.LogError("transfer", req.Owner, req.SenderBookID, err)
		return nil, err
	}

	s.cache.Invalidate(ctx, res.Withdrawal.BookID, res.Deposit.BookID)
	s.audit.LogTransfer(res.TransferRef.String(), req.Owner, res.Withdrawal.BookID, res.Deposit.BookID,
		res.Withdrawal.Amount, audit.StatusSuccess)
	s.logger.Info().Str("transfer_ref", res.TransferRef.String()).
		Int64("sender_book_id", res.Withdrawal.BookID).Int64("recipient_book_id", res.Deposit.BookID).
		Msg("[TRANSFER] committed")
	return res, nil
}

func (s *TransferService) transfer(ctx context.Context, req models.TransferRequest) (*models.TransferResult, error) {
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	sender, err := s.books.GetBook(ctx, req.Owner, req.SenderBookID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.books.LookupByBID(ctx, req.RecipientBID)
	if err != nil {
		return nil, err
	}
	if sender.ID == recipient.ID {
		return nil, ErrSelfTransfer
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`SET LOCAL lock_timeout = '%dms'`, s.cfg.LockTimeout.Milliseconds())); err != nil {
		return nil, classifyStoreError(err)
	}

	// Lock both books in id order so concurrent transfers in opposite
	// directions cannot deadlock.
	firstID, secondID := sender.ID, recipient.ID
	if firstID > secondID {
		firstID, secondID = secondID, firstID
	}
	first, err := s.lockBook(ctx, tx, firstID)
	if err != nil {
		return nil, err
	}
	second, err := s.lockBook(ctx, tx, secondID)
	if err != nil {
		return nil, err
	}
	from, to := first, second
	if first.id != sender.ID {
		from, to = second, first
	}
	if from.ownerID != req.Owner {
		return nil, ErrNotFound
	}

	balance, err := sumBook(ctx, tx, from.id)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	if amount.GreaterThan(balance) {
		return nil, fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, balance.StringFixed(2), amount.StringFixed(2))
	}

	ref := s.newRef()
	date := s.today()
	note := strings.TrimSpace(req.Note)

	withdrawal, err := insertTransferLeg(ctx, tx, from.id, amount, models.Withdraw, transferNote("Transfer to BID", to.bid, note), date, ref)
	if err != nil {
		return nil, err
	}
	deposit, err := insertTransferLeg(ctx, tx, to.id, amount, models.Deposit, transferNote("Transfer from BID", from.bid, note), date, ref)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, classifyStoreError(err)
	}

	return &models.TransferResult{
		TransferRef:        ref,
		Withdrawal:         *withdrawal,
		Deposit:            *deposit,
		SenderBalanceAfter: balance.Sub(amount),
	}, nil
}

func (s *TransferService) lockBook(ctx context.Context, tx *sql.Tx, bookID int64) (lockedBook, error) {
	var b lockedBook
	err := tx.QueryRowContext(ctx,
		`SELECT id, bid, owner_id FROM books WHERE id = $1 FOR UPDATE`, bookID).Scan(&b.id, &b.bid, &b.ownerID)
	if err != nil {
		return lockedBook{}, classifyStoreError(err)
	}
	return b, nil
}

func insertTransferLeg(ctx context.Context, q querier, bookID int64, amount decimal.Decimal, txType models.TxType, note string, date models.Date, ref uuid.UUID) (*models.Transaction, error) {
	leg := &models.Transaction{
		BookID:      bookID,
		Amount:      amount,
		Type:        txType,
		Note:        &note,
		Date:        date,
		TransferRef: &ref,
	}
	err := q.QueryRowContext(ctx, `
		INSERT INTO transactions (book_id, amount, type, note, date, transfer_ref)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		bookID, amount, string(txType), note, date, ref).Scan(&leg.ID)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return leg, nil
}

// transferNote builds "<prefix> <bid>" with ": <note>" appended when the
// sender supplied one, truncated to the note column width.
func transferNote(prefix, bid, note string) string {
	s := prefix + " " + bid
	if note != "" {
		s += ": " + note
	}
	if r := []rune(s); len(r) > maxNoteLen {
		s = string(r[:maxNoteLen])
	}
	return s
}
