package services

import (
	"context"
	"database/sql"

	"github.com/cashbook/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

const transactionColumns = `id, book_id, amount, type, note, date, transfer_ref`

const bookColumns = `id, bid, owner_id, name, description, created_at`

const signedSumSQL = `COALESCE(SUM(CASE WHEN type = 'deposit' THEN amount ELSE -amount END), 0)`

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var (
		t        models.Transaction
		txType   string
		note     sql.NullString
		transfer uuid.NullUUID
	)
	if err := row.Scan(&t.ID, &t.BookID, &t.Amount, &txType, &note, &t.Date, &transfer); err != nil {
		return models.Transaction{}, err
	}
	t.Type = models.TxType(txType)
	if note.Valid {
		t.Note = &note.String
	}
	if transfer.Valid {
		ref := transfer.UUID
		t.TransferRef = &ref
	}
	return t, nil
}

func scanBook(row rowScanner, extra ...any) (models.Book, error) {
	var (
		b    models.Book
		desc sql.NullString
	)
	dest := append([]any{&b.ID, &b.BID, &b.OwnerID, &b.Name, &desc, &b.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return models.Book{}, err
	}
	if desc.Valid {
		b.Description = &desc.String
	}
	return b, nil
}

// sumBook returns the signed sum of a book's rows straight from the store.
func sumBook(ctx context.Context, q querier, bookID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := q.QueryRowContext(ctx, `SELECT `+signedSumSQL+` FROM transactions WHERE book_id = $1`, bookID).Scan(&sum)
	return sum, err
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// pageBounds clamps page and size and returns the slice bounds for total items.
func pageBounds(page, size, total int) (int, int, int, int) {
	if size < 1 {
		size = 1
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	lo := (page - 1) * size
	hi := min(lo+size, total)
	return page, pages, lo, hi
}
