package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cashbook/backend/internal/audit"
	"github.com/cashbook/backend/internal/config"
	"github.com/cashbook/backend/internal/models"
	"github.com/rs/zerolog"
)

// BookService owns the lifecycle of books and their public identifiers.
type BookService struct {
	db     *sql.DB
	cache  *BalanceCache
	audit  *audit.Logger
	logger zerolog.Logger
	cfg    *config.LedgerConfig
	newBID func() (string, error)
}

func NewBookService(db *sql.DB, cache *BalanceCache, auditLog *audit.Logger, logger zerolog.Logger, cfg *config.LedgerConfig) *BookService {
	if cfg == nil {
		cfg = config.Default()
	}
	return &BookService{
		db:     db,
		cache:  cache,
		audit:  auditLog,
		logger: logger,
		cfg:    cfg,
		newBID: GenerateBID,
	}
}

// CreateBook registers a new book with a freshly drawn BID.
func (s *BookService) CreateBook(ctx context.Context, owner, name string, description *string) (*models.Book, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len([]rune(name)) > maxBookNameLen {
		return nil, ErrNameTooLong
	}
	if description != nil {
		d := strings.TrimSpace(*description)
		description = &d
		if d == "" {
			description = nil
		}
	}

	for attempt := 1; attempt <= s.cfg.BIDMaxAttempts; attempt++ {
		bid, err := s.newBID()
		if err != nil {
			return nil, fmt.Errorf("%w: draw bid: %w", ErrPersistence, err)
		}

		var taken bool
		if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE bid = $1)`, bid).Scan(&taken); err != nil {
			return nil, classifyStoreError(err)
		}
		if taken {
			s.logger.Debug().Int("attempt", attempt).Msg("[BOOK] bid collision, redrawing")
			continue
		}

		book := &models.Book{BID: bid, OwnerID: owner, Name: name, Description: description}
		err = s.db.QueryRowContext(ctx, `
			INSERT INTO books (bid, owner_id, name, description)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
			bid, owner, name, nullableString(description)).Scan(&book.ID, &book.CreatedAt)
		if isUniqueViolation(err) {
			// Lost a race for the same BID between the check and the insert.
			s.logger.Debug().Int("attempt", attempt).Msg("[BOOK] bid taken concurrently, redrawing")
			continue
		}
		if err != nil {
			return nil, classifyStoreError(err)
		}

		s.logger.Info().Int64("book_id", book.ID).Str("bid", bid).Msg("[BOOK] created")
		s.audit.LogOperation(audit.EventBookCreated, owner, book.ID, 0, "bid "+bid)
		return book, nil
	}

	s.logger.Error().Int("attempts", s.cfg.BIDMaxAttempts).Msg("[BOOK] no free bid found")
	return nil, ErrBIDSpaceExhausted
}

// DeleteBook removes the book and, through the cascading foreign key, all of
// its transactions in one statement.
func (s *BookService) DeleteBook(ctx context.Context, owner string, bookID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1 AND owner_id = $2`, bookID, owner)
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
	s.audit.LogOperation(audit.EventBookDeleted, owner, bookID, 0, "")
	return nil
}

// GetBook returns one of the owner's books. Books of other owners are
// reported as not found.
func (s *BookService) GetBook(ctx context.Context, owner string, bookID int64) (*models.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1 AND owner_id = $2`, bookID, owner)
	book, err := scanBook(row)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return &book, nil
}

// LookupByBID resolves a BID regardless of owner. A malformed BID is simply
// not found.
func (s *BookService) LookupByBID(ctx context.Context, bid string) (*models.Book, error) {
	bid = strings.TrimSpace(bid)
	if !ValidBID(bid) {
		return nil, ErrNotFound
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE bid = $1`, bid)
	book, err := scanBook(row)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return &book, nil
}

// LookupPublic returns what any signed-in user may learn about a BID.
func (s *BookService) LookupPublic(ctx context.Context, bid string) (*models.BookLookup, error) {
	bid = strings.TrimSpace(bid)
	if !ValidBID(bid) {
		return nil, ErrNotFound
	}
	var out models.BookLookup
	err := s.db.QueryRowContext(ctx, `
		SELECT b.bid, b.name, COALESCE(p.display_name, '')
		FROM books b LEFT JOIN profiles p ON p.owner_id = b.owner_id
		WHERE b.bid = $1`, bid).Scan(&out.BID, &out.BookName, &out.OwnerDisplayName)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return &out, nil
}

// ListBooks returns a page of the owner's books sorted by name, each with its
// transaction count and balance.
func (s *BookService) ListBooks(ctx context.Context, owner string, filter models.BookFilter) (*models.BookPage, error) {
	size := filter.PageSize
	if size < 1 {
		size = s.cfg.BookPageSize
	}
	size = min(size, s.cfg.MaxPageSize)
	pattern := "%" + escapeLike(strings.TrimSpace(filter.Search)) + "%"

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books WHERE owner_id = $1 AND name ILIKE $2`, owner, pattern).Scan(&total)
	if err != nil {
		return nil, classifyStoreError(err)
	}

	page, pages, lo, _ := pageBounds(filter.Page, size, total)
	result := &models.BookPage{
		Page:       page,
		PageSize:   size,
		TotalCount: total,
		TotalPages: pages,
		Books:      []models.BookSummary{},
	}
	if total == 0 {
		return result, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.bid, b.owner_id, b.name, b.description, b.created_at,
			COUNT(t.id),
			COALESCE(SUM(CASE WHEN t.type = 'deposit' THEN t.amount ELSE -t.amount END), 0)
		FROM books b LEFT JOIN transactions t ON t.book_id = b.id
		WHERE b.owner_id = $1 AND b.name ILIKE $2
		GROUP BY b.id
		ORDER BY lower(b.name), b.id
		LIMIT $3 OFFSET $4`,
		owner, pattern, size, lo)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	defer rows.Close()

	for rows.Next() {
		var sum models.BookSummary
		book, err := scanBook(rows, &sum.TransactionCount, &sum.Balance)
		if err != nil {
			return nil, classifyStoreError(err)
		}
		sum.Book = book
		result.Books = append(result.Books, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyStoreError(err)
	}
	return result, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
