package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book is an independent ledger owned by one user
type Book struct {
	ID          int64     `json:"id" db:"id"`
	BID         string    `json:"bid" db:"bid"` // public 6-digit identifier
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// BookSummary is a book as listed on the owner's dashboard.
type BookSummary struct {
	Book
	TransactionCount int             `json:"transactions_count"`
	Balance          decimal.Decimal `json:"balance"`
}

// BookLookup is what a BID lookup reveals to any authenticated user.
type BookLookup struct {
	BID              string `json:"bid"`
	BookName         string `json:"book_name"`
	OwnerDisplayName string `json:"owner_display_name"`
}

// BookFilter selects a page of an owner's books.
type BookFilter struct {
	Search   string
	Page     int
	PageSize int
}

// BookPage is one page of an owner's books sorted by name.
type BookPage struct {
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int           `json:"total_count"`
	TotalPages int           `json:"total_pages"`
	Books      []BookSummary `json:"books"`
}
