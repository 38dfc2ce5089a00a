package models

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Order is the canonical (date, id) ordering direction of a ledger.
type Order int

const (
	Ascending Order = iota
	Descending
)

// ParseOrder accepts "asc" or "desc" (case-insensitive); "" means Descending,
// the display default.
func ParseOrder(s string) (Order, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending":
		return Descending, true
	case "asc", "ascending":
		return Ascending, true
	}
	return Descending, false
}

func (o Order) String() string {
	if o == Ascending {
		return "asc"
	}
	return "desc"
}

// SQL returns the ORDER BY clause for the ordering.
func (o Order) SQL() string {
	if o == Ascending {
		return "date ASC, id ASC"
	}
	return "date DESC, id DESC"
}

// CompareCanonical orders two transactions ascending by (date, id).
func CompareCanonical(a, b Transaction) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return cmpInt64(a.ID, b.ID)
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// SortCanonical sorts txs in place in the given order.
func SortCanonical(txs []Transaction, order Order) {
	slices.SortFunc(txs, func(a, b Transaction) int {
		if order == Descending {
			return CompareCanonical(b, a)
		}
		return CompareCanonical(a, b)
	})
}

// RunningEntry pairs a transaction with the book balance right after applying it.
type RunningEntry struct {
	Transaction
	BalanceAfter decimal.Decimal `json:"running_balance"`
}

// TransactionPage is one page of a book's ledger in the requested order.
type TransactionPage struct {
	BookID     int64           `json:"book_id"`
	Order      string          `json:"order"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalCount int             `json:"total_count"`
	TotalPages int             `json:"total_pages"`
	Balance    decimal.Decimal `json:"balance"`
	Entries    []RunningEntry  `json:"transactions"`
}
