package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange is an inclusive range of days.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Contains reports whether d falls within the range, bounds included.
func (r DateRange) Contains(d Date) bool { return !d.Before(r.Start) && !d.After(r.End) }

// ReportRow is a single line of a statement, most recent first.
type ReportRow struct {
	ID             int64           `json:"id"`
	Date           Date            `json:"date"`
	Type           TxType          `json:"type"`
	SignedAmount   decimal.Decimal `json:"signed_amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
	Note           string          `json:"note"`
}

// ReportTotals aggregates the rows of a statement.
type ReportTotals struct {
	TotalDeposit    decimal.Decimal `json:"total_deposit"`
	TotalWithdrawal decimal.Decimal `json:"total_withdrawal"`
	DepositCount    int             `json:"deposit_count"`
	WithdrawalCount int             `json:"withdrawal_count"`
	FinalBalance    decimal.Decimal `json:"final_balance"`
}

// ReportData is the statement dataset handed to a rendering collaborator.
type ReportData struct {
	BookID         int64           `json:"book_id"`
	BookName       string          `json:"book_name"`
	BID            string          `json:"bid"`
	Range          *DateRange      `json:"range,omitempty"`
	Through        Date            `json:"through"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Rows           []ReportRow     `json:"rows"`
	Totals         ReportTotals    `json:"totals"`
	GeneratedAt    time.Time       `json:"generated_at"`
}
