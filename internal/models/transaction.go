package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxType is the direction of a ledger entry.
type TxType string

const (
	Deposit  TxType = "deposit"
	Withdraw TxType = "withdraw"
)

// Valid reports whether t is one of the known entry types.
func (t TxType) Valid() bool { return t == Deposit || t == Withdraw }

// Transaction represents a dated monetary movement belonging to exactly one book
type Transaction struct {
	ID          int64           `json:"id" db:"id"`
	BookID      int64           `json:"book_id" db:"book_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"` // always positive, 2 decimals
	Type        TxType          `json:"type" db:"type"`
	Note        *string         `json:"note,omitempty" db:"note"`
	Date        Date            `json:"date" db:"date"`
	TransferRef *uuid.UUID      `json:"transfer_ref,omitempty" db:"transfer_ref"`
}

// SignedAmount is +Amount for deposits and -Amount for withdrawals.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == Deposit {
		return t.Amount
	}
	return t.Amount.Neg()
}

// NoteText returns the note or "" when unset.
func (t Transaction) NoteText() string {
	if t.Note == nil {
		return ""
	}
	return *t.Note
}

// NewTransaction carries the input of a ledger entry creation.
// A zero Date means today.
type NewTransaction struct {
	Amount decimal.Decimal
	Type   TxType
	Note   *string
	Date   Date
}

// TransactionPatch carries optional field updates; nil fields are left unchanged.
type TransactionPatch struct {
	Amount *decimal.Decimal
	Type   *TxType
	Note   *string
}

// Empty reports whether the patch changes nothing.
func (p TransactionPatch) Empty() bool {
	return p.Amount == nil && p.Type == nil && p.Note == nil
}
