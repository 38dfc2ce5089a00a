package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRequest is a request to move funds from one of the requester's books
// to any book identified by its BID.
type TransferRequest struct {
	Owner        string
	SenderBookID int64
	RecipientBID string
	Amount       string
	Note         string
}

// TransferResult describes a committed transfer.
type TransferResult struct {
	TransferRef        uuid.UUID       `json:"transfer_ref"`
	Withdrawal         Transaction     `json:"withdrawal"`
	Deposit            Transaction     `json:"deposit"`
	SenderBalanceAfter decimal.Decimal `json:"sender_balance_after"`
}
