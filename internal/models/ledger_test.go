package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseOrder(t *testing.T) {
	tests := []struct {
		in   string
		want Order
		ok   bool
	}{
		{"", Descending, true},
		{"desc", Descending, true},
		{"ASC", Ascending, true},
		{" ascending ", Ascending, true},
		{"sideways", Descending, false},
	}
	for _, tt := range tests {
		got, ok := ParseOrder(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
	assert.Equal(t, "asc", Ascending.String())
	assert.Equal(t, "date DESC, id DESC", Descending.SQL())
}

func TestSortCanonical(t *testing.T) {
	jan := func(day int) Date { return NewDate(2024, time.January, day) }
	txs := []Transaction{
		{ID: 5, Date: jan(2)},
		{ID: 9, Date: jan(1)},
		{ID: 2, Date: jan(2)},
		{ID: 7, Date: jan(1)},
	}

	SortCanonical(txs, Ascending)
	assert.Equal(t, []int64{7, 9, 2, 5}, ids(txs))

	SortCanonical(txs, Descending)
	assert.Equal(t, []int64{5, 2, 9, 7}, ids(txs))
}

func ids(txs []Transaction) []int64 {
	out := make([]int64, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.RequireFromString("12.30")
	assert.True(t, amount.Equal(Transaction{Amount: amount, Type: Deposit}.SignedAmount()))
	assert.True(t, amount.Neg().Equal(Transaction{Amount: amount, Type: Withdraw}.SignedAmount()))
}

func TestTxType_Valid(t *testing.T) {
	assert.True(t, Deposit.Valid())
	assert.True(t, Withdraw.Valid())
	assert.False(t, TxType("refund").Valid())
}

func TestTransactionPatch_Empty(t *testing.T) {
	assert.True(t, TransactionPatch{}.Empty())
	note := "x"
	assert.False(t, TransactionPatch{Note: &note}.Empty())
}

func TestDateRange_Contains(t *testing.T) {
	r := DateRange{Start: NewDate(2024, time.January, 10), End: NewDate(2024, time.January, 20)}
	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.False(t, r.Contains(r.End.AddDays(1)))
	assert.False(t, r.Contains(r.Start.AddDays(-1)))
}
