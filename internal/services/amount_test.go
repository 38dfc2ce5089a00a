package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"integer", "100", "100.00", false},
		{"two decimals", "12.34", "12.34", false},
		{"trailing zeros", "5.500", "5.50", false},
		{"surrounding spaces", " 7.1 ", "7.10", false},
		{"largest allowed", "99999999.99", "99999999.99", false},
		{"zero", "0", "", true},
		{"negative", "-3.00", "", true},
		{"three decimals", "1.234", "", true},
		{"too large", "100000000", "", true},
		{"empty", "", "", true},
		{"not a number", "ten", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				assert.True(t, errors.Is(err, ErrInvalidAmount))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.RequireFromString("0.01")))
	assert.ErrorIs(t, ValidateAmount(decimal.Zero), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(decimal.RequireFromString("0.001")), ErrInvalidAmount)
}

func TestGenerateBID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		bid, err := GenerateBID()
		assert.NoError(t, err)
		assert.Len(t, bid, 6)
		assert.True(t, ValidBID(bid), bid)
		seen[bid] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestValidBID(t *testing.T) {
	assert.True(t, ValidBID("000123"))
	assert.False(t, ValidBID("12345"))
	assert.False(t, ValidBID("1234567"))
	assert.False(t, ValidBID("12a456"))
	assert.False(t, ValidBID(""))
}
