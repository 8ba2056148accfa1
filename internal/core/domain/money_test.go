package domain_test

import (
	"testing"

	"github.com/sahelpos/pricing_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_AddSub(t *testing.T) {
	a := domain.NewMoney(decimal.NewFromInt(1000), domain.CurrencyXOF)
	b := domain.NewMoney(decimal.NewFromInt(250), domain.CurrencyXOF)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount.Equal(decimal.NewFromInt(1250)))

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount.Equal(decimal.NewFromInt(750)))

	eur := domain.NewMoney(decimal.NewFromInt(10), domain.CurrencyEUR)
	_, err = a.Add(eur)
	assert.Error(t, err, "mixed-currency arithmetic must be rejected")
	_, err = a.Sub(eur)
	assert.Error(t, err)
}

func TestMoney_RoundDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"6559.565", "6559.57"}, // half rounds up
		{"6559.564", "6559.56"},
		{"0.005", "0.01"},
		{"-1.005", "-1.01"}, // half away from zero
	}
	for _, tt := range tests {
		m := domain.NewMoney(decimal.RequireFromString(tt.in), domain.CurrencyXOF)
		assert.Equal(t, tt.want, m.RoundDisplay().Amount.String(), "rounding %s", tt.in)
	}
}

func TestMoney_MulInt(t *testing.T) {
	m := domain.NewMoney(decimal.RequireFromString("12.50"), domain.CurrencyXOF)
	assert.True(t, m.MulInt(3).Amount.Equal(decimal.RequireFromString("37.50")))
	assert.Equal(t, domain.CurrencyXOF, m.MulInt(3).Currency)
}
