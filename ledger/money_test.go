package ledger

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Money
		wantErr bool
	}{
		{name: "whole number", input: "100", want: 10000},
		{name: "two decimals", input: "12.05", want: 1205},
		{name: "one decimal", input: "12.5", want: 1250},
		{name: "comma separator", input: "3,20", want: 320},
		{name: "negative", input: "-7.99", want: -799},
		{name: "explicit plus", input: "+1.01", want: 101},
		{name: "rounds half up", input: "0.125", want: 13},
		{name: "rounds down", input: "0.124", want: 12},
		{name: "negative rounds away from zero", input: "-0.125", want: -13},
		{name: "leading dot", input: ".5", want: 50},
		{name: "exponent", input: "1e3", want: 100000},
		{name: "empty", input: "", wantErr: true},
		{name: "letters", input: "12a", wantErr: true},
		{name: "two dots", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMoney)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "0.00", Money(0).String())
	assert.Equal(t, "12.05", Money(1205).String())
	assert.Equal(t, "-0.30", Money(-30).String())
}

func TestMoneyJSON(t *testing.T) {
	t.Run("should encode as a number", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Amount Money `json:"amount"`
		}{Amount: 7000})
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount": 70.00}`, string(data))
	})

	t.Run("should decode numbers and strings", func(t *testing.T) {
		var v struct {
			A Money `json:"a"`
			B Money `json:"b"`
			C Money `json:"c"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"a": 30, "b": "4.50", "c": null}`), &v))
		assert.Equal(t, Money(3000), v.A)
		assert.Equal(t, Money(450), v.B)
		assert.Equal(t, Money(0), v.C)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		var m Money
		assert.Error(t, json.Unmarshal([]byte(`"abc"`), &m))
	})
}

func TestMoneyFromDecimal(t *testing.T) {
	m, err := MoneyFromDecimal(decimal.RequireFromString("1234.567"))
	require.NoError(t, err)
	assert.Equal(t, Money(123457), m)

	_, err = MoneyFromDecimal(decimal.RequireFromString("1e30"))
	assert.ErrorIs(t, err, ErrInvalidMoney)

	assert.True(t, Money(-1205).Decimal().Equal(decimal.RequireFromString("-12.05")))
}

func TestMoneyFromFloat(t *testing.T) {
	assert.Equal(t, Money(29), MoneyFromFloat(0.29))
	assert.Equal(t, Money(-1999), MoneyFromFloat(-19.99))
	assert.InDelta(t, 19.99, Money(1999).Float64(), 1e-9)
}
