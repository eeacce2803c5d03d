package recipe

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "integer", input: "5", want: "5"},
		{name: "decimal", input: "0.5", want: "0.5"},
		{name: "three fraction digits", input: "0.125", want: "0.125"},
		{name: "trailing zeros collapse", input: "5.000", want: "5"},
		{name: "leading zeros", input: "007", want: "7"},
		{name: "zero rejected", input: "0", wantErr: ErrAmountNotPositive},
		{name: "negative rejected", input: "-1", wantErr: ErrAmountNotPositive},
		{name: "too precise", input: "0.0001", wantErr: ErrAmountTooPrecise},
		{name: "comma rejected", input: "1,5", wantErr: ErrAmountNotDecimal},
		{name: "exponent rejected", input: "1e3", wantErr: ErrAmountNotDecimal},
		{name: "words rejected", input: "five", wantErr: ErrAmountNotDecimal},
		{name: "empty rejected", input: "", wantErr: ErrAmountNotDecimal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := ParseAmount(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, amount.String())
		})
	}
}

func TestAmountAddIsExact(t *testing.T) {
	a, err := ParseAmount("0.1")
	require.NoError(t, err)
	b, err := ParseAmount("0.2")
	require.NoError(t, err)

	sum := a.Add(b)
	assert.Equal(t, "0.3", sum.String())
}

func TestAmountEqualIgnoresScale(t *testing.T) {
	a, err := ParseAmount("5")
	require.NoError(t, err)
	b, err := ParseAmount("5.000")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.String(), b.String())
}

func TestNewAmountValidatesScale(t *testing.T) {
	_, err := NewAmount(decimal.RequireFromString("1.2345"))
	assert.ErrorIs(t, err, ErrAmountTooPrecise)

	amount, err := NewAmount(decimal.RequireFromString("1.234"))
	require.NoError(t, err)
	assert.Equal(t, "1.234", amount.String())
}
