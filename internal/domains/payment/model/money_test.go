package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   int64
	}{
		{"whole rupees", "1499", 149900},
		{"two decimal places", "499.99", 49999},
		{"one decimal place", "10.5", 1050},
		{"zero", "0", 0},
		{"paisa only", "0.01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinorUnits(decimal.RequireFromString(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects sub-paisa precision", func(t *testing.T) {
		_, err := ToMinorUnits(decimal.RequireFromString("10.999"))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}
