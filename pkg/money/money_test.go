package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundMinor(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"exact", "1234", 1234},
		{"below half rounds down", "1234.4", 1234},
		{"half rounds up", "1234.5", 1235},
		{"above half rounds up", "1234.6", 1235},
		{"tiny fraction", "0.4999999999", 0},
		{"half exactly at zero", "0.5", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, Money(tt.want), RoundMinor(d))
		})
	}
}

func TestFromMajorString(t *testing.T) {
	t.Run("whole dollars", func(t *testing.T) {
		m, err := FromMajorString("250000")
		require.NoError(t, err)
		assert.Equal(t, int64(25000000), m.Minor())
	})

	t.Run("dollars and cents", func(t *testing.T) {
		m, err := FromMajorString("1034.56")
		require.NoError(t, err)
		assert.Equal(t, int64(103456), m.Minor())
	})

	t.Run("sub-cent input rounds half-up", func(t *testing.T) {
		m, err := FromMajorString("0.005")
		require.NoError(t, err)
		assert.Equal(t, int64(1), m.Minor())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := FromMajorString("two fifty")
		require.Error(t, err)
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{24900000, "$249,000"},
		{25000000, "$250,000"},
		{103456, "$1,034.56"},
		{99, "$0.99"},
		{0, "$0"},
		{100000000000, "$1,000,000,000"},
		{-123456, "-$1,234.56"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromMinor(tt.minor).Format())
	}
}

func TestRateMonthly(t *testing.T) {
	t.Run("3.5 percent annual", func(t *testing.T) {
		r, err := ParseRate("3.5")
		require.NoError(t, err)
		// 3.5 / 100 / 12
		want := decimal.NewFromFloat(3.5).Div(decimal.NewFromInt(1200))
		assert.True(t, r.Monthly().Equal(want), "got %s", r.Monthly())
	})

	t.Run("zero rate", func(t *testing.T) {
		r, err := ParseRate("0")
		require.NoError(t, err)
		assert.True(t, r.IsZero())
		assert.True(t, r.Monthly().IsZero())
	})

	t.Run("negative flagged", func(t *testing.T) {
		r, err := ParseRate("-1")
		require.NoError(t, err)
		assert.True(t, r.IsNegative())
	})
}
