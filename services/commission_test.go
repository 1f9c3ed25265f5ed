package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() CommissionRates {
	return CommissionRates{
		PlatformFee:      decimal.NewFromFloat(0.10),
		LeaderCommission: decimal.NewFromFloat(0.03),
	}
}

func TestSplitBudget_EvenSplit(t *testing.T) {
	b, err := SplitBudget(decimal.NewFromInt(1000), 10, testRates())
	require.NoError(t, err)

	assert.Equal(t, "100.00", b.PlatformFee.StringFixed(2))
	assert.Equal(t, "30.00", b.LeaderCommission.StringFixed(2))
	assert.Equal(t, "870.00", b.Distributable.StringFixed(2))
	assert.Equal(t, "87.00", b.RewardPerMember.StringFixed(2))
	assert.True(t, b.Residual.IsZero(), "residual should be zero, got %s", b.Residual)
}

func TestSplitBudget_ResidualGoesToPlatform(t *testing.T) {
	b, err := SplitBudget(decimal.NewFromInt(100), 7, testRates())
	require.NoError(t, err)

	// 100 - 10 - 3 = 87; 87/7 = 12.428... floors to 12.42
	assert.Equal(t, "12.42", b.RewardPerMember.StringFixed(2))
	assert.Equal(t, "0.06", b.Residual.StringFixed(2))
	assert.Equal(t, "10.06", b.TotalPlatformFee().StringFixed(2))
}

func TestSplitBudget_ConservesBudget(t *testing.T) {
	cases := []struct {
		budget  string
		members int
	}{
		{"1000", 10},
		{"100", 7},
		{"999.99", 13},
		{"0.01", 3},
		{"250.50", 1},
	}
	for _, tc := range cases {
		b, err := SplitBudget(mustDecimal(t, tc.budget), tc.members, testRates())
		require.NoError(t, err)

		// fee + commission + distributable == budget
		sum := b.PlatformFee.Add(b.LeaderCommission).Add(b.Distributable)
		assert.True(t, sum.Equal(b.Budget), "budget %s: %s != %s", tc.budget, sum, b.Budget)

		// per*n + residual == distributable, residual never negative
		n := decimal.NewFromInt(int64(tc.members))
		back := b.RewardPerMember.Mul(n).Add(b.Residual)
		assert.True(t, back.Equal(b.Distributable), "budget %s: %s != %s", tc.budget, back, b.Distributable)
		assert.False(t, b.Residual.IsNegative())
	}
}

func TestSplitBudget_ZeroMembers(t *testing.T) {
	_, err := SplitBudget(decimal.NewFromInt(1000), 0, testRates())
	assert.ErrorIs(t, err, ErrInvalidGroupSize)
}

func TestSplitBudget_NegativeBudget(t *testing.T) {
	_, err := SplitBudget(decimal.NewFromInt(-5), 3, testRates())
	assert.ErrorIs(t, err, ErrInvalidBudget)
}

func TestSplitBudget_ZeroRates(t *testing.T) {
	b, err := SplitBudget(decimal.NewFromInt(90), 3, CommissionRates{})
	require.NoError(t, err)
	assert.True(t, b.PlatformFee.IsZero())
	assert.Equal(t, "30.00", b.RewardPerMember.StringFixed(2))
}
