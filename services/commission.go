package services

import (
	"github.com/shopspring/decimal"

	"github.com/Yassin6up/somoo-sub001/models"
)

// CommissionRates are the fractions taken off a budget before it is
// distributed to members. The leader rate differs between the project flow
// (group leader accepted a budgeted project) and the campaign flow.
type CommissionRates struct {
	PlatformFee      decimal.Decimal
	LeaderCommission decimal.Decimal
}

func ProjectRates(s models.Setting) CommissionRates {
	return CommissionRates{PlatformFee: s.PlatformFeeRate, LeaderCommission: s.ProjectLeaderRate}
}

func CampaignRates(s models.Setting) CommissionRates {
	// Campaign tasks are open to any freelancer; no leader takes a cut.
	return CommissionRates{PlatformFee: s.PlatformFeeRate, LeaderCommission: decimal.Zero}
}

// CommissionBreakdown is the result of splitting a budget.
//
//	PlatformFee + LeaderCommission + Distributable == Budget (exactly)
//	RewardPerMember * MemberCount + Residual       == Distributable
//
// RewardPerMember is floored to the cent so the residual is never negative;
// the residual is accumulated into the platform fee when persisted, never
// silently dropped.
type CommissionBreakdown struct {
	Budget           decimal.Decimal
	PlatformFee      decimal.Decimal
	LeaderCommission decimal.Decimal
	Distributable    decimal.Decimal
	RewardPerMember  decimal.Decimal
	Residual         decimal.Decimal
	MemberCount      int
}

// TotalPlatformFee is the fee actually retained by the platform: the rated
// fee plus the rounding residual of the per-member split.
func (b CommissionBreakdown) TotalPlatformFee() decimal.Decimal {
	return b.PlatformFee.Add(b.Residual)
}

// SplitBudget computes the commission breakdown for a budget distributed over
// memberCount payable units. Percentages round half-up to 2 decimal places.
func SplitBudget(budget decimal.Decimal, memberCount int, rates CommissionRates) (CommissionBreakdown, error) {
	if memberCount <= 0 {
		return CommissionBreakdown{}, ErrInvalidGroupSize
	}
	if budget.IsNegative() {
		return CommissionBreakdown{}, ErrInvalidBudget
	}

	fee := budget.Mul(rates.PlatformFee).Round(2)
	commission := budget.Mul(rates.LeaderCommission).Round(2)
	distributable := budget.Sub(fee).Sub(commission)
	if distributable.IsNegative() {
		return CommissionBreakdown{}, ErrInvalidBudget
	}

	n := decimal.NewFromInt(int64(memberCount))
	perMember := distributable.Div(n).RoundDown(2)
	residual := distributable.Sub(perMember.Mul(n))

	return CommissionBreakdown{
		Budget:           budget,
		PlatformFee:      fee,
		LeaderCommission: commission,
		Distributable:    distributable,
		RewardPerMember:  perMember,
		Residual:         residual,
		MemberCount:      memberCount,
	}, nil
}

// splitPerTask divides a total component evenly across units, flooring to the
// cent. The caller accounts for the remainder at the project level.
func splitPerTask(total decimal.Decimal, units int) decimal.Decimal {
	if units <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(units))).RoundDown(2)
}
