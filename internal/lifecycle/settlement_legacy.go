package lifecycle

import "fmt"

// RuleSet selects which settlement rule set applies. The product
// historically shipped two independently maintained calculators; they are
// kept behind one interface and chosen explicitly, never merged.
type RuleSet string

const (
	// RuleSetStandard is the all-or-nothing 30-day rule implemented by Settle.
	RuleSetStandard RuleSet = "STANDARD"
	// RuleSetLegacy is the older graduated rule set: on contracts at least
	// twelve months old, insufficient notice forfeits one month's rent
	// (capped at the deposit) instead of the whole deposit.
	RuleSetLegacy RuleSet = "LEGACY"
)

// SettleWith dispatches to the selected rule set.
func SettleWith(rules RuleSet, in SettlementInput) Settlement {
	if rules == RuleSetLegacy {
		return settleLegacy(in)
	}
	return Settle(in)
}

// Contract age at which the legacy rules soften the forfeiture.
const legacyMatureMonths = 12

func settleLegacy(in SettlementInput) Settlement {
	s := Settle(in)
	if s.Scenario.SufficientNotice {
		return s
	}

	if contractAgeMonths(in) < legacyMatureMonths {
		// Young contracts keep the full forfeiture.
		return s
	}

	forfeit := in.RentCents
	if forfeit > in.DepositCents {
		forfeit = in.DepositCents
	}
	s.ForfeitedCents = forfeit
	s.RecommendedReturnCents = in.DepositCents - forfeit
	s.DeductionReason = fmt.Sprintf("insufficient notice: %d of %d days, one month's rent withheld", s.NoticeDays, MinNoticeDays)
	return s
}

func contractAgeMonths(in SettlementInput) int {
	if in.ContractStart == nil {
		return 0
	}
	return MonthsBetween(*in.ContractStart, in.RequestDate)
}
