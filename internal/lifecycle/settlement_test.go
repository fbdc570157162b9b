package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettle_AtEndSufficientNotice(t *testing.T) {
	// Contract ends 2025-06-30; tenant requests on 2025-05-01 to move out at
	// the contract end. 60 days of notice.
	start := Date{2025, 1, 1}
	end := Date{2025, 6, 30}

	s := Settle(SettlementInput{
		ContractStart:   &start,
		ContractEnd:     &end,
		TerminationDate: Date{2025, 6, 30},
		RequestDate:     Date{2025, 5, 1},
		DepositCents:    100_000,
	})

	assert.Equal(t, 60, s.NoticeDays)
	assert.Equal(t, TimingAtEnd, s.Scenario.Timing)
	assert.True(t, s.Scenario.SufficientNotice)
	assert.Equal(t, "termination at contract end, sufficient notice", s.ScenarioLabel)
	assert.Equal(t, int64(100_000), s.RecommendedReturnCents)
	assert.Equal(t, int64(0), s.ForfeitedCents)
	assert.Empty(t, s.DeductionReason)
}

func TestSettle_EarlyInsufficientNotice(t *testing.T) {
	// Same contract; request on 2025-06-20 to move out 2025-06-25. Five days
	// of notice, before the contract end.
	start := Date{2025, 1, 1}
	end := Date{2025, 6, 30}

	s := Settle(SettlementInput{
		ContractStart:   &start,
		ContractEnd:     &end,
		TerminationDate: Date{2025, 6, 25},
		RequestDate:     Date{2025, 6, 20},
		DepositCents:    100_000,
	})

	assert.Equal(t, 5, s.NoticeDays)
	assert.Equal(t, TimingEarly, s.Scenario.Timing)
	assert.False(t, s.Scenario.SufficientNotice)
	assert.Equal(t, "early termination, insufficient notice", s.ScenarioLabel)
	assert.Equal(t, int64(0), s.RecommendedReturnCents)
	assert.Equal(t, int64(100_000), s.ForfeitedCents)
	assert.Equal(t, "insufficient notice: 5 of 30 days", s.DeductionReason)
}

func TestSettle_IndefiniteContract(t *testing.T) {
	// No fixed end date; 45 days of notice is plenty.
	s := Settle(SettlementInput{
		TerminationDate: Date{2025, 7, 16},
		RequestDate:     Date{2025, 6, 1},
		DepositCents:    80_000,
	})

	assert.Equal(t, 45, s.NoticeDays)
	assert.Equal(t, TimingIndefinite, s.Scenario.Timing)
	assert.True(t, s.Scenario.SufficientNotice)
	assert.Equal(t, int64(80_000), s.RecommendedReturnCents)
}

func TestSettle_ExpiredContractCountsAsIndefinite(t *testing.T) {
	// The fixed end passed before the request was made; the lease rolled
	// into an open-ended arrangement.
	start := Date{2024, 1, 1}
	end := Date{2024, 12, 31}

	s := Settle(SettlementInput{
		ContractStart:   &start,
		ContractEnd:     &end,
		TerminationDate: Date{2025, 8, 1},
		RequestDate:     Date{2025, 6, 1},
		DepositCents:    50_000,
	})

	assert.Equal(t, TimingIndefinite, s.Scenario.Timing)
	assert.True(t, s.Scenario.SufficientNotice)
}

func TestSettle_NoticeBoundary(t *testing.T) {
	t.Run("Exactly30Days", func(t *testing.T) {
		s := Settle(SettlementInput{
			TerminationDate: Date{2025, 7, 1},
			RequestDate:     Date{2025, 6, 1},
			DepositCents:    100_000,
		})
		assert.Equal(t, 30, s.NoticeDays)
		assert.True(t, s.Scenario.SufficientNotice)
		assert.Equal(t, int64(100_000), s.RecommendedReturnCents)
	})

	t.Run("29Days", func(t *testing.T) {
		s := Settle(SettlementInput{
			TerminationDate: Date{2025, 6, 30},
			RequestDate:     Date{2025, 6, 1},
			DepositCents:    100_000,
		})
		assert.Equal(t, 29, s.NoticeDays)
		assert.False(t, s.Scenario.SufficientNotice)
		assert.Equal(t, int64(0), s.RecommendedReturnCents)
	})
}

func TestSettle_NegativeNoticeDays(t *testing.T) {
	// Move-out before the request date. Nonsensical but representable; the
	// calculator treats it as insufficient notice.
	s := Settle(SettlementInput{
		TerminationDate: Date{2025, 5, 1},
		RequestDate:     Date{2025, 6, 1},
		DepositCents:    100_000,
	})
	assert.Equal(t, -31, s.NoticeDays)
	assert.False(t, s.Scenario.SufficientNotice)
}

func TestSettle_MoveOutAfterContractEnd(t *testing.T) {
	start := Date{2025, 1, 1}
	end := Date{2025, 6, 30}

	s := Settle(SettlementInput{
		ContractStart:   &start,
		ContractEnd:     &end,
		TerminationDate: Date{2025, 7, 15},
		RequestDate:     Date{2025, 5, 1},
		DepositCents:    100_000,
	})
	assert.Equal(t, TimingAtEnd, s.Scenario.Timing)
}

func TestSettleWith_LegacyRules(t *testing.T) {
	t.Run("MatureContractForfeitsOneMonthsRent", func(t *testing.T) {
		// 18 months into the contract, 5 days of notice, rent 900, deposit
		// 2000. The legacy rules withhold one month's rent instead of the
		// whole deposit.
		start := Date{2024, 1, 1}
		end := Date{2026, 1, 1}

		s := SettleWith(RuleSetLegacy, SettlementInput{
			ContractStart:   &start,
			ContractEnd:     &end,
			TerminationDate: Date{2025, 7, 6},
			RequestDate:     Date{2025, 7, 1},
			DepositCents:    200_000,
			RentCents:       90_000,
		})

		assert.False(t, s.Scenario.SufficientNotice)
		assert.Equal(t, int64(90_000), s.ForfeitedCents)
		assert.Equal(t, int64(110_000), s.RecommendedReturnCents)
		assert.Contains(t, s.DeductionReason, "one month's rent withheld")
	})

	t.Run("RentAboveDepositCapsAtDeposit", func(t *testing.T) {
		start := Date{2024, 1, 1}

		s := SettleWith(RuleSetLegacy, SettlementInput{
			ContractStart:   &start,
			TerminationDate: Date{2025, 7, 6},
			RequestDate:     Date{2025, 7, 1},
			DepositCents:    50_000,
			RentCents:       90_000,
		})

		assert.Equal(t, int64(50_000), s.ForfeitedCents)
		assert.Equal(t, int64(0), s.RecommendedReturnCents)
	})

	t.Run("YoungContractKeepsFullForfeiture", func(t *testing.T) {
		start := Date{2025, 3, 1}

		s := SettleWith(RuleSetLegacy, SettlementInput{
			ContractStart:   &start,
			TerminationDate: Date{2025, 7, 6},
			RequestDate:     Date{2025, 7, 1},
			DepositCents:    200_000,
			RentCents:       90_000,
		})

		assert.Equal(t, int64(200_000), s.ForfeitedCents)
		assert.Equal(t, int64(0), s.RecommendedReturnCents)
	})

	t.Run("SufficientNoticeUnaffected", func(t *testing.T) {
		start := Date{2024, 1, 1}

		s := SettleWith(RuleSetLegacy, SettlementInput{
			ContractStart:   &start,
			TerminationDate: Date{2025, 9, 1},
			RequestDate:     Date{2025, 7, 1},
			DepositCents:    200_000,
			RentCents:       90_000,
		})

		assert.True(t, s.Scenario.SufficientNotice)
		assert.Equal(t, int64(200_000), s.RecommendedReturnCents)
	})

	t.Run("StandardDispatch", func(t *testing.T) {
		s := SettleWith(RuleSetStandard, SettlementInput{
			TerminationDate: Date{2025, 7, 6},
			RequestDate:     Date{2025, 7, 1},
			DepositCents:    200_000,
			RentCents:       90_000,
		})
		assert.Equal(t, int64(200_000), s.ForfeitedCents)
	})
}
