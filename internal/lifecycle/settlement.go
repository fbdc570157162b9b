package lifecycle

import "fmt"

// MinNoticeDays is the notice period a tenant must give for the full
// deposit to be returned. The boundary is inclusive: exactly 30 days counts
// as sufficient.
const MinNoticeDays = 30

// TerminationTiming places the requested move-out on the contract timeline.
type TerminationTiming string

const (
	// TimingIndefinite: no fixed contract end, or the fixed end already
	// passed without renewal at the time of the request.
	TimingIndefinite TerminationTiming = "INDEFINITE"
	TimingAtEnd      TerminationTiming = "AT_END"
	TimingEarly      TerminationTiming = "EARLY"
)

// Scenario is one of the six labeled settlement outcomes: timing crossed
// with notice sufficiency.
type Scenario struct {
	Timing           TerminationTiming `json:"timing"`
	SufficientNotice bool              `json:"sufficient_notice"`
}

// Label renders the scenario for humans.
func (s Scenario) Label() string {
	var timing string
	switch s.Timing {
	case TimingIndefinite:
		timing = "indefinite contract"
	case TimingAtEnd:
		timing = "termination at contract end"
	default:
		timing = "early termination"
	}
	if s.SufficientNotice {
		return timing + ", sufficient notice"
	}
	return timing + ", insufficient notice"
}

// SettlementInput feeds the deposit settlement calculator. RequestDate is
// the date the termination request was made ("now" for previews); the
// caller always supplies it. RentCents is accepted for interface symmetry
// and is used by the legacy rule set only.
type SettlementInput struct {
	ContractStart   *Date
	ContractEnd     *Date
	TerminationDate Date
	RequestDate     Date
	DepositCents    int64
	RentCents       int64
}

// Settlement is the calculator's outcome. It is derived on demand and never
// persisted; re-running the calculator with the stored request date always
// reproduces it.
type Settlement struct {
	NoticeDays             int      `json:"notice_days"`
	Scenario               Scenario `json:"scenario"`
	ScenarioLabel          string   `json:"scenario_label"`
	RecommendedReturnCents int64    `json:"recommended_return_cents"`
	ForfeitedCents         int64    `json:"forfeited_cents"`
	DeductionReason        string   `json:"deduction_reason,omitempty"`
}

// Settle computes the deposit settlement for a termination request. The
// return rule is all-or-nothing: sufficient notice returns the full
// deposit, insufficient notice forfeits it.
func Settle(in SettlementInput) Settlement {
	noticeDays := DaysBetween(in.RequestDate, in.TerminationDate)
	scenario := Scenario{
		Timing:           classifyTiming(in),
		SufficientNotice: noticeDays >= MinNoticeDays,
	}

	s := Settlement{
		NoticeDays:    noticeDays,
		Scenario:      scenario,
		ScenarioLabel: scenario.Label(),
	}

	if scenario.SufficientNotice {
		s.RecommendedReturnCents = in.DepositCents
		return s
	}

	s.ForfeitedCents = in.DepositCents
	s.DeductionReason = fmt.Sprintf("insufficient notice: %d of %d days", noticeDays, MinNoticeDays)
	return s
}

// classifyTiming resolves the timing axis. A contract whose fixed end date
// already lies behind the request date is treated as indefinite: it ran out
// without renewal and no longer binds the tenant to a term.
func classifyTiming(in SettlementInput) TerminationTiming {
	if in.ContractEnd == nil {
		return TimingIndefinite
	}
	if DaysBetween(in.RequestDate, *in.ContractEnd) < 0 {
		return TimingIndefinite
	}
	if DaysBetween(*in.ContractEnd, in.TerminationDate) >= 0 {
		return TimingAtEnd
	}
	return TimingEarly
}
