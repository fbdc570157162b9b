package lifecycle

import (
	"leasehold-backend/internal/domain"
)

// Phase is the projected lifecycle phase of a lease.
type Phase string

const (
	PhaseVacant                   Phase = "VACANT"
	PhaseMaintenance              Phase = "MAINTENANCE"
	PhaseActive                   Phase = "ACTIVE"
	PhaseActiveNotRenewing        Phase = "ACTIVE_NOT_RENEWING"
	PhaseRenewed                  Phase = "RENEWED"
	PhaseExpired                  Phase = "EXPIRED"
	PhaseExpiredAutoRenewing      Phase = "EXPIRED_AUTO_RENEWING"
	PhaseExpiredNotRenewing       Phase = "EXPIRED_NOT_RENEWING"
	PhaseExpiringSoon             Phase = "EXPIRING_SOON"
	PhaseExpiringSoonNotRenewing  Phase = "EXPIRING_SOON_NOT_RENEWING"
)

// Contracts running longer than this are "long-term": they roll over on
// their own terms and the renewal notice / auto-renewal machinery stays out
// of their way.
const longTermMonths = 12

// Classification windows for short-term contracts, in days before expiry.
const (
	expiryWindowDays = 31 // "expiring within a month"
	noticeWindowDays = 60 // renewal decision notice is due inside this window
)

// ProjectionInput carries everything the projector needs. "Now" is always
// supplied by the caller; the projector never reads the clock.
type ProjectionInput struct {
	Now                Date
	ContractStart      *Date
	ContractEnd        *Date
	TenantResponse     domain.TenantResponse
	Status             domain.LeaseStatus
	AutoRenewalApplied bool
}

// Projection is the projector's verdict on a lease at a point in time.
type Projection struct {
	Phase           Phase
	ShouldNotify    bool // a renewal-decision notice is due
	ShouldAutoRenew bool
	Urgent          bool
	DaysLeft        int // days until contract end; meaningful only with a fixed end date
}

// ProjectStatus classifies a lease into a lifecycle phase and decides
// whether a renewal notice or an automatic extension is due. Rules apply in
// strict precedence order: administrative status, explicit tenant response,
// long-term rollover, then the short-term expiry windows.
func ProjectStatus(in ProjectionInput) Projection {
	// Administrative states trump everything.
	if in.Status == domain.LeaseStatusVacant {
		return Projection{Phase: PhaseVacant}
	}
	if in.Status == domain.LeaseStatusMaintenance {
		return Projection{Phase: PhaseMaintenance}
	}

	if in.TenantResponse == domain.TenantResponseNotRenew {
		return Projection{Phase: PhaseActiveNotRenewing, DaysLeft: daysLeft(in)}
	}
	if in.TenantResponse == domain.TenantResponseRenew {
		p := Projection{Phase: PhaseRenewed, ShouldAutoRenew: true, DaysLeft: daysLeft(in)}
		if in.AutoRenewalApplied {
			p.ShouldAutoRenew = false
		}
		return p
	}

	if isLongTerm(in) {
		return projectLongTerm(in)
	}

	if in.ContractEnd == nil {
		// Indefinite short-term lease: nothing expires, nothing is due.
		return Projection{Phase: PhaseActive}
	}

	p := classifyByDaysLeft(DaysBetween(in.Now, *in.ContractEnd), in.TenantResponse)
	if in.AutoRenewalApplied {
		p.ShouldAutoRenew = false
	}
	return p
}

func daysLeft(in ProjectionInput) int {
	if in.ContractEnd == nil {
		return 0
	}
	return DaysBetween(in.Now, *in.ContractEnd)
}

func isLongTerm(in ProjectionInput) bool {
	if in.ContractStart == nil || in.ContractEnd == nil {
		return false
	}
	return MonthsBetween(*in.ContractStart, *in.ContractEnd) > longTermMonths
}

// projectLongTerm handles contracts longer than twelve months. They carry
// no notification or auto-renewal behavior; once a full year has elapsed
// the lease counts as rolled over.
func projectLongTerm(in ProjectionInput) Projection {
	left := DaysBetween(in.Now, *in.ContractEnd)
	if left < 0 {
		return Projection{Phase: PhaseExpired, DaysLeft: left}
	}
	if MonthsBetween(*in.ContractStart, in.Now) > longTermMonths {
		return Projection{Phase: PhaseRenewed, DaysLeft: left}
	}
	return Projection{Phase: PhaseActive, DaysLeft: left}
}

// classifyByDaysLeft implements the short-term expiry windows. Each window
// splits three ways on the tenant response; only the no-response branches
// trigger notices or automatic extension.
func classifyByDaysLeft(left int, response domain.TenantResponse) Projection {
	p := Projection{DaysLeft: left}

	switch {
	case left < 0:
		switch response {
		case domain.TenantResponseRenew:
			p.Phase = PhaseRenewed
			p.ShouldAutoRenew = true
		case domain.TenantResponseNotRenew:
			p.Phase = PhaseExpiredNotRenewing
			p.Urgent = true
		default:
			p.Phase = PhaseExpiredAutoRenewing
			p.ShouldAutoRenew = true
		}

	case left <= expiryWindowDays:
		switch response {
		case domain.TenantResponseRenew:
			p.Phase = PhaseRenewed
		case domain.TenantResponseNotRenew:
			p.Phase = PhaseExpiringSoonNotRenewing
		default:
			p.Phase = PhaseExpiringSoon
			p.ShouldAutoRenew = true
		}

	case left <= noticeWindowDays:
		switch response {
		case domain.TenantResponseRenew:
			p.Phase = PhaseRenewed
		case domain.TenantResponseNotRenew:
			p.Phase = PhaseActiveNotRenewing
		default:
			p.Phase = PhaseActive
			p.ShouldNotify = true
		}

	default:
		p.Phase = PhaseActive
	}

	return p
}
