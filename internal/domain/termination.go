package domain

import (
	"errors"
	"time"
)

type TerminationStatus string

const (
	TerminationStatusTenantRequested   TerminationStatus = "TENANT_REQUESTED"
	TerminationStatusLandlordRequested TerminationStatus = "LANDLORD_REQUESTED"
	TerminationStatusConfirmed         TerminationStatus = "CONFIRMED"
	TerminationStatusTerminated        TerminationStatus = "TERMINATED"
)

// ErrInvalidTransition marks an attempt to move a termination case along a
// path the state machine does not allow. Callers that respect the workflow
// never see it.
var ErrInvalidTransition = errors.New("invalid termination transition")

// Deduction is a single landlord-entered line item subtracted from the
// recommended deposit return.
type Deduction struct {
	Reason      string `json:"reason"`
	AmountCents int64  `json:"amount_cents"`
}

// TerminationCase tracks one termination workflow on a lease. The legal
// transitions are:
//
//	(none) --request-->  TENANT_REQUESTED --confirm--> CONFIRMED --complete--> TERMINATED
//	                     TENANT_REQUESTED --reject/cancel--> (cleared)
//	(none) --initiate--> LANDLORD_REQUESTED --complete--> TERMINATED
//	                     LANDLORD_REQUESTED --cancel--> (cleared)
//
// TERMINATED is terminal. Clearing (rejection or cancellation) removes the
// case from the lease entirely rather than leaving a dead record behind.
type TerminationCase struct {
	Status        TerminationStatus `json:"status"`
	RequestedDate string            `json:"requested_date"` // desired move-out date, yyyy-mm-dd
	Reason        string            `json:"reason,omitempty"`
	RequestedAt   time.Time         `json:"requested_at"`
	ConfirmedAt   *time.Time        `json:"confirmed_at,omitempty"`
	RequestedBy   string            `json:"requested_by"`

	Deductions          []Deduction `json:"deductions,omitempty"`
	ReturnOverrideCents *int64      `json:"return_override_cents,omitempty"`
}

// NewTenantRequest opens a termination case on behalf of the tenant.
func NewTenantRequest(tenantID, moveOutDate, reason string, now time.Time) *TerminationCase {
	return &TerminationCase{
		Status:        TerminationStatusTenantRequested,
		RequestedDate: moveOutDate,
		Reason:        reason,
		RequestedAt:   now,
		RequestedBy:   tenantID,
	}
}

// NewLandlordRequest opens a landlord-initiated termination, optionally with
// an initial deduction ledger attached.
func NewLandlordRequest(landlordID, moveOutDate, reason string, deductions []Deduction, now time.Time) *TerminationCase {
	return &TerminationCase{
		Status:        TerminationStatusLandlordRequested,
		RequestedDate: moveOutDate,
		Reason:        reason,
		RequestedAt:   now,
		RequestedBy:   landlordID,
		Deductions:    deductions,
	}
}

// Confirm moves a tenant-requested case to CONFIRMED. Only the landlord
// confirms; actor checks live in the service layer.
func (tc *TerminationCase) Confirm(now time.Time) error {
	if tc.Status != TerminationStatusTenantRequested {
		return ErrInvalidTransition
	}
	tc.Status = TerminationStatusConfirmed
	tc.ConfirmedAt = &now
	return nil
}

// Complete moves a confirmed or landlord-requested case to TERMINATED.
func (tc *TerminationCase) Complete() error {
	if tc.Status != TerminationStatusConfirmed && tc.Status != TerminationStatusLandlordRequested {
		return ErrInvalidTransition
	}
	tc.Status = TerminationStatusTerminated
	return nil
}

// Rejectable reports whether the landlord may reject the case.
func (tc *TerminationCase) Rejectable() bool {
	return tc.Status == TerminationStatusTenantRequested
}

// CancellableBy reports whether the given party may cancel the case: the
// tenant cancels their own request, the landlord cancels their own.
func (tc *TerminationCase) CancellableBy(userID string) bool {
	switch tc.Status {
	case TerminationStatusTenantRequested, TerminationStatusLandlordRequested:
		return tc.RequestedBy == userID
	default:
		return false
	}
}

// AcceptsDeductions reports whether the deduction ledger may be edited.
// Deductions ride along with landlord-side states only; they never change
// the state machine itself.
func (tc *TerminationCase) AcceptsDeductions() bool {
	return tc.Status == TerminationStatusLandlordRequested || tc.Status == TerminationStatusConfirmed
}
