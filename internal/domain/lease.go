package domain

import "time"

// LeaseStatus is the administrative occupancy status of the unit.
type LeaseStatus string

const (
	LeaseStatusOccupied    LeaseStatus = "OCCUPIED"
	LeaseStatusVacant      LeaseStatus = "VACANT"
	LeaseStatusMaintenance LeaseStatus = "MAINTENANCE"
)

// TenantResponse records the tenant's renewal decision. Empty means no
// response has been recorded yet.
type TenantResponse string

const (
	TenantResponseNone     TenantResponse = ""
	TenantResponseRenew    TenantResponse = "WANTS_TO_RENEW"
	TenantResponseNotRenew TenantResponse = "DOES_NOT_WANT_TO_RENEW"
)

type Lease struct {
	ID            string      `json:"id"`
	LandlordID    string      `json:"landlord_id"`
	TenantID      string      `json:"tenant_id"`
	PropertyLabel string      `json:"property_label"`
	Status        LeaseStatus `json:"status"`
	// Contract dates are calendar dates (yyyy-mm-dd). A nil ContractEnd
	// means the lease is indefinite.
	ContractStart *string `json:"contract_start,omitempty"`
	ContractEnd   *string `json:"contract_end,omitempty"`
	RentCents     int64   `json:"rent_cents"`
	DepositCents  int64   `json:"deposit_cents"`

	TenantResponse TenantResponse `json:"tenant_response"`
	// AutoRenewalApplied guards the auto-renewal scheduler: once set, the
	// lease is not extended again until the next expiry window resets it.
	AutoRenewalApplied  bool       `json:"auto_renewal_applied"`
	RenewalNoticeSentAt *time.Time `json:"renewal_notice_sent_at,omitempty"`

	Termination *TerminationCase `json:"termination,omitempty"`

	// Version is bumped on every persisted update; stale writes are rejected.
	Version   int32  `json:"version"`
	CreatedOn string `json:"created_on"`
	UpdatedOn string `json:"updated_on"`
}

// HasOpenTermination reports whether the lease carries a termination case
// that is still in progress. A lease has at most one open case at a time.
func (l *Lease) HasOpenTermination() bool {
	return l.Termination != nil && l.Termination.Status != TerminationStatusTerminated
}
