package service

import (
	"context"
	"time"

	"leasehold-backend/internal/domain"
	"leasehold-backend/internal/lifecycle"
)

// SettlementView is the financial payload surfaced with every
// settlement-relevant workflow state: the calculator's outcome plus the
// deduction ledger applied on top. Always recomputed, never cached.
type SettlementView struct {
	lifecycle.Settlement
	LedgerTotalCents int64 `json:"ledger_total_cents"`
	FinalReturnCents int64 `json:"final_return_cents"`
}

type LeaseService interface {
	CreateLease(ctx context.Context, lease *domain.Lease) error
	GetLease(ctx context.Context, userID, leaseID string) (*domain.Lease, error)
	ListLeases(ctx context.Context, landlordID string, page, pageSize int32) ([]domain.Lease, int32, error)
	// RecordTenantResponse stores the tenant's renewal decision and opens a
	// fresh expiry window (the auto-renewal guard is reset).
	RecordTenantResponse(ctx context.Context, tenantID, leaseID string, response domain.TenantResponse) (*domain.Lease, error)
	// SetOccupancy changes the administrative status of the unit. Moving to
	// OCCUPIED assigns a tenant; moving away clears the tenancy fields.
	SetOccupancy(ctx context.Context, landlordID, leaseID string, status domain.LeaseStatus, tenantID string) (*domain.Lease, error)
	// ProjectStatus classifies the lease as of the supplied time.
	ProjectStatus(ctx context.Context, userID, leaseID string, now time.Time) (*lifecycle.Projection, error)
}

type TerminationService interface {
	RequestTermination(ctx context.Context, tenantID, leaseID, moveOutDate, reason string) (*domain.Lease, *SettlementView, error)
	InitiateTermination(ctx context.Context, landlordID, leaseID, moveOutDate, reason string, deductions []domain.Deduction) (*domain.Lease, *SettlementView, error)
	ConfirmTermination(ctx context.Context, landlordID, leaseID string) (*domain.Lease, *SettlementView, error)
	RejectTermination(ctx context.Context, landlordID, leaseID string) (*domain.Lease, error)
	CancelTermination(ctx context.Context, userID, leaseID string) (*domain.Lease, error)
	CompleteTermination(ctx context.Context, landlordID, leaseID string) (*domain.Lease, *SettlementView, error)

	// PreviewSettlement recomputes the settlement for the lease's open
	// termination case, or, when none exists, for a hypothetical request
	// made "now" for the given move-out date.
	PreviewSettlement(ctx context.Context, userID, leaseID, moveOutDate string, now time.Time) (*SettlementView, error)

	AddDeduction(ctx context.Context, landlordID, leaseID, reason string, amountCents int64) (*domain.Lease, *SettlementView, error)
	RemoveDeduction(ctx context.Context, landlordID, leaseID string, index int) (*domain.Lease, *SettlementView, error)
	UpdateDeduction(ctx context.Context, landlordID, leaseID string, index int, reason string, amountCents int64) (*domain.Lease, *SettlementView, error)
	SetReturnOverride(ctx context.Context, landlordID, leaseID string, amountCents int64) (*domain.Lease, *SettlementView, error)
	ClearReturnOverride(ctx context.Context, landlordID, leaseID string) (*domain.Lease, *SettlementView, error)
}

type RenewalService interface {
	// ApplyAutoRenewals extends every lease the projector marks for
	// automatic renewal. Idempotent: leases already extended in the current
	// expiry window are skipped. Returns the number of leases extended.
	ApplyAutoRenewals(ctx context.Context, now time.Time) (int, error)
	// SendRenewalNotices delivers the renewal-decision request to tenants
	// inside the notice window, at most once per window. Returns the number
	// of notices sent.
	SendRenewalNotices(ctx context.Context, now time.Time) (int, error)
}

type NotificationService interface {
	// Notify persists an in-app notification. Fire-and-forget: failures are
	// logged, never propagated.
	Notify(ctx context.Context, userID, kind, title, message string, attrs map[string]string)
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

type EmailService interface {
	SendTerminationRequestNotification(ctx context.Context, landlordEmail, tenantName, propertyLabel, moveOutDate string) error
	SendTerminationInitiatedNotification(ctx context.Context, tenantEmail, propertyLabel, moveOutDate, reason string) error
	SendTerminationConfirmedNotification(ctx context.Context, tenantEmail, propertyLabel, moveOutDate string, finalReturnCents int64) error
	SendTerminationRejectedNotification(ctx context.Context, tenantEmail, propertyLabel string) error
	SendTerminationCompletedNotification(ctx context.Context, tenantEmail, propertyLabel string, finalReturnCents int64) error
	SendRenewalNoticeNotification(ctx context.Context, tenantEmail, tenantName, propertyLabel, contractEnd string) error
	SendAutoRenewalNotification(ctx context.Context, tenantEmail, propertyLabel, newContractEnd string) error
}
