package repository

import (
	"context"
	"errors"

	"leasehold-backend/internal/domain"
)

// ErrStaleLease is returned by versioned updates when the lease row changed
// underneath the caller. The transition must be re-read and retried by the
// actor; nothing is written.
var ErrStaleLease = errors.New("lease was modified concurrently")

type LeaseRepository interface {
	Create(ctx context.Context, lease *domain.Lease) error
	GetByID(ctx context.Context, id string) (*domain.Lease, error)
	ListByLandlord(ctx context.Context, landlordID string, page, pageSize int32) ([]domain.Lease, int32, error)

	// UpdateTermination replaces the lease's termination case (nil clears
	// it). The write is versioned: it fails with ErrStaleLease unless the
	// stored version matches lease.Version, and bumps the version on success.
	UpdateTermination(ctx context.Context, lease *domain.Lease) error

	// UpdateOccupancy patches the administrative status and tenant
	// occupancy fields. Versioned like UpdateTermination.
	UpdateOccupancy(ctx context.Context, lease *domain.Lease) error

	// CompleteTermination writes the terminal case status and the occupancy
	// clear as one versioned update, so a failure leaves the lease fully in
	// its pre-completion state and the transition stays retryable.
	CompleteTermination(ctx context.Context, lease *domain.Lease) error

	// UpdateRenewal patches contract end, tenant response and the
	// auto-renewal guard. Versioned like UpdateTermination.
	UpdateRenewal(ctx context.Context, lease *domain.Lease) error

	// ListRenewalCandidates returns occupied leases with a fixed end date,
	// no auto-renewal applied yet, whose end date falls before the given
	// cutoff (yyyy-mm-dd).
	ListRenewalCandidates(ctx context.Context, cutoff string) ([]domain.Lease, error)

	// ListNoticeCandidates returns occupied leases with a fixed end date
	// inside [from, to] (yyyy-mm-dd) that have not been sent a renewal
	// notice yet.
	ListNoticeCandidates(ctx context.Context, from, to string) ([]domain.Lease, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID string) error
}
