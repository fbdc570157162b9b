package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leasehold-backend/internal/domain"
	"leasehold-backend/internal/lifecycle"
	"leasehold-backend/internal/repository"
)

type leaseService struct {
	leaseRepo repository.LeaseRepository
}

func NewLeaseService(leaseRepo repository.LeaseRepository) LeaseService {
	return &leaseService{leaseRepo: leaseRepo}
}

func (s *leaseService) CreateLease(ctx context.Context, lease *domain.Lease) error {
	if lease.LandlordID == "" {
		return errors.New("landlord is required")
	}
	if lease.RentCents < 0 || lease.DepositCents < 0 {
		return errors.New("rent and deposit must not be negative")
	}
	for _, d := range []*string{lease.ContractStart, lease.ContractEnd} {
		if d == nil {
			continue
		}
		if _, err := lifecycle.ParseDate(*d); err != nil {
			return fmt.Errorf("invalid contract date: %w", err)
		}
	}
	return s.leaseRepo.Create(ctx, lease)
}

func (s *leaseService) GetLease(ctx context.Context, userID, leaseID string) (*domain.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease.TenantID != userID && lease.LandlordID != userID {
		return nil, errors.New("unauthorized")
	}
	return lease, nil
}

func (s *leaseService) ListLeases(ctx context.Context, landlordID string, page, pageSize int32) ([]domain.Lease, int32, error) {
	return s.leaseRepo.ListByLandlord(ctx, landlordID, page, pageSize)
}

func (s *leaseService) RecordTenantResponse(ctx context.Context, tenantID, leaseID string, response domain.TenantResponse) (*domain.Lease, error) {
	if response != domain.TenantResponseRenew && response != domain.TenantResponseNotRenew {
		return nil, errors.New("response must be WANTS_TO_RENEW or DOES_NOT_WANT_TO_RENEW")
	}

	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease.TenantID != tenantID {
		return nil, errors.New("unauthorized")
	}

	lease.TenantResponse = response
	// A fresh decision opens a new expiry window: the scheduler may act on
	// the lease again, and the notice stamp no longer applies.
	lease.AutoRenewalApplied = false
	lease.RenewalNoticeSentAt = nil
	if err := s.leaseRepo.UpdateRenewal(ctx, lease); err != nil {
		return nil, err
	}
	return lease, nil
}

func (s *leaseService) SetOccupancy(ctx context.Context, landlordID, leaseID string, status domain.LeaseStatus, tenantID string) (*domain.Lease, error) {
	switch status {
	case domain.LeaseStatusOccupied, domain.LeaseStatusVacant, domain.LeaseStatusMaintenance:
	default:
		return nil, errors.New("status must be OCCUPIED, VACANT or MAINTENANCE")
	}
	if status == domain.LeaseStatusOccupied && tenantID == "" {
		return nil, errors.New("an occupied lease needs a tenant")
	}

	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease.LandlordID != landlordID {
		return nil, errors.New("unauthorized")
	}
	if lease.HasOpenTermination() {
		return nil, errors.New("occupancy cannot change while a termination is in progress")
	}

	lease.Status = status
	if status == domain.LeaseStatusOccupied {
		lease.TenantID = tenantID
	} else {
		lease.TenantID = ""
		lease.TenantResponse = domain.TenantResponseNone
	}
	if err := s.leaseRepo.UpdateOccupancy(ctx, lease); err != nil {
		return nil, err
	}
	return lease, nil
}

func (s *leaseService) ProjectStatus(ctx context.Context, userID, leaseID string, now time.Time) (*lifecycle.Projection, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease.TenantID != userID && lease.LandlordID != userID {
		return nil, errors.New("unauthorized")
	}

	p := ProjectLease(lease, now)
	return &p, nil
}

// ProjectLease runs the status projector over a lease aggregate at the
// given time.
func ProjectLease(lease *domain.Lease, now time.Time) lifecycle.Projection {
	return lifecycle.ProjectStatus(lifecycle.ProjectionInput{
		Now:                lifecycle.DateOf(now),
		ContractStart:      parseOptionalDate(lease.ContractStart),
		ContractEnd:        parseOptionalDate(lease.ContractEnd),
		TenantResponse:     lease.TenantResponse,
		Status:             lease.Status,
		AutoRenewalApplied: lease.AutoRenewalApplied,
	})
}
