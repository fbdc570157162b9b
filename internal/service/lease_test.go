package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leasehold-backend/internal/domain"
	"leasehold-backend/internal/lifecycle"
)

func TestLeaseService_CreateLease(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		svc := NewLeaseService(leaseRepo)
		lease := testLease()

		leaseRepo.On("Create", ctx, lease).Return(nil)

		assert.NoError(t, svc.CreateLease(ctx, lease))
		leaseRepo.AssertExpectations(t)
	})

	t.Run("Validation", func(t *testing.T) {
		svc := NewLeaseService(new(MockLeaseRepo))

		lease := testLease()
		lease.LandlordID = ""
		assert.ErrorContains(t, svc.CreateLease(ctx, lease), "landlord is required")

		lease = testLease()
		lease.DepositCents = -1
		assert.ErrorContains(t, svc.CreateLease(ctx, lease), "must not be negative")

		lease = testLease()
		lease.ContractEnd = strPtr("30/06/2025")
		assert.ErrorContains(t, svc.CreateLease(ctx, lease), "invalid contract date")
	})
}

func TestLeaseService_GetLease(t *testing.T) {
	ctx := context.Background()
	leaseRepo := new(MockLeaseRepo)
	svc := NewLeaseService(leaseRepo)
	leaseRepo.On("GetByID", ctx, "lease-1").Return(testLease(), nil)

	t.Run("PartiesMaySee", func(t *testing.T) {
		_, err := svc.GetLease(ctx, "tenant-1", "lease-1")
		assert.NoError(t, err)
		_, err = svc.GetLease(ctx, "landlord-1", "lease-1")
		assert.NoError(t, err)
	})

	t.Run("StrangersMayNot", func(t *testing.T) {
		_, err := svc.GetLease(ctx, "stranger", "lease-1")
		assert.ErrorContains(t, err, "unauthorized")
	})
}

func TestLeaseService_RecordTenantResponse(t *testing.T) {
	ctx := context.Background()

	t.Run("ResetsRenewalWindow", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		svc := NewLeaseService(leaseRepo)

		lease := testLease()
		lease.AutoRenewalApplied = true
		stamp := time.Now()
		lease.RenewalNoticeSentAt = &stamp

		leaseRepo.On("GetByID", ctx, "lease-1").Return(lease, nil)
		leaseRepo.On("UpdateRenewal", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
			return l.TenantResponse == domain.TenantResponseRenew &&
				!l.AutoRenewalApplied &&
				l.RenewalNoticeSentAt == nil
		})).Return(nil)

		updated, err := svc.RecordTenantResponse(ctx, "tenant-1", "lease-1", domain.TenantResponseRenew)
		assert.NoError(t, err)
		assert.Equal(t, domain.TenantResponseRenew, updated.TenantResponse)
		leaseRepo.AssertExpectations(t)
	})

	t.Run("InvalidResponse", func(t *testing.T) {
		svc := NewLeaseService(new(MockLeaseRepo))
		_, err := svc.RecordTenantResponse(ctx, "tenant-1", "lease-1", "MAYBE")
		assert.ErrorContains(t, err, "WANTS_TO_RENEW or DOES_NOT_WANT_TO_RENEW")
	})

	t.Run("OnlyTheTenantResponds", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		svc := NewLeaseService(leaseRepo)
		leaseRepo.On("GetByID", ctx, "lease-1").Return(testLease(), nil)

		_, err := svc.RecordTenantResponse(ctx, "landlord-1", "lease-1", domain.TenantResponseRenew)
		assert.ErrorContains(t, err, "unauthorized")
	})
}

func TestLeaseService_SetOccupancy(t *testing.T) {
	ctx := context.Background()

	t.Run("VacatingClearsTenancy", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		svc := NewLeaseService(leaseRepo)
		lease := testLease()
		lease.TenantResponse = domain.TenantResponseRenew

		leaseRepo.On("GetByID", ctx, "lease-1").Return(lease, nil)
		leaseRepo.On("UpdateOccupancy", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
			return l.Status == domain.LeaseStatusMaintenance &&
				l.TenantID == "" &&
				l.TenantResponse == domain.TenantResponseNone
		})).Return(nil)

		updated, err := svc.SetOccupancy(ctx, "landlord-1", "lease-1", domain.LeaseStatusMaintenance, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.LeaseStatusMaintenance, updated.Status)
		leaseRepo.AssertExpectations(t)
	})

	t.Run("OccupyingAssignsTenant", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		svc := NewLeaseService(leaseRepo)
		lease := testLease()
		lease.Status = domain.LeaseStatusVacant
		lease.TenantID = ""

		leaseRepo.On("GetByID", ctx, "lease-1").Return(lease, nil)
		leaseRepo.On("UpdateOccupancy", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
			return l.Status == domain.LeaseStatusOccupied && l.TenantID == "tenant-2"
		})).Return(nil)

		_, err := svc.SetOccupancy(ctx, "landlord-1", "lease-1", domain.LeaseStatusOccupied, "tenant-2")
		assert.NoError(t, err)
		leaseRepo.AssertExpectations(t)
	})

	t.Run("Validation", func(t *testing.T) {
		svc := NewLeaseService(new(MockLeaseRepo))

		_, err := svc.SetOccupancy(ctx, "landlord-1", "lease-1", "DEMOLISHED", "")
		assert.ErrorContains(t, err, "OCCUPIED, VACANT or MAINTENANCE")

		_, err = svc.SetOccupancy(ctx, "landlord-1", "lease-1", domain.LeaseStatusOccupied, "")
		assert.ErrorContains(t, err, "needs a tenant")
	})

	t.Run("OnlyTheLandlord", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		svc := NewLeaseService(leaseRepo)
		leaseRepo.On("GetByID", ctx, "lease-1").Return(testLease(), nil)

		_, err := svc.SetOccupancy(ctx, "tenant-1", "lease-1", domain.LeaseStatusVacant, "")
		assert.ErrorContains(t, err, "unauthorized")
	})

	t.Run("BlockedByOpenTermination", func(t *testing.T) {
		leaseRepo := new(MockLeaseRepo)
		svc := NewLeaseService(leaseRepo)
		lease := testLease()
		lease.Termination = domain.NewTenantRequest("tenant-1", "2025-06-30", "", testNow)
		leaseRepo.On("GetByID", ctx, "lease-1").Return(lease, nil)

		_, err := svc.SetOccupancy(ctx, "landlord-1", "lease-1", domain.LeaseStatusVacant, "")
		assert.ErrorContains(t, err, "termination is in progress")
	})
}

func TestLeaseService_ProjectStatus(t *testing.T) {
	ctx := context.Background()
	leaseRepo := new(MockLeaseRepo)
	svc := NewLeaseService(leaseRepo)

	lease := testLease() // ends 2025-06-30
	leaseRepo.On("GetByID", ctx, "lease-1").Return(lease, nil)

	p, err := svc.ProjectStatus(ctx, "tenant-1", "lease-1", testNow)
	assert.NoError(t, err)
	assert.Equal(t, lifecycle.PhaseActive, p.Phase)
	assert.True(t, p.ShouldNotify)
	assert.Equal(t, 60, p.DaysLeft)

	_, err = svc.ProjectStatus(ctx, "stranger", "lease-1", testNow)
	assert.ErrorContains(t, err, "unauthorized")
}
