package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"leasehold-backend/internal/domain"
)

func newRenewalFixture() (*MockLeaseRepo, *MockUserRepo, *MockEmailService, *MockNotificationService, RenewalService) {
	leaseRepo := new(MockLeaseRepo)
	userRepo := new(MockUserRepo)
	emailSvc := new(MockEmailService)
	noteSvc := new(MockNotificationService)
	svc := NewRenewalService(leaseRepo, userRepo, emailSvc, noteSvc, RenewalConfig{
		DefaultExtensionMonths:  6,
		ResponseExtensionMonths: 12,
	})
	return leaseRepo, userRepo, emailSvc, noteSvc, svc
}

func TestRenewalService_ApplyAutoRenewals(t *testing.T) {
	ctx := context.Background()

	t.Run("NoResponseExtendsSixMonths", func(t *testing.T) {
		leaseRepo, userRepo, emailSvc, noteSvc, svc := newRenewalFixture()
		lease := testLease()
		lease.ContractEnd = strPtr("2025-05-15") // two weeks out

		leaseRepo.On("ListRenewalCandidates", ctx, "2025-06-01").Return([]domain.Lease{*lease}, nil)
		leaseRepo.On("UpdateRenewal", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
			return *l.ContractEnd == "2025-11-15" && l.AutoRenewalApplied && l.RenewalNoticeSentAt == nil
		})).Return(nil)
		userRepo.On("GetByID", ctx, "tenant-1").Return(&domain.User{ID: "tenant-1", Email: "tn@test.com"}, nil)
		emailSvc.On("SendAutoRenewalNotification", ctx, "tn@test.com", "Elm Street 4", "2025-11-15").Return(nil)
		noteSvc.On("Notify", ctx, "tenant-1", "LEASE_AUTO_RENEWED", mock.Anything, mock.Anything, mock.Anything)

		extended, err := svc.ApplyAutoRenewals(ctx, testNow)
		assert.NoError(t, err)
		assert.Equal(t, 1, extended)
		leaseRepo.AssertExpectations(t)
	})

	t.Run("WantsToRenewExtendsTwelveMonths", func(t *testing.T) {
		leaseRepo, userRepo, emailSvc, noteSvc, svc := newRenewalFixture()
		lease := testLease()
		lease.ContractEnd = strPtr("2025-05-15")
		lease.TenantResponse = domain.TenantResponseRenew

		leaseRepo.On("ListRenewalCandidates", ctx, "2025-06-01").Return([]domain.Lease{*lease}, nil)
		leaseRepo.On("UpdateRenewal", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
			return *l.ContractEnd == "2026-05-15" && l.AutoRenewalApplied
		})).Return(nil)
		userRepo.On("GetByID", ctx, "tenant-1").Return(&domain.User{ID: "tenant-1", Email: "tn@test.com"}, nil)
		emailSvc.On("SendAutoRenewalNotification", ctx, "tn@test.com", "Elm Street 4", "2026-05-15").Return(nil)
		noteSvc.On("Notify", ctx, "tenant-1", "LEASE_AUTO_RENEWED", mock.Anything, mock.Anything, mock.Anything)

		extended, err := svc.ApplyAutoRenewals(ctx, testNow)
		assert.NoError(t, err)
		assert.Equal(t, 1, extended)
	})

	t.Run("AlreadyAppliedIsSkipped", func(t *testing.T) {
		leaseRepo, _, _, _, svc := newRenewalFixture()
		lease := testLease()
		lease.ContractEnd = strPtr("2025-05-15")
		lease.AutoRenewalApplied = true

		leaseRepo.On("ListRenewalCandidates", ctx, "2025-06-01").Return([]domain.Lease{*lease}, nil)

		extended, err := svc.ApplyAutoRenewals(ctx, testNow)
		assert.NoError(t, err)
		assert.Equal(t, 0, extended)
		leaseRepo.AssertNotCalled(t, "UpdateRenewal", mock.Anything, mock.Anything)
	})

	t.Run("DecliningTenantIsSkipped", func(t *testing.T) {
		leaseRepo, _, _, _, svc := newRenewalFixture()
		lease := testLease()
		lease.ContractEnd = strPtr("2025-05-15")
		lease.TenantResponse = domain.TenantResponseNotRenew

		leaseRepo.On("ListRenewalCandidates", ctx, "2025-06-01").Return([]domain.Lease{*lease}, nil)

		extended, err := svc.ApplyAutoRenewals(ctx, testNow)
		assert.NoError(t, err)
		assert.Equal(t, 0, extended)
	})

	t.Run("StoreFailureSkipsButContinues", func(t *testing.T) {
		leaseRepo, userRepo, emailSvc, noteSvc, svc := newRenewalFixture()
		broken := testLease()
		broken.ID = "lease-broken"
		broken.ContractEnd = strPtr("2025-05-10")
		healthy := testLease()
		healthy.ID = "lease-healthy"
		healthy.ContractEnd = strPtr("2025-05-15")

		leaseRepo.On("ListRenewalCandidates", ctx, "2025-06-01").Return([]domain.Lease{*broken, *healthy}, nil)
		leaseRepo.On("UpdateRenewal", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
			return l.ID == "lease-broken"
		})).Return(errors.New("connection reset"))
		leaseRepo.On("UpdateRenewal", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
			return l.ID == "lease-healthy"
		})).Return(nil)
		userRepo.On("GetByID", ctx, "tenant-1").Return(&domain.User{ID: "tenant-1", Email: "tn@test.com"}, nil)
		emailSvc.On("SendAutoRenewalNotification", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		noteSvc.On("Notify", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

		extended, err := svc.ApplyAutoRenewals(ctx, testNow)
		assert.NoError(t, err)
		assert.Equal(t, 1, extended)
	})

	t.Run("ListFailure", func(t *testing.T) {
		leaseRepo, _, _, _, svc := newRenewalFixture()
		leaseRepo.On("ListRenewalCandidates", ctx, "2025-06-01").Return([]domain.Lease{}, errors.New("db down"))

		_, err := svc.ApplyAutoRenewals(ctx, testNow)
		assert.Error(t, err)
	})
}

func TestRenewalService_SendRenewalNotices(t *testing.T) {
	ctx := context.Background()

	t.Run("NoticeSentAndStamped", func(t *testing.T) {
		leaseRepo, userRepo, emailSvc, noteSvc, svc := newRenewalFixture()
		lease := testLease()
		lease.ContractEnd = strPtr("2025-06-15") // 45 days out

		leaseRepo.On("ListNoticeCandidates", ctx, "2025-06-02", "2025-06-30").Return([]domain.Lease{*lease}, nil)
		userRepo.On("GetByID", ctx, "tenant-1").Return(&domain.User{ID: "tenant-1", Email: "tn@test.com", Name: "Tom"}, nil)
		emailSvc.On("SendRenewalNoticeNotification", ctx, "tn@test.com", "Tom", "Elm Street 4", "2025-06-15").Return(nil)
		noteSvc.On("Notify", ctx, "tenant-1", "RENEWAL_DECISION_REQUESTED", mock.Anything, mock.Anything, mock.Anything)
		leaseRepo.On("UpdateRenewal", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
			return l.RenewalNoticeSentAt != nil && l.RenewalNoticeSentAt.Equal(testNow)
		})).Return(nil)

		sent, err := svc.SendRenewalNotices(ctx, testNow)
		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		leaseRepo.AssertExpectations(t)
	})

	t.Run("EmailFailureLeavesLeaseUnstamped", func(t *testing.T) {
		leaseRepo, userRepo, emailSvc, _, svc := newRenewalFixture()
		lease := testLease()
		lease.ContractEnd = strPtr("2025-06-15")

		leaseRepo.On("ListNoticeCandidates", ctx, "2025-06-02", "2025-06-30").Return([]domain.Lease{*lease}, nil)
		userRepo.On("GetByID", ctx, "tenant-1").Return(&domain.User{ID: "tenant-1", Email: "tn@test.com", Name: "Tom"}, nil)
		emailSvc.On("SendRenewalNoticeNotification", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp refused"))

		sent, err := svc.SendRenewalNotices(ctx, testNow)
		assert.NoError(t, err)
		assert.Equal(t, 0, sent)
		leaseRepo.AssertNotCalled(t, "UpdateRenewal", mock.Anything, mock.Anything)
	})

	t.Run("RespondedTenantIsSkipped", func(t *testing.T) {
		leaseRepo, _, _, _, svc := newRenewalFixture()
		lease := testLease()
		lease.ContractEnd = strPtr("2025-06-15")
		lease.TenantResponse = domain.TenantResponseNotRenew

		leaseRepo.On("ListNoticeCandidates", ctx, "2025-06-02", "2025-06-30").Return([]domain.Lease{*lease}, nil)

		sent, err := svc.SendRenewalNotices(ctx, testNow)
		assert.NoError(t, err)
		assert.Equal(t, 0, sent)
	})
}
