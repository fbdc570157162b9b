package service

import (
	"context"
	"fmt"
	"time"

	"leasehold-backend/internal/domain"
	"leasehold-backend/internal/lifecycle"
	"leasehold-backend/internal/logger"
	"leasehold-backend/internal/repository"
)

// RenewalConfig sets the extension increments applied by the scheduler.
type RenewalConfig struct {
	// Extension for short-term leases that roll over without a tenant
	// response.
	DefaultExtensionMonths int
	// Extension when the tenant explicitly asked to renew.
	ResponseExtensionMonths int
}

type renewalService struct {
	leaseRepo repository.LeaseRepository
	userRepo  repository.UserRepository
	emailSvc  EmailService
	noteSvc   NotificationService
	cfg       RenewalConfig
}

func NewRenewalService(
	leaseRepo repository.LeaseRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	noteSvc NotificationService,
	cfg RenewalConfig,
) RenewalService {
	if cfg.DefaultExtensionMonths <= 0 {
		cfg.DefaultExtensionMonths = 6
	}
	if cfg.ResponseExtensionMonths <= 0 {
		cfg.ResponseExtensionMonths = 12
	}
	return &renewalService{
		leaseRepo: leaseRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
		noteSvc:   noteSvc,
		cfg:       cfg,
	}
}

func (s *renewalService) ApplyAutoRenewals(ctx context.Context, now time.Time) (int, error) {
	today := lifecycle.DateOf(now)
	// Candidates: leases expiring inside the one-month window (or already
	// expired), plus explicit renewals. The projector makes the final call
	// per lease.
	cutoff := lifecycle.AddDays(today, 31)
	leases, err := s.leaseRepo.ListRenewalCandidates(ctx, cutoff.String())
	if err != nil {
		return 0, err
	}

	extended := 0
	for i := range leases {
		lease := &leases[i]
		if lease.AutoRenewalApplied {
			// Already extended in this expiry window.
			continue
		}
		if lease.HasOpenTermination() {
			continue
		}

		p := ProjectLease(lease, now)
		if !p.ShouldAutoRenew {
			continue
		}
		if lease.ContractEnd == nil {
			continue
		}
		end, err := lifecycle.ParseDate(*lease.ContractEnd)
		if err != nil {
			logger.Error("Skipping lease with malformed contract end", "lease_id", lease.ID, "error", err)
			continue
		}

		months := s.cfg.DefaultExtensionMonths
		if lease.TenantResponse == domain.TenantResponseRenew {
			months = s.cfg.ResponseExtensionMonths
		}
		newEnd := lifecycle.AddMonths(end, months).String()

		lease.ContractEnd = &newEnd
		lease.AutoRenewalApplied = true
		lease.RenewalNoticeSentAt = nil
		if err := s.leaseRepo.UpdateRenewal(ctx, lease); err != nil {
			logger.Error("Failed to extend lease", "lease_id", lease.ID, "error", err)
			continue
		}
		extended++

		tenant, _ := s.userRepo.GetByID(ctx, lease.TenantID)
		if tenant != nil {
			_ = s.emailSvc.SendAutoRenewalNotification(ctx, tenant.Email, lease.PropertyLabel, newEnd)
			s.noteSvc.Notify(ctx, tenant.ID, "LEASE_AUTO_RENEWED", "Lease Extended",
				fmt.Sprintf("Your lease for %s was extended until %s", lease.PropertyLabel, newEnd),
				map[string]string{"lease_id": lease.ID})
		}

		logger.Debug("Extended lease",
			"lease_id", lease.ID,
			"new_contract_end", newEnd,
			"months", months)
	}

	logger.Info("Auto-renewal pass completed", "candidates", len(leases), "extended", extended)
	return extended, nil
}

func (s *renewalService) SendRenewalNotices(ctx context.Context, now time.Time) (int, error) {
	today := lifecycle.DateOf(now)
	// The notice window: more than a month but at most two months before
	// expiry, and only while no tenant decision is recorded.
	from := lifecycle.AddDays(today, 32)
	to := lifecycle.AddDays(today, 60)
	leases, err := s.leaseRepo.ListNoticeCandidates(ctx, from.String(), to.String())
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range leases {
		lease := &leases[i]
		if lease.HasOpenTermination() {
			continue
		}
		p := ProjectLease(lease, now)
		if !p.ShouldNotify {
			continue
		}

		tenant, err := s.userRepo.GetByID(ctx, lease.TenantID)
		if err != nil {
			logger.Error("Failed to load tenant for renewal notice", "lease_id", lease.ID, "error", err)
			continue
		}

		if err := s.emailSvc.SendRenewalNoticeNotification(ctx, tenant.Email, tenant.Name, lease.PropertyLabel, *lease.ContractEnd); err != nil {
			logger.Error("Failed to send renewal notice", "lease_id", lease.ID, "error", err)
			continue
		}
		s.noteSvc.Notify(ctx, tenant.ID, "RENEWAL_DECISION_REQUESTED", "Renewal Decision Needed",
			fmt.Sprintf("Your lease for %s ends on %s. Please let us know whether you want to renew.", lease.PropertyLabel, *lease.ContractEnd),
			map[string]string{"lease_id": lease.ID})

		stamp := now
		lease.RenewalNoticeSentAt = &stamp
		if err := s.leaseRepo.UpdateRenewal(ctx, lease); err != nil {
			logger.Error("Failed to stamp renewal notice", "lease_id", lease.ID, "error", err)
			continue
		}
		sent++
	}

	logger.Info("Renewal notice pass completed", "candidates", len(leases), "sent", sent)
	return sent, nil
}
