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

type terminationService struct {
	leaseRepo repository.LeaseRepository
	userRepo  repository.UserRepository
	emailSvc  EmailService
	noteSvc   NotificationService
	rules     lifecycle.RuleSet
	now       func() time.Time
}

// NewTerminationService builds the termination workflow. A nil clock means
// the wall clock; tests inject a fixed one.
func NewTerminationService(
	leaseRepo repository.LeaseRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	noteSvc NotificationService,
	rules lifecycle.RuleSet,
	clock func() time.Time,
) TerminationService {
	if clock == nil {
		clock = time.Now
	}
	if rules == "" {
		rules = lifecycle.RuleSetStandard
	}
	return &terminationService{
		leaseRepo: leaseRepo,
		userRepo:  userRepo,
		emailSvc:  emailSvc,
		noteSvc:   noteSvc,
		rules:     rules,
		now:       clock,
	}
}

func (s *terminationService) RequestTermination(ctx context.Context, tenantID, leaseID, moveOutDate, reason string) (*domain.Lease, *SettlementView, error) {
	now := s.now()
	if err := validateMoveOutDate(moveOutDate, now); err != nil {
		return nil, nil, err
	}

	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, nil, err
	}
	if lease.TenantID != tenantID {
		return nil, nil, errors.New("unauthorized")
	}
	if lease.Termination != nil {
		if lease.Termination.Status == domain.TerminationStatusTerminated {
			return nil, nil, errors.New("lease is already terminated")
		}
		return nil, nil, errors.New("a termination is already in progress")
	}

	lease.Termination = domain.NewTenantRequest(tenantID, moveOutDate, reason, now)
	if err := s.leaseRepo.UpdateTermination(ctx, lease); err != nil {
		lease.Termination = nil
		return nil, nil, err
	}

	view := s.settlementView(lease)

	// Notify landlord; delivery failures never fail the transition.
	landlord, _ := s.userRepo.GetByID(ctx, lease.LandlordID)
	tenant, _ := s.userRepo.GetByID(ctx, tenantID)
	if landlord != nil && tenant != nil {
		_ = s.emailSvc.SendTerminationRequestNotification(ctx, landlord.Email, tenant.Name, lease.PropertyLabel, moveOutDate)
		s.noteSvc.Notify(ctx, landlord.ID, "TERMINATION_REQUESTED", "Termination Requested",
			fmt.Sprintf("%s requested to terminate the lease for %s on %s", tenant.Name, lease.PropertyLabel, moveOutDate),
			map[string]string{"lease_id": lease.ID})
	}

	return lease, view, nil
}

func (s *terminationService) InitiateTermination(ctx context.Context, landlordID, leaseID, moveOutDate, reason string, deductions []domain.Deduction) (*domain.Lease, *SettlementView, error) {
	now := s.now()
	if err := validateMoveOutDate(moveOutDate, now); err != nil {
		return nil, nil, err
	}
	var ledger []domain.Deduction
	for _, d := range deductions {
		var err error
		ledger, err = lifecycle.AppendDeduction(ledger, d.Reason, d.AmountCents)
		if err != nil {
			return nil, nil, err
		}
	}

	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, nil, err
	}
	if lease.LandlordID != landlordID {
		return nil, nil, errors.New("unauthorized")
	}
	if lease.Termination != nil {
		if lease.Termination.Status == domain.TerminationStatusTerminated {
			return nil, nil, errors.New("lease is already terminated")
		}
		return nil, nil, errors.New("a termination is already in progress")
	}

	lease.Termination = domain.NewLandlordRequest(landlordID, moveOutDate, reason, ledger, now)
	if err := s.leaseRepo.UpdateTermination(ctx, lease); err != nil {
		lease.Termination = nil
		return nil, nil, err
	}

	view := s.settlementView(lease)

	tenant, _ := s.userRepo.GetByID(ctx, lease.TenantID)
	if tenant != nil {
		_ = s.emailSvc.SendTerminationInitiatedNotification(ctx, tenant.Email, lease.PropertyLabel, moveOutDate, reason)
		s.noteSvc.Notify(ctx, tenant.ID, "TERMINATION_INITIATED", "Lease Termination Initiated",
			fmt.Sprintf("Your landlord initiated termination of the lease for %s, move-out on %s", lease.PropertyLabel, moveOutDate),
			map[string]string{"lease_id": lease.ID})
	}

	return lease, view, nil
}

func (s *terminationService) ConfirmTermination(ctx context.Context, landlordID, leaseID string) (*domain.Lease, *SettlementView, error) {
	lease, tc, err := s.loadForLandlord(ctx, landlordID, leaseID)
	if err != nil {
		return nil, nil, err
	}

	if err := tc.Confirm(s.now()); err != nil {
		return nil, nil, err
	}
	if err := s.leaseRepo.UpdateTermination(ctx, lease); err != nil {
		return nil, nil, err
	}

	view := s.settlementView(lease)

	tenant, _ := s.userRepo.GetByID(ctx, lease.TenantID)
	if tenant != nil {
		_ = s.emailSvc.SendTerminationConfirmedNotification(ctx, tenant.Email, lease.PropertyLabel, tc.RequestedDate, view.FinalReturnCents)
		s.noteSvc.Notify(ctx, tenant.ID, "TERMINATION_CONFIRMED", "Termination Confirmed",
			fmt.Sprintf("Your termination request for %s was confirmed", lease.PropertyLabel),
			map[string]string{"lease_id": lease.ID})
	}

	return lease, view, nil
}

func (s *terminationService) RejectTermination(ctx context.Context, landlordID, leaseID string) (*domain.Lease, error) {
	lease, tc, err := s.loadForLandlord(ctx, landlordID, leaseID)
	if err != nil {
		return nil, err
	}
	if !tc.Rejectable() {
		return nil, domain.ErrInvalidTransition
	}

	// Rejection clears the case entirely; the lease returns to its normal
	// lifecycle with no termination residue.
	lease.Termination = nil
	if err := s.leaseRepo.UpdateTermination(ctx, lease); err != nil {
		lease.Termination = tc
		return nil, err
	}

	tenant, _ := s.userRepo.GetByID(ctx, lease.TenantID)
	if tenant != nil {
		_ = s.emailSvc.SendTerminationRejectedNotification(ctx, tenant.Email, lease.PropertyLabel)
		s.noteSvc.Notify(ctx, tenant.ID, "TERMINATION_REJECTED", "Termination Rejected",
			fmt.Sprintf("Your termination request for %s was rejected", lease.PropertyLabel),
			map[string]string{"lease_id": lease.ID})
	}

	return lease, nil
}

func (s *terminationService) CancelTermination(ctx context.Context, userID, leaseID string) (*domain.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	tc := lease.Termination
	if tc == nil {
		return nil, errors.New("no termination in progress")
	}
	if !tc.CancellableBy(userID) {
		if tc.Status == domain.TerminationStatusTenantRequested || tc.Status == domain.TerminationStatusLandlordRequested {
			return nil, errors.New("unauthorized")
		}
		return nil, domain.ErrInvalidTransition
	}

	lease.Termination = nil
	if err := s.leaseRepo.UpdateTermination(ctx, lease); err != nil {
		lease.Termination = tc
		return nil, err
	}

	return lease, nil
}

func (s *terminationService) CompleteTermination(ctx context.Context, landlordID, leaseID string) (*domain.Lease, *SettlementView, error) {
	lease, tc, err := s.loadForLandlord(ctx, landlordID, leaseID)
	if err != nil {
		return nil, nil, err
	}

	prevCaseStatus := tc.Status
	if err := tc.Complete(); err != nil {
		return nil, nil, err
	}

	// The terminal status and the occupancy clear commit as one versioned
	// write; a store failure rolls everything back so the completion can be
	// retried from the same state.
	tenantID := lease.TenantID
	prevStatus, prevResponse := lease.Status, lease.TenantResponse
	lease.Status = domain.LeaseStatusVacant
	lease.TenantID = ""
	lease.TenantResponse = domain.TenantResponseNone
	if err := s.leaseRepo.CompleteTermination(ctx, lease); err != nil {
		tc.Status = prevCaseStatus
		lease.Status = prevStatus
		lease.TenantID = tenantID
		lease.TenantResponse = prevResponse
		return nil, nil, err
	}

	view := s.settlementView(lease)

	tenant, _ := s.userRepo.GetByID(ctx, tenantID)
	if tenant != nil {
		_ = s.emailSvc.SendTerminationCompletedNotification(ctx, tenant.Email, lease.PropertyLabel, view.FinalReturnCents)
		s.noteSvc.Notify(ctx, tenant.ID, "TERMINATION_COMPLETED", "Lease Terminated",
			fmt.Sprintf("The lease for %s has ended", lease.PropertyLabel),
			map[string]string{"lease_id": lease.ID})
	}

	return lease, view, nil
}

func (s *terminationService) PreviewSettlement(ctx context.Context, userID, leaseID, moveOutDate string, now time.Time) (*SettlementView, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease.TenantID != userID && lease.LandlordID != userID {
		return nil, errors.New("unauthorized")
	}

	if lease.Termination != nil {
		return s.settlementView(lease), nil
	}

	// No case yet: a hypothetical request made now.
	if moveOutDate == "" {
		return nil, errors.New("move-out date is required")
	}
	termDate, err := lifecycle.ParseDate(moveOutDate)
	if err != nil {
		return nil, fmt.Errorf("invalid move-out date: %w", err)
	}
	settlement := lifecycle.SettleWith(s.rules, lifecycle.SettlementInput{
		ContractStart:   parseOptionalDate(lease.ContractStart),
		ContractEnd:     parseOptionalDate(lease.ContractEnd),
		TerminationDate: termDate,
		RequestDate:     lifecycle.DateOf(now),
		DepositCents:    lease.DepositCents,
		RentCents:       lease.RentCents,
	})
	return &SettlementView{
		Settlement:       settlement,
		FinalReturnCents: lifecycle.FinalReturnCents(lease.DepositCents, settlement.RecommendedReturnCents, nil, nil),
	}, nil
}

func (s *terminationService) AddDeduction(ctx context.Context, landlordID, leaseID, reason string, amountCents int64) (*domain.Lease, *SettlementView, error) {
	return s.mutateLedger(ctx, landlordID, leaseID, func(tc *domain.TerminationCase) error {
		ledger, err := lifecycle.AppendDeduction(tc.Deductions, reason, amountCents)
		if err != nil {
			return err
		}
		tc.Deductions = ledger
		return nil
	})
}

func (s *terminationService) RemoveDeduction(ctx context.Context, landlordID, leaseID string, index int) (*domain.Lease, *SettlementView, error) {
	return s.mutateLedger(ctx, landlordID, leaseID, func(tc *domain.TerminationCase) error {
		ledger, err := lifecycle.RemoveDeductionAt(tc.Deductions, index)
		if err != nil {
			return err
		}
		tc.Deductions = ledger
		return nil
	})
}

func (s *terminationService) UpdateDeduction(ctx context.Context, landlordID, leaseID string, index int, reason string, amountCents int64) (*domain.Lease, *SettlementView, error) {
	return s.mutateLedger(ctx, landlordID, leaseID, func(tc *domain.TerminationCase) error {
		return lifecycle.UpdateDeductionAt(tc.Deductions, index, reason, amountCents)
	})
}

func (s *terminationService) SetReturnOverride(ctx context.Context, landlordID, leaseID string, amountCents int64) (*domain.Lease, *SettlementView, error) {
	return s.mutateLedger(ctx, landlordID, leaseID, func(tc *domain.TerminationCase) error {
		if amountCents < 0 {
			return errors.New("return override must not be negative")
		}
		tc.ReturnOverrideCents = &amountCents
		return nil
	})
}

func (s *terminationService) ClearReturnOverride(ctx context.Context, landlordID, leaseID string) (*domain.Lease, *SettlementView, error) {
	return s.mutateLedger(ctx, landlordID, leaseID, func(tc *domain.TerminationCase) error {
		tc.ReturnOverrideCents = nil
		return nil
	})
}

// mutateLedger applies a deduction-ledger edit on the open landlord-side
// case and persists it. Ledger edits carry financial payload only; the
// state machine does not move.
func (s *terminationService) mutateLedger(ctx context.Context, landlordID, leaseID string, edit func(*domain.TerminationCase) error) (*domain.Lease, *SettlementView, error) {
	lease, tc, err := s.loadForLandlord(ctx, landlordID, leaseID)
	if err != nil {
		return nil, nil, err
	}
	if !tc.AcceptsDeductions() {
		return nil, nil, errors.New("deductions can only be edited on a landlord-requested or confirmed termination")
	}

	if err := edit(tc); err != nil {
		return nil, nil, err
	}

	if amount := tc.ReturnOverrideCents; amount != nil && *amount > lease.DepositCents {
		return nil, nil, fmt.Errorf("return override exceeds the deposit of %d cents", lease.DepositCents)
	}

	if err := s.leaseRepo.UpdateTermination(ctx, lease); err != nil {
		return nil, nil, err
	}
	return lease, s.settlementView(lease), nil
}

func (s *terminationService) loadForLandlord(ctx context.Context, landlordID, leaseID string) (*domain.Lease, *domain.TerminationCase, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, nil, err
	}
	if lease.LandlordID != landlordID {
		return nil, nil, errors.New("unauthorized")
	}
	if lease.Termination == nil {
		return nil, nil, errors.New("no termination in progress")
	}
	return lease, lease.Termination, nil
}

// settlementView recomputes the settlement from the persisted case. The
// stored request timestamp anchors the notice-day count, so the figures
// stay stable once the request exists.
func (s *terminationService) settlementView(lease *domain.Lease) *SettlementView {
	tc := lease.Termination
	termDate, err := lifecycle.ParseDate(tc.RequestedDate)
	if err != nil {
		// The date was validated on entry; a parse failure here is a
		// programming error, surfaced as a zero-return settlement.
		termDate = lifecycle.DateOf(tc.RequestedAt)
	}
	settlement := lifecycle.SettleWith(s.rules, lifecycle.SettlementInput{
		ContractStart:   parseOptionalDate(lease.ContractStart),
		ContractEnd:     parseOptionalDate(lease.ContractEnd),
		TerminationDate: termDate,
		RequestDate:     lifecycle.DateOf(tc.RequestedAt),
		DepositCents:    lease.DepositCents,
		RentCents:       lease.RentCents,
	})
	return &SettlementView{
		Settlement:       settlement,
		LedgerTotalCents: lifecycle.LedgerTotalCents(tc.Deductions),
		FinalReturnCents: lifecycle.FinalReturnCents(lease.DepositCents, settlement.RecommendedReturnCents, tc.ReturnOverrideCents, tc.Deductions),
	}
}

// validateMoveOutDate rejects malformed or retroactive move-out dates
// before any store call is made.
func validateMoveOutDate(moveOutDate string, now time.Time) error {
	if moveOutDate == "" {
		return errors.New("move-out date is required")
	}
	d, err := lifecycle.ParseDate(moveOutDate)
	if err != nil {
		return fmt.Errorf("invalid move-out date: %w", err)
	}
	if d.Before(lifecycle.DateOf(now)) {
		return errors.New("move-out date must not be in the past")
	}
	return nil
}

func parseOptionalDate(s *string) *lifecycle.Date {
	if s == nil || *s == "" {
		return nil
	}
	d, err := lifecycle.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}
