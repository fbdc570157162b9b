package lifecycle

import (
	"errors"
	"fmt"

	"leasehold-backend/internal/domain"
)

// The deduction ledger is an ordered list of landlord-entered line items
// applied on top of the calculator's recommended return. Entries live on
// the termination case; the helpers here keep mutation and totaling rules
// in one place.

var errDeductionIndex = errors.New("deduction index out of range")

// AppendDeduction validates and appends a line item.
func AppendDeduction(list []domain.Deduction, reason string, amountCents int64) ([]domain.Deduction, error) {
	if reason == "" {
		return nil, fmt.Errorf("deduction reason is required")
	}
	if amountCents < 0 {
		return nil, fmt.Errorf("deduction amount must not be negative")
	}
	return append(list, domain.Deduction{Reason: reason, AmountCents: amountCents}), nil
}

// RemoveDeductionAt removes the line item at the given position.
func RemoveDeductionAt(list []domain.Deduction, index int) ([]domain.Deduction, error) {
	if index < 0 || index >= len(list) {
		return nil, errDeductionIndex
	}
	return append(list[:index], list[index+1:]...), nil
}

// UpdateDeductionAt edits either field of an existing line item in place.
func UpdateDeductionAt(list []domain.Deduction, index int, reason string, amountCents int64) error {
	if index < 0 || index >= len(list) {
		return errDeductionIndex
	}
	if reason == "" {
		return fmt.Errorf("deduction reason is required")
	}
	if amountCents < 0 {
		return fmt.Errorf("deduction amount must not be negative")
	}
	list[index] = domain.Deduction{Reason: reason, AmountCents: amountCents}
	return nil
}

// LedgerTotalCents sums the ledger.
func LedgerTotalCents(list []domain.Deduction) int64 {
	var total int64
	for _, d := range list {
		total += d.AmountCents
	}
	return total
}

// FinalReturnCents computes the amount actually returned to the tenant:
// the manual override when set, otherwise the calculator's recommendation,
// minus the ledger total, clamped to [0, deposit]. The override supersedes
// the recommendation but leaves the ledger untouched, so clearing it
// reverts to recommendation minus deductions.
func FinalReturnCents(depositCents, recommendedCents int64, overrideCents *int64, deductions []domain.Deduction) int64 {
	base := recommendedCents
	if overrideCents != nil {
		base = *overrideCents
		if base > depositCents {
			base = depositCents
		}
		if base < 0 {
			base = 0
		}
		// The override is the final figure; deductions are already folded
		// into the landlord's number.
		return base
	}

	final := base - LedgerTotalCents(deductions)
	if final < 0 {
		final = 0
	}
	if final > depositCents {
		final = depositCents
	}
	return final
}
