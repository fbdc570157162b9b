package jobs

import (
	"context"
	"time"

	"leasehold-backend/internal/logger"
)

// ApplyAutoRenewals extends leases whose expiry window closed without a
// tenant decision, and leases with an explicit renewal response. The
// service guards idempotence; running the job twice is safe.
func (jr *JobRunner) ApplyAutoRenewals() {
	jr.runWithRecovery("ApplyAutoRenewals", func() {
		ctx := context.Background()

		extended, err := jr.services.Renewal.ApplyAutoRenewals(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to apply auto-renewals", "error", err)
			return
		}

		logger.Info("Applied auto-renewals", "count", extended)
	})
}

// SendRenewalNotices delivers renewal-decision requests to tenants whose
// lease ends inside the notice window.
func (jr *JobRunner) SendRenewalNotices() {
	jr.runWithRecovery("SendRenewalNotices", func() {
		ctx := context.Background()

		sent, err := jr.services.Renewal.SendRenewalNotices(ctx, time.Now())
		if err != nil {
			logger.Error("Failed to send renewal notices", "error", err)
			return
		}

		logger.Info("Renewal notices sent", "count", sent)
	})
}
