package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTerminationCase_Transitions(t *testing.T) {
	now := time.Now()

	t.Run("TenantPath", func(t *testing.T) {
		tc := NewTenantRequest("tenant-1", "2025-06-30", "moving", now)
		assert.Equal(t, TerminationStatusTenantRequested, tc.Status)
		assert.True(t, tc.Rejectable())
		assert.True(t, tc.CancellableBy("tenant-1"))
		assert.False(t, tc.CancellableBy("landlord-1"))
		assert.False(t, tc.AcceptsDeductions())

		assert.NoError(t, tc.Confirm(now))
		assert.Equal(t, TerminationStatusConfirmed, tc.Status)
		assert.NotNil(t, tc.ConfirmedAt)
		assert.False(t, tc.Rejectable())
		assert.False(t, tc.CancellableBy("tenant-1"))
		assert.True(t, tc.AcceptsDeductions())

		assert.NoError(t, tc.Complete())
		assert.Equal(t, TerminationStatusTerminated, tc.Status)
	})

	t.Run("LandlordPath", func(t *testing.T) {
		tc := NewLandlordRequest("landlord-1", "2025-06-30", "", nil, now)
		assert.Equal(t, TerminationStatusLandlordRequested, tc.Status)
		assert.False(t, tc.Rejectable())
		assert.True(t, tc.CancellableBy("landlord-1"))
		assert.False(t, tc.CancellableBy("tenant-1"))
		assert.True(t, tc.AcceptsDeductions())

		// A landlord request is never confirmed; it completes directly.
		assert.ErrorIs(t, tc.Confirm(now), ErrInvalidTransition)
		assert.NoError(t, tc.Complete())
	})

	t.Run("TerminatedIsTerminal", func(t *testing.T) {
		tc := NewLandlordRequest("landlord-1", "2025-06-30", "", nil, now)
		assert.NoError(t, tc.Complete())

		assert.ErrorIs(t, tc.Confirm(now), ErrInvalidTransition)
		assert.ErrorIs(t, tc.Complete(), ErrInvalidTransition)
		assert.False(t, tc.Rejectable())
		assert.False(t, tc.CancellableBy("landlord-1"))
		assert.False(t, tc.AcceptsDeductions())
	})

	t.Run("PendingTenantRequestCannotComplete", func(t *testing.T) {
		tc := NewTenantRequest("tenant-1", "2025-06-30", "", now)
		assert.ErrorIs(t, tc.Complete(), ErrInvalidTransition)
	})
}
