package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/models"
)

func TestCancel_Transitions(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, brt)

	for _, st := range []Status{StatusPending, StatusConfirmed} {
		ap := &models.Appointment{Status: string(st)}
		require.NoError(t, Cancel(ap, now, "clima"))
		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.Equal(t, "clima", ap.CancelReason)
		require.NotNil(t, ap.CancelledAt)
	}

	for _, st := range []Status{StatusCompleted, StatusCancelled} {
		ap := &models.Appointment{Status: string(st)}
		err := Cancel(ap, now, "")
		assert.True(t, httperr.IsBusiness(err, CodeInvalidState))
		assert.Equal(t, string(st), ap.Status)
	}
}

func TestComplete_Transitions(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, brt)

	ap := &models.Appointment{Status: string(StatusConfirmed)}
	require.NoError(t, Complete(ap, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)

	err := Complete(ap, now)
	assert.True(t, httperr.IsBusiness(err, CodeInvalidState))
}

func TestIsDueForCompletion(t *testing.T) {
	ap := &models.Appointment{
		Date:        "2026-10-16",
		Time:        "10:00",
		DurationMin: 60,
		Status:      string(StatusConfirmed),
	}

	assert.False(t, IsDueForCompletion(ap, time.Date(2026, 10, 16, 10, 59, 0, 0, brt)))
	assert.True(t, IsDueForCompletion(ap, time.Date(2026, 10, 16, 11, 0, 0, 0, brt)))

	ap.Status = string(StatusPending)
	assert.False(t, IsDueForCompletion(ap, time.Date(2026, 10, 17, 0, 0, 0, 0, brt)))
}
