package appointment

import (
	"time"

	"github.com/BruksfildServices01/reserva-top/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time, reason string) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelReason = reason
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// StartsAt resolves date + time in loc.
func StartsAt(ap *models.Appointment, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", ap.Date+" "+ap.Time, loc)
}

func EndsAt(ap *models.Appointment, loc *time.Location) (time.Time, error) {
	start, err := StartsAt(ap, loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(ap.DurationMin) * time.Minute), nil
}

// IsDueForCompletion: only confirmed appointments whose end has passed.
func IsDueForCompletion(ap *models.Appointment, now time.Time) bool {
	if Status(ap.Status) != StatusConfirmed {
		return false
	}
	end, err := EndsAt(ap, now.Location())
	if err != nil {
		return false
	}
	return !now.Before(end)
}
