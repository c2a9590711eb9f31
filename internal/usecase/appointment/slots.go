package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
)

// daySlots reads working hours and appointments straight from repo and runs
// the slot engine. A malformed configuration comes back as an error
// wrapping domain.ErrInvalidConfiguration.
func daySlots(
	ctx context.Context,
	repo domain.Repository,
	professionalID uint,
	date time.Time,
	duration int,
	step int,
	now time.Time,
) ([]domain.TimeSlot, error) {

	rows, err := repo.GetWorkingHours(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("load working hours: %w", err)
	}

	day, err := domain.FindWorkingDay(rows, domain.WeekdayOf(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if !day.Open() {
		return []domain.TimeSlot{}, nil
	}

	appointments, err := repo.ListAppointments(ctx, professionalID, date.Format(timezone.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}

	return domain.ComputeSlots(domain.SlotQuery{
		Day:         day,
		Date:        date,
		DurationMin: duration,
		StepMin:     step,
		Busy:        domain.BusyIntervals(appointments),
		Now:         now,
	}), nil
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
