package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/httperr"
	"github.com/BruksfildServices01/reserva-top/internal/models"
)

func slotStarts(slots []domain.TimeSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start)
	}
	return out
}

func TestGetAvailability_ServiceDuration(t *testing.T) {
	f := newFixture(fridayMorning)

	slots, err := f.availability.Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: f.professionalID,
		ServiceID:      f.serviceID,
		Date:           f.date(nextMonday),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"09:00", "09:30", "10:00", "10:30", "11:00",
		"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00",
	}, slotStarts(slots))
}

func TestGetAvailability_ExplicitDurationAndErrors(t *testing.T) {
	f := newFixture(fridayMorning)
	ctx := context.Background()

	slots, err := f.availability.Execute(ctx, domain.AvailabilityInput{
		ProfessionalID: f.professionalID,
		DurationMin:    240,
		Date:           f.date(nextMonday),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"14:00"}, slotStarts(slots))

	_, err = f.availability.Execute(ctx, domain.AvailabilityInput{
		ProfessionalID: f.professionalID,
		Date:           f.date(nextMonday),
	})
	assert.True(t, httperr.IsBusiness(err, domain.CodeInvalidDuration))

	_, err = f.availability.Execute(ctx, domain.AvailabilityInput{
		ProfessionalID: f.professionalID,
		ServiceID:      999,
		Date:           f.date(nextMonday),
	})
	assert.True(t, httperr.IsBusiness(err, domain.CodeServiceNotFound))
}

func TestGetAvailability_PastDateIsEmpty(t *testing.T) {
	f := newFixture(fridayMorning)

	slots, err := f.availability.Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: f.professionalID,
		ServiceID:      f.serviceID,
		Date:           f.date("2026-10-12"),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_ClosedDayIsEmpty(t *testing.T) {
	f := newFixture(fridayMorning)

	// Sunday row is unavailable, Tuesday has no row at all
	for _, date := range []string{"2026-10-18", "2026-10-20"} {
		slots, err := f.availability.Execute(context.Background(), domain.AvailabilityInput{
			ProfessionalID: f.professionalID,
			ServiceID:      f.serviceID,
			Date:           f.date(date),
		})
		require.NoError(t, err)
		assert.Empty(t, slots, date)
	}
}

func TestGetAvailability_MalformedHoursAreEmptyNotError(t *testing.T) {
	f := newFixture(fridayMorning)
	f.repo.setHours(f.professionalID, []models.WorkingHours{{
		Weekday:     int(domain.Monday),
		IsAvailable: true,
		Periods: []models.WorkingPeriod{
			{Position: 0, StartTime: "12:00", EndTime: "09:00"},
		},
	}})

	slots, err := f.availability.Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: f.professionalID,
		ServiceID:      f.serviceID,
		Date:           f.date(nextMonday),
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_TodayDropsPastSlotsEvenFromCache(t *testing.T) {
	mondayMorning := time.Date(2026, 10, 19, 10, 15, 0, 0, brt)
	f := newFixture(mondayMorning)

	// stale entry computed earlier in the day
	f.cache.Set(context.Background(), f.professionalID, nextMonday, 60, 0, []domain.TimeSlot{
		{Start: "09:00", End: "10:00", Available: true},
		{Start: "10:00", End: "11:00", Available: true},
		{Start: "10:30", End: "11:30", Available: true},
	})

	slots, err := f.availability.Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: f.professionalID,
		ServiceID:      f.serviceID,
		Date:           f.date(nextMonday),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30"}, slotStarts(slots))
}

func TestGetAvailability_CachesComputedSlots(t *testing.T) {
	f := newFixture(fridayMorning)
	ctx := context.Background()
	in := domain.AvailabilityInput{
		ProfessionalID: f.professionalID,
		ServiceID:      f.serviceID,
		Date:           f.date(nextMonday),
	}

	first, err := f.availability.Execute(ctx, in)
	require.NoError(t, err)

	cached, _, ok := f.cache.Get(ctx, f.professionalID, nextMonday, 60)
	require.True(t, ok)
	assert.Equal(t, first, cached)
}

func TestGetAvailability_BookingInvalidatesCache(t *testing.T) {
	f := newFixture(fridayMorning)
	ctx := context.Background()
	in := domain.AvailabilityInput{
		ProfessionalID: f.professionalID,
		ServiceID:      f.serviceID,
		Date:           f.date(nextMonday),
	}

	_, err := f.availability.Execute(ctx, in)
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, f.booking("10:00"))
	require.NoError(t, err)
	assert.Equal(t, []string{nextMonday}, f.cache.invalidated)

	slots, err := f.availability.Execute(ctx, in)
	require.NoError(t, err)
	for _, s := range slots {
		if s.Start == "10:00" || s.Start == "09:30" || s.Start == "10:30" {
			assert.False(t, s.Available, s.Start)
		}
	}
}
