package appointment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/BruksfildServices01/reserva-top/internal/models"
)

var ErrInvalidConfiguration = errors.New("invalid working hours configuration")

// Period is a half-open block [Start, End) inside a working day.
type Period struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (p Period) Contains(start, end TimeOfDay) bool {
	return start >= p.Start && end <= p.End
}

type WorkingDay struct {
	Weekday   Weekday
	Available bool
	Periods   []Period
}

// Open reports whether the day can produce any slot at all.
func (d WorkingDay) Open() bool {
	return d.Available && len(d.Periods) > 0
}

// ValidatePeriods requires start < end, ascending order and no overlap.
// Touching periods (12:00-12:00) are allowed.
func ValidatePeriods(periods []Period) error {
	for i, p := range periods {
		if p.Start >= p.End {
			return fmt.Errorf("%w: period %d ends before it starts", ErrInvalidConfiguration, i)
		}
		if i > 0 && p.Start < periods[i-1].End {
			return fmt.Errorf("%w: period %d overlaps or is out of order", ErrInvalidConfiguration, i)
		}
	}
	return nil
}

// WorkingDayFromModel converts the stored row and validates it.
func WorkingDayFromModel(wh *models.WorkingHours) (WorkingDay, error) {
	weekday, err := ParseWeekday(wh.Weekday)
	if err != nil {
		return WorkingDay{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	day := WorkingDay{Weekday: weekday, Available: wh.IsAvailable}
	if !wh.IsAvailable {
		return day, nil
	}

	stored := make([]models.WorkingPeriod, len(wh.Periods))
	copy(stored, wh.Periods)
	sort.SliceStable(stored, func(i, j int) bool { return stored[i].Position < stored[j].Position })

	for _, sp := range stored {
		start, err := ParseTimeOfDay(sp.StartTime)
		if err != nil {
			return WorkingDay{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		end, err := ParseTimeOfDay(sp.EndTime)
		if err != nil {
			return WorkingDay{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		day.Periods = append(day.Periods, Period{Start: start, End: end})
	}

	if err := ValidatePeriods(day.Periods); err != nil {
		return WorkingDay{}, err
	}
	return day, nil
}

// FindWorkingDay picks the row for weekday. Missing rows mean closed.
func FindWorkingDay(rows []models.WorkingHours, weekday Weekday) (WorkingDay, error) {
	for i := range rows {
		if rows[i].Weekday == int(weekday) {
			return WorkingDayFromModel(&rows[i])
		}
	}
	return WorkingDay{Weekday: weekday}, nil
}

// DefaultWorkingHours is what a newly registered professional starts with:
// Monday to Saturday, 09:00-12:00 and 14:00-18:00.
func DefaultWorkingHours(professionalID uint) []models.WorkingHours {
	out := make([]models.WorkingHours, 0, 7)
	for _, wd := range AllWeekdays() {
		wh := models.WorkingHours{
			ProfessionalID: professionalID,
			Weekday:        int(wd),
			IsAvailable:    wd != Sunday,
		}
		if wh.IsAvailable {
			wh.Periods = []models.WorkingPeriod{
				{Position: 0, StartTime: "09:00", EndTime: "12:00"},
				{Position: 1, StartTime: "14:00", EndTime: "18:00"},
			}
		}
		out = append(out, wh)
	}
	return out
}
