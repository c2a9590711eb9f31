package appointment

import (
	"fmt"
	"time"
)

// TimeOfDay is minutes since midnight.
type TimeOfDay int

func ParseTimeOfDay(hm string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", hm, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// On places t on the calendar day of date.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, date.Location()).Add(time.Duration(t) * time.Minute)
}
