package appointment

import (
	"fmt"
	"time"
)

// Weekday is the stored day-of-week index: 0 = Sunday ... 6 = Saturday.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// WeekdayOf is total over time.Weekday.
func WeekdayOf(d time.Weekday) Weekday {
	return Weekday(((int(d) % 7) + 7) % 7)
}

func ParseWeekday(n int) (Weekday, error) {
	if n < int(Sunday) || n > int(Saturday) {
		return 0, fmt.Errorf("weekday out of range: %d", n)
	}
	return Weekday(n), nil
}

func (w Weekday) String() string {
	if w < Sunday || w > Saturday {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// AllWeekdays in storage order.
func AllWeekdays() []Weekday {
	return []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}
