package appointment

import (
	"time"

	"github.com/BruksfildServices01/reserva-top/internal/models"
)

const DefaultSlotStepMinutes = 30

type AvailabilityInput struct {
	ProfessionalID uint
	ServiceID      uint
	// DurationMin is used when ServiceID is zero.
	DurationMin int
	Date        time.Time
}

type TimeSlot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}

// Interval is a busy [Start, End) range on the queried date.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps is the half-open intersection test.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

// BusyIntervals keeps only appointments that still hold their time.
// Rows with an unparseable time are skipped.
func BusyIntervals(appointments []models.Appointment) []Interval {
	out := make([]Interval, 0, len(appointments))
	for _, ap := range appointments {
		if !Status(ap.Status).BlocksSlot() {
			continue
		}
		start, err := ParseTimeOfDay(ap.Time)
		if err != nil {
			continue
		}
		out = append(out, Interval{Start: start, End: start.Add(ap.DurationMin)})
	}
	return out
}

type SlotQuery struct {
	Day         WorkingDay
	Date        time.Time
	DurationMin int
	StepMin     int
	Busy        []Interval
	Now         time.Time
}

// ComputeSlots walks every period of the day in order and emits the
// candidates that fit entirely inside it. Candidates starting before Now
// on the current date are dropped; overlapping ones are marked unavailable.
func ComputeSlots(q SlotQuery) []TimeSlot {
	slots := []TimeSlot{}

	if !q.Day.Open() || q.DurationMin <= 0 {
		return slots
	}
	if ValidatePeriods(q.Day.Periods) != nil {
		return slots
	}

	step := q.StepMin
	if step <= 0 {
		step = DefaultSlotStepMinutes
	}

	today := sameDate(q.Date, q.Now)

	for _, p := range q.Day.Periods {
		for start := p.Start; start.Add(q.DurationMin) <= p.End; start = start.Add(step) {
			end := start.Add(q.DurationMin)

			if today && start.On(q.Date).Before(q.Now) {
				continue
			}

			available := true
			for _, b := range q.Busy {
				if Overlaps(start, end, b.Start, b.End) {
					available = false
					break
				}
			}

			slots = append(slots, TimeSlot{
				Start:     start.String(),
				End:       end.String(),
				Available: available,
			})
		}
	}

	return slots
}

// DropPast re-applies the past-exclusion rule to previously computed slots.
func DropPast(slots []TimeSlot, date, now time.Time) []TimeSlot {
	if !sameDate(date, now) {
		return slots
	}
	out := make([]TimeSlot, 0, len(slots))
	for _, s := range slots {
		start, err := ParseTimeOfDay(s.Start)
		if err != nil || start.On(date).Before(now) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func sameDate(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
