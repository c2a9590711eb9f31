package timezone

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultOffset = "-03:00"

	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	DateTimeLayout = "2006-01-02 15:04"
)

// ParseOffset turns "+HH:MM" / "-HH:MM" into a fixed zone.
func ParseOffset(offset string) (*time.Location, error) {
	offset = strings.TrimSpace(offset)
	if len(offset) != 6 || (offset[0] != '+' && offset[0] != '-') || offset[3] != ':' {
		return nil, fmt.Errorf("timezone: invalid offset %q", offset)
	}

	hours, err := strconv.Atoi(offset[1:3])
	if err != nil || hours > 14 {
		return nil, fmt.Errorf("timezone: invalid offset %q", offset)
	}
	minutes, err := strconv.Atoi(offset[4:6])
	if err != nil || minutes > 59 {
		return nil, fmt.Errorf("timezone: invalid offset %q", offset)
	}

	seconds := hours*3600 + minutes*60
	if offset[0] == '-' {
		seconds = -seconds
	}
	return time.FixedZone("UTC"+offset, seconds), nil
}

// Location falls back to DefaultOffset when the configured value is invalid.
func Location(offset string) *time.Location {
	if loc, err := ParseOffset(offset); err == nil {
		return loc
	}
	loc, _ := ParseOffset(DefaultOffset)
	return loc
}

// Clock is the platform's notion of "now" in its fixed offset.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(loc *time.Location) *Clock {
	return &Clock{loc: loc, now: time.Now}
}

// FixedClock always answers t. Used by tests and scripts.
func FixedClock(t time.Time) *Clock {
	return &Clock{loc: t.Location(), now: func() time.Time { return t }}
}

func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Today returns the current calendar date at midnight.
func (c *Clock) Today() time.Time {
	n := c.Now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, c.loc)
}

func (c *Clock) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, c.loc)
}

func (c *Clock) ParseDateTime(date, hm string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, date+" "+hm, c.loc)
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
