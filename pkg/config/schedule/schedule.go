package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tauraamui/xerror"
)

const stLayout = "15:04:05"

var ErrInvalidTime = errors.New("invalid time of day")

// Time is a time of day stored as the offset from midnight.
type Time time.Duration

func NewTime(hour, minute, second int) Time {
	return Time(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

func ParseTime(value string) (Time, error) {
	t, err := time.Parse(stLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, xerror.Errorf("%w %q, expected HH:MM:SS: %v", ErrInvalidTime, value, err)
	}
	return NewTime(t.Hour(), t.Minute(), t.Second()), nil
}

// Of returns the time of day of t in its own location.
func Of(t time.Time) Time {
	return NewTime(t.Hour(), t.Minute(), t.Second()) + Time(t.Nanosecond())
}

func (st *Time) UnmarshalJSON(b []byte) error {
	parsed, err := ParseTime(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*st = parsed
	return nil
}

func (st Time) MarshalJSON() ([]byte, error) {
	return []byte(st.String()), nil
}

func (st Time) Before(u Time) bool { return st < u }

func (st Time) After(u Time) bool { return st > u }

func (st Time) Hour() int { return int(time.Duration(st) / time.Hour) }

func (st Time) Minute() int { return int(time.Duration(st) % time.Hour / time.Minute) }

func (st Time) Second() int { return int(time.Duration(st) % time.Minute / time.Second) }

func (st Time) String() string {
	return fmt.Sprintf("%q", fmt.Sprintf("%02d:%02d:%02d", st.Hour(), st.Minute(), st.Second()))
}

// OnOffTimes for loading up on off time entries
type OnOffTimes struct {
	Off *Time `json:"off,omitempty"`
	On  *Time `json:"on,omitempty"`
}

func (o *OnOffTimes) empty() bool {
	return o == nil || (o.On == nil && o.Off == nil)
}

// isOn reports whether t falls inside the on period described by o.
// An overnight window (on later than off) wraps around midnight. Equal on
// and off times never switch the wall off.
func (o *OnOffTimes) isOn(t Time) bool {
	switch {
	case o.On == nil && o.Off != nil:
		return t.Before(*o.Off)
	case o.On != nil && o.Off == nil:
		return !t.Before(*o.On)
	case o.On.Before(*o.Off):
		return !t.Before(*o.On) && t.Before(*o.Off)
	case o.On.After(*o.Off):
		return !t.Before(*o.On) || t.Before(*o.Off)
	}
	return true
}

type Week struct {
	Everyday  *OnOffTimes `json:"everyday,omitempty"`
	Monday    *OnOffTimes `json:"monday,omitempty"`
	Tuesday   *OnOffTimes `json:"tuesday,omitempty"`
	Wednesday *OnOffTimes `json:"wednesday,omitempty"`
	Thursday  *OnOffTimes `json:"thursday,omitempty"`
	Friday    *OnOffTimes `json:"friday,omitempty"`
	Saturday  *OnOffTimes `json:"saturday,omitempty"`
	Sunday    *OnOffTimes `json:"sunday,omitempty"`
}

func (w Week) day(d time.Weekday) *OnOffTimes {
	return map[time.Weekday]*OnOffTimes{
		time.Monday:    w.Monday,
		time.Tuesday:   w.Tuesday,
		time.Wednesday: w.Wednesday,
		time.Thursday:  w.Thursday,
		time.Friday:    w.Friday,
		time.Saturday:  w.Saturday,
		time.Sunday:    w.Sunday,
	}[d]
}

type Schedule interface {
	IsOn(time.Time) bool
}

func NewSchedule(w Week) Schedule {
	return &schedule{week: w}
}

type schedule struct {
	week Week
}

// IsOn returns whether given time is within on period from schedule.
// A weekday entry wins over the everyday entry, no entry at all means on.
func (s *schedule) IsOn(t time.Time) bool {
	entry := s.week.day(t.Weekday())
	if entry.empty() {
		entry = s.week.Everyday
	}
	if entry.empty() {
		return true
	}
	return entry.isOn(Of(t))
}
