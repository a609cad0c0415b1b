// Package clock supplies the reference time for reports. Every time it hands
// out is already in the business timezone so calendar arithmetic downstream
// needs no extra location argument.
package clock

import "time"

type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Business reads the system clock and converts to the business timezone.
type Business struct {
	loc *time.Location
}

func New(loc *time.Location) *Business {
	if loc == nil {
		loc = time.UTC
	}
	return &Business{loc: loc}
}

func (c *Business) Now() time.Time { return time.Now().In(c.loc) }

func (c *Business) Location() *time.Location { return c.loc }

// Mock is a settable clock for tests.
type Mock struct {
	current time.Time
}

func NewMock(start time.Time) *Mock {
	return &Mock{current: start}
}

func (m *Mock) Now() time.Time { return m.current }

func (m *Mock) Location() *time.Location { return m.current.Location() }

func (m *Mock) Set(t time.Time) { m.current = t }

func (m *Mock) Advance(d time.Duration) { m.current = m.current.Add(d) }

// LoadLocation resolves an IANA zone name, falling back to UTC when the name
// is empty or unknown.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}
