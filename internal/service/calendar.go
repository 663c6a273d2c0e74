package service

import "time"

// Calendar decides where days, weeks and months start. Cash limits are
// per calendar day in the configured location, not in UTC.
type Calendar struct {
	Location *time.Location
	Now      func() time.Time
}

func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Location: loc, Now: time.Now}
}

func (c Calendar) now() time.Time {
	return c.Now().In(c.Location)
}

// Day returns [midnight, next midnight) around t
func (c Calendar) Day(t time.Time) (time.Time, time.Time) {
	t = t.In(c.Location)
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.Location)
	return from, from.AddDate(0, 0, 1)
}

// Week returns [Monday, next Monday) around t
func (c Calendar) Week(t time.Time) (time.Time, time.Time) {
	from, _ := c.Day(t)
	offset := (int(from.Weekday()) + 6) % 7
	from = from.AddDate(0, 0, -offset)
	return from, from.AddDate(0, 0, 7)
}

// Month returns [first day, first day of next month)
func (c Calendar) Month(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, c.Location)
	return from, from.AddDate(0, 1, 0)
}
