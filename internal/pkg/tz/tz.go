// Package tz converts between stored UTC instants and a salon's local calendar.
package tz

import (
	"errors"
	"time"

	// Embedded zone database so salon zones resolve on minimal images.
	_ "time/tzdata"
)

const (
	DefaultZone = "America/Sao_Paulo"

	DateLayout    = "2006-01-02"
	DisplayDate   = "02/01/2006"
	DisplayLayout = "02/01/2006 15:04"
	ClockLayout   = "15:04"
)

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Brazil has not observed daylight saving since 2019.
var saoPauloFallback = time.FixedZone("-03", -3*60*60)

// Location resolves an IANA zone name, falling back to the default business zone.
func Location(name string) *time.Location {
	if name == "" {
		name = DefaultZone
	}
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc
	}
	if name != DefaultZone {
		return Location(DefaultZone)
	}
	return saoPauloFallback
}

// ParseLocalDate returns local midnight of the given YYYY-MM-DD date.
func ParseLocalDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// LocalMidnight truncates t to the start of its calendar day in loc.
func LocalMidnight(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns the UTC instants bounding the local calendar day containing date.
func DayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := LocalMidnight(date, loc)
	end := time.Date(start.Year(), start.Month(), start.Day()+1, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC()
}

// AtMinute returns the instant minutes after local midnight of date.
func AtMinute(date time.Time, minutes int, loc *time.Location) time.Time {
	d := LocalMidnight(date, loc)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, minutes, 0, 0, loc)
}

func IsSameLocalDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

func Weekday(t time.Time, loc *time.Location) time.Weekday {
	return t.In(loc).Weekday()
}

func FormatDisplay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DisplayLayout)
}

func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DisplayDate)
}

func FormatISODate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

func FormatClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(ClockLayout)
}

func FormatISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
