package vo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

var (
	ErrInvalidDuration   = errors.New("duration must be a positive number of minutes")
	ErrNegativeMoney     = errors.New("money cannot be negative")
	ErrInvalidPriceRange = errors.New("price range minimum exceeds maximum")
	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrInvalidDateRange  = errors.New("range end must be after start")
	ErrInvalidClockTime  = errors.New("invalid clock time, expected HH:mm")
)

// DefaultPhoneRegion is used when a number is given without a country code.
const DefaultPhoneRegion = "BR"

// Duration is a whole number of minutes, always positive.
type Duration struct {
	minutes int
}

func NewDuration(minutes int) (Duration, error) {
	if minutes <= 0 {
		return Duration{}, ErrInvalidDuration
	}
	return Duration{minutes: minutes}, nil
}

func DurationFromStd(d time.Duration) (Duration, error) {
	return NewDuration(int(d / time.Minute))
}

func (d Duration) Minutes() int           { return d.minutes }
func (d Duration) Std() time.Duration     { return time.Duration(d.minutes) * time.Minute }
func (d Duration) IsZero() bool           { return d.minutes == 0 }
func (d Duration) Equals(o Duration) bool { return d.minutes == o.minutes }

func (d Duration) String() string {
	h, m := d.minutes/60, d.minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dmin", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dmin", h, m)
	}
}

// Money is an amount in centavos.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64   { return m.cents }
func (m Money) Reais() float64 { return float64(m.cents) / 100.0 }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// String formats as BRL, e.g. "R$ 1.234,50".
func (m Money) String() string {
	whole := strconv.FormatInt(m.cents/100, 10)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("R$ %s,%02d", b.String(), m.cents%100)
}

// PriceRange is a fixed price when min equals max.
type PriceRange struct {
	min Money
	max Money
}

func FixedPrice(m Money) PriceRange {
	return PriceRange{min: m, max: m}
}

func NewPriceRange(min, max Money) (PriceRange, error) {
	if min.cents > max.cents {
		return PriceRange{}, ErrInvalidPriceRange
	}
	return PriceRange{min: min, max: max}, nil
}

func (p PriceRange) Min() Money    { return p.min }
func (p PriceRange) Max() Money    { return p.max }
func (p PriceRange) IsFixed() bool { return p.min.cents == p.max.cents }

func (p PriceRange) String() string {
	if p.IsFixed() {
		return p.min.String()
	}
	return p.min.String() + " - " + p.max.String()
}

// Phone holds a number normalized to E.164.
type Phone struct {
	e164 string
}

func NewPhone(raw, region string) (Phone, error) {
	if region == "" {
		region = DefaultPhoneRegion
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Phone{}, ErrInvalidPhone
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return Phone{}, ErrInvalidPhone
	}
	if !phonenumbers.IsValidNumber(num) {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{e164: phonenumbers.Format(num, phonenumbers.E164)}, nil
}

// ReconstructPhone trusts an already normalized value loaded from storage.
func ReconstructPhone(e164 string) Phone {
	return Phone{e164: e164}
}

func (p Phone) String() string      { return p.e164 }
func (p Phone) Digits() string      { return strings.TrimPrefix(p.e164, "+") }
func (p Phone) IsZero() bool        { return p.e164 == "" }
func (p Phone) Equals(o Phone) bool { return p.e164 == o.e164 }

// DateRange is a half-open interval [start, end) of UTC instants.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if !end.After(start) {
		return DateRange{}, ErrInvalidDateRange
	}
	return DateRange{start: start.UTC(), end: end.UTC()}, nil
}

func (r DateRange) Start() time.Time        { return r.start }
func (r DateRange) End() time.Time          { return r.end }
func (r DateRange) Duration() time.Duration { return r.end.Sub(r.start) }
func (r DateRange) IsZero() bool            { return r.start.IsZero() && r.end.IsZero() }

// Overlaps treats touching ranges ([10:00,10:30) and [10:30,11:00)) as disjoint.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.start) && t.Before(r.end)
}

func (r DateRange) Equals(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}

// TimeSlot is a computed candidate window; never persisted.
type TimeSlot struct {
	period         DateRange
	available      bool
	professionalID *uuid.UUID
}

func NewTimeSlot(start, end time.Time, professionalID *uuid.UUID) (TimeSlot, error) {
	period, err := NewDateRange(start, end)
	if err != nil {
		return TimeSlot{}, err
	}
	return TimeSlot{period: period, available: true, professionalID: professionalID}, nil
}

func (s TimeSlot) Start() time.Time           { return s.period.start }
func (s TimeSlot) End() time.Time             { return s.period.end }
func (s TimeSlot) Period() DateRange          { return s.period }
func (s TimeSlot) Duration() time.Duration    { return s.period.Duration() }
func (s TimeSlot) Available() bool            { return s.available }
func (s TimeSlot) ProfessionalID() *uuid.UUID { return s.professionalID }
func (s TimeSlot) Overlaps(r DateRange) bool  { return s.period.Overlaps(r) }

// CanFit only looks at this slot's own span.
func (s TimeSlot) CanFit(d time.Duration) bool {
	return s.available && s.Duration() >= d
}

func (s TimeSlot) MarkUnavailable() TimeSlot {
	s.available = false
	return s
}

// ClockTime is a wall-clock time of day in minutes since midnight; 24:00 is allowed as an end bound.
type ClockTime struct {
	minutes int
}

func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || minute < 0 || minute > 59 || hour > 24 || (hour == 24 && minute != 0) {
		return ClockTime{}, ErrInvalidClockTime
	}
	return ClockTime{minutes: hour*60 + minute}, nil
}

func ParseClockTime(s string) (ClockTime, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return ClockTime{}, ErrInvalidClockTime
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return ClockTime{}, ErrInvalidClockTime
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return ClockTime{}, ErrInvalidClockTime
	}
	return NewClockTime(hour, minute)
}

func (c ClockTime) Minutes() int            { return c.minutes }
func (c ClockTime) Before(o ClockTime) bool { return c.minutes < o.minutes }
func (c ClockTime) String() string          { return fmt.Sprintf("%02d:%02d", c.minutes/60, c.minutes%60) }
