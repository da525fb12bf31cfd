package availability

import (
	"slices"
	"time"

	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/tz"

	"github.com/google/uuid"
)

const DefaultGranularity = 15 * time.Minute

type minuteSpan struct {
	start int
	end   int
}

func (s minuteSpan) overlaps(o minuteSpan) bool {
	return s.start < o.end && o.start < s.end
}

// WindowsFromRules keeps only the rules of the given weekday.
func WindowsFromRules(rules []*Rule, day time.Weekday) []Window {
	windows := make([]Window, 0, len(rules))
	for _, r := range rules {
		if r.weekday == day {
			windows = append(windows, r.window)
		}
	}
	return windows
}

// GenerateSlots walks each merged work window of the local date in granularity steps,
// skipping steps that touch a break. Slots come out sorted and never overlap.
func GenerateSlots(
	date time.Time,
	loc *time.Location,
	windows []Window,
	granularity time.Duration,
	professionalID *uuid.UUID,
) []vo.TimeSlot {
	step := int(granularity / time.Minute)
	if step <= 0 {
		step = int(DefaultGranularity / time.Minute)
	}

	var work, breaks []minuteSpan
	for _, w := range windows {
		span := minuteSpan{start: w.Start.Minutes(), end: w.End.Minutes()}
		if span.end <= span.start {
			continue
		}
		if w.IsBreak {
			breaks = append(breaks, span)
		} else {
			work = append(work, span)
		}
	}

	slots := make([]vo.TimeSlot, 0)
	for _, span := range mergeSpans(work) {
		for m := span.start; m+step <= span.end; m += step {
			candidate := minuteSpan{start: m, end: m + step}
			if overlapsAny(candidate, breaks) {
				continue
			}
			slot, err := vo.NewTimeSlot(
				tz.AtMinute(date, candidate.start, loc),
				tz.AtMinute(date, candidate.end, loc),
				professionalID,
			)
			if err != nil {
				continue
			}
			slots = append(slots, slot)
		}
	}
	return slots
}

func mergeSpans(spans []minuteSpan) []minuteSpan {
	if len(spans) == 0 {
		return nil
	}
	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b minuteSpan) int { return a.start - b.start })

	merged := []minuteSpan{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			last.end = max(last.end, s.end)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func overlapsAny(s minuteSpan, others []minuteSpan) bool {
	for _, o := range others {
		if s.overlaps(o) {
			return true
		}
	}
	return false
}

// MarkBusy flags every slot overlapping any of the busy ranges as unavailable.
// It returns how many slots changed from available to unavailable.
func MarkBusy(slots []vo.TimeSlot, busy []vo.DateRange) int {
	changed := 0
	for i, slot := range slots {
		if !slot.Available() {
			continue
		}
		for _, b := range busy {
			if slot.Overlaps(b) {
				slots[i] = slot.MarkUnavailable()
				changed++
				break
			}
		}
	}
	return changed
}

// MarkUnfit flags available slots from which no contiguous run of available slots covers d.
func MarkUnfit(slots []vo.TimeSlot, d time.Duration) {
	fit := make([]bool, len(slots))
	for i := range slots {
		if !slots[i].Available() {
			continue
		}
		covered := slots[i].Duration()
		for j := i + 1; covered < d && j < len(slots); j++ {
			if !slots[j].Available() || !slots[j].Start().Equal(slots[j-1].End()) {
				break
			}
			covered += slots[j].Duration()
		}
		fit[i] = covered >= d
	}
	for i := range slots {
		if slots[i].Available() && !fit[i] {
			slots[i] = slots[i].MarkUnavailable()
		}
	}
}

// DropStarted removes slots whose start is at or before now.
func DropStarted(slots []vo.TimeSlot, now time.Time) []vo.TimeSlot {
	return slices.DeleteFunc(slots, func(s vo.TimeSlot) bool {
		return !s.Start().After(now)
	})
}

func CountAvailable(slots []vo.TimeSlot) int {
	n := 0
	for _, s := range slots {
		if s.Available() {
			n++
		}
	}
	return n
}

// CoversWindow reports whether [start,end) lies entirely inside the merged working time of the windows, avoiding breaks.
func CoversWindow(date time.Time, loc *time.Location, windows []Window, start, end time.Time) bool {
	dayStart := tz.LocalMidnight(date, loc)
	span := minuteSpan{
		start: int(start.Sub(dayStart) / time.Minute),
		end:   int(end.Sub(dayStart) / time.Minute),
	}

	var work, breaks []minuteSpan
	for _, w := range windows {
		s := minuteSpan{start: w.Start.Minutes(), end: w.End.Minutes()}
		if w.IsBreak {
			breaks = append(breaks, s)
		} else {
			work = append(work, s)
		}
	}
	if overlapsAny(span, breaks) {
		return false
	}
	for _, w := range mergeSpans(work) {
		if span.start >= w.start && span.end <= w.end {
			return true
		}
	}
	return false
}
