package readmodel

import (
	"fmt"
	"time"

	"salon-scheduler/internal/domain/vo"
	"salon-scheduler/internal/pkg/tz"

	"github.com/google/uuid"
)

type SlotRM struct {
	// Time is the local start, HH:mm.
	Time           string     `json:"time"`
	Available      bool       `json:"available"`
	ProfessionalID *uuid.UUID `json:"professionalId,omitempty"`
}

type AvailabilityRM struct {
	Date                   string     `json:"date"`
	DateISO                string     `json:"dateISO"`
	ProfessionalID         *uuid.UUID `json:"professionalId,omitempty"`
	DurationMinutes        int        `json:"durationMinutes"`
	Slots                  []SlotRM   `json:"slots"`
	TotalAvailable         int        `json:"totalAvailable"`
	RequestedSlotAvailable *bool      `json:"requestedSlotAvailable,omitempty"`
	Message                string     `json:"message"`
}

// NewAvailabilityRM lists every slot when onlyAvailable is false.
func NewAvailabilityRM(
	date time.Time,
	loc *time.Location,
	professionalID *uuid.UUID,
	d time.Duration,
	slots []vo.TimeSlot,
	onlyAvailable bool,
) AvailabilityRM {
	rm := AvailabilityRM{
		Date:            tz.FormatDate(date, loc),
		DateISO:         tz.FormatISODate(date, loc),
		ProfessionalID:  professionalID,
		DurationMinutes: int(d / time.Minute),
		Slots:           make([]SlotRM, 0, len(slots)),
	}
	for _, s := range slots {
		if s.Available() {
			rm.TotalAvailable++
		} else if onlyAvailable {
			continue
		}
		rm.Slots = append(rm.Slots, SlotRM{
			Time:           tz.FormatClock(s.Start(), loc),
			Available:      s.Available(),
			ProfessionalID: s.ProfessionalID(),
		})
	}
	rm.Message = availabilityMessage(rm.Date, rm.TotalAvailable)
	return rm
}

func availabilityMessage(date string, available int) string {
	switch available {
	case 0:
		return fmt.Sprintf("Nenhum horário disponível em %s.", date)
	case 1:
		return fmt.Sprintf("1 horário disponível em %s.", date)
	default:
		return fmt.Sprintf("%d horários disponíveis em %s.", available, date)
	}
}
