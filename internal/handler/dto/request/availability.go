package request

import (
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

// AvailabilityQuery is bound from the query string.
type AvailabilityQuery struct {
	Date            string  `form:"date" binding:"required"`
	ProfessionalID  *string `form:"professionalId" binding:"omitempty,uuid"`
	ServiceID       *string `form:"serviceId" binding:"omitempty,uuid"`
	DurationMinutes *int    `form:"duration" binding:"omitempty,min=1,max=720"`
	Time            *string `form:"time"`
}

func (q AvailabilityQuery) ToQuery(salonID uuid.UUID) queries.AvailabilityRequest {
	return queries.AvailabilityRequest{
		SalonID:         salonID,
		Date:            q.Date,
		ProfessionalID:  parseOptionalUUID(q.ProfessionalID),
		ServiceID:       parseOptionalUUID(q.ServiceID),
		DurationMinutes: q.DurationMinutes,
		Time:            q.Time,
	}
}

// parseOptionalUUID expects an already validated value.
func parseOptionalUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}
