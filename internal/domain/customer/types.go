package customer

import (
	"errors"
	"time"
)

var (
	ErrEmptyName          = errors.New("customer name cannot be empty")
	ErrInvalidTemperature = errors.New("lead temperature must be cold, warm or hot")
	ErrEmptyInterest      = errors.New("lead interest cannot be empty")
)

type LeadTemperature string

const (
	LeadCold LeadTemperature = "cold"
	LeadWarm LeadTemperature = "warm"
	LeadHot  LeadTemperature = "hot"
)

func (t LeadTemperature) IsValid() bool {
	switch t {
	case LeadCold, LeadWarm, LeadHot:
		return true
	default:
		return false
	}
}

type LeadQualification struct {
	Temperature LeadTemperature
	Interest    string
	Notes       string
	QualifiedAt time.Time
}

const (
	leadKey            = "lead"
	leadTemperatureKey = "temperature"
	leadInterestKey    = "interest"
	leadNotesKey       = "notes"
	leadQualifiedAtKey = "qualified_at"
)
