package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type LeadRM struct {
	CustomerID  uuid.UUID `json:"customerId"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Temperature string    `json:"temperature"`
	Interest    string    `json:"interest"`
	Notes       string    `json:"notes"`
	QualifiedAt time.Time `json:"qualifiedAt"`
	// Created is false when the phone already belonged to a customer of the salon.
	Created bool `json:"created"`
}
