package response

import (
	"time"

	"github.com/google/uuid"
)

type LeadResponse struct {
	CustomerID  uuid.UUID `json:"customerId"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Temperature string    `json:"temperature"`
	Interest    string    `json:"interest"`
	Notes       string    `json:"notes"`
	QualifiedAt time.Time `json:"qualifiedAt"`
	Created     bool      `json:"created"`
}
