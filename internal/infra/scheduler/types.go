package scheduler

import "strings"

type bookingRequest struct {
	ProfessionalID  string `json:"profissionalId"`
	ServiceID       string `json:"servicoId,omitempty"`
	CustomerName    string `json:"clienteNome"`
	CustomerPhone   string `json:"clienteTelefone"`
	StartsAt        string `json:"dataHoraInicio"`
	DurationMinutes int    `json:"duracaoEmMinutos"`
	Notes           string `json:"observacoes,omitempty"`
	ExternalRef     string `json:"referenciaExterna,omitempty"`
}

type bookingResponse struct {
	ID string `json:"id"`
}

type externalBooking struct {
	ID              string `json:"id"`
	StartsAt        string `json:"dataHoraInicio"`
	DurationMinutes int    `json:"duracaoEmMinutos"`
	Status          string `json:"status"`
}

func (b externalBooking) isCancelled() bool {
	switch strings.ToLower(b.Status) {
	case "cancelado", "cancelled", "canceled":
		return true
	default:
		return false
	}
}

type listResponse struct {
	Data []externalBooking `json:"data"`
}
