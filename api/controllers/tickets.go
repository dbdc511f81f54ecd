package controllers

import (
	"net/http"

	"github.com/maritalgrace/tickets-backend/api/responses"
	"github.com/maritalgrace/tickets-backend/api/validators"
	"github.com/maritalgrace/tickets-backend/internal/fulfillment"
	pkgerrors "github.com/maritalgrace/tickets-backend/pkg/errors"
	"github.com/maritalgrace/tickets-backend/pkg/logger"
)

type sendTicketRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=50"`
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=100"`
}

type sendTicketResponse struct {
	Success   bool   `json:"success"`
	Reference string `json:"ref"`
}

// SendTicket runs the full fulfillment for an already-paid order: renders the
// ticket, emails it, and records the sale.
func SendTicket(svc fulfillment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "fulfillment service unavailable"))
			return
		}

		var req sendTicketRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Fulfill(r.Context(), fulfillment.Input{
			Email:     req.Email,
			Quantity:  req.Quantity,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, sendTicketResponse{Success: true, Reference: result.Reference})
	}
}
