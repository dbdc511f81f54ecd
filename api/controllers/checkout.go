package controllers

import (
	"net/http"
	"strings"

	"github.com/maritalgrace/tickets-backend/api/responses"
	"github.com/maritalgrace/tickets-backend/api/validators"
	"github.com/maritalgrace/tickets-backend/internal/checkout"
	pkgerrors "github.com/maritalgrace/tickets-backend/pkg/errors"
	"github.com/maritalgrace/tickets-backend/pkg/logger"
)

type checkoutRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=50"`
	FirstName string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string `json:"last_name,omitempty" validate:"omitempty,max=100"`
}

type checkoutResponse struct {
	RedirectURL string `json:"redirect_url"`
}

// CreateCheckout opens a provider-hosted payment session for the buyer and
// returns the page URL to redirect the browser to.
func CreateCheckout(svc checkout.Service, publicBaseURL string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Create(r.Context(), checkout.CreateInput{
			Email:     req.Email,
			Quantity:  req.Quantity,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			BaseURL:   requestBaseURL(r, publicBaseURL),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutResponse{RedirectURL: session.RedirectURL})
	}
}

// requestBaseURL prefers the configured public base URL; behind a local dev
// setup with none configured it falls back to the host the request arrived on.
func requestBaseURL(r *http.Request, configured string) string {
	if base := strings.TrimSpace(configured); base != "" {
		return strings.TrimRight(base, "/")
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}
