package controllers

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/maritalgrace/tickets-backend/api/validators"
	"github.com/maritalgrace/tickets-backend/internal/fulfillment"
	"github.com/maritalgrace/tickets-backend/pkg/config"
	pkgerrors "github.com/maritalgrace/tickets-backend/pkg/errors"
	"github.com/maritalgrace/tickets-backend/pkg/logger"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.EventName}} Tickets</title></head>
<body style="font-family: Helvetica, Arial, sans-serif; text-align: center; padding-top: 60px;">
{{if .Success}}
  <h1>Payment Successful!</h1>
  <p>Your reference is <strong>{{.Reference}}</strong>.</p>
  <p>Your tickets for {{.EventName}} have been emailed to <strong>{{.Email}}</strong>.</p>
{{else}}
  <h1>Something went wrong</h1>
  <p>{{.Message}}</p>
{{end}}
</body>
</html>`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>Guest List</title></head>
<body style="font-family: Helvetica, Arial, sans-serif; padding: 30px;">
<h1>Guest List</h1>
<table border="1" cellpadding="8" cellspacing="0">
  <tr><th>Date</th><th>Name</th><th>Email</th><th>Reference</th><th>Qty</th><th>Status</th></tr>
  {{range .Sales}}
  <tr>
    <td>{{.CreatedAt.Format "2006/01/02 15:04"}}</td>
    <td>{{.Name}}</td>
    <td>{{.Email}}</td>
    <td>{{.Reference}}</td>
    <td>{{.Quantity}}</td>
    <td>{{.Status}}</td>
  </tr>
  {{else}}
  <tr><td colspan="6">No tickets sold yet.</td></tr>
  {{end}}
</table>
<p><strong>Total Tickets Sold: {{.Total}}</strong></p>
</body>
</html>`))

type confirmationView struct {
	Success   bool
	Reference string
	Email     string
	EventName string
	Message   string
}

// Landing serves the booking page for both the root path and the event slug.
func Landing(publicDir string) http.HandlerFunc {
	index := filepath.Join(publicDir, "index.html")
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, index)
	}
}

// PaymentSuccess is the provider redirect target. It runs fulfillment from
// the order context carried in the query string and renders a confirmation
// page, so a buyer landing here always either gets a ticket or a clear error.
func PaymentSuccess(svc fulfillment.Service, event config.EventConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := confirmationView{EventName: event.Name}

		qty, err := validators.ParseQueryInt(r, "qty", 1, 1, 50)
		if err != nil {
			renderConfirmation(w, http.StatusBadRequest, confirmationView{
				EventName: event.Name,
				Message:   "The ticket quantity in the link is invalid.",
			})
			return
		}

		result, err := svc.Fulfill(r.Context(), fulfillment.Input{
			Email:     r.URL.Query().Get("email"),
			Quantity:  qty,
			FirstName: r.URL.Query().Get("first_name"),
			LastName:  r.URL.Query().Get("last_name"),
		})
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "payment_success.fulfillment_failed", err)
			}
			status := http.StatusInternalServerError
			if typed := pkgerrors.As(err); typed != nil {
				status = pkgerrors.MetadataFor(typed.Code()).HTTPStatus
			}
			view.Message = "We could not email your tickets. Please contact the organisers with your payment confirmation."
			renderConfirmation(w, status, view)
			return
		}

		view.Success = true
		view.Reference = result.Reference
		view.Email = r.URL.Query().Get("email")
		renderConfirmation(w, http.StatusOK, view)
	}
}

// AdminDashboard renders the recorded guest list as a plain HTML table.
func AdminDashboard(svc fulfillment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sales, err := svc.Sales(r.Context())
		if err != nil {
			if logg != nil {
				logg.Error(r.Context(), "dashboard.list_failed", err)
			}
			http.Error(w, "guest list unavailable", http.StatusServiceUnavailable)
			return
		}

		total := 0
		for _, sale := range sales {
			total += sale.Quantity
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := dashboardTmpl.Execute(w, map[string]any{"Sales": sales, "Total": total}); err != nil && logg != nil {
			logg.Error(r.Context(), "dashboard.render_failed", err)
		}
	}
}

func renderConfirmation(w http.ResponseWriter, status int, view confirmationView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = confirmationTmpl.Execute(w, view)
}
