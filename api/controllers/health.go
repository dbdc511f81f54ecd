package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/maritalgrace/tickets-backend/api/responses"
	pkgerrors "github.com/maritalgrace/tickets-backend/pkg/errors"
	"github.com/maritalgrace/tickets-backend/pkg/logger"
)

// Pinger is any dependency that can answer a cheap health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Liveness reports that the process is up.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// Readiness probes each named dependency. Any failure returns 503 with the
// failing dependencies listed.
func Readiness(logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		failed := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				failed[name] = err.Error()
			}
		}

		if len(failed) > 0 {
			err := pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").
				WithDetails(map[string]any{"failed": failed})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
