package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authmw "workscope/pkg/platform/middleware/auth"
)

// NewRouter wires the public endpoints. The overview route sits behind the
// principal middleware; metrics and health do not.
func NewRouter(h *Handler, validator authmw.TokenValidator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequirePrincipal(validator, logger))
		r.Get("/v1/calendar/overview", h.handleOverview)
	})

	return r
}
