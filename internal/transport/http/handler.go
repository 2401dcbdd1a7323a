// Package httptransport is the thin HTTP layer over the aggregation engine.
// It decodes the query, resolves the principal from the auth middleware, and
// delegates; no aggregation logic lives here.
package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"workscope/internal/aggregate"
	dErrors "workscope/pkg/domain-errors"
	authmw "workscope/pkg/platform/middleware/auth"
	"workscope/pkg/requestcontext"
)

// OverviewService is the engine surface the transport consumes.
type OverviewService interface {
	Overview(ctx context.Context, q aggregate.QueryContext) (*aggregate.Overview, error)
}

// Handler handles calendar overview endpoints.
type Handler struct {
	logger   *slog.Logger
	overview OverviewService
}

// NewHandler creates the overview handler.
func NewHandler(overview OverviewService, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, overview: overview}
}

// handleOverview serves GET /v1/calendar/overview.
//
// Query parameters:
//
//	all  - "true" widens an owner's query to every accessible workspace
//	from - RFC 3339 window start (default: start of today)
//	to   - RFC 3339 window end (default: from + 7 days)
func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal, ok := authmw.GetPrincipal(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "principal missing from context despite auth middleware")
		writeError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}

	now := requestcontext.Now(ctx)
	window, err := parseWindow(r, now)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid overview window", "error", err.Error())
		writeError(w, err)
		return
	}

	q := aggregate.QueryContext{
		Principal:            *principal,
		IncludeAllAccessible: r.URL.Query().Get("all") == "true",
		WindowStart:          window.start,
		WindowEnd:            window.end,
	}

	overview, err := h.overview.Overview(ctx, q)
	if err != nil {
		if ctx.Err() != nil {
			// Client went away; nothing useful to write.
			return
		}
		h.logger.ErrorContext(ctx, "overview query failed",
			"user_id", principal.UserID.String(),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

type window struct {
	start, end time.Time
}

func parseWindow(r *http.Request, now time.Time) (window, error) {
	q := r.URL.Query()

	start := startOfDay(now)
	if raw := q.Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return window{}, dErrors.New(dErrors.CodeBadRequest, "invalid 'from' timestamp")
		}
		start = parsed
	}

	end := start.AddDate(0, 0, 7)
	if raw := q.Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return window{}, dErrors.New(dErrors.CodeBadRequest, "invalid 'to' timestamp")
		}
		end = parsed
	}

	if end.Before(start) {
		return window{}, dErrors.New(dErrors.CodeBadRequest, "'to' cannot precede 'from'")
	}
	return window{start: start, end: end}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler produces the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": string(code),
	})
}
