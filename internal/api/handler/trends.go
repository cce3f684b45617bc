package handler

import (
	"context"
	"net/http"
	"time"

	mw "github.com/aibrandtrack/brandtrack/internal/api/middleware"
	"github.com/aibrandtrack/brandtrack/internal/api/response"
	"github.com/aibrandtrack/brandtrack/internal/tracking"
	"github.com/aibrandtrack/brandtrack/pkg/models"
)

// Trender defines the interface the trends handler depends on.
type Trender interface {
	Trends(ctx context.Context, params tracking.TrendsParams) (*models.Trends, error)
}

// NewTrendsHandler returns an http.HandlerFunc for GET /api/v1/trends.
// Query parameters: url (required), start, end (optional RFC3339 bounds).
func NewTrendsHandler(svc Trender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		q := r.URL.Query()
		url := q.Get("url")
		if url == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "url is required", nil)
			return
		}

		var start, end time.Time
		var err error
		if raw := q.Get("start"); raw != "" {
			start, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "start must be a valid RFC3339 timestamp", nil)
				return
			}
		}
		if raw := q.Get("end"); raw != "" {
			end, err = time.Parse(time.RFC3339, raw)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "end must be a valid RFC3339 timestamp", nil)
				return
			}
		}
		if !start.IsZero() && !end.IsZero() && end.Before(start) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "end must not precede start", nil)
			return
		}

		trends, err := svc.Trends(r.Context(), tracking.TrendsParams{
			TenantID: tenantID,
			URL:      url,
			Start:    start,
			End:      end,
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute trends", nil)
			return
		}

		response.JSON(w, trends)
	}
}
