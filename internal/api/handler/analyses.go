package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mw "github.com/aibrandtrack/brandtrack/internal/api/middleware"
	"github.com/aibrandtrack/brandtrack/internal/api/response"
	"github.com/aibrandtrack/brandtrack/internal/store"
	"github.com/aibrandtrack/brandtrack/internal/tracking"
	"github.com/aibrandtrack/brandtrack/pkg/models"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	maxCompetitors   = 10
	maxPrompts       = 10
)

// AnalysisTrigger defines the interface the create handler depends on.
type AnalysisTrigger interface {
	TriggerAnalysis(ctx context.Context, params tracking.AnalyzeParams) (*models.Job, error)
}

// NewCreateAnalysisHandler returns an http.HandlerFunc for POST /api/v1/analyses.
// The analysis runs asynchronously; the response carries the job to poll.
func NewCreateAnalysisHandler(svc AnalysisTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		var req struct {
			URL         string   `json:"url"`
			CompanyName string   `json:"company_name"`
			Competitors []string `json:"competitors"`
			Prompts     []string `json:"prompts"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if req.URL == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "url is required", nil)
			return
		}
		if req.CompanyName == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "company_name is required", nil)
			return
		}
		if len(req.Competitors) > maxCompetitors {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "too many competitors", nil)
			return
		}
		if len(req.Prompts) > maxPrompts {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "too many prompts", nil)
			return
		}

		job, err := svc.TriggerAnalysis(r.Context(), tracking.AnalyzeParams{
			TenantID:    tenantID,
			URL:         req.URL,
			CompanyName: req.CompanyName,
			Competitors: req.Competitors,
			Prompts:     req.Prompts,
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start analysis", nil)
			return
		}

		response.Accepted(w, job)
	}
}

// NewPollJobHandler returns an http.HandlerFunc for GET /api/v1/analyses/jobs/{jobID}.
func NewPollJobHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "jobID must be a valid UUID", nil)
			return
		}

		job, err := st.GetJob(r.Context(), jobID, tenantID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Job not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch job", nil)
			return
		}

		response.JSON(w, job)
	}
}

// NewListAnalysesHandler returns an http.HandlerFunc for GET /api/v1/analyses.
func NewListAnalysesHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		page := queryInt(r, "page", 1)
		if page < 1 {
			page = 1
		}
		limit := queryInt(r, "limit", defaultPageLimit)
		if limit < 1 || limit > maxPageLimit {
			limit = defaultPageLimit
		}

		analyses, total, err := st.ListAnalyses(r.Context(), store.AnalysisFilter{
			TenantID: tenantID,
			URL:      r.URL.Query().Get("url"),
			Page:     page,
			Limit:    limit,
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list analyses", nil)
			return
		}

		response.Collection(w, analyses, response.PaginationMeta{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasNext: page*limit < total,
		})
	}
}

// ResultGetter defines the interface the result handler depends on.
type ResultGetter interface {
	Result(ctx context.Context, id, tenantID uuid.UUID) (*tracking.AnalysisResult, error)
}

// NewGetResultHandler returns an http.HandlerFunc for
// GET /api/v1/analyses/{analysisID}/result.
func NewGetResultHandler(svc ResultGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		analysisID, err := uuid.Parse(chi.URLParam(r, "analysisID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "analysisID must be a valid UUID", nil)
			return
		}

		result, err := svc.Result(r.Context(), analysisID, tenantID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Analysis not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch analysis", nil)
			return
		}

		response.JSON(w, result)
	}
}

// NewDeleteAnalysisHandler returns an http.HandlerFunc for
// DELETE /api/v1/analyses/{analysisID}.
func NewDeleteAnalysisHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := mw.GetTenantID(r)
		if !ok {
			response.Error(w, http.StatusUnauthorized, "INVALID_TOKEN", "Missing tenant", nil)
			return
		}

		analysisID, err := uuid.Parse(chi.URLParam(r, "analysisID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "analysisID must be a valid UUID", nil)
			return
		}

		if err := st.DeleteAnalysis(r.Context(), analysisID, tenantID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Analysis not found", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete analysis", nil)
			return
		}

		response.NoContent(w)
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
