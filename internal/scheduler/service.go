// Package scheduler re-runs brand analyses on a fixed cadence so snapshot
// history accumulates without manual triggers.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/aibrandtrack/brandtrack/internal/store"
	"github.com/aibrandtrack/brandtrack/internal/tracking"
	"github.com/aibrandtrack/brandtrack/pkg/models"
	"github.com/aibrandtrack/brandtrack/pkg/urls"
)

// AnalysisTrigger starts one analysis run.
type AnalysisTrigger interface {
	TriggerAnalysis(ctx context.Context, params tracking.AnalyzeParams) (*models.Job, error)
}

// Service schedules periodic re-analysis of every tracked brand.
type Service struct {
	schedule string
	store    store.Store
	tracker  AnalysisTrigger
	cron     *cron.Cron
}

// NewService creates a scheduler. Schedule is "daily", "weekly", or "off".
func NewService(schedule string, st store.Store, tracker AnalysisTrigger) *Service {
	return &Service{
		schedule: schedule,
		store:    st,
		tracker:  tracker,
		cron:     cron.New(),
	}
}

// Start registers the tracking job and begins the cron loop.
// With schedule "off" it does nothing.
func (s *Service) Start() error {
	var expr string
	switch s.schedule {
	case "daily":
		// Run daily at 6 AM UTC
		expr = "0 6 * * *"
	case "weekly":
		// Run weekly on Monday at 6 AM UTC
		expr = "0 6 * * MON"
	case "off":
		slog.Info("scheduled tracking disabled")
		return nil
	default:
		expr = "0 6 * * *"
	}

	if _, err := s.cron.AddFunc(expr, s.runTrackedAnalyses); err != nil {
		return err
	}

	s.cron.Start()
	slog.Info("scheduler started", "schedule", s.schedule)
	return nil
}

// Stop stops the cron loop. Running jobs finish on their own.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		slog.Info("scheduler stopped")
	}
}

// runTrackedAnalyses re-triggers one analysis per tracked URL, using the
// latest stored analysis of each URL as the template. Duplicate URLs across
// tenants stay separate; duplicates within a tenant collapse to the newest.
func (s *Service) runTrackedAnalyses() {
	ctx := context.Background()

	latest, err := s.store.ListLatestAnalyses(ctx)
	if err != nil {
		slog.Error("scheduled run: listing tracked brands failed", "error", err)
		return
	}

	slog.Info("scheduled tracking run", "tracked_brands", len(latest))

	type seenKey struct {
		tenant string
		url    string
	}
	seen := make(map[seenKey]bool, len(latest))

	for _, analysis := range latest {
		k := seenKey{tenant: analysis.TenantID.String(), url: urls.Normalize(analysis.URL)}
		if seen[k] {
			continue
		}
		seen[k] = true

		_, err := s.tracker.TriggerAnalysis(ctx, tracking.AnalyzeParams{
			TenantID:    analysis.TenantID,
			URL:         analysis.URL,
			CompanyName: analysis.CompanyName,
			Competitors: competitorNames(analysis),
			Prompts:     promptsFrom(analysis),
		})
		if err != nil {
			slog.Error("scheduled re-analysis failed to start",
				"url", analysis.URL, "tenant_id", analysis.TenantID, "error", err)
		}
	}
}

// competitorNames recovers the competitor list from a stored analysis.
func competitorNames(analysis *models.BrandAnalysis) []string {
	var names []string
	for _, c := range analysis.Competitors {
		if !c.IsOwn {
			names = append(names, c.Name)
		}
	}
	return names
}

// promptsFrom recovers the distinct prompts a previous run asked, so the
// scheduled re-run measures the same questions.
func promptsFrom(analysis *models.BrandAnalysis) []string {
	seen := make(map[string]bool)
	var prompts []string
	for _, r := range analysis.Responses {
		if r.Prompt == "" || seen[r.Prompt] {
			continue
		}
		seen[r.Prompt] = true
		prompts = append(prompts, r.Prompt)
	}
	return prompts
}
