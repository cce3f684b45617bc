package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aibrandtrack/brandtrack/internal/cache"
	"github.com/aibrandtrack/brandtrack/internal/store"
	"github.com/aibrandtrack/brandtrack/internal/visibility"
	"github.com/aibrandtrack/brandtrack/pkg/models"
	"github.com/aibrandtrack/brandtrack/pkg/urls"
)

const (
	jobStatusTTL = 30 * time.Minute
	trendsTTL    = 15 * time.Minute
)

// AnalyzeParams holds validated parameters for one brand analysis run.
type AnalyzeParams struct {
	TenantID    uuid.UUID
	URL         string
	CompanyName string
	Competitors []string
	Prompts     []string
}

// Service orchestrates brand analysis runs: it fans prompts out to every
// configured AI provider, aggregates the responses into competitor rankings,
// persists the result, and records a snapshot for trend tracking.
type Service struct {
	providers []models.AIProvider
	store     store.Store
	cache     cache.Cache
	timeout   time.Duration
}

// NewService creates a new tracking Service.
func NewService(providers []models.AIProvider, st store.Store, ca cache.Cache, timeout time.Duration) *Service {
	return &Service{
		providers: providers,
		store:     st,
		cache:     ca,
		timeout:   timeout,
	}
}

// TriggerAnalysis creates a pending job and dispatches the analysis run in a
// background goroutine. Returns the job immediately without waiting.
func (s *Service) TriggerAnalysis(ctx context.Context, params AnalyzeParams) (*models.Job, error) {
	if params.URL == "" {
		return nil, fmt.Errorf("invalid analysis request: url is required")
	}
	if params.CompanyName == "" {
		return nil, fmt.Errorf("invalid analysis request: company_name is required")
	}
	if len(params.Prompts) == 0 {
		params.Prompts = DefaultPrompts(params.CompanyName, "")
	}

	job := &models.Job{
		ID:        uuid.New(),
		TenantID:  params.TenantID,
		Type:      "brand_analysis",
		Status:    models.JobStatusPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	_ = s.cache.SetJobStatus(ctx, job.ID, models.JobStatusPending, jobStatusTTL)

	go s.runAnalysis(params, job.ID)

	return job, nil
}

// runAnalysis performs the actual provider fan-out in a goroutine.
// It recovers from panics and always marks the job as completed or failed.
func (s *Service) runAnalysis(params AnalyzeParams, jobID uuid.UUID) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in runAnalysis", "error", r, "job_id", jobID)
			_ = s.store.UpdateJobStatus(ctx, jobID, models.JobStatusFailed,
				store.WithErrorMessage(fmt.Sprintf("panic: %v", r)))
			_ = s.cache.SetJobStatus(ctx, jobID, models.JobStatusFailed, jobStatusTTL)
		}
	}()

	_ = s.store.UpdateJobStatus(ctx, jobID, models.JobStatusRunning)
	_ = s.cache.SetJobStatus(ctx, jobID, models.JobStatusRunning, jobStatusTTL)

	responses := s.collectResponses(ctx, params)
	if len(responses) == 0 {
		_ = s.store.UpdateJobStatus(ctx, jobID, models.JobStatusFailed,
			store.WithErrorMessage("all providers failed"))
		_ = s.cache.SetJobStatus(ctx, jobID, models.JobStatusFailed, jobStatusTTL)
		return
	}

	analysis := &models.BrandAnalysis{
		ID:          uuid.New(),
		TenantID:    params.TenantID,
		URL:         params.URL,
		CompanyName: params.CompanyName,
		Competitors: visibility.BuildRankings(responses, params.CompanyName, params.Competitors),
		Responses:   responses,
		CreatedAt:   time.Now().UTC(),
	}

	// Cross-check the aggregate against per-provider recomputation. Findings
	// are logged, never blocking: a warning-level inconsistency should not
	// discard an otherwise usable run.
	result := visibility.ValidateAnalysis(analysis.Competitors, s.perProviderRankings(params, responses), responses)
	if !result.IsValid {
		slog.Error("analysis failed consistency validation", "job_id", jobID, "errors", result.Errors)
	}
	for _, w := range result.Warnings {
		slog.Warn("analysis consistency warning", "job_id", jobID, "warning", w)
	}

	if err := s.SaveAnalysis(ctx, analysis); err != nil {
		_ = s.store.UpdateJobStatus(ctx, jobID, models.JobStatusFailed,
			store.WithErrorMessage(fmt.Sprintf("storing analysis: %v", err)))
		_ = s.cache.SetJobStatus(ctx, jobID, models.JobStatusFailed, jobStatusTTL)
		return
	}

	_ = s.store.UpdateJobStatus(ctx, jobID, models.JobStatusCompleted,
		store.WithAnalysisID(analysis.ID))
	_ = s.cache.SetJobStatus(ctx, jobID, models.JobStatusCompleted, jobStatusTTL)
}

// collectResponses asks every provider every prompt concurrently. Individual
// provider failures are logged and dropped; the run proceeds with whatever
// answered.
func (s *Service) collectResponses(ctx context.Context, params AnalyzeParams) []models.AIResponse {
	type item struct {
		provider models.AIProvider
		prompt   string
	}

	items := make([]item, 0, len(s.providers)*len(params.Prompts))
	for _, p := range s.providers {
		for _, prompt := range params.Prompts {
			items = append(items, item{provider: p, prompt: prompt})
		}
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		responses = make([]models.AIResponse, 0, len(items))
	)
	for _, it := range items {
		wg.Add(1)
		go func(it item) {
			defer wg.Done()

			askCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			text, err := it.provider.Ask(askCtx, it.prompt)
			if err != nil {
				slog.Warn("provider request failed",
					"provider", it.provider.Name(), "error", err)
				return
			}

			resp := Annotate(it.provider.Name(), it.prompt, text, params.CompanyName)

			mu.Lock()
			responses = append(responses, resp)
			mu.Unlock()
		}(it)
	}
	wg.Wait()

	return responses
}

// perProviderRankings recomputes rankings from each provider's responses alone.
func (s *Service) perProviderRankings(params AnalyzeParams, responses []models.AIResponse) map[string][]models.CompetitorRanking {
	grouped := make(map[string][]models.AIResponse)
	for _, r := range responses {
		grouped[r.Provider] = append(grouped[r.Provider], r)
	}

	byProvider := make(map[string][]models.CompetitorRanking, len(grouped))
	for provider, rs := range grouped {
		byProvider[provider] = visibility.BuildRankings(rs, params.CompanyName, params.Competitors)
	}
	return byProvider
}

// SaveAnalysis persists the analysis and records a trend snapshot. Snapshot
// recording is best-effort: a failure there never fails the save.
func (s *Service) SaveAnalysis(ctx context.Context, analysis *models.BrandAnalysis) error {
	if err := s.store.CreateAnalysis(ctx, analysis); err != nil {
		return fmt.Errorf("creating analysis: %w", err)
	}

	metrics, err := visibility.ExtractSnapshotMetrics(analysis, analysis.CompanyName)
	if err != nil {
		slog.Warn("skipping snapshot", "analysis_id", analysis.ID, "error", err)
		return nil
	}

	snapshot := &models.Snapshot{
		ID:              uuid.New(),
		AnalysisID:      analysis.ID,
		VisibilityScore: metrics.VisibilityScore,
		SentimentScore:  metrics.SentimentScore,
		ShareOfVoice:    metrics.ShareOfVoice,
		AveragePosition: metrics.AveragePosition,
		Rank:            metrics.Rank,
		SnapshotDate:    analysis.CreatedAt,
	}
	if err := s.store.CreateSnapshot(ctx, snapshot); err != nil {
		slog.Warn("storing snapshot failed", "analysis_id", analysis.ID, "error", err)
		return nil
	}

	// New data point invalidates any cached trend series for this URL.
	_ = s.cache.Delete(ctx, cache.TrendsKey(analysis.TenantID, urls.Normalize(analysis.URL)))

	return nil
}

// AnalysisResult is a stored analysis enriched with brand-strength scores
// recomputed on read and a fresh consistency check.
type AnalysisResult struct {
	Analysis   *models.BrandAnalysis           `json:"analysis"`
	Strengths  map[string]models.BrandStrength `json:"strengths"`
	Validation models.ValidationResult         `json:"validation"`
}

// Result loads an analysis and recomputes derived scores. Strength scores are
// never stored; they always derive from the persisted rankings.
func (s *Service) Result(ctx context.Context, id, tenantID uuid.UUID) (*AnalysisResult, error) {
	analysis, err := s.store.GetAnalysis(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	strengths, err := visibility.CalculateAll(analysis.Competitors)
	if err != nil {
		return nil, fmt.Errorf("calculating strengths: %w", err)
	}

	var competitors []string
	for _, c := range analysis.Competitors {
		if !c.IsOwn {
			competitors = append(competitors, c.Name)
		}
	}
	byProvider := s.perProviderRankings(AnalyzeParams{
		CompanyName: analysis.CompanyName,
		Competitors: competitors,
	}, analysis.Responses)

	return &AnalysisResult{
		Analysis:   analysis,
		Strengths:  strengths,
		Validation: visibility.ValidateAnalysis(analysis.Competitors, byProvider, analysis.Responses),
	}, nil
}

// TrendsParams filters the snapshot series feeding trend calculation.
type TrendsParams struct {
	TenantID uuid.UUID
	URL      string
	Start    time.Time
	End      time.Time
}

// Trends assembles the snapshot history for a tracked URL and computes
// newest-vs-oldest movement per metric. Unfiltered results are served from
// cache when available.
func (s *Service) Trends(ctx context.Context, params TrendsParams) (*models.Trends, error) {
	if params.URL == "" {
		return nil, fmt.Errorf("invalid trends request: url is required")
	}

	unfiltered := params.Start.IsZero() && params.End.IsZero()
	key := cache.TrendsKey(params.TenantID, urls.Normalize(params.URL))

	if unfiltered {
		if raw, found, err := s.cache.Get(ctx, key); err == nil && found {
			var cached models.Trends
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	analysisIDs, err := s.analysisIDsForURL(ctx, params.TenantID, params.URL)
	if err != nil {
		return nil, err
	}
	if len(analysisIDs) == 0 {
		return &models.Trends{HasData: false}, nil
	}

	snapshots, err := s.store.ListSnapshots(ctx, store.SnapshotFilter{
		AnalysisIDs: analysisIDs,
		Start:       params.Start,
		End:         params.End,
	})
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}

	series := make([]models.Snapshot, len(snapshots))
	for i, sn := range snapshots {
		series[i] = *sn
	}
	trends := visibility.CalculateTrends(series)

	if unfiltered {
		if raw, err := json.Marshal(trends); err == nil {
			_ = s.cache.Set(ctx, key, raw, trendsTTL)
		}
	}

	return &trends, nil
}

// analysisIDsForURL collects every analysis of the tenant whose stored URL
// matches the requested one after normalization.
func (s *Service) analysisIDsForURL(ctx context.Context, tenantID uuid.UUID, url string) ([]uuid.UUID, error) {
	const pageSize = 100

	var ids []uuid.UUID
	for page := 1; ; page++ {
		analyses, total, err := s.store.ListAnalyses(ctx, store.AnalysisFilter{
			TenantID: tenantID,
			Page:     page,
			Limit:    pageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("listing analyses: %w", err)
		}
		for _, a := range analyses {
			if urls.Match(a.URL, url) {
				ids = append(ids, a.ID)
			}
		}
		if page*pageSize >= total || len(analyses) == 0 {
			break
		}
	}
	return ids, nil
}
