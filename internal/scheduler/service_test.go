package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aibrandtrack/brandtrack/internal/store"
	"github.com/aibrandtrack/brandtrack/internal/tracking"
	"github.com/aibrandtrack/brandtrack/pkg/models"
)

type mockStore struct {
	store.Store
	latest  []*models.BrandAnalysis
	listErr error
}

func (m *mockStore) ListLatestAnalyses(_ context.Context) ([]*models.BrandAnalysis, error) {
	return m.latest, m.listErr
}

type mockTrigger struct {
	calls []tracking.AnalyzeParams
	err   error
}

func (m *mockTrigger) TriggerAnalysis(_ context.Context, params tracking.AnalyzeParams) (*models.Job, error) {
	m.calls = append(m.calls, params)
	if m.err != nil {
		return nil, m.err
	}
	return &models.Job{ID: uuid.New(), Status: models.JobStatusPending}, nil
}

func trackedAnalysis(tenantID uuid.UUID, url string) *models.BrandAnalysis {
	return &models.BrandAnalysis{
		ID:          uuid.New(),
		TenantID:    tenantID,
		URL:         url,
		CompanyName: "Acme Corp",
		Competitors: []models.CompetitorRanking{
			{Name: "Acme Corp", IsOwn: true},
			{Name: "Globex"},
			{Name: "Initech"},
		},
		Responses: []models.AIResponse{
			{Provider: "openai", Prompt: "What are the best CRM tools?"},
			{Provider: "anthropic", Prompt: "What are the best CRM tools?"},
			{Provider: "openai", Prompt: "Alternatives to Acme Corp?"},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestRunTrackedAnalyses_TriggersPerBrand(t *testing.T) {
	tenantID := uuid.New()
	ms := &mockStore{latest: []*models.BrandAnalysis{
		trackedAnalysis(tenantID, "https://www.acme.com"),
		trackedAnalysis(tenantID, "https://www.globex.com"),
	}}
	trigger := &mockTrigger{}

	svc := NewService("daily", ms, trigger)
	svc.runTrackedAnalyses()

	if len(trigger.calls) != 2 {
		t.Fatalf("expected 2 triggered analyses, got %d", len(trigger.calls))
	}

	params := trigger.calls[0]
	if params.CompanyName != "Acme Corp" {
		t.Errorf("company = %s", params.CompanyName)
	}
	if len(params.Competitors) != 2 {
		t.Errorf("expected 2 competitors (own brand excluded), got %v", params.Competitors)
	}
	if len(params.Prompts) != 2 {
		t.Errorf("expected 2 distinct prompts, got %v", params.Prompts)
	}
}

func TestRunTrackedAnalyses_DedupesNormalizedURLs(t *testing.T) {
	tenantID := uuid.New()
	ms := &mockStore{latest: []*models.BrandAnalysis{
		trackedAnalysis(tenantID, "https://www.acme.com"),
		trackedAnalysis(tenantID, "ACME.com/pricing"),
	}}
	trigger := &mockTrigger{}

	svc := NewService("daily", ms, trigger)
	svc.runTrackedAnalyses()

	if len(trigger.calls) != 1 {
		t.Fatalf("expected URL variants to collapse to 1 trigger, got %d", len(trigger.calls))
	}
}

func TestRunTrackedAnalyses_SameURLAcrossTenants(t *testing.T) {
	ms := &mockStore{latest: []*models.BrandAnalysis{
		trackedAnalysis(uuid.New(), "https://www.acme.com"),
		trackedAnalysis(uuid.New(), "https://www.acme.com"),
	}}
	trigger := &mockTrigger{}

	svc := NewService("weekly", ms, trigger)
	svc.runTrackedAnalyses()

	if len(trigger.calls) != 2 {
		t.Fatalf("expected separate triggers per tenant, got %d", len(trigger.calls))
	}
}

func TestRunTrackedAnalyses_ListError(t *testing.T) {
	ms := &mockStore{listErr: errors.New("db offline")}
	trigger := &mockTrigger{}

	svc := NewService("daily", ms, trigger)
	svc.runTrackedAnalyses()

	if len(trigger.calls) != 0 {
		t.Fatalf("expected no triggers on list failure, got %d", len(trigger.calls))
	}
}

func TestStart_Off(t *testing.T) {
	svc := NewService("off", &mockStore{}, &mockTrigger{})
	if err := svc.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.Stop()
}

func TestStart_Daily(t *testing.T) {
	svc := NewService("daily", &mockStore{}, &mockTrigger{})
	if err := svc.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc.Stop()
}
