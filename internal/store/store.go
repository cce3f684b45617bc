package store

import (
	"context"
	"errors"
	"time"

	"github.com/aibrandtrack/brandtrack/pkg/models"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("resource not found")
var ErrDuplicateKey = errors.New("duplicate key violation")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error
	GetDefaultTenant(ctx context.Context) (*models.Tenant, error)

	GetAPIKeyByPrefix(ctx context.Context, prefix string) ([]*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id uuid.UUID) error
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	ListAPIKeys(ctx context.Context, tenantID uuid.UUID) ([]*models.APIKey, error)
	RevokeAPIKey(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error

	CreateAnalysis(ctx context.Context, analysis *models.BrandAnalysis) error
	GetAnalysis(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*models.BrandAnalysis, error)
	ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]*models.BrandAnalysis, int, error)
	// ListLatestAnalyses returns, per (tenant, url), the most recent
	// analysis. Used by the scheduler to re-run tracked brands.
	ListLatestAnalyses(ctx context.Context) ([]*models.BrandAnalysis, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) error

	// CreateSnapshot appends one immutable time-series row. Rows are never
	// updated; repeated saves for the same analysis simply append.
	CreateSnapshot(ctx context.Context, snapshot *models.Snapshot) error
	// ListSnapshots returns snapshots for the given analyses, newest
	// first, optionally bounded by an inclusive date range.
	ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]*models.Snapshot, error)

	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id uuid.UUID, tenantID uuid.UUID) (*models.Job, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status string, opts ...JobUpdateOption) error
}

type AnalysisFilter struct {
	TenantID uuid.UUID
	URL      string
	Page     int
	Limit    int
}

type SnapshotFilter struct {
	AnalysisIDs []uuid.UUID
	Start       time.Time
	End         time.Time
}

type jobUpdateParams struct {
	ErrorMessage *string
	AnalysisID   *uuid.UUID
}

type JobUpdateOption func(*jobUpdateParams)

func WithErrorMessage(msg string) JobUpdateOption {
	return func(p *jobUpdateParams) {
		p.ErrorMessage = &msg
	}
}

func WithAnalysisID(id uuid.UUID) JobUpdateOption {
	return func(p *jobUpdateParams) {
		p.AnalysisID = &id
	}
}
