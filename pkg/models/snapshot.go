package models

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is one append-only time-series row capturing the subject
// brand's metrics at the moment an analysis was saved. Immutable once
// written; deleted only by cascade with the parent analysis.
type Snapshot struct {
	ID              uuid.UUID `db:"id"               json:"id"`
	AnalysisID      uuid.UUID `db:"analysis_id"      json:"analysis_id"`
	VisibilityScore float64   `db:"visibility_score" json:"visibility_score"`
	SentimentScore  float64   `db:"sentiment_score"  json:"sentiment_score"`
	ShareOfVoice    float64   `db:"share_of_voice"   json:"share_of_voice"`
	AveragePosition float64   `db:"average_position" json:"average_position"`
	Rank            int       `db:"rank"             json:"rank"`
	SnapshotDate    time.Time `db:"snapshot_date"    json:"snapshot_date"`
}

// SnapshotMetrics is the point-in-time metric set extracted from a full
// analysis before persisting a Snapshot.
type SnapshotMetrics struct {
	VisibilityScore float64 `json:"visibility_score"`
	SentimentScore  float64 `json:"sentiment_score"`
	ShareOfVoice    float64 `json:"share_of_voice"`
	AveragePosition float64 `json:"average_position"`
	Rank            int     `json:"rank"`
}

// TrendDirection is the sign of a metric's movement across snapshots.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// MetricTrend is the movement of one metric between the oldest and newest
// snapshot in range.
type MetricTrend struct {
	Direction TrendDirection `json:"direction"`
	Delta     float64        `json:"delta"`
	Percent   float64        `json:"percent"`
}

// Trends summarizes metric movement across a snapshot sequence. HasData is
// false when fewer than two snapshots were available; the per-metric
// fields are zero in that case.
type Trends struct {
	HasData         bool        `json:"has_data"`
	SampleCount     int         `json:"sample_count"`
	Visibility      MetricTrend `json:"visibility"`
	Sentiment       MetricTrend `json:"sentiment"`
	ShareOfVoice    MetricTrend `json:"share_of_voice"`
	AveragePosition MetricTrend `json:"average_position"`
	Rank            MetricTrend `json:"rank"`
}
