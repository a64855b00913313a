// Package history retains de-identified traces of past recommendations and
// answers frequency analytics over them. It owns the history list
// exclusively; all reads and writes go through the injected Store.
package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/caseharbor/placement-cli/internal/model"
)

// DefaultRetention is the rolling window applied on every write.
const DefaultRetention = 30 * 24 * time.Hour

// Store is the persistence collaborator. Any durable key/value or document
// store satisfies it; failures are treated as non-fatal by the Recorder.
type Store interface {
	LoadHistory(ctx context.Context) ([]model.HistoryRecord, error)
	SaveHistory(ctx context.Context, records []model.HistoryRecord) error
	Close() error
}

// Recorder appends de-identified recommendation records and prunes the
// rolling retention window on every write. Writes are mutex-serialized so
// concurrent embeddings don't lose updates between the load and save steps.
type Recorder struct {
	store     Store
	retention time.Duration
	now       func() time.Time

	mu sync.Mutex
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithRetention overrides the rolling retention window.
func WithRetention(d time.Duration) RecorderOption {
	return func(r *Recorder) {
		if d > 0 {
			r.retention = d
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) RecorderOption {
	return func(r *Recorder) { r.now = now }
}

// NewRecorder creates a Recorder over the given store.
func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:     store,
		retention: DefaultRetention,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends a record for the given profile and ranked matches (top 5
// retained), then drops entries older than the retention window. A load
// failure is logged and treated as empty history so the write still lands.
func (r *Recorder) Record(ctx context.Context, profile *model.ClientProfile, matches []model.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.store.LoadHistory(ctx)
	if err != nil {
		zap.L().Warn("history: load failed, starting from empty",
			zap.Error(err),
		)
		records = nil
	}

	top := make([]model.TopMatch, 0, 5)
	for i, m := range matches {
		if i == 5 {
			break
		}
		top = append(top, model.TopMatch{ProgramID: m.Program.ID, Score: m.Score})
	}

	now := r.now().UTC()
	records = append(records, model.HistoryRecord{
		RecordedAt:  now,
		ProfileHash: ProfileHash(profile),
		TopMatches:  top,
	})

	cutoff := now.Add(-r.retention)
	kept := records[:0]
	for _, rec := range records {
		if rec.RecordedAt.After(cutoff) {
			kept = append(kept, rec)
		}
	}

	return r.store.SaveHistory(ctx, kept)
}

// PatternCount is one entry of the frequency analysis.
type PatternCount struct {
	ProgramID string `json:"program_id"`
	Count     int    `json:"count"`
}

// AnalyzePatterns aggregates how often each program id was recommended
// across retained history. Diagnostic only; it never feeds back into
// scoring weights.
func (r *Recorder) AnalyzePatterns(ctx context.Context) ([]PatternCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.store.LoadHistory(ctx)
	if err != nil {
		zap.L().Warn("history: load failed, reporting empty patterns",
			zap.Error(err),
		)
		return []PatternCount{}, nil
	}

	counts := map[string]int{}
	for _, rec := range records {
		for _, m := range rec.TopMatches {
			counts[m.ProgramID]++
		}
	}

	out := make([]PatternCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, PatternCount{ProgramID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].ProgramID < out[j].ProgramID
	})
	return out, nil
}
