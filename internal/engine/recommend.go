package engine

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/caseharbor/placement-cli/internal/history"
	"github.com/caseharbor/placement-cli/internal/model"
)

// Recommend scores every candidate, ranks the results and returns the
// truncated bundle with insights and alternative-search suggestions
// computed over the full pre-truncation set. The top matches are recorded
// in history; a history failure is logged and never blocks delivery.
func (e *Engine) Recommend(ctx context.Context, p *model.ClientProfile, candidates []model.Program, limit int) *model.RecommendationBundle {
	if limit <= 0 {
		limit = e.defaultLimit
	}

	ranked := make([]model.Recommendation, 0, len(candidates))
	for i := range candidates {
		prog := &candidates[i]
		mr := e.Score(p, prog)
		ranked = append(ranked, model.Recommendation{
			Program:    *prog,
			Score:      mr.Score,
			Breakdown:  mr.Breakdown,
			Confidence: mr.Confidence,
		})
	}

	// Deterministic order: score desc, then confidence desc, then id asc.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].Program.ID < ranked[j].Program.ID
	})

	matches := ranked
	if len(matches) > limit {
		matches = matches[:limit]
	}

	bundle := &model.RecommendationBundle{
		Matches:      matches,
		Insights:     e.insights(p, ranked),
		Alternatives: e.alternatives(p, ranked),
	}

	if e.recorder != nil {
		if err := e.recorder.Record(ctx, p, matches); err != nil {
			zap.L().Warn("engine: history record failed",
				zap.String("profile_id", p.ID),
				zap.Error(err),
			)
		}
	}

	zap.L().Info("engine: recommendation complete",
		zap.String("profile_id", p.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(matches)),
	)

	return bundle
}

// AnalyzePatterns reports frequency counts of recommended program ids
// across retained history.
func (e *Engine) AnalyzePatterns(ctx context.Context) ([]history.PatternCount, error) {
	if e.recorder == nil {
		return []history.PatternCount{}, nil
	}
	return e.recorder.AnalyzePatterns(ctx)
}
