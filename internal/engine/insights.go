package engine

import (
	"fmt"

	"github.com/caseharbor/placement-cli/internal/geo"
	"github.com/caseharbor/placement-cli/internal/model"
)

// Insight types.
const (
	InsightDistance        = "distance"
	InsightLimitedCoverage = "limited_coverage"
	InsightPartialServices = "partial_services"
)

// topWindow caps how many ranked results feed the distance insight.
const topWindow = 10

// insights runs the heuristic, order-independent checks over the full
// ranked result set.
func (e *Engine) insights(p *model.ClientProfile, ranked []model.Recommendation) []model.Insight {
	out := []model.Insight{}
	if len(ranked) == 0 {
		return out
	}

	if ins := e.distanceInsight(p, ranked); ins != nil {
		out = append(out, *ins)
	}

	if len(p.Criteria.Insurance) > 0 {
		covered := 0
		for _, r := range ranked {
			if fs, ok := r.Breakdown[model.FactorInsurance]; ok && fs.Applicable && fs.Value > 0.5 {
				covered++
			}
		}
		if covered*2 < len(ranked) {
			out = append(out, model.Insight{
				Type:    InsightLimitedCoverage,
				Message: "Insurance coverage is limited across matching programs; consider including private pay options.",
			})
		}
	}

	if len(p.Criteria.RequiredServices) > 0 {
		perfect := false
		for _, r := range ranked {
			if fs, ok := r.Breakdown[model.FactorServices]; ok && fs.Applicable && fs.Value >= 1.0 {
				perfect = true
				break
			}
		}
		if !perfect {
			out = append(out, model.Insight{
				Type:    InsightPartialServices,
				Message: "No program fully matches the required services; showing the best partial matches.",
			})
		}
	}

	return out
}

// distanceInsight reports the mean distance of the top matches that carry
// location data, when at least 3 do.
func (e *Engine) distanceInsight(p *model.ClientProfile, ranked []model.Recommendation) *model.Insight {
	if p.Criteria.Location.PostalCode == "" {
		return nil
	}
	origin, _ := e.resolver.Resolve(p.Criteria.Location.PostalCode)

	var total float64
	var n int
	for i, r := range ranked {
		if i == topWindow {
			break
		}
		if r.Program.Coordinates == nil {
			continue
		}
		total += geo.HaversineMiles(origin, *r.Program.Coordinates)
		n++
	}
	if n < 3 {
		return nil
	}

	return &model.Insight{
		Type:    InsightDistance,
		Message: fmt.Sprintf("Top matches average %.0f miles from the client's area.", total/float64(n)),
	}
}
