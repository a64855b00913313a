package engine

import (
	"fmt"
	"strings"

	"github.com/caseharbor/placement-cli/internal/model"
)

// Alternative types.
const (
	AlternativeExpandRadius   = "expand_radius"
	AlternativePrivatePay     = "private_pay"
	AlternativeRelatedService = "related_service"
)

// strongScoreThreshold marks a result strong enough that no wider search
// is suggested for it.
const strongScoreThreshold = 70

// alternatives proposes search adjustments when the ranked results look
// thin.
func (e *Engine) alternatives(p *model.ClientProfile, ranked []model.Recommendation) []model.Alternative {
	out := []model.Alternative{}

	strong := 0
	for _, r := range ranked {
		if r.Score > strongScoreThreshold {
			strong++
		}
	}
	if strong < 5 {
		radius := p.Criteria.Location.MaxRadiusMiles
		if radius <= 0 {
			radius = model.DefaultMaxRadiusMiles
		}
		expanded := radius + e.expansion
		out = append(out, model.Alternative{
			Type:       AlternativeExpandRadius,
			Suggestion: fmt.Sprintf("Expand the search radius from %.0f to %.0f miles.", radius, expanded),
			Action:     expanded,
		})
	}

	if len(p.Criteria.Insurance) > 0 {
		overlap := false
		for _, r := range ranked {
			if fs, ok := r.Breakdown[model.FactorInsurance]; ok && fs.Applicable && fs.Value > 0 {
				overlap = true
				break
			}
		}
		if !overlap {
			out = append(out, model.Alternative{
				Type:       AlternativePrivatePay,
				Suggestion: "No program accepts the requested insurance; enable private-pay-inclusive search.",
			})
		}
	}

	for _, svc := range p.Criteria.RequiredServices {
		if strings.EqualFold(strings.TrimSpace(svc), "dbt") {
			out = append(out, model.Alternative{
				Type:       AlternativeRelatedService,
				Suggestion: "Programs offering CBT may also fit; consider adding CBT as an accepted service.",
			})
			break
		}
	}

	return out
}
