package matcher

import (
	"math"
	"strings"

	"github.com/caseharbor/placement-cli/internal/model"
)

// criticalServices boost the services score when present among the matched
// requests. Each contributes +0.1 once.
var criticalServices = []string{"dbt", "trauma", "substance", "eating disorder", "self-harm"}

// Services scores coverage of the profile's required services against the
// program's combined specialties and features pool.
func Services(p *model.ClientProfile, prog *model.Program) model.FactorScore {
	required := p.Criteria.RequiredServices
	if len(required) == 0 {
		return model.NotApplicable
	}

	pool := make([]string, 0, len(prog.Specialties)+len(prog.Features))
	for _, s := range prog.Specialties {
		pool = append(pool, strings.ToLower(s))
	}
	for _, f := range prog.Features {
		pool = append(pool, strings.ToLower(f))
	}
	if len(pool) == 0 {
		return model.Applicable(0)
	}

	var matched []string
	for _, req := range required {
		r := strings.ToLower(strings.TrimSpace(req))
		if r == "" {
			continue
		}
		for _, item := range pool {
			if strings.Contains(item, r) || strings.Contains(r, item) {
				matched = append(matched, r)
				break
			}
		}
	}

	score := float64(len(matched)) / float64(len(required))

	for _, kw := range criticalServices {
		for _, m := range matched {
			if strings.Contains(m, kw) {
				score += 0.1
				break
			}
		}
	}

	return model.Applicable(math.Min(score, 1.0))
}
