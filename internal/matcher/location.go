package matcher

import (
	"math"

	"github.com/caseharbor/placement-cli/internal/geo"
	"github.com/caseharbor/placement-cli/internal/model"
)

// Location scores proximity of a program to the profile's resolved postal
// code. Beyond the profile's radius the score is a hard 0; inside it the
// score decays exponentially with normalized distance.
func Location(p *model.ClientProfile, prog *model.Program, resolver geo.Resolver, decay float64) model.FactorScore {
	if p.Criteria.Location.PostalCode == "" || prog.Coordinates == nil {
		return model.NotApplicable
	}

	origin, _ := resolver.Resolve(p.Criteria.Location.PostalCode)

	radius := p.Criteria.Location.MaxRadiusMiles
	if radius <= 0 {
		radius = model.DefaultMaxRadiusMiles
	}

	d := geo.HaversineMiles(origin, *prog.Coordinates)
	if d > radius {
		return model.Applicable(0)
	}
	return model.Applicable(math.Exp(-(d / radius) * decay))
}
