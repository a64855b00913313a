package matcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caseharbor/placement-cli/internal/geo"
	"github.com/caseharbor/placement-cli/internal/model"
)

const testDecay = 0.5

// coordAtMiles returns a coordinate due north of origin at the given
// great-circle distance.
func coordAtMiles(origin model.Coordinates, miles float64) model.Coordinates {
	return model.Coordinates{
		Lat: origin.Lat + (miles/3959.0)*180.0/math.Pi,
		Lng: origin.Lng,
	}
}

func locationProfile(postal string, radius float64) *model.ClientProfile {
	return &model.ClientProfile{Criteria: model.Criteria{
		Location: model.LocationCriteria{PostalCode: postal, MaxRadiusMiles: radius},
	}}
}

func TestLocation(t *testing.T) {
	resolver := geo.NewStatic(nil)
	origin, _ := resolver.Resolve("02134")

	t.Run("not applicable without postal code", func(t *testing.T) {
		got := Location(locationProfile("", 50), &model.Program{Coordinates: &origin}, resolver, testDecay)
		assert.False(t, got.Applicable)
	})

	t.Run("not applicable without program coordinates", func(t *testing.T) {
		got := Location(locationProfile("02134", 50), &model.Program{}, resolver, testDecay)
		assert.False(t, got.Applicable)
	})

	t.Run("zero distance scores 1.0", func(t *testing.T) {
		got := Location(locationProfile("02134", 50), &model.Program{Coordinates: &origin}, resolver, testDecay)
		assert.True(t, got.Applicable)
		assert.InDelta(t, 1.0, got.Value, 0.001)
	})

	t.Run("at radius scores exp(-0.5)", func(t *testing.T) {
		// A hair inside the boundary to stay off the > comparison edge.
		c := coordAtMiles(origin, 50*0.99999)
		got := Location(locationProfile("02134", 50), &model.Program{Coordinates: &c}, resolver, testDecay)
		assert.True(t, got.Applicable)
		assert.InDelta(t, math.Exp(-0.5), got.Value, 0.001)
	})

	t.Run("beyond radius scores exactly 0", func(t *testing.T) {
		c := coordAtMiles(origin, 51)
		got := Location(locationProfile("02134", 50), &model.Program{Coordinates: &c}, resolver, testDecay)
		assert.True(t, got.Applicable)
		assert.Equal(t, 0.0, got.Value)
	})

	t.Run("zero radius falls back to default 50", func(t *testing.T) {
		c := coordAtMiles(origin, 40)
		got := Location(locationProfile("02134", 0), &model.Program{Coordinates: &c}, resolver, testDecay)
		assert.True(t, got.Applicable)
		assert.InDelta(t, math.Exp(-(40.0/50.0)*0.5), got.Value, 0.001)
	})

	t.Run("halfway scores exp(-0.25)", func(t *testing.T) {
		c := coordAtMiles(origin, 25)
		got := Location(locationProfile("02134", 50), &model.Program{Coordinates: &c}, resolver, testDecay)
		assert.True(t, got.Applicable)
		assert.InDelta(t, math.Exp(-0.25), got.Value, 0.001)
	})
}
