package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caseharbor/placement-cli/internal/model"
)

func TestHaversineMiles(t *testing.T) {
	// Austin -> Dallas is roughly 182 miles.
	d := HaversineMiles(
		model.Coordinates{Lat: 30.2672, Lng: -97.7431},
		model.Coordinates{Lat: 32.7767, Lng: -96.7970},
	)
	assert.InDelta(t, 182, d, 5)

	// Same point.
	assert.InDelta(t, 0, HaversineMiles(
		model.Coordinates{Lat: 30, Lng: -97},
		model.Coordinates{Lat: 30, Lng: -97},
	), 0.001)
}

func TestStaticResolve(t *testing.T) {
	r := NewStatic(nil)

	t.Run("exact table hit", func(t *testing.T) {
		c, exact := r.Resolve("02134")
		assert.True(t, exact)
		assert.InDelta(t, 42.3550, c.Lat, 0.001)
		assert.InDelta(t, -71.1324, c.Lng, 0.001)
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		c, exact := r.Resolve(" 02134 ")
		assert.True(t, exact)
		assert.InDelta(t, 42.3550, c.Lat, 0.001)
	})

	t.Run("unknown code falls back to centroid", func(t *testing.T) {
		c, exact := r.Resolve("99999")
		assert.False(t, exact)
		assert.InDelta(t, 39.8283, c.Lat, 0.001)
		assert.InDelta(t, -98.5795, c.Lng, 0.001)
	})

	t.Run("overrides take precedence", func(t *testing.T) {
		o := NewStatic(map[string]model.Coordinates{
			"02134": {Lat: 1, Lng: 2},
		})
		c, exact := o.Resolve("02134")
		assert.True(t, exact)
		assert.Equal(t, model.Coordinates{Lat: 1, Lng: 2}, c)
	})
}
