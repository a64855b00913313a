// Package geo provides postal-code coordinate resolution and great-circle
// distance for the matching engine. Resolution is an in-memory lookup by
// design; a real geocoding service can be substituted behind Resolver
// without touching scoring logic.
package geo

import (
	"strings"

	"go.uber.org/zap"

	"github.com/caseharbor/placement-cli/internal/model"
)

// Resolver resolves a postal code to coordinates. The second return value
// reports whether the resolution was an exact match (false means a
// fallback centroid was used).
type Resolver interface {
	Resolve(postalCode string) (model.Coordinates, bool)
}

// usCentroid is the fallback when a postal code is not in the table.
var usCentroid = model.Coordinates{Lat: 39.8283, Lng: -98.5795}

// zipTable covers the postal codes seen in the program directory's service
// areas. Unlisted codes fall back to the US centroid.
var zipTable = map[string]model.Coordinates{
	"02134": {Lat: 42.3550, Lng: -71.1324}, // Allston, MA
	"02138": {Lat: 42.3801, Lng: -71.1250}, // Cambridge, MA
	"02215": {Lat: 42.3473, Lng: -71.1030}, // Boston, MA
	"03301": {Lat: 43.2081, Lng: -71.5376}, // Concord, NH
	"04101": {Lat: 43.6615, Lng: -70.2553}, // Portland, ME
	"05401": {Lat: 44.4759, Lng: -73.2121}, // Burlington, VT
	"06511": {Lat: 41.3083, Lng: -72.9279}, // New Haven, CT
	"10001": {Lat: 40.7506, Lng: -73.9971}, // New York, NY
	"19103": {Lat: 39.9526, Lng: -75.1652}, // Philadelphia, PA
	"20001": {Lat: 38.9109, Lng: -77.0163}, // Washington, DC
	"30303": {Lat: 33.7537, Lng: -84.3901}, // Atlanta, GA
	"33101": {Lat: 25.7743, Lng: -80.1937}, // Miami, FL
	"55401": {Lat: 44.9833, Lng: -93.2690}, // Minneapolis, MN
	"60601": {Lat: 41.8858, Lng: -87.6229}, // Chicago, IL
	"73301": {Lat: 30.2672, Lng: -97.7431}, // Austin, TX
	"80202": {Lat: 39.7525, Lng: -104.9995}, // Denver, CO
	"84101": {Lat: 40.7608, Lng: -111.8910}, // Salt Lake City, UT
	"85001": {Lat: 33.4484, Lng: -112.0740}, // Phoenix, AZ
	"90210": {Lat: 34.0901, Lng: -118.4065}, // Beverly Hills, CA
	"94102": {Lat: 37.7793, Lng: -122.4193}, // San Francisco, CA
	"97201": {Lat: 45.5080, Lng: -122.6850}, // Portland, OR
	"98101": {Lat: 47.6101, Lng: -122.3344}, // Seattle, WA
}

// Static resolves postal codes from the built-in table with a US-centroid
// fallback. Extra entries can be layered on top of the table.
type Static struct {
	overrides map[string]model.Coordinates
}

// NewStatic creates a Static resolver. The overrides map may be nil; when
// present its entries take precedence over the built-in table.
func NewStatic(overrides map[string]model.Coordinates) *Static {
	return &Static{overrides: overrides}
}

// Resolve implements Resolver.
func (s *Static) Resolve(postalCode string) (model.Coordinates, bool) {
	code := strings.TrimSpace(postalCode)
	if c, ok := s.overrides[code]; ok {
		return c, true
	}
	if c, ok := zipTable[code]; ok {
		return c, true
	}
	zap.L().Debug("geo: postal code not in table, using centroid",
		zap.String("postal_code", code),
	)
	return usCentroid, false
}
