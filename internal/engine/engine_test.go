package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseharbor/placement-cli/internal/geo"
	"github.com/caseharbor/placement-cli/internal/model"
)

func intp(v int) *int { return &v }

// fullProfile exercises all five factors.
func fullProfile() *model.ClientProfile {
	return &model.ClientProfile{
		ID: "client-1",
		Criteria: model.Criteria{
			Age:              intp(16),
			Gender:           "male",
			Insurance:        []string{"Private"},
			RequiredServices: []string{"DBT"},
			Location: model.LocationCriteria{
				PostalCode:     "02134",
				MaxRadiusMiles: 50,
			},
			ExcludePrograms: []string{},
		},
	}
}

// candidateA is a perfect match for fullProfile.
func candidateA() model.Program {
	return model.Program{
		ID:           "prog-a",
		Name:         "Riverbend Academy",
		Insurance:    []string{"Private"},
		Specialties:  []string{"DBT"},
		AgeRange:     &model.AgeRange{Min: 12, Max: 18},
		GenderServed: "male",
		Coordinates:  &model.Coordinates{Lat: 42.3550, Lng: -71.1324},
	}
}

// candidateB lacks DBT and sits roughly 200 miles away.
func candidateB() model.Program {
	return model.Program{
		ID:           "prog-b",
		Name:         "Far Hills Ranch",
		Insurance:    []string{"Private"},
		Specialties:  []string{"equine therapy"},
		AgeRange:     &model.AgeRange{Min: 12, Max: 18},
		GenderServed: "male",
		Coordinates:  &model.Coordinates{Lat: 40.7506, Lng: -73.9971}, // NYC
	}
}

func newTestEngine() *Engine {
	return New(geo.NewStatic(nil), nil)
}

func TestWeightsValidate(t *testing.T) {
	assert.NoError(t, DefaultWeights().Validate())

	bad := DefaultWeights()
	bad.Insurance = -0.1
	assert.Error(t, bad.Validate())

	skewed := Weights{Insurance: 0.5, Location: 0.5, Services: 0.5}
	assert.Error(t, skewed.Validate())
}

func TestScore_PerfectMatchScenario(t *testing.T) {
	e := newTestEngine()
	a := candidateA()
	got := e.Score(fullProfile(), &a)

	assert.Equal(t, 100, got.Score)
	assert.GreaterOrEqual(t, got.Confidence, 90)
	for _, factor := range []string{
		model.FactorInsurance, model.FactorLocation, model.FactorServices,
		model.FactorAge, model.FactorGender,
	} {
		fs := got.Breakdown[factor]
		require.True(t, fs.Applicable, factor)
		assert.InDelta(t, 1.0, fs.Value, 0.001, factor)
	}
}

func TestScore_WeakMatchScenario(t *testing.T) {
	e := newTestEngine()
	a, b := candidateA(), candidateB()

	scoreA := e.Score(fullProfile(), &a)
	scoreB := e.Score(fullProfile(), &b)

	assert.Equal(t, 0.0, scoreB.Breakdown[model.FactorLocation].Value)
	assert.Equal(t, 0.0, scoreB.Breakdown[model.FactorServices].Value)
	assert.Greater(t, scoreA.Score, scoreB.Score+30, "A should be materially stronger than B")
}

func TestScore_RangeInvariants(t *testing.T) {
	e := newTestEngine()
	profiles := []*model.ClientProfile{
		fullProfile(),
		{ID: "empty", Criteria: model.Criteria{}},
		{ID: "partial", Criteria: model.Criteria{Gender: "female"}},
	}
	a, b := candidateA(), candidateB()
	programs := []*model.Program{&a, &b, {ID: "bare"}}

	for _, p := range profiles {
		for _, prog := range programs {
			got := e.Score(p, prog)
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 100)
			assert.GreaterOrEqual(t, got.Confidence, 0)
			assert.LessOrEqual(t, got.Confidence, 100)
		}
	}
}

func TestScore_ExclusionForcesZero(t *testing.T) {
	e := newTestEngine()
	p := fullProfile()
	p.Criteria.ExcludePrograms = []string{"prog-a"}

	a := candidateA()
	got := e.Score(p, &a)

	assert.Equal(t, 0, got.Score)
	// Breakdown stays intact for transparency.
	assert.InDelta(t, 1.0, got.Breakdown[model.FactorInsurance].Value, 0.001)
	assert.Greater(t, got.Confidence, 0)
}

func TestScore_NoApplicableFactors(t *testing.T) {
	e := newTestEngine()
	got := e.Score(&model.ClientProfile{ID: "empty"}, &model.Program{ID: "x"})

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, 0, got.Confidence)
	for _, fs := range got.Breakdown {
		assert.False(t, fs.Applicable)
	}
}

func TestScore_IdenticalSubScoresConfidence100(t *testing.T) {
	e := newTestEngine()
	a := candidateA()
	got := e.Score(fullProfile(), &a)
	// All five sub-scores identical (1.0): variance 0, completeness 1.
	assert.Equal(t, 100, got.Confidence)
}

func TestScore_PartialProfileLowersConfidence(t *testing.T) {
	e := newTestEngine()
	p := &model.ClientProfile{
		ID:       "partial",
		Criteria: model.Criteria{Insurance: []string{"Private"}},
	}
	a := candidateA()
	got := e.Score(p, &a)
	// One applicable factor: consistency 1.0, completeness 1/5.
	assert.Equal(t, 76, got.Confidence)
}

// panicResolver simulates a collaborator blowing up on malformed data.
type panicResolver struct{}

func (panicResolver) Resolve(string) (model.Coordinates, bool) {
	panic("bad coordinate table")
}

func TestScore_MatcherPanicIsolated(t *testing.T) {
	e := New(panicResolver{}, nil)
	a := candidateA()
	got := e.Score(fullProfile(), &a)

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, 0, got.Confidence)
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   int
	}{
		{"no applicable factors", nil, 0},
		{"all identical full set", []float64{1, 1, 1, 1, 1}, 100},
		{"identical zeros still consistent", []float64{0, 0, 0, 0, 0}, 100},
		{"single factor", []float64{1}, 76},
		{"maximum spread", []float64{0, 1}, 47},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, confidence(tt.values))
		})
	}
}
