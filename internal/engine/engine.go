// Package engine combines the factor matchers into weighted match scores
// and ranked recommendations. An Engine instance owns its configuration
// (weights, decay constant) and injected collaborators, so multiple
// independently configured engines can coexist in one process.
package engine

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/caseharbor/placement-cli/internal/config"
	"github.com/caseharbor/placement-cli/internal/geo"
	"github.com/caseharbor/placement-cli/internal/history"
	"github.com/caseharbor/placement-cli/internal/matcher"
	"github.com/caseharbor/placement-cli/internal/model"
)

// factorCount is the number of factors feeding the completeness term of
// the confidence estimate.
const factorCount = 5

// Weights holds the per-factor scoring weights. They must sum to 1.
type Weights struct {
	Insurance float64
	Location  float64
	Services  float64
	Age       float64
	Gender    float64
}

// DefaultWeights returns the standard factor weighting.
func DefaultWeights() Weights {
	return Weights{
		Insurance: 0.30,
		Location:  0.25,
		Services:  0.25,
		Age:       0.10,
		Gender:    0.10,
	}
}

// WeightsFromConfig maps the matching config onto Weights.
func WeightsFromConfig(cfg config.MatchingConfig) Weights {
	return Weights{
		Insurance: cfg.InsuranceWeight,
		Location:  cfg.LocationWeight,
		Services:  cfg.ServicesWeight,
		Age:       cfg.AgeWeight,
		Gender:    cfg.GenderWeight,
	}
}

// Sum returns the total of all factor weights.
func (w Weights) Sum() float64 {
	return w.Insurance + w.Location + w.Services + w.Age + w.Gender
}

func (w Weights) of(factor string) float64 {
	switch factor {
	case model.FactorInsurance:
		return w.Insurance
	case model.FactorLocation:
		return w.Location
	case model.FactorServices:
		return w.Services
	case model.FactorAge:
		return w.Age
	case model.FactorGender:
		return w.Gender
	default:
		return 0
	}
}

// Validate checks that weights are non-negative and sum to 1 within
// floating-point tolerance.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"insurance": w.Insurance,
		"location":  w.Location,
		"services":  w.Services,
		"age":       w.Age,
		"gender":    w.Gender,
	} {
		if v < 0 {
			return eris.Errorf("engine: %s weight must be >= 0", name)
		}
	}
	if math.Abs(w.Sum()-1) > 0.01 {
		return eris.Errorf("engine: weights should sum to 1, got %.3f", w.Sum())
	}
	return nil
}

// Engine scores program candidates against client profiles. It holds no
// per-call state; the only side effect it triggers is the history write
// during Recommend.
type Engine struct {
	weights      Weights
	decay        float64
	defaultLimit int
	expansion    float64
	resolver     geo.Resolver
	recorder     *history.Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithWeights overrides the factor weights.
func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// WithDistanceDecay overrides the location decay constant.
func WithDistanceDecay(decay float64) Option {
	return func(e *Engine) {
		if decay > 0 {
			e.decay = decay
		}
	}
}

// WithDefaultLimit overrides the default recommendation limit.
func WithDefaultLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.defaultLimit = n
		}
	}
}

// WithRadiusExpansion overrides the radius increment suggested by the
// alternative-search generator.
func WithRadiusExpansion(miles float64) Option {
	return func(e *Engine) {
		if miles > 0 {
			e.expansion = miles
		}
	}
}

// New creates an Engine with default weights, decay 0.5 and limit 10.
// The recorder may be nil when history retention is disabled.
func New(resolver geo.Resolver, recorder *history.Recorder, opts ...Option) *Engine {
	e := &Engine{
		weights:      DefaultWeights(),
		decay:        0.5,
		defaultLimit: 10,
		expansion:    25,
		resolver:     resolver,
		recorder:     recorder,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromConfig creates an Engine configured from the matching config.
func NewFromConfig(cfg config.MatchingConfig, resolver geo.Resolver, recorder *history.Recorder) (*Engine, error) {
	w := WeightsFromConfig(cfg)
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return New(resolver, recorder,
		WithWeights(w),
		WithDistanceDecay(cfg.DistanceDecay),
		WithDefaultLimit(cfg.DefaultResultLimit),
		WithRadiusExpansion(cfg.RadiusExpansionMiles),
	), nil
}

// Score runs all five factor matchers for one candidate and combines the
// applicable sub-scores into a weighted [0,100] score plus a confidence
// estimate. When no factor is applicable the score is 0 (confidence 0
// already marks the result as uninformative). An excluded program id
// forces the score to 0 while the breakdown is still reported for
// transparency. A panicking matcher (e.g. malformed candidate data) is
// isolated to this candidate as score 0 / confidence 0.
func (e *Engine) Score(p *model.ClientProfile, prog *model.Program) (result model.MatchResult) {
	if prog == nil {
		return model.MatchResult{Breakdown: map[string]model.FactorScore{}}
	}
	defer func() {
		if r := recover(); r != nil {
			zap.L().Warn("engine: matcher panic isolated",
				zap.String("program_id", prog.ID),
				zap.Any("panic", r),
			)
			result = model.MatchResult{
				Score:      0,
				Confidence: 0,
				Breakdown:  map[string]model.FactorScore{},
			}
		}
	}()

	breakdown := map[string]model.FactorScore{
		model.FactorInsurance: matcher.Insurance(p, prog),
		model.FactorLocation:  matcher.Location(p, prog, e.resolver, e.decay),
		model.FactorServices:  matcher.Services(p, prog),
		model.FactorAge:       matcher.Age(p, prog),
		model.FactorGender:    matcher.Gender(p, prog),
	}

	var weightSum, weighted float64
	var values []float64
	for factor, fs := range breakdown {
		if !fs.Applicable {
			continue
		}
		w := e.weights.of(factor)
		weightSum += w
		weighted += w * fs.Value
		values = append(values, fs.Value)
	}

	score := 0
	if weightSum > 0 {
		score = int(math.Round(100 * weighted / weightSum))
	}
	if p.Excludes(prog.ID) {
		score = 0
	}

	return model.MatchResult{
		Score:      score,
		Breakdown:  breakdown,
		Confidence: confidence(values),
	}
}

// confidence blends cross-factor consistency (70%) with criteria
// completeness (30%) into a [0,100] estimate.
func confidence(values []float64) int {
	if len(values) == 0 {
		return 0
	}

	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	consistency := 1 - math.Sqrt(variance)
	completeness := float64(len(values)) / factorCount

	c := int(math.Round(100 * (0.7*consistency + 0.3*completeness)))
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
