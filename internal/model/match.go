package model

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Factor names used as breakdown keys.
const (
	FactorInsurance = "insurance"
	FactorLocation  = "location"
	FactorServices  = "services"
	FactorAge       = "age"
	FactorGender    = "gender"
)

// FactorScore is a single factor's sub-score. A factor is either applicable
// with a value in [0,1], or not applicable because the profile supplied no
// relevant criterion. Not-applicable is distinct from a computed 0, which
// means the criterion was present but poorly matched.
type FactorScore struct {
	Value      float64
	Applicable bool
}

// Applicable returns an applicable FactorScore with the given value.
func Applicable(v float64) FactorScore {
	return FactorScore{Value: v, Applicable: true}
}

// NotApplicable is the sentinel for factors with no relevant criterion.
var NotApplicable = FactorScore{}

const notApplicableJSON = `"not_applicable"`

// MarshalJSON emits the numeric sub-score, or "not_applicable".
func (f FactorScore) MarshalJSON() ([]byte, error) {
	if !f.Applicable {
		return []byte(notApplicableJSON), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON accepts either a number or the "not_applicable" sentinel.
func (f *FactorScore) UnmarshalJSON(data []byte) error {
	if string(data) == notApplicableJSON {
		*f = NotApplicable
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return eris.Wrap(err, "model: unmarshal factor score")
	}
	*f = Applicable(v)
	return nil
}

// MatchResult is the outcome of scoring one program against one profile.
type MatchResult struct {
	Score      int                    `json:"score"`
	Breakdown  map[string]FactorScore `json:"breakdown"`
	Confidence int                    `json:"confidence"`
}

// Recommendation pairs a program with its match result for ranked output.
type Recommendation struct {
	Program    Program                `json:"program"`
	Score      int                    `json:"score"`
	Breakdown  map[string]FactorScore `json:"breakdown"`
	Confidence int                    `json:"confidence"`
}

// Insight is a human-readable observation about a result set.
type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Alternative is an actionable suggestion for widening a search. Action
// carries a machine-usable payload (e.g. the expanded radius) when the
// suggestion is parameterized.
type Alternative struct {
	Type       string  `json:"type"`
	Suggestion string  `json:"suggestion"`
	Action     float64 `json:"action,omitempty"`
}

// RecommendationBundle is the full output of a recommendation call.
type RecommendationBundle struct {
	Matches      []Recommendation `json:"matches"`
	Insights     []Insight        `json:"insights"`
	Alternatives []Alternative    `json:"alternatives"`
}
