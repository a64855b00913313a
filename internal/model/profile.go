package model

import "time"

// ClientProfile is the normalized representation of a care-seeker's needs
// and constraints. List fields are always non-nil so matchers never branch
// on nil vs. empty.
type ClientProfile struct {
	ID          string      `json:"id"`
	Criteria    Criteria    `json:"criteria"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"created_at"`
	Template    string      `json:"template,omitempty"`
}

// Criteria holds the hard matching constraints of a profile.
type Criteria struct {
	Age              *int             `json:"age,omitempty"`
	Gender           string           `json:"gender,omitempty"`
	Insurance        []string         `json:"insurance"`
	Diagnoses        []string         `json:"diagnoses"`
	RequiredServices []string         `json:"required_services"`
	Location         LocationCriteria `json:"location"`
	LevelOfCare      []string         `json:"level_of_care"`
	SpecialNeeds     []string         `json:"special_needs"`
	ExcludePrograms  []string         `json:"exclude_programs"`
}

// LocationCriteria holds the geographic constraint of a profile.
type LocationCriteria struct {
	PostalCode     string  `json:"postal_code,omitempty"`
	MaxRadiusMiles float64 `json:"max_radius_miles"`
}

// DefaultMaxRadiusMiles is applied when a profile supplies no radius.
const DefaultMaxRadiusMiles = 50

// Preferences holds soft preferences that do not affect scoring directly
// but travel with the profile for downstream display.
type Preferences struct {
	ProgramSize string   `json:"program_size,omitempty"`
	Setting     string   `json:"setting,omitempty"`
	Philosophy  []string `json:"philosophy"`
	Amenities   []string `json:"amenities"`
}

// Excludes reports whether the profile explicitly excludes the given
// program id.
func (p *ClientProfile) Excludes(programID string) bool {
	for _, id := range p.Criteria.ExcludePrograms {
		if id == programID {
			return true
		}
	}
	return false
}
