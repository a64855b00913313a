// Package profile normalizes raw, loosely-shaped client input into a
// canonical ClientProfile. Building never fails: absent or malformed
// fields simply reduce how many factors later apply.
package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/caseharbor/placement-cli/internal/model"
)

// FromRaw builds a ClientProfile from decoded JSON-ish input. Every list
// field defaults to empty (never nil), the location radius defaults to 50
// miles, and a UUID id is generated when none is supplied.
func FromRaw(raw map[string]any) *model.ClientProfile {
	p := &model.ClientProfile{
		ID:        stringVal(raw, "id"),
		Template:  stringVal(raw, "template"),
		CreatedAt: time.Now().UTC(),
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	criteria := mapVal(raw, "criteria")
	p.Criteria = model.Criteria{
		Age:              intPtr(criteria, "age"),
		Gender:           stringVal(criteria, "gender"),
		Insurance:        stringList(criteria, "insurance"),
		Diagnoses:        stringList(criteria, "diagnoses"),
		RequiredServices: stringList(criteria, "required_services"),
		LevelOfCare:      stringList(criteria, "level_of_care"),
		SpecialNeeds:     stringList(criteria, "special_needs"),
		ExcludePrograms:  stringList(criteria, "exclude_programs"),
	}

	location := mapVal(criteria, "location")
	p.Criteria.Location = model.LocationCriteria{
		PostalCode:     stringVal(location, "postal_code"),
		MaxRadiusMiles: floatVal(location, "max_radius_miles"),
	}
	if p.Criteria.Location.MaxRadiusMiles <= 0 {
		p.Criteria.Location.MaxRadiusMiles = model.DefaultMaxRadiusMiles
	}

	prefs := mapVal(raw, "preferences")
	p.Preferences = model.Preferences{
		ProgramSize: stringVal(prefs, "program_size"),
		Setting:     stringVal(prefs, "setting"),
		Philosophy:  stringList(prefs, "philosophy"),
		Amenities:   stringList(prefs, "amenities"),
	}

	return p
}

func mapVal(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return nil
}

func stringVal(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// intPtr coerces ints arriving as JSON float64, native int, or an
// explicit nil into an optional int.
func intPtr(m map[string]any, key string) *int {
	if m == nil {
		return nil
	}
	switch v := m[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		n := v
		return &n
	default:
		return nil
	}
}

func floatVal(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// stringList coerces a []any of strings into []string. Anything not
// list-shaped yields an empty, non-nil slice; non-string elements are
// dropped.
func stringList(m map[string]any, key string) []string {
	out := []string{}
	if m == nil {
		return out
	}
	items, ok := m[key].([]any)
	if !ok {
		if ss, ok := m[key].([]string); ok {
			return append(out, ss...)
		}
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
