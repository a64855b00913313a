package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caseharbor/placement-cli/internal/model"
)

func ageProfile(age int) *model.ClientProfile {
	return &model.ClientProfile{Criteria: model.Criteria{Age: &age}}
}

func TestAge(t *testing.T) {
	adolescent := &model.AgeRange{Min: 12, Max: 18}

	t.Run("not applicable without age", func(t *testing.T) {
		got := Age(&model.ClientProfile{}, &model.Program{AgeRange: adolescent})
		assert.False(t, got.Applicable)
	})

	tests := []struct {
		name string
		age  int
		want float64
	}{
		{"inside range", 16, 1.0},
		{"at min bound", 12, 1.0},
		{"at max bound", 18, 1.0},
		{"one below min", 11, 0.7},
		{"one above max", 19, 0.7},
		{"two below min", 10, 0},
		{"well above max", 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Age(ageProfile(tt.age), &model.Program{AgeRange: adolescent})
			assert.True(t, got.Applicable)
			assert.InDelta(t, tt.want, got.Value, 0.001)
		})
	}

	t.Run("unresolvable range scores neutral 0.5", func(t *testing.T) {
		got := Age(ageProfile(16), &model.Program{Description: "a quiet campus"})
		assert.True(t, got.Applicable)
		assert.InDelta(t, 0.5, got.Value, 0.001)
	})
}

func TestResolveAgeRange(t *testing.T) {
	tests := []struct {
		name string
		prog model.Program
		want *model.AgeRange
	}{
		{"explicit field wins", model.Program{
			AgeRange:    &model.AgeRange{Min: 14, Max: 17},
			Description: "ages 10-25",
		}, &model.AgeRange{Min: 14, Max: 17}},
		{"ages X-Y pattern", model.Program{
			Description: "Serving ages 12-18 in a residential setting",
		}, &model.AgeRange{Min: 12, Max: 18}},
		{"X to Y years pattern", model.Program{
			Description: "admits clients 13 to 17 years old",
		}, &model.AgeRange{Min: 13, Max: 17}},
		{"parenthesized pattern", model.Program{
			Description: "adolescents (13-17) welcome",
		}, &model.AgeRange{Min: 13, Max: 17}},
		{"adolescent keyword", model.Program{
			Description: "an adolescent treatment center",
		}, &model.AgeRange{Min: 12, Max: 18}},
		{"young adult keyword", model.Program{
			Description: "young adult transitional living",
		}, &model.AgeRange{Min: 18, Max: 25}},
		{"adult keyword", model.Program{
			Description: "adult outpatient services",
		}, &model.AgeRange{Min: 18, Max: 99}},
		{"nothing resolvable", model.Program{
			Description: "a working farm",
		}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveAgeRange(&tt.prog)
			assert.Equal(t, tt.want, got)
		})
	}
}
