package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caseharbor/placement-cli/internal/model"
)

func profileWithInsurance(ins ...string) *model.ClientProfile {
	return &model.ClientProfile{Criteria: model.Criteria{Insurance: ins}}
}

func TestInsurance(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		offered   []string
		want      float64
	}{
		{"exact match", []string{"Aetna"}, []string{"Aetna"}, 1.0},
		{"normalized match", []string{"Blue Cross Insurance"}, []string{"BlueCross"}, 1.0},
		{"half covered", []string{"Aetna", "Cigna"}, []string{"Aetna"}, 0.5},
		{"full coverage two of two", []string{"Aetna", "Cigna"}, []string{"Cigna", "Aetna", "Medicaid"}, 1.0},
		{"no overlap", []string{"Medicaid"}, []string{"Aetna"}, 0},
		{"substring containment", []string{"Blue Cross"}, []string{"Blue Cross Blue Shield"}, 1.0},
		{"private floor", []string{"Private"}, []string{"Private Pay"}, 1.0},
		{"empty offered list", []string{"Aetna"}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := profileWithInsurance(tt.requested...)
			prog := &model.Program{ID: "prog-1", Insurance: tt.offered}
			got := Insurance(p, prog)
			assert.True(t, got.Applicable)
			assert.InDelta(t, tt.want, got.Value, 0.001)
		})
	}

	t.Run("not applicable without requested insurance", func(t *testing.T) {
		got := Insurance(profileWithInsurance(), &model.Program{Insurance: []string{"Aetna"}})
		assert.False(t, got.Applicable)
	})

	t.Run("private floor applies at 0.8 when fraction misses", func(t *testing.T) {
		// Two requested, only the private mention is fuzzy: fraction would
		// be 0.5 but the private special case floors it at 0.8.
		p := profileWithInsurance("Private", "Medicaid")
		prog := &model.Program{Insurance: []string{"Private insurance accepted"}}
		got := Insurance(p, prog)
		assert.True(t, got.Applicable)
		assert.InDelta(t, 0.8, got.Value, 0.001)
	})
}

func TestNormalizeInsurance(t *testing.T) {
	assert.Equal(t, "bluecross", normalizeInsurance("Blue Cross Insurance"))
	assert.Equal(t, "private", normalizeInsurance("Private Insurance"))
	assert.Equal(t, "aetna", normalizeInsurance("  Aetna!  "))
	assert.Equal(t, "", normalizeInsurance("Insurance"))
}
