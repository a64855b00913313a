package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caseharbor/placement-cli/internal/model"
)

func servicesProfile(required ...string) *model.ClientProfile {
	return &model.ClientProfile{Criteria: model.Criteria{RequiredServices: required}}
}

func TestServices(t *testing.T) {
	t.Run("not applicable without required services", func(t *testing.T) {
		got := Services(servicesProfile(), &model.Program{Specialties: []string{"CBT"}})
		assert.False(t, got.Applicable)
	})

	t.Run("empty service pool scores 0", func(t *testing.T) {
		got := Services(servicesProfile("CBT"), &model.Program{})
		assert.True(t, got.Applicable)
		assert.Equal(t, 0.0, got.Value)
	})

	tests := []struct {
		name        string
		required    []string
		specialties []string
		features    []string
		want        float64
	}{
		{"plain full match", []string{"CBT"}, []string{"CBT"}, nil, 1.0},
		{"case insensitive", []string{"cbt"}, []string{"CBT Therapy"}, nil, 1.0},
		{"feature pool counts", []string{"equine"}, nil, []string{"Equine therapy"}, 1.0},
		{"half matched", []string{"CBT", "music therapy"}, []string{"CBT"}, nil, 0.5},
		{"no match", []string{"music therapy"}, []string{"CBT"}, nil, 0},
		{"critical bonus clamped at 1", []string{"DBT"}, []string{"DBT"}, nil, 1.0},
		{"critical bonus lifts partial", []string{"trauma therapy", "music"}, []string{"Trauma"}, nil, 0.6},
		{"bidirectional containment", []string{"residential treatment program"}, []string{"residential treatment"}, nil, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := &model.Program{Specialties: tt.specialties, Features: tt.features}
			got := Services(servicesProfile(tt.required...), prog)
			assert.True(t, got.Applicable)
			assert.InDelta(t, tt.want, got.Value, 0.001)
		})
	}

	t.Run("two critical keywords add 0.2", func(t *testing.T) {
		p := servicesProfile("DBT", "trauma care", "yoga", "art")
		prog := &model.Program{Specialties: []string{"DBT", "trauma"}}
		got := Services(p, prog)
		// 2/4 matched = 0.5, +0.1 dbt +0.1 trauma = 0.7
		assert.InDelta(t, 0.7, got.Value, 0.001)
	})
}
