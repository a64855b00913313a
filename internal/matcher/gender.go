package matcher

import (
	"strings"

	"github.com/caseharbor/placement-cli/internal/model"
)

// Gender scores the program's served gender against the profile. Exact
// match 1.0, co-ed 0.9, resolvable mismatch 0, unresolvable 0.5.
func Gender(p *model.ClientProfile, prog *model.Program) model.FactorScore {
	want := normalizeGender(p.Criteria.Gender)
	if want == "" {
		return model.NotApplicable
	}

	served := resolveGenderServed(prog)
	switch served {
	case "":
		return model.Applicable(0.5)
	case "all":
		return model.Applicable(0.9)
	case want:
		return model.Applicable(1.0)
	default:
		return model.Applicable(0)
	}
}

// normalizeGender maps common spellings to "male", "female" or "".
func normalizeGender(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "boy", "boys", "man", "men":
		return "male"
	case "female", "f", "girl", "girls", "woman", "women":
		return "female"
	case "":
		return ""
	default:
		// Unrecognized self-description: keep it as-is so an exact match
		// against an identical program field still scores 1.0.
		return strings.ToLower(strings.TrimSpace(s))
	}
}

// resolveGenderServed resolves who a program serves from its explicit field
// or free-text heuristics. Returns "male", "female", "all" or "" when
// unresolvable. "female"/"girls" is checked before "male"/"boys" because of
// the substring overlap.
func resolveGenderServed(prog *model.Program) string {
	if g := prog.GenderServed; g != "" {
		switch n := normalizeGender(g); n {
		case "male", "female":
			return n
		}
		lower := strings.ToLower(g)
		if strings.Contains(lower, "co-ed") || strings.Contains(lower, "coed") || strings.Contains(lower, "all") {
			return "all"
		}
	}

	text := strings.ToLower(prog.Name + " " + prog.Description)
	switch {
	case strings.Contains(text, "co-ed"), strings.Contains(text, "coed"), strings.Contains(text, "all genders"):
		return "all"
	case strings.Contains(text, "girls"), strings.Contains(text, "female"), strings.Contains(text, "women"):
		return "female"
	case strings.Contains(text, "boys"), strings.Contains(text, "male"), strings.Contains(text, "men"):
		return "male"
	default:
		return ""
	}
}
