package matcher

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/caseharbor/placement-cli/internal/model"
)

// Free-text age range patterns, tried in order: "ages 12-18",
// "12 to 17 years", "adolescents (13-17)".
var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`ages?\s+(\d{1,2})\s*[-–]\s*(\d{1,2})`),
	regexp.MustCompile(`(\d{1,2})\s+to\s+(\d{1,2})\s+years`),
	regexp.MustCompile(`\(\s*(\d{1,2})\s*[-–]\s*(\d{1,2})\s*\)`),
}

// ageKeywords map population keywords to conventional ranges. Ordered so
// "young adult" wins over the "adult" substring.
var ageKeywords = []struct {
	keyword string
	min     int
	max     int
}{
	{"adolescent", 12, 18},
	{"young adult", 18, 25},
	{"adult", 18, 99},
}

// Age scores whether the profile's age falls in the program's served range.
// A program whose range cannot be resolved at all scores a neutral 0.5
// rather than being penalized.
func Age(p *model.ClientProfile, prog *model.Program) model.FactorScore {
	if p.Criteria.Age == nil {
		return model.NotApplicable
	}

	r := resolveAgeRange(prog)
	if r == nil {
		return model.Applicable(0.5)
	}

	age := *p.Criteria.Age
	switch {
	case age >= r.Min && age <= r.Max:
		return model.Applicable(1.0)
	case age >= r.Min-1 && age <= r.Max+1:
		return model.Applicable(0.7)
	default:
		return model.Applicable(0)
	}
}

// resolveAgeRange resolves the program's served age range: explicit field
// first, then free-text patterns, then population keywords.
func resolveAgeRange(prog *model.Program) *model.AgeRange {
	if prog.AgeRange != nil {
		return prog.AgeRange
	}

	text := strings.ToLower(prog.Name + " " + prog.Description)

	for _, re := range agePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			lo, err1 := strconv.Atoi(m[1])
			hi, err2 := strconv.Atoi(m[2])
			if err1 == nil && err2 == nil && lo <= hi {
				return &model.AgeRange{Min: lo, Max: hi}
			}
		}
	}

	for _, kw := range ageKeywords {
		if strings.Contains(text, kw.keyword) {
			return &model.AgeRange{Min: kw.min, Max: kw.max}
		}
	}

	return nil
}
