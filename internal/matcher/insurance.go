// Package matcher implements the five independent factor sub-scorers.
// Each returns a FactorScore that is either applicable with a value in
// [0,1] or not applicable when the profile supplies no relevant criterion.
//
// Insurance and services use bidirectional substring containment over
// normalized strings. That is deliberately fuzzy and a known false-positive
// source for short acronym collisions; the program directory's free text is
// too inconsistent for exact matching.
package matcher

import (
	"strings"

	"github.com/caseharbor/placement-cli/internal/model"
)

// Insurance scores how much of the profile's requested insurance the
// program accepts. Full coverage scores 1.0. A "private" request scores at
// least 0.8 whenever the program mentions private pay at all.
func Insurance(p *model.ClientProfile, prog *model.Program) model.FactorScore {
	requested := p.Criteria.Insurance
	if len(requested) == 0 {
		return model.NotApplicable
	}
	if len(prog.Insurance) == 0 {
		return model.Applicable(0)
	}

	offered := make([]string, 0, len(prog.Insurance))
	for _, ins := range prog.Insurance {
		if n := normalizeInsurance(ins); n != "" {
			offered = append(offered, n)
		}
	}

	var matched int
	var privateRequested bool
	for _, req := range requested {
		n := normalizeInsurance(req)
		if n == "" {
			continue
		}
		if n == "private" {
			privateRequested = true
		}
		for _, off := range offered {
			if strings.Contains(off, n) || strings.Contains(n, off) {
				matched++
				break
			}
		}
	}

	score := float64(matched) / float64(len(requested))

	if privateRequested && score < 0.8 {
		for _, off := range offered {
			if strings.Contains(off, "private") {
				score = 0.8
				break
			}
		}
	}

	return model.Applicable(score)
}

// normalizeInsurance lowercases, drops the literal word "insurance" and
// strips everything non-alphanumeric, so "Blue Cross Insurance" and
// "bluecross" compare equal.
func normalizeInsurance(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "insurance", "")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
