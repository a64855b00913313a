package history

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strconv"
	"strings"

	"github.com/caseharbor/placement-cli/internal/model"
)

// ProfileHash returns a stable, one-way FNV-1a hash of a canonicalized
// subset of the profile's criteria (age, gender, sorted services, sorted
// insurance). The raw profile is never stored; the hash only lets pattern
// analytics group repeat searches.
func ProfileHash(p *model.ClientProfile) string {
	age := ""
	if p.Criteria.Age != nil {
		age = strconv.Itoa(*p.Criteria.Age)
	}

	parts := []string{
		"age=" + age,
		"gender=" + strings.ToLower(strings.TrimSpace(p.Criteria.Gender)),
		"services=" + canonicalList(p.Criteria.RequiredServices),
		"insurance=" + canonicalList(p.Criteria.Insurance),
	}

	h := fnv.New64a()
	h.Write([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%016x", h.Sum64())
}

func canonicalList(items []string) string {
	cleaned := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	sort.Strings(cleaned)
	return strings.Join(cleaned, ",")
}
