package engine

import (
	"strings"
	"unicode"
)

// validName reports whether s is a plausible name: non-empty after
// trimming, and composed only of Unicode letters and spaces. Accented
// letters and ñ pass; digits and punctuation do not.
func validName(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}

// validDetail reports whether s is a usable free-text answer: at least
// five runes after trimming.
func validDetail(s string) bool {
	return len([]rune(strings.TrimSpace(s))) >= 5
}

// districtSet is the allowlist of accepted districts, stored lower-cased.
// Membership is an exact case-insensitive match: no fuzzy matching and no
// accent folding, so an accented entry must appear in the list as typed.
type districtSet map[string]struct{}

func newDistrictSet(districts []string) districtSet {
	set := make(districtSet, len(districts))
	for _, d := range districts {
		set[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	return set
}

func (s districtSet) contains(district string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(district))]
	return ok
}

// DefaultDistricts is the built-in allowlist used when the config file
// does not override it.
func DefaultDistricts() []string {
	return []string{
		"providencia",
		"las condes",
		"vitacura",
		"lo barnechea",
		"la reina",
		"ñuñoa",
		"santiago",
		"macul",
		"peñalolén",
		"la florida",
		"san miguel",
		"maipú",
		"huechuraba",
		"recoleta",
		"independencia",
	}
}
