// ABOUTME: Case-folded exercise name matching shared by the safety stages.
// ABOUTME: Ordered rule tables keep first-match results stable.
package safety

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold returns s in Unicode case-folded form. A Caser is stateful, so each
// call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// NameContains reports whether name contains key, ignoring case.
func NameContains(name, key string) bool {
	return strings.Contains(fold(name), fold(key))
}

// firstKeyword returns the first keyword contained in name.
func firstKeyword(name string, keywords []string) (string, bool) {
	folded := fold(name)
	for _, k := range keywords {
		if strings.Contains(folded, fold(k)) {
			return k, true
		}
	}
	return "", false
}

// substitutionRule suggests replacements for exercises whose name contains key.
type substitutionRule struct {
	key          string
	alternatives []string
}

func lookupRule(name string, rules []substitutionRule) (substitutionRule, bool) {
	for _, r := range rules {
		if NameContains(name, r.key) {
			return r, true
		}
	}
	return substitutionRule{}, false
}
