// Package normalizer collapses raw vendor ingredient labels into canonical
// ingredient identities. Vendors spell the same substance a dozen ways
// ("Aloe Barbadensis Leaf Juice", "ALOE VERA GEL", "aloe extract"); the
// group table downstream keys on one canonical string per identity.
package normalizer

import "strings"

// rule is one (predicate, canonical) pair. Rules are evaluated top to
// bottom and the first match wins; order is part of the contract because
// several predicates can match the same label (a label containing both
// "aloe" and "fragrance" resolves to "aloe vera").
type rule struct {
	match     func(s string) bool
	canonical string
}

func contains(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

func containsAll(subs ...string) func(string) bool {
	return func(s string) bool {
		for _, sub := range subs {
			if !strings.Contains(s, sub) {
				return false
			}
		}
		return true
	}
}

// The canonical strings "caprylyl lycol" and "propylene gylcol" are
// misspelled on purpose: the group table spells them the same way, and the
// two sides must stay in lockstep.
var rules = []rule{
	{contains("aloe"), "aloe vera"},
	{contains("avena sativa"), "avena sativa"},
	{containsAll("capry", "lycol"), "caprylyl lycol"},
	{containsAll("propylene", "lycol"), "propylene gylcol"},
	{contains("butyrospermum"), "shea butter"},
	{contains("tocopherol"), "tocopherols"},
	{contains("polysorbate"), "polysorbate"},
	{contains("jojoba"), "jojoba"},
	{contains("fragrance"), "fragrance"},
	{contains("decyl glucoside"), "decyl glucoside"},
	{func(s string) bool {
		return strings.HasPrefix(s, "ce") && strings.Contains(s, "alcohol")
	}, "cetyl alcohol"},
	{contains("cocos nucifera"), "cocos nucifera"},
}

// Normalize maps a raw ingredient label to its canonical identity.
// Labels that match no rule come back lowercased and trimmed but otherwise
// untouched. Always returns a string; an all-whitespace label becomes "".
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimRight(s, ".")
	for _, r := range rules {
		if r.match(s) {
			return r.canonical
		}
	}
	return s
}
