package discovery

import "strings"

// Categories reduces raw interest tags to the set of top-level categories.
// A tag may carry a subgenre after a ':' separator ("theatre:drama"); only
// the part before the separator counts. Matching is case-insensitive and
// blank tags are ignored.
func Categories(interests []string) map[string]struct{} {
	out := make(map[string]struct{}, len(interests))
	for _, raw := range interests {
		cat := raw
		if i := strings.Index(raw, ":"); i >= 0 {
			cat = raw[:i]
		}
		cat = strings.ToLower(strings.TrimSpace(cat))
		if cat == "" {
			continue
		}
		out[cat] = struct{}{}
	}
	return out
}

// SharedCategories counts the categories the two sets have in common.
func SharedCategories(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for cat := range a {
		if _, ok := b[cat]; ok {
			n++
		}
	}
	return n
}
