package news

import "strings"

// punctuation stripped from comparison text before tokenizing.
const punctuation = ".,/#!$%^&*;:{}=-_`~()"

// Score computes the token-set similarity of two items as a percentage in
// [0,100]. Each item is compared as "title + description", lowercased, with
// punctuation removed; the score is 100*|intersection| over the size of the
// smaller unique-word set, so a short text fully contained in a longer one
// scores 100. Commutative: Score(a,b) == Score(b,a).
func Score(a, b Item) int {
	setA := tokenSet(comparisonText(a))
	setB := tokenSet(comparisonText(b))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	small, large := setA, setB
	if len(setB) < len(setA) {
		small, large = setB, setA
	}
	shared := 0
	for w := range small {
		if _, ok := large[w]; ok {
			shared++
		}
	}
	return 100 * shared / len(small)
}

func comparisonText(it Item) string {
	return it.Title + " " + it.Description
}

func tokenSet(s string) map[string]struct{} {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)

	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
