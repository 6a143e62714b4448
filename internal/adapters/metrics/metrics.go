// Package metrics provides the normalized string similarity evaluators
// selectable through the matcher registry. Each evaluator is stateless and
// safe for concurrent use; construction carries no cost beyond allocation.
package metrics

import "unicode/utf8"

// shingleLength is the character k-gram size used by the profile-based
// metrics (cosine, jaccard, dice).
const shingleLength = 2

// belowShingleLength reports whether either string holds fewer runes than
// one shingle. Such a string has an empty bigram profile, so the
// profile-based metrics treat the pair as maximally dissimilar instead of
// dividing by an empty profile.
func belowShingleLength(a, b string) bool {
	return utf8.RuneCountInString(a) < shingleLength || utf8.RuneCountInString(b) < shingleLength
}

// longestRuneLen returns the rune count of the longer of the two strings.
func longestRuneLen(a, b string) int {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	if la > lb {
		return la
	}
	return lb
}
