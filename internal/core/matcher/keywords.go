package matcher

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

// extractKeywords returns the lowercase word tokens of length > 2, minus
// stop words.
func extractKeywords(text string) map[string]bool {
	keywords := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(w) > 2 && !stopWords[w] {
			keywords[w] = true
		}
	}
	return keywords
}

// keywordOverlap is the Jaccard ratio of the two texts' keyword sets.
func keywordOverlap(a, b string) float64 {
	keywordsA := extractKeywords(a)
	keywordsB := extractKeywords(b)

	if len(keywordsA) == 0 || len(keywordsB) == 0 {
		return 0
	}

	intersection := 0
	for w := range keywordsA {
		if keywordsB[w] {
			intersection++
		}
	}
	union := len(keywordsA) + len(keywordsB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
