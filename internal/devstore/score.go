package devstore

import (
	"math"
	"strings"
	"unicode"
)

// termFrequencies lowercases text and counts alphanumeric tokens.
func termFrequencies(text string) map[string]int {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	return tf
}

// score sums log-damped term frequencies of the query terms found in doc.
func score(query, doc map[string]int) float64 {
	var s float64
	for term := range query {
		if n := doc[term]; n > 0 {
			s += 1 + math.Log(float64(n))
		}
	}
	return s
}
