package rag

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
)

const (
	lexicalLengthScale = 10.0
	maxLexicalScore    = 0.4
	headingMatchBonus  = 0.1
)

var lexicalStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"for": {}, "from": {}, "has": {}, "have": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "was": {}, "were": {}, "with": {},
	"what": {}, "which": {}, "who": {}, "how": {}, "does": {}, "do": {},
}

// rerank adds a lexical score to every passage, orders them by the blended
// score and keeps the best n. Ties keep retrieval order.
func rerank(query string, passages []passage, n int) []passage {
	terms := queryTerms(query)
	for i := range passages {
		p := &passages[i]
		p.lexical = lexicalScore(terms, p.text, headingLines(p.text))
		p.final = p.vector + p.lexical
	}
	slices.SortStableFunc(passages, func(a, b passage) int {
		return cmp.Compare(b.final, a.final)
	})
	if len(passages) > n {
		passages = passages[:n]
	}
	return passages
}

// lexicalScore rates how often the query terms occur in text, normalized by
// text length, plus a bonus per term found in headings. The result lies in
// [0, maxLexicalScore] so it only nudges the vector score.
func lexicalScore(terms []string, text, headings string) float64 {
	if len(terms) == 0 {
		return 0
	}
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	freq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	matches := 0
	for _, t := range terms {
		matches += freq[t]
	}
	score := float64(matches) / float64(1+len(tokens)) * lexicalLengthScale

	if headingTokens := tokenize(headings); len(headingTokens) > 0 {
		for _, t := range terms {
			if slices.Contains(headingTokens, t) {
				score += headingMatchBonus
			}
		}
	}

	return min(max(score, 0), maxLexicalScore)
}

// headingLines returns the markdown heading lines of a chunk joined by " > ".
func headingLines(text string) string {
	var headings []string
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			headings = append(headings, line)
		}
	}
	return strings.Join(headings, " > ")
}

// queryTerms returns the query tokens minus stopwords.
func queryTerms(query string) []string {
	return slices.DeleteFunc(tokenize(query), func(t string) bool {
		_, stop := lexicalStopwords[t]
		return stop
	})
}

// tokenize lowercases text and splits it on anything that is not a letter or digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
