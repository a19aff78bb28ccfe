// Package analyzer computes descriptive statistics over extracted document
// text.
package analyzer

import (
	"strings"
	"unicode/utf8"

	"docchat/internal/domain"
)

// Analyze returns statistics for the given text. Empty text yields the zero
// Analysis; in particular AvgWordLength is 0, never NaN.
func Analyze(text string) domain.Analysis {
	words := strings.Fields(text)

	a := domain.Analysis{
		WordCount:      len(words),
		CharacterCount: utf8.RuneCountInString(text),
		SentenceCount:  countSegments(strings.FieldsFunc(text, isSentenceEnd)),
		ParagraphCount: countSegments(strings.Split(text, "\n\n")),
	}

	if len(words) == 0 {
		return a
	}

	totalLen := 0
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		totalLen += utf8.RuneCountInString(w)
		unique[strings.ToLower(w)] = struct{}{}
	}
	a.AvgWordLength = float64(totalLen) / float64(len(words))
	a.UniqueWords = len(unique)

	return a
}

// countSegments counts segments that contain something other than whitespace.
func countSegments(segments []string) int {
	n := 0
	for _, s := range segments {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
