package analyzer

import (
	"math"
	"testing"
)

func TestAnalyzeEmpty(t *testing.T) {
	a := Analyze("")

	if a.WordCount != 0 || a.CharacterCount != 0 || a.SentenceCount != 0 ||
		a.ParagraphCount != 0 || a.UniqueWords != 0 {
		t.Errorf("expected all counts zero, got %+v", a)
	}
	if a.AvgWordLength != 0 {
		t.Errorf("expected AvgWordLength 0, got %f", a.AvgWordLength)
	}
}

func TestAnalyzeCounts(t *testing.T) {
	text := "Hello world. How are you?\n\nFine! Thanks."

	a := Analyze(text)

	if a.WordCount != 7 {
		t.Errorf("expected 7 words, got %d", a.WordCount)
	}
	if a.SentenceCount != 4 {
		t.Errorf("expected 4 sentences, got %d", a.SentenceCount)
	}
	if a.ParagraphCount != 2 {
		t.Errorf("expected 2 paragraphs, got %d", a.ParagraphCount)
	}
}

func TestAnalyzeConsecutiveDelimiters(t *testing.T) {
	// Runs of sentence delimiters collapse to one split point.
	a := Analyze("Wait... what?! Really.")
	if a.SentenceCount != 3 {
		t.Errorf("expected 3 sentences, got %d", a.SentenceCount)
	}
}

func TestAnalyzeUniqueWordsCaseFolded(t *testing.T) {
	a := Analyze("Go go GO gopher")
	if a.UniqueWords != 2 {
		t.Errorf("expected 2 unique words, got %d", a.UniqueWords)
	}
}

func TestAnalyzeAvgWordLength(t *testing.T) {
	a := Analyze("ab abcd")
	if math.Abs(a.AvgWordLength-3.0) > 1e-9 {
		t.Errorf("expected avg 3.0, got %f", a.AvgWordLength)
	}
}

func TestAnalyzeBlankParagraphsIgnored(t *testing.T) {
	a := Analyze("first\n\n   \n\nsecond")
	if a.ParagraphCount != 2 {
		t.Errorf("expected 2 paragraphs, got %d", a.ParagraphCount)
	}
}
