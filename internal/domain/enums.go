// Package domain defines the core domain models for the study service.
package domain

import (
	"fmt"
	"strings"
)

// Kind is the feature that produced a study session.
type Kind string

const (
	KindExplanation Kind = "Explanation"
	KindSummary     Kind = "Summary"
	KindQuiz        Kind = "Quiz"
	KindFlashcards  Kind = "Flashcards"
)

// Complexity is the depth requested for a concept explanation.
type Complexity string

const (
	ComplexitySimple       Complexity = "simple"
	ComplexityIntermediate Complexity = "intermediate"
	ComplexityAdvanced     Complexity = "advanced"
)

// SummaryFormat is the layout requested for a summary.
type SummaryFormat string

const (
	SummaryFormatBulletPoints  SummaryFormat = "bullet points"
	SummaryFormatParagraph     SummaryFormat = "paragraph"
	SummaryFormatKeyPointsOnly SummaryFormat = "key points only"
)

// Difficulty is the level requested for a quiz.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Feature names a user-facing page. Home and History carry no model call.
type Feature string

const (
	FeatureHome       Feature = "home"
	FeatureExplain    Feature = "explain"
	FeatureSummarize  Feature = "summarize"
	FeatureQuiz       Feature = "quiz"
	FeatureFlashcards Feature = "flashcards"
	FeatureHistory    Feature = "history"
)

// Features lists the pages in selector order.
var Features = []Feature{
	FeatureHome,
	FeatureExplain,
	FeatureSummarize,
	FeatureQuiz,
	FeatureFlashcards,
	FeatureHistory,
}

// Bounds for the numeric inputs.
const (
	MinQuizQuestions = 1
	MaxQuizQuestions = 10
	MinFlashcards    = 1
	MaxFlashcards    = 20
)

// UI defaults applied when a field is left blank.
const (
	DefaultComplexity    = ComplexityIntermediate
	DefaultSummaryFormat = SummaryFormatBulletPoints
	DefaultQuizQuestions = 5
	DefaultDifficulty    = DifficultyMedium
	DefaultFlashcards    = 5
)

// Kind returns the session kind recorded for a feature, or "" for pages
// that never produce a session.
func (f Feature) Kind() Kind {
	switch f {
	case FeatureExplain:
		return KindExplanation
	case FeatureSummarize:
		return KindSummary
	case FeatureQuiz:
		return KindQuiz
	case FeatureFlashcards:
		return KindFlashcards
	}
	return ""
}

// ParseFeature resolves a page name case-insensitively.
func ParseFeature(s string) (Feature, error) {
	f := Feature(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Features {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown feature: %q", s)
}

// normalize lowercases an enumerated choice so "Simple" and "simple" match.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeComplexity lowercases the value; validity is checked by policy.
func NormalizeComplexity(s string) Complexity { return Complexity(normalize(s)) }

// NormalizeSummaryFormat lowercases the value; validity is checked by policy.
func NormalizeSummaryFormat(s string) SummaryFormat { return SummaryFormat(normalize(s)) }

// NormalizeDifficulty lowercases the value; validity is checked by policy.
func NormalizeDifficulty(s string) Difficulty { return Difficulty(normalize(s)) }
