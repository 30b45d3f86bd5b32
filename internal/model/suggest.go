package model

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from a real category.
const maxSuggestDistance = 3

// SuggestCategory returns the category of type t closest to input by edit
// distance. ok is false when nothing is close enough.
func SuggestCategory(t TransactionType, input string) (Category, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", false
	}
	best, bestDist := Category(""), maxSuggestDistance+1
	for _, c := range CategoriesFor(t) {
		d := levenshtein.ComputeDistance(input, string(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// ParseCategory resolves user input to a category of type t, accepting
// exact names and close misspellings.
func ParseCategory(t TransactionType, input string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(input)))
	if c == "" {
		return "", ErrMissingCategory
	}
	if c.ValidFor(t) {
		return c, nil
	}
	if s, ok := SuggestCategory(t, string(c)); ok {
		return "", &UnknownCategoryError{Input: input, Suggestion: s}
	}
	return "", &UnknownCategoryError{Input: input}
}

// UnknownCategoryError reports an unrecognised category with an optional
// suggestion.
type UnknownCategoryError struct {
	Input      string
	Suggestion Category
}

func (e *UnknownCategoryError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown category %q, did you mean %s?", e.Input, e.Suggestion)
	}
	return fmt.Sprintf("unknown category %q", e.Input)
}

func (e *UnknownCategoryError) Unwrap() error { return ErrCategoryMismatch }
