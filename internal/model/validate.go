package model

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors reported to the presentation layer. The ledger itself
// accepts whatever it is given.
var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrMissingCategory  = errors.New("category is required")
	ErrCategoryMismatch = errors.New("category does not belong to transaction type")
	ErrInvalidType      = errors.New("transaction type must be income or expense")
	ErrMissingName      = errors.New("name is required")
	ErrUnknownRole      = errors.New("unknown role")
)

// ValidateTransaction checks the fields the entry forms require.
func ValidateTransaction(t Transaction) error {
	if t.Type != Income && t.Type != Expense {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if t.Category == "" {
		return ErrMissingCategory
	}
	if !t.Category.ValidFor(t.Type) {
		return fmt.Errorf("%w: %s is not an %s category", ErrCategoryMismatch, t.Category, t.Type)
	}
	return nil
}

// ValidateGoal checks a goal before it is added.
func ValidateGoal(g Goal) error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrMissingName
	}
	if !g.TargetAmount.IsPositive() {
		return ErrInvalidAmount
	}
	if g.Category == "" {
		return ErrMissingCategory
	}
	return nil
}

// ValidateProfile checks onboarding input.
func ValidateProfile(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingName
	}
	for _, r := range Roles {
		if r == p.Role {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownRole, p.Role)
}
