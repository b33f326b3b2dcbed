package utils

import (
	"fmt"
	"strings"

	"bloomtrack/models"
)

// Warning types carried on catalog foods.
const (
	WarningUnsafe   = "unsafe"   // avoid during pregnancy
	WarningLimit    = "limit"    // fine in moderation (caffeine, certain fish)
	WarningAllergen = "allergen" // common allergen flag
)

var validWarningTypes = map[string]bool{
	WarningUnsafe:   true,
	WarningLimit:    true,
	WarningAllergen: true,
}

// NormalizeFoodSafety enforces the catalog invariant before a food is stored:
// a warning flag is true iff the food is marked unsafe or carries a non-empty
// warning message. An unsafe food without a message gets a generic one, and a
// message without a type defaults to "limit".
func NormalizeFoodSafety(f *models.FoodItem) error {
	f.WarningMessage = strings.TrimSpace(f.WarningMessage)
	f.WarningType = strings.ToLower(strings.TrimSpace(f.WarningType))

	if f.WarningType != "" && !validWarningTypes[f.WarningType] {
		return fmt.Errorf("unknown warning type %q", f.WarningType)
	}
	if !f.IsSafePregnancy && f.WarningMessage == "" {
		f.WarningMessage = "Not recommended during pregnancy."
	}
	if !f.IsSafePregnancy && f.WarningType == "" {
		f.WarningType = WarningUnsafe
	}
	if f.WarningMessage != "" && f.WarningType == "" {
		f.WarningType = WarningLimit
	}
	if f.WarningMessage == "" {
		f.WarningType = ""
	}
	return nil
}

// SafetyRank orders foods for suggestion lists: safe foods first, then
// limit/allergen flags, unsafe last.
func SafetyRank(f *models.FoodItem) int {
	switch {
	case !f.HasWarnings():
		return 0
	case f.WarningType == WarningUnsafe:
		return 2
	default:
		return 1
	}
}
