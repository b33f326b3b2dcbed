package utils

import (
	"testing"

	"bloomtrack/models"
)

func TestNormalizeUnsafeFoodGetsMessageAndType(t *testing.T) {
	f := models.FoodItem{Name: "Raw oysters", IsSafePregnancy: false}
	if err := NormalizeFoodSafety(&f); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if f.WarningMessage == "" || f.WarningType != WarningUnsafe {
		t.Errorf("unsafe food normalized to message %q type %q", f.WarningMessage, f.WarningType)
	}
	if !f.HasWarnings() {
		t.Error("unsafe food must report warnings")
	}
}

func TestNormalizeMessageWithoutTypeDefaultsToLimit(t *testing.T) {
	f := models.FoodItem{Name: "Coffee", IsSafePregnancy: true, WarningMessage: "Keep under 200mg caffeine."}
	if err := NormalizeFoodSafety(&f); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if f.WarningType != WarningLimit {
		t.Errorf("type = %q, want %q", f.WarningType, WarningLimit)
	}
	if !f.HasWarnings() {
		t.Error("food with a warning message must report warnings")
	}
}

func TestNormalizeRejectsUnknownType(t *testing.T) {
	f := models.FoodItem{Name: "Cheese", WarningType: "spicy"}
	if err := NormalizeFoodSafety(&f); err == nil {
		t.Error("unknown warning type must be rejected")
	}
}

func TestNormalizeSafeFoodClearsStrayType(t *testing.T) {
	f := models.FoodItem{Name: "Apple", IsSafePregnancy: true, WarningType: "limit"}
	if err := NormalizeFoodSafety(&f); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if f.WarningType != "" || f.HasWarnings() {
		t.Errorf("safe food kept type %q, warnings %v", f.WarningType, f.HasWarnings())
	}
}

func TestSafetyRankOrdering(t *testing.T) {
	safe := models.FoodItem{IsSafePregnancy: true}
	limited := models.FoodItem{IsSafePregnancy: true, WarningMessage: "limit it", WarningType: WarningLimit}
	unsafe := models.FoodItem{IsSafePregnancy: false, WarningMessage: "avoid", WarningType: WarningUnsafe}

	if !(SafetyRank(&safe) < SafetyRank(&limited) && SafetyRank(&limited) < SafetyRank(&unsafe)) {
		t.Errorf("ranks = %d %d %d, want strictly increasing",
			SafetyRank(&safe), SafetyRank(&limited), SafetyRank(&unsafe))
	}
}
