package planner

import (
	"reflect"
	"testing"

	"bloomtrack/models"
)

func food(id string, flags models.MicronutrientPresence) Food {
	return Food{ID: id, Name: id, Micronutrients: flags}
}

func ironFood(id string) Food {
	return food(id, models.MicronutrientPresence{Iron: true})
}

func mealOf(slot string, items ...Food) *Meal {
	return &Meal{
		ID:    "meal-" + slot,
		Type:  models.SlotDisplayName[slot],
		Items: items,
	}
}

func TestBuildWeekReturnsSevenConsecutiveDays(t *testing.T) {
	// Raw input deliberately out of order and sparse.
	raw := []Day{
		{Date: "2025-12-31", Meals: DayMeals{Lunch: mealOf(models.SlotLunch, ironFood("spinach"))}},
		{Date: "2025-12-29", Meals: DayMeals{Breakfast: mealOf(models.SlotBreakfast, ironFood("oats"))}},
	}

	week, err := BuildWeek("2025-12-29", raw)
	if err != nil {
		t.Fatalf("BuildWeek failed: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("got %d days, want 7", len(week))
	}

	wantDates := []string{
		"2025-12-29", "2025-12-30", "2025-12-31",
		"2026-01-01", "2026-01-02", "2026-01-03", "2026-01-04",
	}
	for i, d := range week {
		if d.Date != wantDates[i] {
			t.Errorf("day %d date = %s, want %s", i, d.Date, wantDates[i])
		}
	}
	if week[0].DayOfWeek != "Monday" {
		t.Errorf("first day label = %s, want Monday", week[0].DayOfWeek)
	}
}

func TestBuildWeekSynthesizesEmptyDays(t *testing.T) {
	week, err := BuildWeek("2025-12-29", nil)
	if err != nil {
		t.Fatalf("BuildWeek failed: %v", err)
	}
	for _, d := range week {
		for _, key := range models.SlotKeys {
			if d.Meals.Slot(key) != nil {
				t.Errorf("%s slot %s should be nil", d.Date, key)
			}
		}
		for _, ns := range []NutrientStatus{d.Summary.Calcium, d.Summary.Iron, d.Summary.Folate, d.Summary.Protein} {
			if ns.Covered || ns.Status != StatusMissing {
				t.Errorf("%s: empty day must have all nutrients missing", d.Date)
			}
		}
		want := []string{"Calcium", "Iron", "Folate", "Protein"}
		if !reflect.DeepEqual(d.Summary.MissingNutrients, want) {
			t.Errorf("%s missing = %v, want %v", d.Date, d.Summary.MissingNutrients, want)
		}
	}
}

func TestBuildWeekRejectsBadStartDate(t *testing.T) {
	if _, err := BuildWeek("not-a-date", nil); err == nil {
		t.Error("expected error for malformed start date")
	}
}

func TestSummarizeStatusLevels(t *testing.T) {
	// Iron in one slot -> moderate; in two -> good; protein nowhere -> missing.
	meals := DayMeals{
		Breakfast: mealOf(models.SlotBreakfast, ironFood("oats")),
	}
	s := Summarize(meals)
	if s.Iron.Status != StatusModerate {
		t.Errorf("one covering slot: status = %s, want moderate", s.Iron.Status)
	}
	if !reflect.DeepEqual(s.Iron.MealsCovered, []string{models.SlotBreakfast}) {
		t.Errorf("mealsCovered = %v", s.Iron.MealsCovered)
	}

	meals.Dinner = mealOf(models.SlotDinner, ironFood("lentils"))
	s = Summarize(meals)
	if s.Iron.Status != StatusGood {
		t.Errorf("two covering slots: status = %s, want good", s.Iron.Status)
	}

	if s.Protein.Status != StatusMissing {
		t.Errorf("uncovered nutrient: status = %s, want missing", s.Protein.Status)
	}
	foundProtein := false
	for _, name := range s.MissingNutrients {
		if name == "Iron" {
			t.Error("covered nutrient must not appear in missingNutrients")
		}
		if name == "Protein" {
			foundProtein = true
		}
	}
	if !foundProtein {
		t.Error("missing nutrient must appear in missingNutrients")
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	meals := DayMeals{
		Lunch: mealOf(models.SlotLunch,
			food("salmon", models.MicronutrientPresence{Protein: true, Omega3: true}),
			food("yogurt", models.MicronutrientPresence{Calcium: true, Protein: true}),
		),
	}
	first := Summarize(meals)
	second := Summarize(meals)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("summaries differ across calls:\n%+v\n%+v", first, second)
	}
}

func TestSummarizeWarningFlag(t *testing.T) {
	warned := ironFood("soft-cheese")
	warned.HasWarnings = true
	s := Summarize(DayMeals{Snack1: mealOf(models.SlotSnack1, warned)})
	if !s.HasWarnings {
		t.Error("any warning item must set hasWarnings")
	}
	s = Summarize(DayMeals{Snack1: mealOf(models.SlotSnack1, ironFood("apple"))})
	if s.HasWarnings {
		t.Error("no warning items: hasWarnings must be false")
	}
}

func TestAggregateMeal(t *testing.T) {
	if agg := AggregateMeal(nil); agg != (models.MicronutrientPresence{}) {
		t.Errorf("empty aggregate = %+v, want all false", agg)
	}

	a := food("a", models.MicronutrientPresence{Calcium: true})
	b := food("b", models.MicronutrientPresence{Iron: true, Fiber: true})
	fwd := AggregateMeal([]Food{a, b})
	rev := AggregateMeal([]Food{b, a})
	if fwd != rev {
		t.Errorf("aggregation must be order-independent: %+v vs %+v", fwd, rev)
	}
	if !fwd.Calcium || !fwd.Iron || !fwd.Fiber {
		t.Errorf("aggregate missing flags: %+v", fwd)
	}

	// Duplicates contribute the same OR, no extra weight.
	dup := AggregateMeal([]Food{a, a, a})
	if dup != AggregateMeal([]Food{a}) {
		t.Errorf("duplicates changed aggregate: %+v", dup)
	}
}

func TestSingleIronMealOnWednesday(t *testing.T) {
	raw := []Day{{
		Date:  "2025-12-31", // Wednesday
		Meals: DayMeals{Lunch: mealOf(models.SlotLunch, ironFood("spinach"))},
	}}

	week, err := BuildWeek("2025-12-29", raw)
	if err != nil {
		t.Fatalf("BuildWeek failed: %v", err)
	}

	wed := week[2]
	if wed.Date != "2025-12-31" {
		t.Fatalf("offset 2 is %s, want Wednesday 2025-12-31", wed.Date)
	}
	iron := wed.Summary.Iron
	if !iron.Covered || iron.Status != StatusModerate {
		t.Errorf("Wednesday iron = %+v, want covered/moderate", iron)
	}
	if !reflect.DeepEqual(iron.MealsCovered, []string{models.SlotLunch}) {
		t.Errorf("Wednesday iron slots = %v, want [lunch]", iron.MealsCovered)
	}
	for _, ns := range []NutrientStatus{wed.Summary.Calcium, wed.Summary.Folate, wed.Summary.Protein} {
		if ns.Status != StatusMissing {
			t.Errorf("Wednesday non-iron nutrient = %+v, want missing", ns)
		}
	}
	for i, d := range week {
		if i == 2 {
			continue
		}
		if d.Summary.Iron.Covered || d.Summary.Iron.Status != StatusMissing {
			t.Errorf("%s iron = %+v, want missing", d.Date, d.Summary.Iron)
		}
	}
}

func TestMoveItemAndInverseRestoresSummaries(t *testing.T) {
	raw := []Day{{
		Date:  "2025-12-29",
		Meals: DayMeals{Breakfast: mealOf(models.SlotBreakfast, ironFood("oats"))},
	}}
	week, err := BuildWeek("2025-12-29", raw)
	if err != nil {
		t.Fatalf("BuildWeek failed: %v", err)
	}
	originalMon := week[0].Summary
	originalTue := week[1].Summary

	if err := MoveItem(week, "2025-12-29", models.SlotBreakfast, "oats", "2025-12-30", models.SlotDinner); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	// Origin meal collapsed, destination created.
	if week[0].Meals.Breakfast != nil {
		t.Error("emptied origin meal must collapse to nil")
	}
	if week[1].Meals.Dinner == nil || len(week[1].Meals.Dinner.Items) != 1 {
		t.Fatal("destination meal not created with moved item")
	}
	if week[1].Summary.Iron.Status != StatusModerate {
		t.Errorf("destination day iron = %s, want moderate", week[1].Summary.Iron.Status)
	}

	if err := MoveItem(week, "2025-12-30", models.SlotDinner, "oats", "2025-12-29", models.SlotBreakfast); err != nil {
		t.Fatalf("inverse move failed: %v", err)
	}
	if !reflect.DeepEqual(week[0].Summary, originalMon) {
		t.Errorf("origin summary not restored:\n%+v\n%+v", week[0].Summary, originalMon)
	}
	if !reflect.DeepEqual(week[1].Summary, originalTue) {
		t.Errorf("destination summary not restored:\n%+v\n%+v", week[1].Summary, originalTue)
	}
}

func TestMoveItemRejectsUnknownSlot(t *testing.T) {
	week, _ := BuildWeek("2025-12-29", []Day{{
		Date:  "2025-12-29",
		Meals: DayMeals{Breakfast: mealOf(models.SlotBreakfast, ironFood("oats"))},
	}})
	if err := MoveItem(week, "2025-12-29", models.SlotBreakfast, "oats", "2025-12-29", "brunch"); err == nil {
		t.Error("expected error for slot key outside the fixed five")
	}
	// Nothing moved.
	if week[0].Meals.Breakfast == nil || len(week[0].Meals.Breakfast.Items) != 1 {
		t.Error("failed move must leave the grid untouched")
	}
}

func TestRainbowCoverage(t *testing.T) {
	green := ironFood("spinach")
	green.RainbowColor = "Green"
	red := ironFood("tomato")
	red.RainbowColor = "Red"
	red2 := ironFood("strawberry")
	red2.RainbowColor = "Red"

	day := Day{
		Date: "2025-12-29",
		Meals: DayMeals{
			Lunch:  mealOf(models.SlotLunch, green, red),
			Dinner: mealOf(models.SlotDinner, red2),
		},
	}
	if got := RainbowCoverage(&day); got != 2 {
		t.Errorf("RainbowCoverage = %d, want 2 distinct colors", got)
	}
}
