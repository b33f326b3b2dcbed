// Package planner turns sparse per-date meal records into the dense 7-day
// grid the weekly view renders, and mediates drag/drop reassignment of food
// items between slots. Everything here is a pure function of its inputs: the
// daily summary is always recomputed from the current meals, never patched.
package planner

import (
	"fmt"

	"bloomtrack/models"
	"bloomtrack/utils"
)

// Nutrient coverage statuses.
const (
	StatusMissing  = "missing"
	StatusModerate = "moderate"
	StatusGood     = "good"
)

// Food is the snapshot of a catalog entry held by a meal. Snapshots are
// copies; meal operations never touch the catalog row.
type Food struct {
	ID                 string                       `json:"id"`
	Name               string                       `json:"name"`
	Portion            string                       `json:"portion,omitempty"`
	MacroCategory      string                       `json:"macroCategory,omitempty"`
	RainbowColor       string                       `json:"rainbowColor,omitempty"`
	PhytonutrientFocus string                       `json:"phytonutrientFocus,omitempty"`
	Micronutrients     models.MicronutrientPresence `json:"containsMicronutrients"`
	HasWarnings        bool                         `json:"hasWarnings"`
	WarningMessage     string                       `json:"warningMessage,omitempty"`
	WarningType        string                       `json:"warningType,omitempty"`
}

// Snapshot copies a catalog food into its meal-held form.
func Snapshot(f *models.FoodItem) Food {
	return Food{
		ID:                 f.ID,
		Name:               f.Name,
		Portion:            f.Portion,
		MacroCategory:      f.MacroCategory,
		RainbowColor:       f.RainbowColor,
		PhytonutrientFocus: f.PhytonutrientFocus,
		Micronutrients:     f.Micronutrients,
		HasWarnings:        f.HasWarnings(),
		WarningMessage:     f.WarningMessage,
		WarningType:        f.WarningType,
	}
}

// Meal is one populated slot. It exists only while it holds at least one
// item; removing the last item collapses the slot back to nil.
type Meal struct {
	ID             string                       `json:"id"`
	Type           string                       `json:"type"` // display name, e.g. "Snack 1"
	Items          []Food                       `json:"items"`
	Micronutrients models.MicronutrientPresence `json:"containsMicronutrients"`
	Notes          string                       `json:"notes,omitempty"`
}

// DayMeals holds the five fixed slots. Raw rows carrying any other slot key
// are dropped before they reach this struct.
type DayMeals struct {
	Breakfast *Meal `json:"breakfast"`
	Snack1    *Meal `json:"snack1"`
	Lunch     *Meal `json:"lunch"`
	Snack2    *Meal `json:"snack2"`
	Dinner    *Meal `json:"dinner"`
}

// Slot returns the meal stored under a slot key, nil for empty or unknown
// keys.
func (m *DayMeals) Slot(key string) *Meal {
	switch key {
	case models.SlotBreakfast:
		return m.Breakfast
	case models.SlotSnack1:
		return m.Snack1
	case models.SlotLunch:
		return m.Lunch
	case models.SlotSnack2:
		return m.Snack2
	case models.SlotDinner:
		return m.Dinner
	}
	return nil
}

// SetSlot stores a meal under a slot key; unknown keys are ignored.
func (m *DayMeals) SetSlot(key string, meal *Meal) bool {
	switch key {
	case models.SlotBreakfast:
		m.Breakfast = meal
	case models.SlotSnack1:
		m.Snack1 = meal
	case models.SlotLunch:
		m.Lunch = meal
	case models.SlotSnack2:
		m.Snack2 = meal
	case models.SlotDinner:
		m.Dinner = meal
	default:
		return false
	}
	return true
}

// NutrientStatus reports coverage of one required nutrient for a day.
type NutrientStatus struct {
	Covered      bool     `json:"covered"`
	MealsCovered []string `json:"mealsCovered"`
	Status       string   `json:"status"`
}

// DailySummary is derived from a day's meals: coverage of the four required
// nutrients, a day-level warning flag, and the list of nutrients still
// missing.
type DailySummary struct {
	Calcium          NutrientStatus `json:"calcium"`
	Iron             NutrientStatus `json:"iron"`
	Folate           NutrientStatus `json:"folate"`
	Protein          NutrientStatus `json:"protein"`
	HasWarnings      bool           `json:"hasWarnings"`
	MissingNutrients []string       `json:"missingNutrients"`
}

// Day is one calendar date in the weekly grid.
type Day struct {
	ID        string       `json:"id"`
	Date      string       `json:"date"` // YYYY-MM-DD
	DayOfWeek string       `json:"dayOfWeek"`
	Meals     DayMeals     `json:"meals"`
	Summary   DailySummary `json:"dailySummary"`
}

// AggregateMeal ORs the micronutrient flags of all items, per flag. An empty
// item list yields all-false; duplicate items contribute nothing extra.
func AggregateMeal(items []Food) models.MicronutrientPresence {
	var agg models.MicronutrientPresence
	for _, it := range items {
		agg.Calcium = agg.Calcium || it.Micronutrients.Calcium
		agg.Iron = agg.Iron || it.Micronutrients.Iron
		agg.Folate = agg.Folate || it.Micronutrients.Folate
		agg.Protein = agg.Protein || it.Micronutrients.Protein
		agg.VitaminD = agg.VitaminD || it.Micronutrients.VitaminD
		agg.Omega3 = agg.Omega3 || it.Micronutrients.Omega3
		agg.Fiber = agg.Fiber || it.Micronutrients.Fiber
	}
	return agg
}

func status(covered bool, mealCount int) string {
	if !covered {
		return StatusMissing
	}
	if mealCount >= 2 {
		return StatusGood
	}
	return StatusModerate
}

// Summarize recomputes the daily summary from the day's current meals. It is
// pure: the same meals always produce the same summary.
func Summarize(meals DayMeals) DailySummary {
	type coverage struct {
		slots []string
	}
	cov := map[string]*coverage{
		"calcium": {}, "iron": {}, "folate": {}, "protein": {},
	}
	hasWarnings := false

	for _, key := range models.SlotKeys {
		meal := meals.Slot(key)
		if meal == nil {
			continue
		}
		agg := AggregateMeal(meal.Items)
		if agg.Calcium {
			cov["calcium"].slots = append(cov["calcium"].slots, key)
		}
		if agg.Iron {
			cov["iron"].slots = append(cov["iron"].slots, key)
		}
		if agg.Folate {
			cov["folate"].slots = append(cov["folate"].slots, key)
		}
		if agg.Protein {
			cov["protein"].slots = append(cov["protein"].slots, key)
		}
		for _, it := range meal.Items {
			if it.HasWarnings {
				hasWarnings = true
				break
			}
		}
	}

	mk := func(name string) NutrientStatus {
		slots := cov[name].slots
		return NutrientStatus{
			Covered:      len(slots) > 0,
			MealsCovered: slots,
			Status:       status(len(slots) > 0, len(slots)),
		}
	}

	summary := DailySummary{
		Calcium:     mk("calcium"),
		Iron:        mk("iron"),
		Folate:      mk("folate"),
		Protein:     mk("protein"),
		HasWarnings: hasWarnings,
	}

	missing := []string{}
	if !summary.Calcium.Covered {
		missing = append(missing, "Calcium")
	}
	if !summary.Iron.Covered {
		missing = append(missing, "Iron")
	}
	if !summary.Folate.Covered {
		missing = append(missing, "Folate")
	}
	if !summary.Protein.Covered {
		missing = append(missing, "Protein")
	}
	summary.MissingNutrients = missing
	return summary
}

// EmptyDay synthesizes the placeholder for a date with no backend row: all
// slots nil, all four required nutrients missing.
func EmptyDay(date, dayOfWeek string) Day {
	return Day{
		ID:        date,
		Date:      date,
		DayOfWeek: dayOfWeek,
		Summary:   Summarize(DayMeals{}),
	}
}

// BuildWeek produces exactly 7 days in calendar order starting at startDate,
// regardless of raw input order or gaps. Raw days are matched by exact date
// string; anything else is synthesized empty. Aggregates and summaries of
// matched days are recomputed here so callers can hand in unsummarized data.
func BuildWeek(startDate string, raw []Day) ([]Day, error) {
	byDate := make(map[string]Day, len(raw))
	for _, d := range raw {
		byDate[d.Date] = d
	}

	week := make([]Day, 0, 7)
	for offset := 0; offset < 7; offset++ {
		date, err := utils.AddDays(startDate, offset)
		if err != nil {
			return nil, err
		}
		label, _ := utils.DayOfWeek(date)
		d, ok := byDate[date]
		if !ok {
			week = append(week, EmptyDay(date, label))
			continue
		}
		d.ID = date
		d.Date = date
		if d.DayOfWeek == "" {
			d.DayOfWeek = label
		}
		resummarize(&d)
		week = append(week, d)
	}
	return week, nil
}

func resummarize(d *Day) {
	for _, key := range models.SlotKeys {
		if meal := d.Meals.Slot(key); meal != nil {
			meal.Micronutrients = AggregateMeal(meal.Items)
		}
	}
	d.Summary = Summarize(d.Meals)
}

// MoveItem removes foodID from (fromDate, fromSlot) and appends it to
// (toDate, toSlot) within week, collapsing an emptied origin meal and
// creating the destination meal when absent. Both days are resummarized.
// This is the optimistic half of a drag: the backend add/remove pair is
// authoritative, and the caller reverts to the last fetched week when either
// call fails.
func MoveItem(week []Day, fromDate, fromSlot, foodID, toDate, toSlot string) error {
	if models.SlotDisplayName[toSlot] == "" {
		return fmt.Errorf("unknown slot %q", toSlot)
	}
	from := findDay(week, fromDate)
	to := findDay(week, toDate)
	if from == nil || to == nil {
		return fmt.Errorf("date not in week: %s -> %s", fromDate, toDate)
	}
	origin := from.Meals.Slot(fromSlot)
	if origin == nil {
		return fmt.Errorf("no meal in slot %s on %s", fromSlot, fromDate)
	}

	idx := -1
	for i, it := range origin.Items {
		if it.ID == foodID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("food %s not in %s/%s", foodID, fromDate, fromSlot)
	}
	moved := origin.Items[idx]
	origin.Items = append(origin.Items[:idx], origin.Items[idx+1:]...)
	if len(origin.Items) == 0 {
		from.Meals.SetSlot(fromSlot, nil)
	}

	dest := to.Meals.Slot(toSlot)
	if dest == nil {
		dest = &Meal{Type: models.SlotDisplayName[toSlot]}
		to.Meals.SetSlot(toSlot, dest)
	}
	dest.Items = append(dest.Items, moved)

	resummarize(from)
	resummarize(to)
	return nil
}

// RainbowCoverage counts the distinct produce color groups (of 5) present
// among a day's foods.
func RainbowCoverage(d *Day) int {
	seen := map[string]bool{}
	for _, key := range models.SlotKeys {
		meal := d.Meals.Slot(key)
		if meal == nil {
			continue
		}
		for _, it := range meal.Items {
			if it.RainbowColor != "" {
				seen[it.RainbowColor] = true
			}
		}
	}
	return len(seen)
}

func findDay(week []Day, date string) *Day {
	for i := range week {
		if week[i].Date == date {
			return &week[i]
		}
	}
	return nil
}
