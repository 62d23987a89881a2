package app

import (
	"fmt"
	"strings"

	"hostel_portal/internal/domain"
)

/********** alias registries (single source of truth) **********/

var mealAliases = map[string]domain.MealType{
	"breakfast": domain.Breakfast, "morning": domain.Breakfast,
	"lunch": domain.Lunch, "afternoon": domain.Lunch,
	"dinner": domain.Dinner, "supper": domain.Dinner, "evening": domain.Dinner,
	"snack": domain.Snack, "snacks": domain.Snack,
}

var priorityAliases = map[string]domain.Priority{
	"high": domain.PriorityHigh, "urgent": domain.PriorityHigh,
	"medium": domain.PriorityMedium, "normal": domain.PriorityMedium, "": domain.PriorityMedium,
	"low": domain.PriorityLow,
}

var categoryAliases = map[string]domain.FoodCategory{
	"veg": domain.Veg, "vegetarian": domain.Veg,
	"non-veg": domain.NonVeg, "nonveg": domain.NonVeg, "non veg": domain.NonVeg,
	"vegan": domain.Vegan,
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

/********** request values -> domain **********/

func ParseMeal(s string) (domain.MealType, error) {
	if m, ok := mealAliases[norm(s)]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown meal %q", domain.ErrInvalidInput, s)
}

func ParseMeals(in []string) ([]domain.MealType, error) {
	out := make([]domain.MealType, 0, len(in))
	for _, s := range in {
		m, err := ParseMeal(s)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func ParsePriority(s string) (domain.Priority, error) {
	if p, ok := priorityAliases[norm(s)]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, s)
}

func ParseFoodCategory(s string) (domain.FoodCategory, error) {
	if c, ok := categoryAliases[norm(s)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown food category %q", domain.ErrInvalidInput, s)
}

/********** domain -> views **********/

// roomResident is the summary of r embedded in its room.
func roomResident(r domain.Resident) domain.RoomResident {
	return domain.RoomResident{ID: r.ID, Name: r.Name, CheckIn: r.CheckIn, CheckOut: r.CheckOut, Status: r.Status}
}

func attendanceRow(r domain.Resident, date domain.Date) AttendanceRow {
	row := AttendanceRow{ResidentID: r.ID, Name: r.Name, RoomNumber: r.RoomNumber, BedNumber: r.BedNumber}
	if a, ok := r.AttendanceOn(date); ok {
		row.Marked, row.Present, row.Note = true, a.Present, a.Note
	}
	return row
}
