package domain_test

import (
	"errors"
	"math"
	"testing"

	"hostel_portal/internal/domain"
)

func TestRatingCategory_Submit(t *testing.T) {
	c := domain.RatingCategory{Name: "Wifi", Rating: 4, Responses: 3}
	c, err := c.Submit(2)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if c.Responses != 4 || math.Abs(c.Rating-3.5) > 1e-9 {
		t.Fatalf("unexpected aggregate: %+v", c)
	}
	if _, err := c.Submit(6); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestComplaint_Resolve(t *testing.T) {
	c := domain.Complaint{ID: "1", Status: domain.ComplaintPending}
	c, err := c.Resolve()
	if err != nil || c.Status != domain.ComplaintResolved {
		t.Fatalf("Resolve: %v %+v", err, c)
	}
	if _, err := c.Resolve(); !errors.Is(err, domain.ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}

func TestNewFeeEntry(t *testing.T) {
	if _, err := domain.NewFeeEntry("f", 0, "late fee", t0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("zero amount should fail, got %v", err)
	}
	if _, err := domain.NewFeeEntry("f", 100, "  ", t0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("blank justification should fail, got %v", err)
	}
	f, err := domain.NewFeeEntry("f", 250.5, " broken window ", t0)
	if err != nil || f.Justification != "broken window" {
		t.Fatalf("NewFeeEntry: %v %+v", err, f)
	}
}

func TestNewFoodBooking_LeadTime(t *testing.T) {
	today := domain.DateOf(t0)
	if _, err := domain.NewFoodBooking("b", "r", today.AddDays(1), []domain.MealType{domain.Lunch}, t0); !errors.Is(err, domain.ErrBookingTooSoon) {
		t.Fatalf("expected ErrBookingTooSoon, got %v", err)
	}
	b, err := domain.NewFoodBooking("b", "r", today.AddDays(2), []domain.MealType{domain.Lunch, domain.Lunch, domain.Dinner}, t0)
	if err != nil {
		t.Fatalf("NewFoodBooking: %v", err)
	}
	if len(b.Meals) != 2 {
		t.Fatalf("expected de-duplicated meals, got %v", b.Meals)
	}
	if _, err := domain.NewFoodBooking("b", "r", today.AddDays(3), nil, t0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for no meals, got %v", err)
	}
	if _, err := domain.NewFoodBooking("b", "r", today.AddDays(3), []domain.MealType{domain.Snack}, t0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("snacks are not bookable, got %v", err)
	}
}

func TestMenuDay_WithMeals(t *testing.T) {
	d := domain.MenuDay{Day: "Monday", Meals: domain.Meals{Lunch: []string{"Rice"}}}
	d2, err := d.WithMeals(domain.Lunch, domain.ParseDishes(" Dal , , Roti,"))
	if err != nil {
		t.Fatalf("WithMeals: %v", err)
	}
	if len(d2.Meals.Lunch) != 2 || d2.Meals.Lunch[0] != "Dal" || d2.Meals.Lunch[1] != "Roti" {
		t.Fatalf("unexpected lunch: %v", d2.Meals.Lunch)
	}
	if d.Meals.Lunch[0] != "Rice" {
		t.Fatalf("original day mutated")
	}
	if _, err := d.WithMeals(domain.Snack, nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := domain.ParseDate("2024-13-01"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	d, err := domain.ParseDate("2024-02-28")
	if err != nil || d.AddDays(2) != "2024-03-01" {
		t.Fatalf("unexpected date math: %v %s", err, d.AddDays(2))
	}
}
