package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// FeeEntry is an ad-hoc charge raised by management.
type FeeEntry struct {
	ID            string    `json:"id"`
	Amount        float64   `json:"amount"`
	Justification string    `json:"justification"`
	Timestamp     time.Time `json:"timestamp"`
}

func (f FeeEntry) Key() string { return f.ID }

func (f FeeEntry) Clone() FeeEntry { return f }

func NewFeeEntry(id string, amount float64, justification string, now time.Time) (FeeEntry, error) {
	justification = strings.TrimSpace(justification)
	if amount <= 0 {
		return FeeEntry{}, fmt.Errorf("%w: fee amount must be positive", ErrInvalidInput)
	}
	if justification == "" {
		return FeeEntry{}, fmt.Errorf("%w: fee justification is required", ErrInvalidInput)
	}
	return FeeEntry{ID: id, Amount: amount, Justification: justification, Timestamp: now}, nil
}

// FeeItem is a recurring charge a student can see on the payments page.
type FeeItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Mandatory   bool    `json:"mandatory"`
}

func (f FeeItem) Key() string { return f.ID }

func (f FeeItem) Clone() FeeItem { return f }

// BookingLeadDays is the minimum number of days between today and a booked meal date.
const BookingLeadDays = 2

var bookableMeals = []MealType{Breakfast, Lunch, Dinner}

type FoodBooking struct {
	ID         string     `json:"id"`
	ResidentID string     `json:"resident_id"`
	Date       Date       `json:"date"`
	Meals      []MealType `json:"meals"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (b FoodBooking) Key() string { return b.ID }

func (b FoodBooking) Clone() FoodBooking {
	c := b
	c.Meals = slices.Clone(b.Meals)
	return c
}

func NewFoodBooking(id, residentID string, date Date, meals []MealType, now time.Time) (FoodBooking, error) {
	if date.Before(DateOf(now).AddDays(BookingLeadDays)) {
		return FoodBooking{}, ErrBookingTooSoon
	}
	var picked []MealType
	for _, m := range meals {
		if !slices.Contains(bookableMeals, m) {
			return FoodBooking{}, fmt.Errorf("%w: meal %q", ErrInvalidInput, m)
		}
		if !slices.Contains(picked, m) {
			picked = append(picked, m)
		}
	}
	if len(picked) == 0 {
		return FoodBooking{}, fmt.Errorf("%w: pick at least one meal", ErrInvalidInput)
	}
	return FoodBooking{ID: id, ResidentID: residentID, Date: date, Meals: picked, CreatedAt: now}, nil
}
