package domain

import (
	"fmt"
	"slices"
	"strings"
)

type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

type FoodCategory string

const (
	Veg    FoodCategory = "veg"
	NonVeg FoodCategory = "non-veg"
	Vegan  FoodCategory = "vegan"
)

type Nutrition struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

type MenuItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        MealType     `json:"type"`
	Category    FoodCategory `json:"category"`
	Price       float64      `json:"price"`
	Available   bool         `json:"available"`
	Description string       `json:"description,omitempty"`
	Allergens   []string     `json:"allergens"`
	Nutrition   *Nutrition   `json:"nutrition,omitempty"`
	Popularity  float64      `json:"popularity"`
}

func (m MenuItem) Key() string { return m.ID }

func (m MenuItem) Clone() MenuItem {
	c := m
	c.Allergens = slices.Clone(m.Allergens)
	if m.Nutrition != nil {
		n := *m.Nutrition
		c.Nutrition = &n
	}
	return c
}

func (m MenuItem) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: menu item name is required", ErrInvalidInput)
	}
	if m.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

type Meals struct {
	Breakfast []string `json:"breakfast"`
	Lunch     []string `json:"lunch"`
	Dinner    []string `json:"dinner"`
}

type MenuDay struct {
	Day   string `json:"day"`
	Meals Meals  `json:"meals"`
}

func (d MenuDay) Key() string { return strings.ToLower(d.Day) }

func (d MenuDay) Clone() MenuDay {
	c := d
	c.Meals = Meals{
		Breakfast: slices.Clone(d.Meals.Breakfast),
		Lunch:     slices.Clone(d.Meals.Lunch),
		Dinner:    slices.Clone(d.Meals.Dinner),
	}
	return c
}

// ParseDishes splits a comma separated dish list, trimming blanks away.
func ParseDishes(csv string) []string {
	out := []string{}
	for _, part := range strings.Split(csv, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// WithMeals replaces one meal slot. Snacks are not part of the weekly menu.
func (d MenuDay) WithMeals(meal MealType, dishes []string) (MenuDay, error) {
	c := d.Clone()
	switch meal {
	case Breakfast:
		c.Meals.Breakfast = slices.Clone(dishes)
	case Lunch:
		c.Meals.Lunch = slices.Clone(dishes)
	case Dinner:
		c.Meals.Dinner = slices.Clone(dishes)
	default:
		return d, fmt.Errorf("%w: meal %q", ErrInvalidInput, meal)
	}
	return c, nil
}
