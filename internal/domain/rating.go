package domain

import "fmt"

// RatingCategory aggregates the scores residents gave one facility.
type RatingCategory struct {
	Name      string  `json:"name"`
	Rating    float64 `json:"rating"`
	Responses int     `json:"responses"`
}

func (c RatingCategory) Key() string { return c.Name }

func (c RatingCategory) Clone() RatingCategory { return c }

// Submit folds one 1..5 score into the running mean.
func (c RatingCategory) Submit(score int) (RatingCategory, error) {
	if score < 1 || score > 5 {
		return c, fmt.Errorf("%w: score %d for %s must be between 1 and 5", ErrInvalidInput, score, c.Name)
	}
	n := float64(c.Responses)
	c.Rating = (c.Rating*n + float64(score)) / (n + 1)
	c.Responses++
	return c, nil
}
