// Package stats derives the summary numbers shown next to each list:
// percentages, the weighted satisfaction grade and per-page counters.
// Every ratio is zero-guarded, nothing here returns NaN or Inf.
package stats

import (
	"math"
	"slices"

	"hostel_portal/internal/domain"
)

// Percent is round(part/whole*100) with halves rounded up, 0 when whole is 0.
func Percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(whole) + 0.5))
}

// PresentToday is the share of residents with a present record on date.
func PresentToday(residents []domain.Resident, date domain.Date) int {
	n := 0
	for _, r := range residents {
		if a, ok := r.AttendanceOn(date); ok && a.Present {
			n++
		}
	}
	return Percent(n, len(residents))
}

type Grade struct {
	Average   float64 `json:"average"`
	Letter    string  `json:"letter"`
	Responses int     `json:"responses"`
}

// Letter maps an average rating to a grade; thresholds are inclusive.
func Letter(avg float64) string {
	switch {
	case avg >= 4.5:
		return "A+"
	case avg >= 4.0:
		return "A"
	case avg >= 3.5:
		return "B+"
	case avg >= 3.0:
		return "B"
	case avg >= 2.5:
		return "C"
	}
	return "D"
}

// WeightedGrade averages category ratings weighted by their response counts.
func WeightedGrade(categories []domain.RatingCategory) (Grade, error) {
	var sum float64
	var n int
	for _, c := range categories {
		sum += c.Rating * float64(c.Responses)
		n += c.Responses
	}
	if n == 0 {
		return Grade{}, domain.ErrNoResponses
	}
	// rounded so averages that sit exactly on a threshold are not pushed below it
	avg := math.Round(sum/float64(n)*1e9) / 1e9
	return Grade{Average: avg, Letter: Letter(avg), Responses: n}, nil
}

type OptionShare struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Votes   int    `json:"votes"`
	Percent int    `json:"percent"`
}

// PollPercentages gives each option its share of the poll's total votes.
func PollPercentages(p domain.Poll) []OptionShare {
	out := make([]OptionShare, 0, len(p.Options))
	for _, o := range p.Options {
		out = append(out, OptionShare{ID: o.ID, Text: o.Text, Votes: o.Votes, Percent: Percent(o.Votes, p.TotalVotes)})
	}
	return out
}

type Rooms struct {
	Total         int `json:"total"`
	Occupied      int `json:"occupied"`
	Vacant        int `json:"vacant"`
	Occupancy     int `json:"occupancy_percent"`
	Maintenance   int `json:"maintenance"`
	NeedsCleaning int `json:"needs_cleaning"`
}

func RoomStats(rooms []domain.Room) Rooms {
	var s Rooms
	s.Total = len(rooms)
	for _, r := range rooms {
		switch r.Status {
		case domain.RoomOccupied:
			s.Occupied++
		case domain.RoomVacant:
			s.Vacant++
		case domain.RoomMaintenance:
			s.Maintenance++
		}
		if r.Condition == domain.ConditionNeedsCleaning {
			s.NeedsCleaning++
		}
	}
	s.Occupancy = Percent(s.Occupied, s.Total)
	return s
}

// ResidentsPerBlock is how many residents one floor letter holds.
const ResidentsPerBlock = 75

type Residents struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	CheckingOut int `json:"checking_out"`
	Blocks      int `json:"blocks"`
}

func ResidentStats(rs []domain.Resident) Residents {
	s := Residents{Total: len(rs), Blocks: (len(rs) + ResidentsPerBlock - 1) / ResidentsPerBlock}
	for _, r := range rs {
		switch r.Status {
		case domain.ResidentActive:
			s.Active++
		case domain.ResidentCheckingOut:
			s.CheckingOut++
		}
	}
	return s
}

type Polls struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Ended      int `json:"ended"`
	TotalVotes int `json:"total_votes"`
}

func PollStats(ps []domain.Poll) Polls {
	s := Polls{Total: len(ps)}
	for _, p := range ps {
		s.TotalVotes += p.TotalVotes
		switch p.Status {
		case domain.PollActive:
			s.Active++
		case domain.PollEnded:
			s.Ended++
		}
	}
	return s
}

type Movements struct {
	Total    int `json:"total"`
	Ongoing  int `json:"ongoing"`
	Returned int `json:"returned"`
	Overdue  int `json:"overdue"`
}

func MovementStats(ms []domain.Movement) Movements {
	s := Movements{Total: len(ms)}
	for _, m := range ms {
		switch m.Status {
		case domain.MovementOngoing:
			s.Ongoing++
		case domain.MovementReturned:
			s.Returned++
		case domain.MovementOverdue:
			s.Overdue++
		}
	}
	return s
}

type Menu struct {
	Total         int     `json:"total"`
	Available     int     `json:"available_percent"`
	TopPopularity float64 `json:"top_popularity"`
	CategoryCount int     `json:"category_count"`
	AveragePrice  float64 `json:"average_price"`
}

func MenuStats(items []domain.MenuItem) Menu {
	s := Menu{Total: len(items)}
	var avail int
	var price float64
	var cats []domain.FoodCategory
	for _, it := range items {
		if it.Available {
			avail++
		}
		price += it.Price
		s.TopPopularity = max(s.TopPopularity, it.Popularity)
		if !slices.Contains(cats, it.Category) {
			cats = append(cats, it.Category)
		}
	}
	s.Available = Percent(avail, len(items))
	s.CategoryCount = len(cats)
	if len(items) > 0 {
		s.AveragePrice = math.Round(price/float64(len(items))*100) / 100
	}
	return s
}

// PeriodRate is present/(present+absent) as a percentage with one decimal.
func PeriodRate(present, absent int) float64 {
	total := present + absent
	if total <= 0 {
		return 0
	}
	return math.Round(float64(present)*1000/float64(total)) / 10
}

// FeeTotal sums mandatory items plus the optional ones whose id is selected.
func FeeTotal(items []domain.FeeItem, selected []string) float64 {
	var sum float64
	for _, it := range items {
		if it.Mandatory || slices.Contains(selected, it.ID) {
			sum += it.Amount
		}
	}
	return sum
}

// FeesRaised sums ad-hoc fee entries.
func FeesRaised(entries []domain.FeeEntry) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Amount
	}
	return sum
}

type Complaints struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Resolved int `json:"resolved"`
	High     int `json:"high_priority_pending"`
}

func ComplaintStats(cs []domain.Complaint) Complaints {
	s := Complaints{Total: len(cs)}
	for _, c := range cs {
		if c.Status == domain.ComplaintResolved {
			s.Resolved++
			continue
		}
		s.Pending++
		if c.Priority == domain.PriorityHigh {
			s.High++
		}
	}
	return s
}
