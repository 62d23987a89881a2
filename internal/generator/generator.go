// Package generator produces the synthetic dataset the portal boots with.
// Output depends only on the seed and the clock, so tests and the seeder
// can reproduce a run exactly.
package generator

import (
	"fmt"
	"math/rand/v2"
	"time"

	"hostel_portal/internal/domain"
)

const (
	RoomsPerFloor     = 50
	ResidentsPerFloor = 75
	BedsPerRoom       = 3
	AttendanceDays    = 30
)

var (
	firstNames   = []string{"James", "John", "Robert", "Michael", "William", "David", "Richard", "Joseph", "Thomas", "Charles"}
	lastNames    = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	relations    = []string{"Parent", "Sibling", "Spouse", "Guardian"}
	amenityList  = []string{"Bed", "Desk", "Wardrobe", "AC", "Fan", "Bathroom", "Balcony", "WiFi", "Hot Water"}
	roomTypes    = []domain.RoomType{domain.RoomSingle, domain.RoomDouble, domain.RoomDormitory}
	roomStatuses = []domain.RoomStatus{domain.RoomOccupied, domain.RoomVacant, domain.RoomMaintenance}
	conditions   = []domain.RoomCondition{domain.ConditionClean, domain.ConditionNeedsCleaning, domain.ConditionMaintenance}
	pollCats     = []domain.PollCategory{domain.PollGeneral, domain.PollFood, domain.PollFacilities, domain.PollEvents, domain.PollOther}
	purposes     = []string{"Family Visit", "Medical", "Weekend Trip", "Official Work", "Personal Work"}
	destinations = []string{"Home", "Hospital", "Office", "Other City", "University"}
)

type Generator struct {
	rnd *rand.Rand
	now time.Time
}

// New returns a generator whose output is fixed by seed and now.
func New(seed uint64, now time.Time) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), now: now.UTC()}
}

func pick[T any](g *Generator, xs []T) T { return xs[g.rnd.IntN(len(xs))] }

func (g *Generator) name() string { return pick(g, firstNames) + " " + pick(g, lastNames) }

func (g *Generator) phone() string {
	return fmt.Sprintf("+1 (555) %03d-%04d", 100+g.rnd.IntN(900), 1000+g.rnd.IntN(9000))
}

// daysFrom returns today shifted by a uniform [0, n) days, forward when n > 0.
func (g *Generator) daysFrom(n int) domain.Date {
	today := domain.DateOf(g.now)
	if n == 0 {
		return today
	}
	if n < 0 {
		return today.AddDays(-g.rnd.IntN(-n))
	}
	return today.AddDays(g.rnd.IntN(n))
}

func (g *Generator) within(d time.Duration, forward bool) time.Time {
	off := time.Duration(g.rnd.Int64N(int64(d)))
	if forward {
		return g.now.Add(off)
	}
	return g.now.Add(-off)
}

// ResidentRoom is the room a generated resident i sleeps in: 75 residents per
// floor letter, three per room.
func ResidentRoom(i int) (room string, bed int) {
	letter := string(rune('A' + i/ResidentsPerFloor))
	return fmt.Sprintf("%s%02d", letter, (i%ResidentsPerFloor)/BedsPerRoom+1), i%BedsPerRoom + 1
}

func ResidentID(i int) string { return fmt.Sprintf("resident-%d", i) }

func (g *Generator) Residents(n int) []domain.Resident {
	statuses := []domain.ResidentStatus{domain.ResidentActive, domain.ResidentCheckingOut, domain.ResidentCheckedOut}
	out := make([]domain.Resident, 0, n)
	for i := range n {
		room, bed := ResidentRoom(i)
		out = append(out, domain.Resident{
			ID:         ResidentID(i),
			Name:       g.name(),
			RoomNumber: room,
			BedNumber:  bed,
			Phone:      g.phone(),
			Email:      fmt.Sprintf("resident%d@hostel.com", i+1),
			CheckIn:    g.daysFrom(-90),
			CheckOut:   g.daysFrom(90),
			Status:     pick(g, statuses),
			EmergencyContact: domain.EmergencyContact{
				Name:     g.name(),
				Relation: pick(g, relations),
				Phone:    g.phone(),
			},
		})
	}
	return out
}

// Rooms lays rooms out floor by floor, A01..A50 then B01.., so 250 rooms
// cover floors A to E; larger sizes continue on F, G and so on.
func (g *Generator) Rooms(n int) []domain.Room {
	out := make([]domain.Room, 0, n)
	for i := range n {
		num := fmt.Sprintf("%c%02d", rune('A'+i/RoomsPerFloor), i%RoomsPerFloor+1)
		typ := pick(g, roomTypes)
		r := domain.Room{
			ID:          num,
			Number:      num,
			Type:        typ,
			Status:      pick(g, roomStatuses),
			Capacity:    domain.CapacityFor(typ),
			Condition:   pick(g, conditions),
			LastCleaned: g.daysFrom(-30),
			Amenities:   append([]string(nil), amenityList[:4+g.rnd.IntN(5)]...),
			Residents:   []domain.RoomResident{},
		}
		if r.Condition == domain.ConditionMaintenance {
			r.MaintenanceStatus = "scheduled"
		}
		if r.Status == domain.RoomOccupied {
			for b := range 1 + g.rnd.IntN(r.Capacity) {
				r.Residents = append(r.Residents, domain.RoomResident{
					ID:       fmt.Sprintf("%s-%d", num, b+1),
					Name:     g.name(),
					CheckIn:  g.daysFrom(-90),
					CheckOut: g.daysFrom(90),
					Status:   domain.ResidentActive,
				})
			}
		}
		r.CurrentOccupants = len(r.Residents)
		out = append(out, r)
	}
	return out
}

// Polls builds polls whose vote log agrees with the option tallies: every
// voter appears once and total_votes == len(votes) == sum of option votes.
func (g *Generator) Polls(n, voters int) []domain.Poll {
	statuses := []domain.PollStatus{domain.PollDraft, domain.PollActive, domain.PollEnded}
	out := make([]domain.Poll, 0, n)
	for i := range n {
		opts := make([]domain.PollOption, 2+g.rnd.IntN(3))
		for j := range opts {
			opts[j] = domain.PollOption{ID: fmt.Sprintf("option-%d", j+1), Text: fmt.Sprintf("Option %d", j+1)}
		}
		p := domain.Poll{
			ID:          fmt.Sprintf("poll-%d", i),
			Title:       fmt.Sprintf("Sample Poll %d", i+1),
			Description: fmt.Sprintf("This is a sample poll description for poll %d", i+1),
			Options:     opts,
			StartDate:   g.within(7*24*time.Hour, false),
			EndDate:     g.within(7*24*time.Hour, true),
			Status:      pick(g, statuses),
			Votes:       []domain.Vote{},
			CreatedAt:   g.within(30*24*time.Hour, false),
			Category:    pick(g, pollCats),
		}
		if p.Status != domain.PollDraft && voters > 0 {
			count := g.rnd.IntN(min(voters, 100) + 1)
			for _, v := range g.rnd.Perm(voters)[:count] {
				oi := g.rnd.IntN(len(opts))
				p.Options[oi].Votes++
				p.Votes = append(p.Votes, domain.Vote{
					ResidentID: ResidentID(v),
					OptionID:   opts[oi].ID,
					Timestamp:  g.within(7*24*time.Hour, false),
				})
			}
		}
		p.TotalVotes = len(p.Votes)
		out = append(out, p)
	}
	return out
}

// Movements gives each of the first n residents zero to two in/out entries.
func (g *Generator) Movements(residents []domain.Resident, n int) []domain.Movement {
	statuses := []domain.MovementStatus{domain.MovementOngoing, domain.MovementReturned, domain.MovementOverdue}
	var out []domain.Movement
	for i, r := range residents[:min(n, len(residents))] {
		for j := range g.rnd.IntN(3) {
			out = append(out, domain.Movement{
				ID:            fmt.Sprintf("movement-%d-%d", i, j),
				ResidentID:    r.ID,
				ResidentName:  r.Name,
				RoomNumber:    r.RoomNumber,
				BedNumber:     r.BedNumber,
				Destination:   pick(g, destinations),
				Purpose:       pick(g, purposes),
				DepartureDate: g.daysFrom(-7),
				ReturnDate:    g.daysFrom(14),
				Status:        pick(g, statuses),
			})
		}
	}
	return out
}

// Attendance fills in the last AttendanceDays days for each resident, about
// nine in ten marked present and one in five noted as a late arrival.
func (g *Generator) Attendance(residents []domain.Resident) []domain.Resident {
	today := domain.DateOf(g.now)
	out := make([]domain.Resident, 0, len(residents))
	for _, r := range residents {
		c := r.Clone()
		c.Attendance = make([]domain.AttendanceRecord, 0, AttendanceDays)
		for d := range AttendanceDays {
			rec := domain.AttendanceRecord{Date: today.AddDays(-d), Present: g.rnd.Float64() > 0.1}
			if g.rnd.Float64() > 0.8 {
				rec.Note = "Late arrival"
			}
			c.Attendance = append(c.Attendance, rec)
		}
		out = append(out, c)
	}
	return out
}

func (g *Generator) Complaints() []domain.Complaint {
	at := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02T15:04:05", s)
		return t
	}
	return []domain.Complaint{
		{ID: "complaint-1", Title: "Water Leakage in Room 203", Description: "There's a constant water drip from the ceiling near the window.",
			Priority: domain.PriorityHigh, Status: domain.ComplaintPending, SubmittedBy: "John Doe", RoomNumber: "203", SubmittedAt: at("2024-03-15T10:30:00"), Category: "maintenance"},
		{ID: "complaint-2", Title: "Noisy Neighbors in Room 305", Description: "Constant loud music and parties after quiet hours.",
			Priority: domain.PriorityMedium, Status: domain.ComplaintPending, SubmittedBy: "Sarah Smith", RoomNumber: "304", SubmittedAt: at("2024-03-16T15:45:00"), Category: "noise"},
		{ID: "complaint-3", Title: "Broken AC Unit", Description: "Air conditioning not working for the past 2 days. Room is too hot.",
			Priority: domain.PriorityHigh, Status: domain.ComplaintResolved, SubmittedBy: "Mike Johnson", RoomNumber: "405", SubmittedAt: at("2024-03-14T09:15:00"), Category: "maintenance"},
		{ID: "complaint-4", Title: "Parking Space Issue", Description: "Someone keeps parking in my assigned spot #B45.",
			Priority: domain.PriorityLow, Status: domain.ComplaintPending, SubmittedBy: "Emma Wilson", RoomNumber: "112", SubmittedAt: at("2024-03-16T11:20:00"), Category: "parking"},
		{ID: "complaint-5", Title: "Pest Control Needed", Description: "Spotted cockroaches in the kitchen area.",
			Priority: domain.PriorityHigh, Status: domain.ComplaintPending, SubmittedBy: "David Brown", RoomNumber: "506", SubmittedAt: at("2024-03-15T16:30:00"), Category: "pest control"},
	}
}

func (g *Generator) Announcements() []domain.Announcement {
	day := func(s string) time.Time { return domain.Date(s).Time() }
	return []domain.Announcement{
		{ID: "announcement-1", Title: "Maintenance Schedule", Content: "The water supply will be interrupted on Sunday from 10 AM to 2 PM due to routine maintenance.",
			Date: day("2024-03-20"), Priority: domain.PriorityHigh},
		{ID: "announcement-2", Title: "Hostel Day Celebration", Content: "Annual Hostel Day celebrations will be held on March 25th. All students are requested to participate.",
			Date: day("2024-03-15"), Priority: domain.PriorityMedium},
		{ID: "announcement-3", Title: "New Mess Menu", Content: "Updated mess menu for the month of March is now available. Please check the notice board.",
			Date: day("2024-03-10"), Priority: domain.PriorityLow},
	}
}

func (g *Generator) WeeklyMenu() []domain.MenuDay {
	day := func(name string, b, l, d []string) domain.MenuDay {
		return domain.MenuDay{Day: name, Meals: domain.Meals{Breakfast: b, Lunch: l, Dinner: d}}
	}
	return []domain.MenuDay{
		day("Monday", []string{"Idli", "Sambar", "Chutney", "Coffee/Tea"}, []string{"Rice", "Dal", "Mixed Veg Curry", "Curd", "Pickle"}, []string{"Chapati", "Paneer Butter Masala", "Rice", "Dal"}),
		day("Tuesday", []string{"Poha", "Boiled Eggs", "Fruit", "Coffee/Tea"}, []string{"Rice", "Rajma", "Aloo Gobi", "Curd", "Pickle"}, []string{"Chapati", "Chicken Curry", "Rice", "Dal"}),
		day("Wednesday", []string{"Dosa", "Sambar", "Coconut Chutney", "Coffee/Tea"}, []string{"Rice", "Dal Fry", "Bhindi Masala", "Curd", "Pickle"}, []string{"Chapati", "Egg Curry", "Rice", "Dal Tadka"}),
		day("Thursday", []string{"Upma", "Boiled Eggs", "Banana", "Coffee/Tea"}, []string{"Rice", "Chana Dal", "Cabbage Poriyal", "Curd", "Pickle"}, []string{"Chapati", "Mixed Veg Curry", "Rice", "Dal"}),
		day("Friday", []string{"Puri", "Aloo Bhaji", "Fruit", "Coffee/Tea"}, []string{"Rice", "Sambar", "Potato Fry", "Curd", "Pickle"}, []string{"Chapati", "Fish Curry", "Rice", "Dal"}),
		day("Saturday", []string{"Uttapam", "Sambar", "Tomato Chutney", "Coffee/Tea"}, []string{"Rice", "Dal", "Palak Paneer", "Curd", "Pickle"}, []string{"Chapati", "Mushroom Masala", "Rice", "Dal"}),
		day("Sunday", []string{"Vada", "Sambar", "Coconut Chutney", "Coffee/Tea"}, []string{"Veg Biryani", "Raita", "Salan", "Pickle"}, []string{"Chapati", "Mutton Curry", "Rice", "Dal"}),
	}
}

// MenuItems prices a la carte dishes with a popularity drawn from [3.5, 5).
func (g *Generator) MenuItems() []domain.MenuItem {
	type dish struct {
		name  string
		meal  domain.MealType
		cat   domain.FoodCategory
		price float64
		kcal  int
	}
	dishes := []dish{
		{"Masala Dosa", domain.Breakfast, domain.Veg, 40, 350},
		{"Idli Sambar", domain.Breakfast, domain.Vegan, 30, 250},
		{"Egg Bhurji", domain.Breakfast, domain.NonVeg, 45, 300},
		{"Veg Thali", domain.Lunch, domain.Veg, 80, 700},
		{"Chicken Biryani", domain.Lunch, domain.NonVeg, 120, 850},
		{"Chana Masala", domain.Lunch, domain.Vegan, 60, 450},
		{"Paneer Butter Masala", domain.Dinner, domain.Veg, 90, 600},
		{"Fish Curry", domain.Dinner, domain.NonVeg, 110, 550},
		{"Samosa", domain.Snack, domain.Veg, 15, 260},
		{"Fruit Bowl", domain.Snack, domain.Vegan, 35, 150},
	}
	out := make([]domain.MenuItem, 0, len(dishes))
	for i, d := range dishes {
		var allergens []string
		if d.cat == domain.Veg {
			allergens = []string{"Dairy"}
		}
		out = append(out, domain.MenuItem{
			ID:         fmt.Sprintf("item-%d", i+1),
			Name:       d.name,
			Type:       d.meal,
			Category:   d.cat,
			Price:      d.price,
			Available:  g.rnd.Float64() > 0.2,
			Allergens:  allergens,
			Nutrition:  &domain.Nutrition{Calories: d.kcal, Protein: d.kcal / 25, Carbs: d.kcal / 8, Fat: d.kcal / 40},
			Popularity: float64(35+g.rnd.IntN(15)) / 10,
		})
	}
	return out
}

func (g *Generator) RatingCategories() []domain.RatingCategory {
	return []domain.RatingCategory{
		{Name: "Food Quality", Rating: 4.2, Responses: 156},
		{Name: "Cleanliness", Rating: 4.5, Responses: 178},
		{Name: "Maintenance", Rating: 3.8, Responses: 143},
		{Name: "Staff Behavior", Rating: 4.7, Responses: 165},
		{Name: "Security", Rating: 4.6, Responses: 170},
		{Name: "Internet", Rating: 3.9, Responses: 182},
	}
}

func (g *Generator) FeeItems() []domain.FeeItem {
	return []domain.FeeItem{
		{ID: "room-rent", Name: "Room Rent", Amount: 15000, Description: "Monthly room rent", Mandatory: true},
		{ID: "utilities", Name: "Utilities", Amount: 2000, Description: "Electricity and water", Mandatory: true},
		{ID: "maintenance", Name: "Maintenance", Amount: 1000, Description: "Upkeep of common areas", Mandatory: true},
		{ID: "meal-plan", Name: "Meal Plan", Amount: 3500, Description: "Three meals a day at the mess"},
		{ID: "laundry", Name: "Laundry", Amount: 800, Description: "Weekly laundry service"},
	}
}

// Dataset is everything the portal is seeded with.
type Dataset struct {
	Residents     []domain.Resident
	Rooms         []domain.Room
	Polls         []domain.Poll
	Movements     []domain.Movement
	Complaints    []domain.Complaint
	Announcements []domain.Announcement
	MenuItems     []domain.MenuItem
	WeeklyMenu    []domain.MenuDay
	Ratings       []domain.RatingCategory
	FeeItems      []domain.FeeItem
}

type Sizes struct {
	Residents         int
	Rooms             int
	Polls             int
	MovementResidents int
}

var DefaultSizes = Sizes{Residents: 750, Rooms: 250, Polls: 10, MovementResidents: 50}

func (g *Generator) Dataset(sz Sizes) Dataset {
	residents := g.Attendance(g.Residents(sz.Residents))
	return Dataset{
		Residents:     residents,
		Rooms:         g.Rooms(sz.Rooms),
		Polls:         g.Polls(sz.Polls, sz.Residents),
		Movements:     g.Movements(residents, sz.MovementResidents),
		Complaints:    g.Complaints(),
		Announcements: g.Announcements(),
		MenuItems:     g.MenuItems(),
		WeeklyMenu:    g.WeeklyMenu(),
		Ratings:       g.RatingCategories(),
		FeeItems:      g.FeeItems(),
	}
}
