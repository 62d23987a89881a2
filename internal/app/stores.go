package app

import (
	"database/sql"

	"hostel_portal/internal/domain"
	"hostel_portal/internal/storage/memory"
	mysqlrepo "hostel_portal/internal/storage/mysql"
)

// Record kinds, used as storage discriminators and metric labels.
const (
	KindResident     = "resident"
	KindRoom         = "room"
	KindPoll         = "poll"
	KindMenuItem     = "menu_item"
	KindMenuDay      = "menu_day"
	KindRating       = "rating"
	KindComplaint    = "complaint"
	KindMovement     = "movement"
	KindAnnouncement = "announcement"
	KindFeeEntry     = "fee_entry"
	KindFeeItem      = "fee_item"
	KindFoodBooking  = "food_booking"
)

// Stores holds one repository per record kind.
type Stores struct {
	Residents     domain.Repository[domain.Resident]
	Rooms         domain.Repository[domain.Room]
	Polls         domain.Repository[domain.Poll]
	MenuItems     domain.Repository[domain.MenuItem]
	MenuDays      domain.Repository[domain.MenuDay]
	Ratings       domain.Repository[domain.RatingCategory]
	Complaints    domain.Repository[domain.Complaint]
	Movements     domain.Repository[domain.Movement]
	Announcements domain.Repository[domain.Announcement]
	FeeEntries    domain.Repository[domain.FeeEntry]
	FeeItems      domain.Repository[domain.FeeItem]
	FoodBookings  domain.Repository[domain.FoodBooking]
}

func NewMemoryStores() Stores {
	return Stores{
		Residents:     memory.New[domain.Resident](KindResident),
		Rooms:         memory.New[domain.Room](KindRoom),
		Polls:         memory.New[domain.Poll](KindPoll),
		MenuItems:     memory.New[domain.MenuItem](KindMenuItem),
		MenuDays:      memory.New[domain.MenuDay](KindMenuDay),
		Ratings:       memory.New[domain.RatingCategory](KindRating),
		Complaints:    memory.New[domain.Complaint](KindComplaint),
		Movements:     memory.New[domain.Movement](KindMovement),
		Announcements: memory.New[domain.Announcement](KindAnnouncement),
		FeeEntries:    memory.New[domain.FeeEntry](KindFeeEntry),
		FeeItems:      memory.New[domain.FeeItem](KindFeeItem),
		FoodBookings:  memory.New[domain.FoodBooking](KindFoodBooking),
	}
}

// NewMySQLStores keeps every kind in the shared records table of db.
func NewMySQLStores(db *sql.DB) Stores {
	return Stores{
		Residents:     mysqlrepo.New[domain.Resident](db, KindResident),
		Rooms:         mysqlrepo.New[domain.Room](db, KindRoom),
		Polls:         mysqlrepo.New[domain.Poll](db, KindPoll),
		MenuItems:     mysqlrepo.New[domain.MenuItem](db, KindMenuItem),
		MenuDays:      mysqlrepo.New[domain.MenuDay](db, KindMenuDay),
		Ratings:       mysqlrepo.New[domain.RatingCategory](db, KindRating),
		Complaints:    mysqlrepo.New[domain.Complaint](db, KindComplaint),
		Movements:     mysqlrepo.New[domain.Movement](db, KindMovement),
		Announcements: mysqlrepo.New[domain.Announcement](db, KindAnnouncement),
		FeeEntries:    mysqlrepo.New[domain.FeeEntry](db, KindFeeEntry),
		FeeItems:      mysqlrepo.New[domain.FeeItem](db, KindFeeItem),
		FoodBookings:  mysqlrepo.New[domain.FoodBooking](db, KindFoodBooking),
	}
}
