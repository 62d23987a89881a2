package app

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"hostel_portal/internal/domain"
	"hostel_portal/internal/listing"
	"hostel_portal/internal/stats"
)

type QueryService struct {
	st       Stores
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewQueryService(st Stores, c domain.Cache, ttl time.Duration, now func() time.Time) *QueryService {
	if now == nil {
		now = time.Now
	}
	return &QueryService{st: st, cache: c, cacheTTL: ttl, now: now}
}

func (s *QueryService) today() domain.Date { return domain.DateOf(s.now()) }

// cached is a read-through: a hit returns the cached value, a miss loads and
// stores it. Cache errors only cost a reload.
func cached[T any](ctx context.Context, s *QueryService, key string, load func(context.Context) (T, error)) (T, error) {
	var v T
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &v); ok {
			return v, nil
		}
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
	}
	return v, nil
}

// ---- residents ----

func (s *QueryService) ListResidents(ctx context.Context, q listing.Query) (listing.Page[domain.Resident], error) {
	rs, err := s.st.Residents.List(ctx)
	if err != nil {
		return listing.Page[domain.Resident]{}, err
	}
	return listing.Run(rs, ResidentSchema, q), nil
}

func (s *QueryService) GetResident(ctx context.Context, id string) (domain.Resident, error) {
	return s.st.Residents.Get(ctx, id)
}

func (s *QueryService) ResidentStats(ctx context.Context) (stats.Residents, error) {
	return cached(ctx, s, keyResidentStats, func(ctx context.Context) (stats.Residents, error) {
		rs, err := s.st.Residents.List(ctx)
		return stats.ResidentStats(rs), err
	})
}

// ---- rooms ----

func (s *QueryService) ListRooms(ctx context.Context, q listing.Query) (listing.Page[domain.Room], error) {
	rs, err := s.st.Rooms.List(ctx)
	if err != nil {
		return listing.Page[domain.Room]{}, err
	}
	return listing.Run(rs, RoomSchema, q), nil
}

func (s *QueryService) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	return s.st.Rooms.Get(ctx, id)
}

func (s *QueryService) RoomStats(ctx context.Context) (stats.Rooms, error) {
	return cached(ctx, s, keyRoomStats, func(ctx context.Context) (stats.Rooms, error) {
		rs, err := s.st.Rooms.List(ctx)
		return stats.RoomStats(rs), err
	})
}

// ---- attendance ----

type AttendanceBoard struct {
	Date           domain.Date                    `json:"date"`
	PresentPercent int                            `json:"present_percent"`
	Page           listing.Page[AttendanceRow]    `json:"page"`
	Rooms          []listing.Group[AttendanceRow] `json:"rooms"`
}

// Attendance lays out every resident's mark for date, filtered and paged by
// q; q.Status is one of present, absent, unmarked or all. The current page is
// also grouped by room.
func (s *QueryService) Attendance(ctx context.Context, date domain.Date, q listing.Query) (AttendanceBoard, error) {
	if date.IsZero() {
		date = s.today()
	}
	rs, err := s.st.Residents.List(ctx)
	if err != nil {
		return AttendanceBoard{}, err
	}
	rows := make([]AttendanceRow, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, attendanceRow(r, date))
	}
	page := listing.Run(rows, AttendanceSchema, q)
	return AttendanceBoard{
		Date:           date,
		PresentPercent: stats.PresentToday(rs, date),
		Page:           page,
		Rooms:          listing.GroupBy(page.Items, func(r AttendanceRow) string { return r.RoomNumber }),
	}, nil
}

type AttendanceSummary struct {
	ResidentID string                    `json:"resident_id"`
	From       domain.Date               `json:"from"`
	To         domain.Date               `json:"to"`
	Present    int                       `json:"present"`
	Absent     int                       `json:"absent"`
	Rate       float64                   `json:"rate"`
	Records    []domain.AttendanceRecord `json:"records"`
}

// DefaultAttendanceWindow is how many days a student's summary covers when no range is given.
const DefaultAttendanceWindow = 30

// StudentAttendance summarises one resident's records in [from, to], newest first.
func (s *QueryService) StudentAttendance(ctx context.Context, residentID string, from, to domain.Date) (AttendanceSummary, error) {
	if to.IsZero() {
		to = s.today()
	}
	if from.IsZero() {
		from = to.AddDays(-(DefaultAttendanceWindow - 1))
	}
	if to.Before(from) {
		return AttendanceSummary{}, fmt.Errorf("%w: from %s is after to %s", domain.ErrInvalidInput, from, to)
	}
	r, err := s.st.Residents.Get(ctx, residentID)
	if err != nil {
		return AttendanceSummary{}, err
	}
	out := AttendanceSummary{ResidentID: residentID, From: from, To: to, Records: []domain.AttendanceRecord{}}
	for _, a := range r.Attendance {
		if !a.Date.Before(from) && !to.Before(a.Date) {
			out.Records = append(out.Records, a)
		}
	}
	slices.SortFunc(out.Records, func(a, b domain.AttendanceRecord) int { return cmp.Compare(b.Date, a.Date) })
	out.Present, out.Absent = domain.Tally(out.Records, from, to)
	out.Rate = stats.PeriodRate(out.Present, out.Absent)
	return out, nil
}

// ---- polls ----

func (s *QueryService) ListPolls(ctx context.Context, q listing.Query) (listing.Page[domain.Poll], error) {
	ps, err := s.st.Polls.List(ctx)
	if err != nil {
		return listing.Page[domain.Poll]{}, err
	}
	return listing.Run(ps, PollSchema, q), nil
}

type PollResults struct {
	Poll   domain.Poll         `json:"poll"`
	Shares []stats.OptionShare `json:"shares"`
}

func (s *QueryService) PollResults(ctx context.Context, id string) (PollResults, error) {
	p, err := s.st.Polls.Get(ctx, id)
	if err != nil {
		return PollResults{}, err
	}
	return PollResults{Poll: p, Shares: stats.PollPercentages(p)}, nil
}

func (s *QueryService) PollStats(ctx context.Context) (stats.Polls, error) {
	return cached(ctx, s, keyPollStats, func(ctx context.Context) (stats.Polls, error) {
		ps, err := s.st.Polls.List(ctx)
		return stats.PollStats(ps), err
	})
}

// StudentPoll is a poll as one resident sees it.
type StudentPoll struct {
	PollResults
	Voted    bool   `json:"voted"`
	MyOption string `json:"my_option,omitempty"`
}

// StudentPolls lists the active and ended polls; drafts stay hidden from residents.
func (s *QueryService) StudentPolls(ctx context.Context, residentID string) ([]StudentPoll, error) {
	ps, err := s.st.Polls.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []StudentPoll{}
	for _, p := range ps {
		if p.Status == domain.PollDraft {
			continue
		}
		sp := StudentPoll{PollResults: PollResults{Poll: p, Shares: stats.PollPercentages(p)}}
		for _, v := range p.Votes {
			if v.ResidentID == residentID {
				sp.Voted, sp.MyOption = true, v.OptionID
			}
		}
		out = append(out, sp)
	}
	return out, nil
}

// ---- complaints ----

func (s *QueryService) ListComplaints(ctx context.Context, q listing.Query) (listing.Page[domain.Complaint], error) {
	cs, err := s.st.Complaints.List(ctx)
	if err != nil {
		return listing.Page[domain.Complaint]{}, err
	}
	return listing.Run(cs, ComplaintSchema, q), nil
}

func (s *QueryService) ComplaintStats(ctx context.Context) (stats.Complaints, error) {
	return cached(ctx, s, keyComplaintStats, func(ctx context.Context) (stats.Complaints, error) {
		cs, err := s.st.Complaints.List(ctx)
		return stats.ComplaintStats(cs), err
	})
}

// ---- movements ----

func (s *QueryService) ListMovements(ctx context.Context, q listing.Query) (listing.Page[domain.Movement], error) {
	ms, err := s.st.Movements.List(ctx)
	if err != nil {
		return listing.Page[domain.Movement]{}, err
	}
	return listing.Run(ms, MovementSchema, q), nil
}

func (s *QueryService) MovementStats(ctx context.Context) (stats.Movements, error) {
	return cached(ctx, s, keyMovementStats, func(ctx context.Context) (stats.Movements, error) {
		ms, err := s.st.Movements.List(ctx)
		return stats.MovementStats(ms), err
	})
}

func (s *QueryService) ResidentMovements(ctx context.Context, residentID string) ([]domain.Movement, error) {
	ms, err := s.st.Movements.List(ctx)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(ms, func(m domain.Movement) bool { return m.ResidentID != residentID }), nil
}

// ---- menu ----

func (s *QueryService) WeeklyMenu(ctx context.Context) ([]domain.MenuDay, error) {
	return s.st.MenuDays.List(ctx)
}

func (s *QueryService) ListMenuItems(ctx context.Context, q listing.Query) (listing.Page[domain.MenuItem], error) {
	items, err := s.st.MenuItems.List(ctx)
	if err != nil {
		return listing.Page[domain.MenuItem]{}, err
	}
	return listing.Run(items, MenuItemSchema, q), nil
}

func (s *QueryService) MenuStats(ctx context.Context) (stats.Menu, error) {
	return cached(ctx, s, keyMenuStats, func(ctx context.Context) (stats.Menu, error) {
		items, err := s.st.MenuItems.List(ctx)
		return stats.MenuStats(items), err
	})
}

// ---- announcements ----

// Announcements returns the newest first; limit <= 0 returns all.
func (s *QueryService) Announcements(ctx context.Context, limit int) ([]domain.Announcement, error) {
	as, err := s.st.Announcements.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(as, func(a, b domain.Announcement) int { return b.Date.Compare(a.Date) })
	if limit > 0 && len(as) > limit {
		as = as[:limit]
	}
	return as, nil
}

// ---- ratings ----

// NoGrade is the letter shown while no category has responses.
const NoGrade = "N/A"

type GradeView struct {
	Average    float64                 `json:"average"`
	Letter     string                  `json:"letter"`
	Responses  int                     `json:"responses"`
	Categories []domain.RatingCategory `json:"categories"`
}

func (s *QueryService) Ratings(ctx context.Context) (GradeView, error) {
	return cached(ctx, s, keyGrade, func(ctx context.Context) (GradeView, error) {
		cs, err := s.st.Ratings.List(ctx)
		if err != nil {
			return GradeView{}, err
		}
		v := GradeView{Letter: NoGrade, Categories: cs}
		g, err := stats.WeightedGrade(cs)
		switch {
		case errors.Is(err, domain.ErrNoResponses):
		case err != nil:
			return GradeView{}, err
		default:
			v.Average, v.Letter, v.Responses = g.Average, g.Letter, g.Responses
		}
		return v, nil
	})
}

// ---- payments ----

type FeeLedger struct {
	Entries []domain.FeeEntry `json:"entries"`
	Total   float64           `json:"total"`
}

// Fees lists ad-hoc fee entries, newest first.
func (s *QueryService) Fees(ctx context.Context) (FeeLedger, error) {
	es, err := s.st.FeeEntries.List(ctx)
	if err != nil {
		return FeeLedger{}, err
	}
	slices.SortStableFunc(es, func(a, b domain.FeeEntry) int { return b.Timestamp.Compare(a.Timestamp) })
	return FeeLedger{Entries: es, Total: stats.FeesRaised(es)}, nil
}

type FeeQuote struct {
	Items    []domain.FeeItem `json:"items"`
	Selected []string         `json:"selected"`
	Total    float64          `json:"total"`
}

// QuoteFees prices the mandatory items plus the selected optional ones.
// Mandatory items are always reported as selected.
func (s *QueryService) QuoteFees(ctx context.Context, selected []string) (FeeQuote, error) {
	items, err := s.st.FeeItems.List(ctx)
	if err != nil {
		return FeeQuote{}, err
	}
	picked := []string{}
	for _, it := range items {
		if it.Mandatory || slices.Contains(selected, it.ID) {
			picked = append(picked, it.ID)
		}
	}
	return FeeQuote{Items: items, Selected: picked, Total: stats.FeeTotal(items, picked)}, nil
}

func (s *QueryService) FoodBookings(ctx context.Context, residentID string) ([]domain.FoodBooking, error) {
	bs, err := s.st.FoodBookings.List(ctx)
	if err != nil {
		return nil, err
	}
	bs = slices.DeleteFunc(bs, func(b domain.FoodBooking) bool { return b.ResidentID != residentID })
	slices.SortStableFunc(bs, func(a, b domain.FoodBooking) int { return cmp.Compare(a.Date, b.Date) })
	return bs, nil
}

// ---- dashboards ----

type ManagementDashboard struct {
	Date          domain.Date           `json:"date"`
	Residents     stats.Residents       `json:"residents"`
	Rooms         stats.Rooms           `json:"rooms"`
	Polls         stats.Polls           `json:"polls"`
	Complaints    stats.Complaints      `json:"complaints"`
	Movements     stats.Movements       `json:"movements"`
	PresentToday  int                   `json:"present_today_percent"`
	Grade         GradeView             `json:"grade"`
	Announcements []domain.Announcement `json:"announcements"`
}

// DashboardAnnouncements is how many announcements the dashboards show.
const DashboardAnnouncements = 3

// ManagementDashboard loads every stat card concurrently.
func (s *QueryService) ManagementDashboard(ctx context.Context) (ManagementDashboard, error) {
	return cached(ctx, s, keyDashboard, func(ctx context.Context) (ManagementDashboard, error) {
		d := ManagementDashboard{Date: s.today()}
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			rs, err := s.st.Residents.List(ctx)
			if err != nil {
				return err
			}
			d.Residents = stats.ResidentStats(rs)
			d.PresentToday = stats.PresentToday(rs, d.Date)
			return nil
		})
		g.Go(func() (err error) { d.Rooms, err = s.RoomStats(ctx); return })
		g.Go(func() (err error) { d.Polls, err = s.PollStats(ctx); return })
		g.Go(func() (err error) { d.Complaints, err = s.ComplaintStats(ctx); return })
		g.Go(func() (err error) { d.Movements, err = s.MovementStats(ctx); return })
		g.Go(func() (err error) { d.Grade, err = s.Ratings(ctx); return })
		g.Go(func() (err error) { d.Announcements, err = s.Announcements(ctx, DashboardAnnouncements); return })
		if err := g.Wait(); err != nil {
			return ManagementDashboard{}, err
		}
		return d, nil
	})
}

type StudentDashboard struct {
	Resident          domain.Resident       `json:"resident"`
	Attendance        AttendanceSummary     `json:"attendance"`
	OpenPolls         int                   `json:"open_polls"`
	PendingComplaints int                   `json:"pending_complaints"`
	Grade             GradeView             `json:"grade"`
	Announcements     []domain.Announcement `json:"announcements"`
}

func (s *QueryService) StudentDashboard(ctx context.Context, residentID string) (StudentDashboard, error) {
	r, err := s.st.Residents.Get(ctx, residentID)
	if err != nil {
		return StudentDashboard{}, err
	}
	d := StudentDashboard{Resident: r}
	d.Resident.Attendance = nil

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { d.Attendance, err = s.StudentAttendance(gctx, residentID, "", ""); return })
	g.Go(func() (err error) { d.Grade, err = s.Ratings(gctx); return })
	g.Go(func() (err error) { d.Announcements, err = s.Announcements(gctx, DashboardAnnouncements); return })
	g.Go(func() error {
		ps, err := s.st.Polls.List(gctx)
		for _, p := range ps {
			if p.Status == domain.PollActive && !p.HasVoted(residentID) {
				d.OpenPolls++
			}
		}
		return err
	})
	g.Go(func() error {
		cs, err := s.st.Complaints.List(gctx)
		for _, c := range cs {
			if c.Status == domain.ComplaintPending && c.SubmittedBy == r.Name {
				d.PendingComplaints++
			}
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return StudentDashboard{}, err
	}
	return d, nil
}
