package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hostel_portal/internal/adapters/observability"
	"hostel_portal/internal/domain"
)

// CommandService applies mutations: load a record, run the domain rule on a
// copy, store the result, then drop the cached views it made stale.
type CommandService struct {
	st    Stores
	cache domain.Cache
	now   func() time.Time
	newID func() string

	// mu serialises load-apply-store so concurrent commands on one record
	// cannot lose each other's writes.
	mu sync.Mutex
}

func NewCommandService(st Stores, cache domain.Cache, now func() time.Time) *CommandService {
	if now == nil {
		now = time.Now
	}
	return &CommandService{st: st, cache: cache, now: now, newID: uuid.NewString}
}

// WithIDs swaps the id source; tests use it for predictable ids.
func (s *CommandService) WithIDs(f func() string) *CommandService {
	s.newID = f
	return s
}

func (s *CommandService) today() domain.Date { return domain.DateOf(s.now()) }

func (s *CommandService) invalidate(ctx context.Context, kind string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, staleKeys[kind]...); err != nil {
		log.Warn().Err(err).Str("entity", kind).Msg("cache invalidation failed")
	}
}

var rejections = []error{
	domain.ErrNotFound, domain.ErrInvalidInput, domain.ErrInvalidTransition, domain.ErrInvalidStay,
	domain.ErrRoomFull, domain.ErrDuplicate, domain.ErrPollNotActive, domain.ErrUnknownOption,
	domain.ErrAlreadyResolved, domain.ErrBookingTooSoon,
}

// IsRejection reports whether err is a domain rule refusing the command
// rather than a storage failure.
func IsRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}

// record logs and counts the outcome of one command.
func (s *CommandService) record(ctx context.Context, kind, op, id string, err error) {
	switch {
	case err == nil:
		observability.ObserveMutation(kind, op, "ok")
		log.Info().Str("entity", kind).Str("op", op).Str("id", id).Msg("mutation applied")
		s.invalidate(ctx, kind)
	case IsRejection(err):
		observability.ObserveMutation(kind, op, "rejected")
		log.Warn().Str("entity", kind).Str("op", op).Str("id", id).Err(err).Msg("mutation rejected")
	default:
		observability.ObserveMutation(kind, op, "error")
		log.Error().Str("entity", kind).Str("op", op).Str("id", id).Err(err).Msg("mutation failed")
	}
}

// update is the load-apply-store cycle shared by every command on an existing record.
func update[T domain.Entity[T]](ctx context.Context, s *CommandService, repo domain.Repository[T], kind, op, id string, apply func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := func() (T, error) {
		cur, err := repo.Get(ctx, id)
		if err != nil {
			return cur, err
		}
		next, err := apply(cur)
		if err != nil {
			return cur, err
		}
		if err := repo.Upsert(ctx, next); err != nil {
			return cur, fmt.Errorf("store %s %s: %w", kind, id, err)
		}
		return next, nil
	}()
	s.record(ctx, kind, op, id, err)
	return out, err
}

// create stores a brand new record.
func create[T domain.Entity[T]](ctx context.Context, s *CommandService, repo domain.Repository[T], kind string, v T, err error) (T, error) {
	if err == nil {
		s.mu.Lock()
		err = repo.Upsert(ctx, v)
		s.mu.Unlock()
	}
	s.record(ctx, kind, "create", v.Key(), err)
	return v, err
}

// ---- residents & attendance ----

type ResidentInput struct {
	Name             string
	RoomNumber       string
	BedNumber        int
	Phone            string
	Email            string
	CheckIn          domain.Date
	CheckOut         domain.Date
	EmergencyContact domain.EmergencyContact
}

func (s *CommandService) CreateResident(ctx context.Context, in ResidentInput) (domain.Resident, error) {
	r := domain.Resident{
		ID:               s.newID(),
		Name:             strings.TrimSpace(in.Name),
		RoomNumber:       strings.ToUpper(strings.TrimSpace(in.RoomNumber)),
		BedNumber:        in.BedNumber,
		Phone:            in.Phone,
		Email:            in.Email,
		CheckIn:          in.CheckIn,
		CheckOut:         in.CheckOut,
		Status:           domain.ResidentActive,
		EmergencyContact: in.EmergencyContact,
	}
	return create(ctx, s, s.st.Residents, KindResident, r, r.Validate())
}

func (s *CommandService) AdvanceResident(ctx context.Context, id string, to domain.ResidentStatus) (domain.Resident, error) {
	return update(ctx, s, s.st.Residents, KindResident, "status", id, func(r domain.Resident) (domain.Resident, error) {
		return r.Advance(to)
	})
}

// MarkAttendance upserts the (resident, date) record. An empty date means today.
func (s *CommandService) MarkAttendance(ctx context.Context, residentID string, date domain.Date, present bool, note string) (domain.Resident, error) {
	if date.IsZero() {
		date = s.today()
	}
	return update(ctx, s, s.st.Residents, KindResident, "attendance", residentID, func(r domain.Resident) (domain.Resident, error) {
		return r.WithAttendance(date, present, strings.TrimSpace(note)), nil
	})
}

// ---- rooms ----

func (s *CommandService) AddAmenity(ctx context.Context, roomID, name string) (domain.Room, error) {
	return update(ctx, s, s.st.Rooms, KindRoom, "add_amenity", roomID, func(r domain.Room) (domain.Room, error) {
		return r.AddAmenity(name)
	})
}

func (s *CommandService) RemoveAmenity(ctx context.Context, roomID, name string) (domain.Room, error) {
	return update(ctx, s, s.st.Rooms, KindRoom, "remove_amenity", roomID, func(r domain.Room) (domain.Room, error) {
		return r.RemoveAmenity(name)
	})
}

func (s *CommandService) AddRoomResident(ctx context.Context, roomID string, rr domain.RoomResident) (domain.Room, error) {
	if rr.ID == "" {
		rr.ID = s.newID()
	}
	if rr.CheckIn.IsZero() {
		rr.CheckIn = s.today()
	}
	return update(ctx, s, s.st.Rooms, KindRoom, "add_resident", roomID, func(r domain.Room) (domain.Room, error) {
		return r.AddResident(rr)
	})
}

// AssignResident places a stored resident in the room and moves their
// room number there. A resident already housed in another room is rejected.
func (s *CommandService) AssignResident(ctx context.Context, roomID, residentID string) (domain.Room, error) {
	r, err := s.st.Residents.Get(ctx, residentID)
	if err != nil {
		return domain.Room{}, err
	}
	room, err := update(ctx, s, s.st.Rooms, KindRoom, "add_resident", roomID, func(room domain.Room) (domain.Room, error) {
		rooms, err := s.st.Rooms.List(ctx)
		if err != nil {
			return room, err
		}
		for _, other := range rooms {
			if other.ID == room.ID {
				continue
			}
			if slices.ContainsFunc(other.Residents, func(x domain.RoomResident) bool { return x.ID == residentID }) {
				return room, fmt.Errorf("resident %s already in room %s: %w", residentID, other.Number, domain.ErrDuplicate)
			}
		}
		return room.AddResident(roomResident(r))
	})
	if err != nil {
		return room, err
	}
	_, err = update(ctx, s, s.st.Residents, KindResident, "move", residentID, func(r domain.Resident) (domain.Resident, error) {
		c := r.Clone()
		c.RoomNumber, c.BedNumber = room.Number, room.CurrentOccupants
		return c, nil
	})
	return room, err
}

func (s *CommandService) RemoveRoomResident(ctx context.Context, roomID, residentID string) (domain.Room, error) {
	return update(ctx, s, s.st.Rooms, KindRoom, "remove_resident", roomID, func(r domain.Room) (domain.Room, error) {
		return r.RemoveResident(residentID)
	})
}

// ---- polls ----

type PollInput struct {
	Title       string
	Description string
	Category    domain.PollCategory
	Options     []string
}

func (s *CommandService) CreatePoll(ctx context.Context, in PollInput) (domain.Poll, error) {
	p, err := domain.NewPoll(s.newID(), in.Title, in.Description, in.Category, in.Options, s.now())
	return create(ctx, s, s.st.Polls, KindPoll, p, err)
}

func (s *CommandService) AddPollOption(ctx context.Context, pollID, text string) (domain.Poll, error) {
	return update(ctx, s, s.st.Polls, KindPoll, "add_option", pollID, func(p domain.Poll) (domain.Poll, error) {
		return p.AddOption(text)
	})
}

func (s *CommandService) PublishPoll(ctx context.Context, pollID string) (domain.Poll, error) {
	return update(ctx, s, s.st.Polls, KindPoll, "publish", pollID, domain.Poll.Publish)
}

func (s *CommandService) ClosePoll(ctx context.Context, pollID string) (domain.Poll, error) {
	return update(ctx, s, s.st.Polls, KindPoll, "close", pollID, domain.Poll.Close)
}

func (s *CommandService) Vote(ctx context.Context, pollID, residentID, optionID string) (domain.Poll, error) {
	now := s.now()
	return update(ctx, s, s.st.Polls, KindPoll, "vote", pollID, func(p domain.Poll) (domain.Poll, error) {
		return p.CastVote(residentID, optionID, now)
	})
}

// ---- complaints ----

type ComplaintInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	Category    string
}

// SubmitComplaint files a pending complaint on behalf of the resident.
func (s *CommandService) SubmitComplaint(ctx context.Context, residentID string, in ComplaintInput) (domain.Complaint, error) {
	r, err := s.st.Residents.Get(ctx, residentID)
	if err != nil {
		return domain.Complaint{}, err
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	c := domain.Complaint{
		ID:          s.newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Priority:    in.Priority,
		Status:      domain.ComplaintPending,
		SubmittedBy: r.Name,
		RoomNumber:  r.RoomNumber,
		SubmittedAt: s.now(),
		Category:    strings.ToLower(strings.TrimSpace(in.Category)),
	}
	return create(ctx, s, s.st.Complaints, KindComplaint, c, c.Validate())
}

func (s *CommandService) ResolveComplaint(ctx context.Context, id string) (domain.Complaint, error) {
	return update(ctx, s, s.st.Complaints, KindComplaint, "resolve", id, domain.Complaint.Resolve)
}

// ---- movements ----

type MovementInput struct {
	Destination   string
	Purpose       string
	DepartureDate domain.Date
	ReturnDate    domain.Date
}

func (s *CommandService) RequestMovement(ctx context.Context, residentID string, in MovementInput) (domain.Movement, error) {
	r, err := s.st.Residents.Get(ctx, residentID)
	if err != nil {
		return domain.Movement{}, err
	}
	m := domain.Movement{
		ID:            s.newID(),
		ResidentID:    r.ID,
		ResidentName:  r.Name,
		RoomNumber:    r.RoomNumber,
		BedNumber:     r.BedNumber,
		Destination:   strings.TrimSpace(in.Destination),
		Purpose:       strings.TrimSpace(in.Purpose),
		DepartureDate: in.DepartureDate,
		ReturnDate:    in.ReturnDate,
		Status:        domain.MovementOngoing,
	}
	return create(ctx, s, s.st.Movements, KindMovement, m, m.Validate())
}

func (s *CommandService) ReturnMovement(ctx context.Context, id string) (domain.Movement, error) {
	today := s.today()
	return update(ctx, s, s.st.Movements, KindMovement, "return", id, func(m domain.Movement) (domain.Movement, error) {
		return m.MarkReturned(today)
	})
}

// FlagOverdue marks every ongoing movement past its return date as overdue
// and reports how many changed.
func (s *CommandService) FlagOverdue(ctx context.Context) (int, error) {
	ms, err := s.st.Movements.List(ctx)
	if err != nil {
		return 0, err
	}
	today := s.today()
	n := 0
	for _, m := range ms {
		if !m.Overdue(today) {
			continue
		}
		_, err := update(ctx, s, s.st.Movements, KindMovement, "overdue", m.ID, func(m domain.Movement) (domain.Movement, error) {
			if !m.Overdue(today) {
				return m, fmt.Errorf("%w: movement %s no longer ongoing", domain.ErrInvalidTransition, m.ID)
			}
			m.Status = domain.MovementOverdue
			return m, nil
		})
		switch {
		case err == nil:
			n++
		case !IsRejection(err):
			return n, err
		}
	}
	return n, nil
}

// ---- menu ----

func (s *CommandService) UpdateMenuDay(ctx context.Context, day string, meal domain.MealType, dishes string) (domain.MenuDay, error) {
	return update(ctx, s, s.st.MenuDays, KindMenuDay, "update", strings.ToLower(strings.TrimSpace(day)), func(d domain.MenuDay) (domain.MenuDay, error) {
		return d.WithMeals(meal, domain.ParseDishes(dishes))
	})
}

// SaveMenuItem creates the item when it has no id, otherwise replaces the stored one.
func (s *CommandService) SaveMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.ID == "" {
		item.ID = s.newID()
		return create(ctx, s, s.st.MenuItems, KindMenuItem, item, item.Validate())
	}
	return update(ctx, s, s.st.MenuItems, KindMenuItem, "update", item.ID, func(domain.MenuItem) (domain.MenuItem, error) {
		return item, item.Validate()
	})
}

// ---- ratings ----

func (s *CommandService) SubmitRating(ctx context.Context, category string, score int) (domain.RatingCategory, error) {
	return update(ctx, s, s.st.Ratings, KindRating, "submit", category, func(c domain.RatingCategory) (domain.RatingCategory, error) {
		return c.Submit(score)
	})
}

// ---- payments & bookings ----

func (s *CommandService) AddFee(ctx context.Context, amount float64, justification string) (domain.FeeEntry, error) {
	f, err := domain.NewFeeEntry(s.newID(), amount, justification, s.now())
	return create(ctx, s, s.st.FeeEntries, KindFeeEntry, f, err)
}

func (s *CommandService) BookMeals(ctx context.Context, residentID string, date domain.Date, meals []domain.MealType) (domain.FoodBooking, error) {
	if _, err := s.st.Residents.Get(ctx, residentID); err != nil {
		return domain.FoodBooking{}, err
	}
	b, err := domain.NewFoodBooking(s.newID(), residentID, date, meals, s.now())
	return create(ctx, s, s.st.FoodBookings, KindFoodBooking, b, err)
}

// ---- announcements ----

func (s *CommandService) PostAnnouncement(ctx context.Context, title, content string, priority domain.Priority) (domain.Announcement, error) {
	a, err := domain.NewAnnouncement(s.newID(), title, content, priority, s.now())
	return create(ctx, s, s.st.Announcements, KindAnnouncement, a, err)
}

func (s *CommandService) DeleteAnnouncement(ctx context.Context, id string) error {
	s.mu.Lock()
	err := s.st.Announcements.Delete(ctx, id)
	s.mu.Unlock()
	s.record(ctx, KindAnnouncement, "delete", id, err)
	return err
}
