package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hostel_portal/internal/app"
	"hostel_portal/internal/domain"
)

func (h *Handlers) managementRoutes(r chi.Router) {
	r.Get("/dashboard", h.managementDashboard)

	r.Get("/residents", h.listResidents)
	r.Post("/residents", h.createResident)
	r.Get("/residents/stats", h.residentStats)
	r.Get("/residents/{id}", h.getResident)
	r.Put("/residents/{id}/status", h.advanceResident)

	r.Get("/rooms", h.listRooms)
	r.Get("/rooms/stats", h.roomStats)
	r.Get("/rooms/{id}", h.getRoom)
	r.Post("/rooms/{id}/amenities", h.addAmenity)
	r.Delete("/rooms/{id}/amenities/{name}", h.removeAmenity)
	r.Post("/rooms/{id}/residents", h.assignResident)
	r.Delete("/rooms/{id}/residents/{residentID}", h.removeRoomResident)

	r.Get("/attendance", h.attendanceBoard)
	r.Put("/attendance/{residentID}", h.markAttendance)

	r.Get("/polls", h.listPolls)
	r.Post("/polls", h.createPoll)
	r.Get("/polls/stats", h.pollStats)
	r.Get("/polls/{id}/results", h.pollResults)
	r.Post("/polls/{id}/options", h.addPollOption)
	r.Post("/polls/{id}/publish", h.publishPoll)
	r.Post("/polls/{id}/close", h.closePoll)

	r.Get("/complaints", h.listComplaints)
	r.Get("/complaints/stats", h.complaintStats)
	r.Post("/complaints/{id}/resolve", h.resolveComplaint)

	r.Get("/movements", h.listMovements)
	r.Get("/movements/stats", h.movementStats)
	r.Post("/movements/{id}/return", h.returnMovement)
	r.Post("/movements/overdue", h.flagOverdue)

	r.Put("/menu/days/{day}", h.updateMenuDay)
	r.Post("/menu/items", h.createMenuItem)
	r.Put("/menu/items/{id}", h.updateMenuItem)
	r.Get("/menu/stats", h.menuStats)

	r.Get("/ratings", h.ratings)

	r.Get("/fees", h.fees)
	r.Post("/fees", h.addFee)

	r.Post("/announcements", h.postAnnouncement)
	r.Delete("/announcements/{id}", h.deleteAnnouncement)
}

func (h *Handlers) managementDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Q.ManagementDashboard(r.Context())
	respond(w, r, d, err)
}

// ---- residents ----

type emergencyContactRequest struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Phone    string `json:"phone"`
}

type createResidentRequest struct {
	Name             string                  `json:"name" validate:"notblank,max=120"`
	RoomNumber       string                  `json:"room_number" validate:"required,max=8"`
	BedNumber        int                     `json:"bed_number" validate:"gte=1,lte=4"`
	Phone            string                  `json:"phone" validate:"omitempty,max=32"`
	Email            string                  `json:"email" validate:"omitempty,email"`
	CheckIn          string                  `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut         string                  `json:"check_out" validate:"required,datetime=2006-01-02"`
	EmergencyContact emergencyContactRequest `json:"emergency_contact"`
}

func (h *Handlers) createResident(w http.ResponseWriter, r *http.Request) {
	var req createResidentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	in := app.ResidentInput{
		Name:       req.Name,
		RoomNumber: req.RoomNumber,
		BedNumber:  req.BedNumber,
		Phone:      req.Phone,
		Email:      req.Email,
		CheckIn:    domain.Date(req.CheckIn),
		CheckOut:   domain.Date(req.CheckOut),
		EmergencyContact: domain.EmergencyContact{
			Name: req.EmergencyContact.Name, Relation: req.EmergencyContact.Relation, Phone: req.EmergencyContact.Phone,
		},
	}
	res, err := h.C.CreateResident(r.Context(), in)
	created(w, r, res, err)
}

func (h *Handlers) listResidents(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListResidents(r.Context(), h.query(r))
	respond(w, r, out, err)
}

func (h *Handlers) residentStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ResidentStats(r.Context())
	respond(w, r, out, err)
}

func (h *Handlers) getResident(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.GetResident(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, out, err)
}

type statusRequest struct {
	Status domain.ResidentStatus `json:"status" validate:"required,oneof=checking-out checked-out"`
}

func (h *Handlers) advanceResident(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.C.AdvanceResident(r.Context(), chi.URLParam(r, "id"), req.Status)
	respond(w, r, out, err)
}

// ---- rooms ----

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListRooms(r.Context(), h.query(r))
	respond(w, r, out, err)
}

func (h *Handlers) roomStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.RoomStats(r.Context())
	respond(w, r, out, err)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.GetRoom(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, out, err)
}

type amenityRequest struct {
	Name string `json:"name" validate:"notblank,max=60"`
}

func (h *Handlers) addAmenity(w http.ResponseWriter, r *http.Request) {
	var req amenityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.C.AddAmenity(r.Context(), chi.URLParam(r, "id"), req.Name)
	respond(w, r, out, err)
}

func (h *Handlers) removeAmenity(w http.ResponseWriter, r *http.Request) {
	out, err := h.C.RemoveAmenity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "name"))
	respond(w, r, out, err)
}

// roomResidentRequest either names a stored resident or describes a new occupant.
type roomResidentRequest struct {
	ResidentID string `json:"resident_id" validate:"required_without=Name"`
	Name       string `json:"name" validate:"required_without=ResidentID"`
	CheckIn    string `json:"check_in" validate:"omitempty,datetime=2006-01-02"`
	CheckOut   string `json:"check_out" validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handlers) assignResident(w http.ResponseWriter, r *http.Request) {
	var req roomResidentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	roomID := chi.URLParam(r, "id")
	if req.ResidentID != "" && req.Name == "" {
		out, err := h.C.AssignResident(r.Context(), roomID, req.ResidentID)
		respond(w, r, out, err)
		return
	}
	rr := domain.RoomResident{ID: req.ResidentID, Name: req.Name, CheckIn: domain.Date(req.CheckIn), CheckOut: domain.Date(req.CheckOut)}
	out, err := h.C.AddRoomResident(r.Context(), roomID, rr)
	respond(w, r, out, err)
}

func (h *Handlers) removeRoomResident(w http.ResponseWriter, r *http.Request) {
	out, err := h.C.RemoveRoomResident(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "residentID"))
	respond(w, r, out, err)
}

// ---- attendance ----

func (h *Handlers) attendanceBoard(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Q.Attendance(r.Context(), date, h.query(r))
	respond(w, r, out, err)
}

type attendanceRequest struct {
	Date    string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Present *bool  `json:"present" validate:"required"`
	Note    string `json:"note" validate:"max=200"`
}

func (h *Handlers) markAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendanceRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.C.MarkAttendance(r.Context(), chi.URLParam(r, "residentID"), domain.Date(req.Date), *req.Present, req.Note)
	respond(w, r, res, err)
}

// ---- polls ----

func (h *Handlers) listPolls(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListPolls(r.Context(), h.query(r))
	respond(w, r, out, err)
}

func (h *Handlers) pollStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.PollStats(r.Context())
	respond(w, r, out, err)
}

func (h *Handlers) pollResults(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.PollResults(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, out, err)
}

type createPollRequest struct {
	Title       string              `json:"title" validate:"notblank,max=200"`
	Description string              `json:"description" validate:"max=2000"`
	Category    domain.PollCategory `json:"category" validate:"omitempty,oneof=general food facilities events other"`
	Options     []string            `json:"options" validate:"max=20,dive,notblank"`
}

func (h *Handlers) createPoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.C.CreatePoll(r.Context(), app.PollInput{Title: req.Title, Description: req.Description, Category: req.Category, Options: req.Options})
	created(w, r, p, err)
}

type optionRequest struct {
	Text string `json:"text" validate:"notblank,max=200"`
}

func (h *Handlers) addPollOption(w http.ResponseWriter, r *http.Request) {
	var req optionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.C.AddPollOption(r.Context(), chi.URLParam(r, "id"), req.Text)
	respond(w, r, out, err)
}

func (h *Handlers) publishPoll(w http.ResponseWriter, r *http.Request) {
	out, err := h.C.PublishPoll(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, out, err)
}

func (h *Handlers) closePoll(w http.ResponseWriter, r *http.Request) {
	out, err := h.C.ClosePoll(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, out, err)
}

// ---- complaints ----

func (h *Handlers) listComplaints(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListComplaints(r.Context(), h.query(r))
	respond(w, r, out, err)
}

func (h *Handlers) complaintStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ComplaintStats(r.Context())
	respond(w, r, out, err)
}

func (h *Handlers) resolveComplaint(w http.ResponseWriter, r *http.Request) {
	out, err := h.C.ResolveComplaint(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, out, err)
}

// ---- movements ----

func (h *Handlers) listMovements(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ListMovements(r.Context(), h.query(r))
	respond(w, r, out, err)
}

func (h *Handlers) movementStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.MovementStats(r.Context())
	respond(w, r, out, err)
}

func (h *Handlers) returnMovement(w http.ResponseWriter, r *http.Request) {
	out, err := h.C.ReturnMovement(r.Context(), chi.URLParam(r, "id"))
	respond(w, r, out, err)
}

func (h *Handlers) flagOverdue(w http.ResponseWriter, r *http.Request) {
	n, err := h.C.FlagOverdue(r.Context())
	respond(w, r, map[string]int{"flagged": n}, err)
}

// ---- menu ----

type menuDayRequest struct {
	Meal   string `json:"meal" validate:"required"`
	Dishes string `json:"dishes"`
}

func (h *Handlers) updateMenuDay(w http.ResponseWriter, r *http.Request) {
	var req menuDayRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	meal, err := app.ParseMeal(req.Meal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.C.UpdateMenuDay(r.Context(), chi.URLParam(r, "day"), meal, req.Dishes)
	respond(w, r, out, err)
}

type nutritionRequest struct {
	Calories int `json:"calories" validate:"gte=0"`
	Protein  int `json:"protein" validate:"gte=0"`
	Carbs    int `json:"carbs" validate:"gte=0"`
	Fat      int `json:"fat" validate:"gte=0"`
}

type menuItemRequest struct {
	Name        string            `json:"name" validate:"notblank,max=120"`
	Type        string            `json:"type" validate:"required"`
	Category    string            `json:"category" validate:"required"`
	Price       float64           `json:"price" validate:"gte=0"`
	Available   bool              `json:"available"`
	Description string            `json:"description" validate:"max=500"`
	Allergens   []string          `json:"allergens" validate:"dive,notblank"`
	Nutrition   *nutritionRequest `json:"nutrition"`
	Popularity  float64           `json:"popularity" validate:"gte=0,lte=5"`
}

func (req menuItemRequest) item(id string) (domain.MenuItem, error) {
	meal, err := app.ParseMeal(req.Type)
	if err != nil {
		return domain.MenuItem{}, err
	}
	cat, err := app.ParseFoodCategory(req.Category)
	if err != nil {
		return domain.MenuItem{}, err
	}
	it := domain.MenuItem{
		ID: id, Name: req.Name, Type: meal, Category: cat, Price: req.Price, Available: req.Available,
		Description: req.Description, Allergens: req.Allergens, Popularity: req.Popularity,
	}
	if it.Allergens == nil {
		it.Allergens = []string{}
	}
	if n := req.Nutrition; n != nil {
		it.Nutrition = &domain.Nutrition{Calories: n.Calories, Protein: n.Protein, Carbs: n.Carbs, Fat: n.Fat}
	}
	return it, nil
}

func (h *Handlers) createMenuItem(w http.ResponseWriter, r *http.Request) {
	h.saveMenuItem(w, r, "")
}

func (h *Handlers) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	h.saveMenuItem(w, r, chi.URLParam(r, "id"))
}

func (h *Handlers) saveMenuItem(w http.ResponseWriter, r *http.Request, id string) {
	var req menuItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	it, err := req.item(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.C.SaveMenuItem(r.Context(), it)
	if id == "" {
		created(w, r, out, err)
		return
	}
	respond(w, r, out, err)
}

func (h *Handlers) menuStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.MenuStats(r.Context())
	respond(w, r, out, err)
}

// ---- ratings, fees, announcements ----

func (h *Handlers) ratings(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.Ratings(r.Context())
	respond(w, r, out, err)
}

func (h *Handlers) fees(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.Fees(r.Context())
	respond(w, r, out, err)
}

type feeRequest struct {
	Amount        float64 `json:"amount" validate:"gt=0"`
	Justification string  `json:"justification" validate:"notblank,max=500"`
}

func (h *Handlers) addFee(w http.ResponseWriter, r *http.Request) {
	var req feeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.C.AddFee(r.Context(), req.Amount, req.Justification)
	created(w, r, out, err)
}

type announcementRequest struct {
	Title    string `json:"title" validate:"notblank,max=200"`
	Content  string `json:"content" validate:"notblank,max=5000"`
	Priority string `json:"priority"`
}

func (h *Handlers) postAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := app.ParsePriority(req.Priority)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.C.PostAnnouncement(r.Context(), req.Title, req.Content, p)
	created(w, r, out, err)
}

func (h *Handlers) deleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.C.DeleteAnnouncement(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
