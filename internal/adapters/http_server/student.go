package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hostel_portal/internal/app"
	"hostel_portal/internal/domain"
)

// Student routes act on the resident bound to the caller's session.
func (h *Handlers) studentRoutes(r chi.Router) {
	r.Get("/dashboard", h.studentDashboard)
	r.Get("/attendance", h.studentAttendance)
	r.Get("/polls", h.studentPolls)
	r.Post("/polls/{id}/vote", h.vote)
	r.Get("/ratings", h.ratings)
	r.Post("/ratings", h.submitRating)
	r.Post("/complaints", h.submitComplaint)
	r.Get("/movements", h.studentMovements)
	r.Post("/movements", h.requestMovement)
	r.Get("/fees", h.quoteFees)
	r.Get("/food-bookings", h.foodBookings)
	r.Post("/food-bookings", h.bookMeals)
}

func residentOf(r *http.Request) string { return current(r).ResidentID }

func (h *Handlers) studentDashboard(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.StudentDashboard(r.Context(), residentOf(r))
	respond(w, r, out, err)
}

func (h *Handlers) studentAttendance(w http.ResponseWriter, r *http.Request) {
	from, err := dateParam(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := dateParam(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Q.StudentAttendance(r.Context(), residentOf(r), from, to)
	respond(w, r, out, err)
}

func (h *Handlers) studentPolls(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.StudentPolls(r.Context(), residentOf(r))
	respond(w, r, out, err)
}

type voteRequest struct {
	OptionID string `json:"option_id" validate:"required"`
}

func (h *Handlers) vote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.C.Vote(r.Context(), chi.URLParam(r, "id"), residentOf(r), req.OptionID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.Q.PollResults(r.Context(), p.ID)
	respond(w, r, out, err)
}

type ratingRequest struct {
	Category string `json:"category" validate:"notblank"`
	Score    int    `json:"score" validate:"gte=1,lte=5"`
}

func (h *Handlers) submitRating(w http.ResponseWriter, r *http.Request) {
	var req ratingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.C.SubmitRating(r.Context(), req.Category, req.Score)
	respond(w, r, out, err)
}

type complaintRequest struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Description string `json:"description" validate:"notblank,max=5000"`
	Priority    string `json:"priority"`
	Category    string `json:"category" validate:"max=60"`
}

func (h *Handlers) submitComplaint(w http.ResponseWriter, r *http.Request) {
	var req complaintRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := app.ParsePriority(req.Priority)
	if err != nil {
		writeError(w, r, err)
		return
	}
	in := app.ComplaintInput{Title: req.Title, Description: req.Description, Priority: p, Category: req.Category}
	out, err := h.C.SubmitComplaint(r.Context(), residentOf(r), in)
	created(w, r, out, err)
}

func (h *Handlers) studentMovements(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.ResidentMovements(r.Context(), residentOf(r))
	respond(w, r, out, err)
}

type movementRequest struct {
	Destination   string `json:"destination" validate:"notblank,max=200"`
	Purpose       string `json:"purpose" validate:"notblank,max=500"`
	DepartureDate string `json:"departure_date" validate:"required,datetime=2006-01-02"`
	ReturnDate    string `json:"return_date" validate:"required,datetime=2006-01-02"`
}

func (h *Handlers) requestMovement(w http.ResponseWriter, r *http.Request) {
	var req movementRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	in := app.MovementInput{
		Destination:   req.Destination,
		Purpose:       req.Purpose,
		DepartureDate: domain.Date(req.DepartureDate),
		ReturnDate:    domain.Date(req.ReturnDate),
	}
	out, err := h.C.RequestMovement(r.Context(), residentOf(r), in)
	created(w, r, out, err)
}

// quoteFees prices ?selected=meal-plan,laundry on top of the mandatory items.
func (h *Handlers) quoteFees(w http.ResponseWriter, r *http.Request) {
	var selected []string
	for _, v := range r.URL.Query()["selected"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				selected = append(selected, id)
			}
		}
	}
	out, err := h.Q.QuoteFees(r.Context(), selected)
	respond(w, r, out, err)
}

func (h *Handlers) foodBookings(w http.ResponseWriter, r *http.Request) {
	out, err := h.Q.FoodBookings(r.Context(), residentOf(r))
	respond(w, r, out, err)
}

type bookingRequest struct {
	Date  string   `json:"date" validate:"required,datetime=2006-01-02"`
	Meals []string `json:"meals" validate:"required,min=1,max=3,dive,notblank"`
}

func (h *Handlers) bookMeals(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	meals, err := app.ParseMeals(req.Meals)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := h.C.BookMeals(r.Context(), residentOf(r), domain.Date(req.Date), meals)
	created(w, r, out, err)
}
