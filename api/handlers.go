/*
handlers.go - HTTP API handlers

PURPOSE:
  Exposes personnel CRUD and event queries via REST, plus a manual
  processing trigger mirroring the daily run.

ENDPOINTS:
  People:
    GET    /api/people              List all records
    POST   /api/people              Create record
    GET    /api/people/{id}         Get record
    PATCH  /api/people/{id}         Partial update
    DELETE /api/people/{id}         Delete record

  Events:
    GET    /api/events/today                 Same-day birthdays + milestones
    GET    /api/events/birthdays?days=N      Upcoming birthdays
    GET    /api/events/anniversaries?days=N  Upcoming milestone anniversaries

  Processing:
    POST   /api/check?dry_run=true  Process today's events now

ERROR HANDLING:
  - 400: validation errors, malformed dates (field named in the message)
  - 404: unknown id
  - 409: duplicate email
  - 500: store failures

SEE ALSO:
  - dto.go: Request/response shapes
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warp/office-cheer/calendar"
	"github.com/warp/office-cheer/events"
	"github.com/warp/office-cheer/notify"
	"github.com/warp/office-cheer/people"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     people.Store
	Evaluator *events.Evaluator

	// Orchestrator is wired per the live flag; DryRun always uses the
	// logging sender and placeholder cards.
	Orchestrator *notify.Orchestrator
	DryRun       *notify.Orchestrator

	// LookaheadDays is the default window for upcoming queries.
	LookaheadDays int

	Log zerolog.Logger
}

// =============================================================================
// PEOPLE HANDLERS
// =============================================================================

// ListPeople returns all records in insertion order.
func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	roster, err := h.Store.ListAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list people", err)
		return
	}

	dtos := make([]PersonDTO, len(roster))
	for i, p := range roster {
		dtos[i] = toPersonDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePerson adds a record.
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	birthday, err := parseDateField("birthday", req.Birthday)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	startDate, err := parseDateField("start_date", req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	created, err := h.Store.Add(r.Context(), people.Person{
		Name:      req.Name,
		Alias:     req.Alias,
		Email:     req.Email,
		Birthday:  birthday,
		StartDate: startDate,
		Interests: req.Interests,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	h.Log.Info().Str("person_id", created.ID).Str("name", created.Name).Msg("person created")
	writeJSON(w, http.StatusCreated, toPersonDTO(created))
}

// GetPerson returns a single record.
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonDTO(p))
}

// UpdatePerson merges a partial update.
func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	var req UpdatePersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}

	upd := people.Update{
		Name:      req.Name,
		Alias:     req.Alias,
		Email:     req.Email,
		Interests: req.Interests,
	}
	if req.Birthday != nil {
		d, err := parseDateField("birthday", *req.Birthday)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		upd.Birthday = &d
	}
	if req.StartDate != nil {
		d, err := parseDateField("start_date", *req.StartDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		upd.StartDate = &d
	}

	id := chi.URLParam(r, "id")
	if err := h.Store.Update(r.Context(), id, upd); err != nil {
		writeStoreError(w, err)
		return
	}

	p, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonDTO(p))
}

// DeletePerson removes a record.
func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

// TodaysEvents returns same-day birthdays and milestone anniversaries.
func (h *Handler) TodaysEvents(w http.ResponseWriter, r *http.Request) {
	birthdays, err := h.Evaluator.TodaysBirthdays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to evaluate birthdays", err)
		return
	}
	anniversaries, err := h.Evaluator.TodaysAnniversaries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to evaluate anniversaries", err)
		return
	}

	resp := TodayDTO{
		Birthdays:     make([]PersonDTO, 0, len(birthdays)),
		Anniversaries: make([]UpcomingAnniversaryDTO, 0, len(anniversaries)),
	}
	for _, p := range birthdays {
		resp.Birthdays = append(resp.Birthdays, toPersonDTO(p))
	}
	for _, a := range anniversaries {
		resp.Anniversaries = append(resp.Anniversaries, toAnniversaryDTO(a, 0))
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpcomingBirthdays returns birthdays within the window.
func (h *Handler) UpcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	window, err := h.windowParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	matches, err := h.Evaluator.UpcomingBirthdays(r.Context(), window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to evaluate birthdays", err)
		return
	}

	dtos := make([]UpcomingBirthdayDTO, 0, len(matches))
	for _, p := range matches {
		dtos = append(dtos, UpcomingBirthdayDTO{
			Person:   toPersonDTO(p),
			DaysAway: h.Evaluator.DaysToNextBirthday(p),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpcomingAnniversaries returns milestone anniversaries within the window.
func (h *Handler) UpcomingAnniversaries(w http.ResponseWriter, r *http.Request) {
	window, err := h.windowParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	matches, err := h.Evaluator.UpcomingAnniversaries(r.Context(), window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to evaluate anniversaries", err)
		return
	}

	dtos := make([]UpcomingAnniversaryDTO, 0, len(matches))
	for _, a := range matches {
		dtos = append(dtos, toAnniversaryDTO(a, h.Evaluator.DaysToNextAnniversary(a.Person)))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// PROCESSING
// =============================================================================

// Check processes today's events immediately. ?dry_run=true logs instead
// of transmitting.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	dryRun := r.URL.Query().Get("dry_run") == "true"

	orch := h.Orchestrator
	if dryRun {
		orch = h.DryRun
	}

	outcomes := orch.ProcessToday(r.Context())
	writeJSON(w, http.StatusOK, toCheckResponse(outcomes, dryRun))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) windowParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return h.LookaheadDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, fmt.Errorf("days must be a non-negative integer, got %q", raw)
	}
	return days, nil
}

func parseDateField(field, value string) (calendar.Date, error) {
	d, err := calendar.Parse(value)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid %s: %v", field, err)
	}
	return d, nil
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, people.ErrNotFound):
		writeError(w, http.StatusNotFound, "Person not found", nil)
	case errors.Is(err, people.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "Email already registered", nil)
	case people.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "Store operation failed", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
