package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rappy1999/workhours/internal/api/respond"
	"github.com/rappy1999/workhours/internal/api/validate"
	"github.com/rappy1999/workhours/internal/model"
	"github.com/rappy1999/workhours/internal/services"
	"github.com/rappy1999/workhours/internal/timeclock"
)

const maxNotesLen = 500

// EntryHandler is a thin HTTP transport over the EntryService.
type EntryHandler struct {
	svc *services.EntryService
}

func NewEntryHandler(svc *services.EntryService) *EntryHandler { return &EntryHandler{svc: svc} }

// entryView decorates a stored entry with the overnight flag, which is
// derived from the clock pair rather than stored.
type entryView struct {
	*model.TimeEntry
	Overnight bool   `json:"overnight"`
	Display   string `json:"display"`
}

func viewOf(e *model.TimeEntry) entryView {
	_, overnight, _ := timeclock.ComputeGross(e.StartTime, e.EndTime)
	return entryView{TimeEntry: e, Overnight: overnight, Display: timeclock.FormatDuration(e.NetMinutes)}
}

func viewsOf(entries []*model.TimeEntry) []entryView {
	out := make([]entryView, 0, len(entries))
	for _, e := range entries {
		out = append(out, viewOf(e))
	}
	return out
}

// CreateEntry POST /api/users/{userId}/entries
func (h *EntryHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	var in struct {
		Date         string  `json:"date"`
		StartTime    string  `json:"startTime"`
		EndTime      string  `json:"endTime"`
		LunchMinutes int     `json:"lunchDuration"`
		Notes        *string `json:"notes,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	date, err := validate.Date("date", in.Date)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.MaxLen("notes", in.Notes, maxNotesLen); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.CreateEntry(r.Context(), services.CreateEntryRequest{
		OwnerID:      userID,
		Date:         date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		LunchMinutes: in.LunchMinutes,
		Notes:        in.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, viewOf(out))
}

// ListEntries GET /api/users/{userId}/entries
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	entries, err := h.svc.ListEntries(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": viewsOf(entries), "count": len(entries)})
}

// GetEntry GET /api/users/{userId}/entries/{entryId}
func (h *EntryHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	e, err := h.svc.GetEntry(r.Context(), vars["userId"], vars["entryId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, viewOf(e))
}

// EntriesForDate GET /api/users/{userId}/entries/date/{date}
func (h *EntryHandler) EntriesForDate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date, err := validate.Date("date", vars["date"])
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	entries, err := h.svc.EntriesForDate(r.Context(), vars["userId"], date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": viewsOf(entries), "count": len(entries)})
}

// RangeSummary GET /api/users/{userId}/entries/range?startDate=...&endDate=...
func (h *EntryHandler) RangeSummary(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	q := r.URL.Query()
	start, err := validate.Date("startDate", q.Get("startDate"))
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	end, err := validate.Date("endDate", q.Get("endDate"))
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	summary, err := h.svc.RangeSummary(r.Context(), userID, start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, summary)
}

// UpdateEntry PUT /api/users/{userId}/entries/{entryId}
func (h *EntryHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var in struct {
		Date         *string `json:"date,omitempty"`
		StartTime    *string `json:"startTime,omitempty"`
		EndTime      *string `json:"endTime,omitempty"`
		LunchMinutes *int    `json:"lunchDuration,omitempty"`
		Notes        *string `json:"notes,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	req := services.UpdateEntryRequest{
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		LunchMinutes: in.LunchMinutes,
		Notes:        in.Notes,
	}
	if in.Date != nil {
		date, err := validate.Date("date", *in.Date)
		if err != nil {
			respond.WriteBadRequest(w, err.Error())
			return
		}
		req.Date = &date
	}
	if err := validate.MaxLen("notes", in.Notes, maxNotesLen); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := h.svc.UpdateEntry(r.Context(), vars["userId"], vars["entryId"], req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, viewOf(out))
}

// DeleteEntry DELETE /api/users/{userId}/entries/{entryId}
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.DeleteEntry(r.Context(), vars["userId"], vars["entryId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
