package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/rappy1999/workhours/internal/api/respond"
	"github.com/rappy1999/workhours/internal/services"
)

const defaultPayPeriodCount = 6

// StatsHandler serves the rolling week and pay-period summaries. The clock
// is injected so tests can pin the reference time.
type StatsHandler struct {
	svc *services.StatsService
	now func() time.Time
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc, now: time.Now}
}

// Stats GET /api/users/{userId}/stats
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	out, err := h.svc.Stats(r.Context(), userID, h.now())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

type payPeriodView struct {
	Index     int    `json:"index"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	DateRange string `json:"dateRange"`
	Current   bool   `json:"current"`
}

// PayPeriods GET /api/users/{userId}/payperiods?count=n
func (h *StatsHandler) PayPeriods(w http.ResponseWriter, r *http.Request) {
	count := defaultPayPeriodCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respond.WriteBadRequest(w, "count must be a positive integer")
			return
		}
		if n > 52 {
			n = 52
		}
		count = n
	}
	now := h.now()
	periods := h.svc.PayPeriods(now, count)
	views := make([]payPeriodView, 0, len(periods))
	for _, p := range periods {
		views = append(views, payPeriodView{
			Index:     p.Index,
			StartDate: p.Start.Format("2006-01-02"),
			EndDate:   p.End.Format("2006-01-02"),
			DateRange: p.DateRange(),
			Current:   p.Contains(now),
		})
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"payPeriods": views, "count": len(views)})
}
