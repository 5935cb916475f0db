package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rappy1999/workhours/internal/auth"
	"github.com/rappy1999/workhours/internal/store"
	"github.com/rappy1999/workhours/internal/store/sqlite"
	"github.com/rappy1999/workhours/internal/timeclock"
)

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "api_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(db))

	st := sqlite.New(db)
	router := NewRouter(st, auth.NewMockAuthorizer(), timeclock.NewResolver(time.Time{}), func() bool { return true })
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, st
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createUser(t *testing.T, srv *httptest.Server, userID string) {
	t.Helper()
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users", "", map[string]interface{}{
		"userId": userID,
		"email":  userID + "@example.com",
	})
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestCreateAndGetUser(t *testing.T) {
	srv, _ := newTestServer(t)
	createUser(t, srv, "alice")

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/alice", "sk_dev_alice", nil)
	var body map[string]interface{}
	decode(t, resp, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body["userId"])
	assert.Equal(t, "alice@example.com", body["email"])
}

func TestCreateUserValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []map[string]interface{}{
		{"userId": "", "email": "a@b.com"},
		{"userId": "Bad UserID!", "email": "a@b.com"},
		{"userId": "alice", "email": "not-an-email"},
	}
	for _, in := range cases {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/users", "", in)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}
}

func TestAuthRequired(t *testing.T) {
	srv, _ := newTestServer(t)
	createUser(t, srv, "alice")

	// No token at all.
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/alice/entries", "", nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Valid token for a different user.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users/alice/entries", "sk_dev_bob", nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEntryLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	createUser(t, srv, "alice")
	token := "sk_dev_alice"
	base := srv.URL + "/api/users/alice/entries"

	resp := doJSON(t, http.MethodPost, base, token, map[string]interface{}{
		"date":          "2025-03-10",
		"startTime":     "08:00",
		"endTime":       "16:30",
		"lunchDuration": 30,
		"notes":         "site visit",
	})
	var created map[string]interface{}
	decode(t, resp, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(510), created["grossDuration"])
	assert.Equal(t, float64(480), created["netDuration"])
	assert.Equal(t, false, created["overnight"])
	assert.Equal(t, "8h", created["display"])
	entryID, _ := created["entryId"].(string)
	require.NotEmpty(t, entryID)

	// Update the clock pair; durations must be recomputed.
	resp = doJSON(t, http.MethodPut, base+"/"+entryID, token, map[string]interface{}{
		"endTime": "17:00",
	})
	var updated map[string]interface{}
	decode(t, resp, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(540), updated["grossDuration"])
	assert.Equal(t, float64(510), updated["netDuration"])

	resp = doJSON(t, http.MethodGet, base+"/"+entryID, token, nil)
	var fetched map[string]interface{}
	decode(t, resp, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "17:00", fetched["endTime"])

	resp = doJSON(t, http.MethodDelete, base+"/"+entryID, token, nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, base+"/"+entryID, token, nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOvernightEntry(t *testing.T) {
	srv, _ := newTestServer(t)
	createUser(t, srv, "alice")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users/alice/entries", "sk_dev_alice", map[string]interface{}{
		"date":          "2025-03-10",
		"startTime":     "22:00",
		"endTime":       "06:00",
		"lunchDuration": 0,
	})
	var created map[string]interface{}
	decode(t, resp, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(480), created["grossDuration"])
	assert.Equal(t, true, created["overnight"])
}

func TestCreateEntryRejectsBadInput(t *testing.T) {
	srv, _ := newTestServer(t)
	createUser(t, srv, "alice")
	base := srv.URL + "/api/users/alice/entries"
	token := "sk_dev_alice"

	cases := []map[string]interface{}{
		{"date": "", "startTime": "08:00", "endTime": "16:00"},
		{"date": "2025-13-40", "startTime": "08:00", "endTime": "16:00"},
		{"date": "2025-03-10", "startTime": "8am", "endTime": "16:00"},
		{"date": "2025-03-10", "startTime": "08:00", "endTime": "08:00"},
		{"date": "2025-03-10", "startTime": "08:00", "endTime": "16:00", "lunchDuration": -5},
	}
	for i, in := range cases {
		resp := doJSON(t, http.MethodPost, base, token, in)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "case %d", i)
	}
}

func TestForeignEntryAccess(t *testing.T) {
	srv, _ := newTestServer(t)
	createUser(t, srv, "alice")
	createUser(t, srv, "bob")

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users/alice/entries", "sk_dev_alice", map[string]interface{}{
		"date":      "2025-03-10",
		"startTime": "08:00",
		"endTime":   "16:00",
	})
	var created map[string]interface{}
	decode(t, resp, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	entryID := created["entryId"].(string)

	// Bob reaches alice's entry through his own scope; the id exists but
	// belongs to someone else, so the service answers 403.
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users/bob/entries/"+entryID, "sk_dev_bob", nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/users/bob/entries/"+entryID, "sk_dev_bob", nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRangeSummaryEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	createUser(t, srv, "alice")
	base := srv.URL + "/api/users/alice/entries"
	token := "sk_dev_alice"

	for _, in := range []map[string]interface{}{
		{"date": "2025-03-10", "startTime": "08:00", "endTime": "12:00"},
		{"date": "2025-03-10", "startTime": "13:00", "endTime": "17:00"},
		{"date": "2025-03-11", "startTime": "09:00", "endTime": "17:00", "lunchDuration": 60},
	} {
		resp := doJSON(t, http.MethodPost, base, token, in)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, http.MethodGet, base+"/range?startDate=2025-03-10&endDate=2025-03-11", token, nil)
	var summary struct {
		Days []struct {
			Date       string `json:"date"`
			NetMinutes int    `json:"netDuration"`
		} `json:"days"`
		NetMinutes int `json:"netDuration"`
	}
	decode(t, resp, &summary)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, summary.Days, 2)
	// Newest day first.
	assert.Contains(t, summary.Days[0].Date, "2025-03-11")
	assert.Equal(t, 420, summary.Days[0].NetMinutes)
	assert.Equal(t, 480, summary.Days[1].NetMinutes)
	assert.Equal(t, 900, summary.NetMinutes)

	// Inverted range is a client error.
	resp = doJSON(t, http.MethodGet, base+"/range?startDate=2025-03-11&endDate=2025-03-10", token, nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEntriesForDateEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	createUser(t, srv, "alice")
	base := srv.URL + "/api/users/alice/entries"
	token := "sk_dev_alice"

	for _, in := range []map[string]interface{}{
		{"date": "2025-03-10", "startTime": "13:00", "endTime": "17:00"},
		{"date": "2025-03-10", "startTime": "08:00", "endTime": "12:00"},
		{"date": "2025-03-11", "startTime": "09:00", "endTime": "17:00"},
	} {
		resp := doJSON(t, http.MethodPost, base, token, in)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, http.MethodGet, base+"/date/2025-03-10", token, nil)
	var body struct {
		Entries []struct {
			StartTime string `json:"startTime"`
		} `json:"entries"`
		Count int `json:"count"`
	}
	decode(t, resp, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, body.Count)
	// Entries within the day sort by start clock ascending.
	assert.Equal(t, "08:00", body.Entries[0].StartTime)
	assert.Equal(t, "13:00", body.Entries[1].StartTime)
}

func TestStatsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	createUser(t, srv, "alice")
	base := srv.URL + "/api/users/alice"
	token := "sk_dev_alice"

	// A standard shift today lands in both the current week and the
	// current pay period.
	today := time.Now().UTC().Format("2006-01-02")
	resp := doJSON(t, http.MethodPost, base+"/entries", token, map[string]interface{}{
		"date":          today,
		"startTime":     "08:00",
		"endTime":       "16:00",
		"lunchDuration": 30,
	})
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, base+"/stats", token, nil)
	var stats struct {
		Weekly struct {
			Minutes   int    `json:"duration"`
			Display   string `json:"display"`
			DateRange string `json:"dateRange"`
		} `json:"weekly"`
		PayPeriod struct {
			Minutes int `json:"duration"`
		} `json:"payPeriod"`
	}
	decode(t, resp, &stats)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 450, stats.Weekly.Minutes)
	assert.Equal(t, "7h 30m", stats.Weekly.Display)
	assert.NotEmpty(t, stats.Weekly.DateRange)
	assert.Equal(t, 450, stats.PayPeriod.Minutes)
}

func TestPayPeriodsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	createUser(t, srv, "alice")
	token := "sk_dev_alice"

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/alice/payperiods", token, nil)
	var body struct {
		PayPeriods []struct {
			Index     int    `json:"index"`
			StartDate string `json:"startDate"`
			EndDate   string `json:"endDate"`
			Current   bool   `json:"current"`
		} `json:"payPeriods"`
		Count int `json:"count"`
	}
	decode(t, resp, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 6, body.Count)
	assert.True(t, body.PayPeriods[0].Current)
	for i := 1; i < len(body.PayPeriods); i++ {
		assert.False(t, body.PayPeriods[i].Current)
		assert.Equal(t, body.PayPeriods[i-1].Index+1, body.PayPeriods[i].Index)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users/alice/payperiods?count=2", token, nil)
	decode(t, resp, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, body.Count)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users/alice/payperiods?count=0", token, nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
