package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/office-cheer/api"
	"github.com/warp/office-cheer/calendar"
	"github.com/warp/office-cheer/cards"
	"github.com/warp/office-cheer/events"
	"github.com/warp/office-cheer/notify"
	"github.com/warp/office-cheer/people"
	memstore "github.com/warp/office-cheer/people/store"
)

// =============================================================================
// TEST SERVER SETUP
// =============================================================================

func newTestServer(t *testing.T) (*httptest.Server, people.Store) {
	t.Helper()

	st := memstore.NewMemory()
	ev := events.NewEvaluator(st, zerolog.Nop())
	ev.Now = func() calendar.Date { return calendar.NewDate(2023, time.June, 1) }

	lib := cards.NewLibrary(nil, t.TempDir(), zerolog.Nop())
	dryRun := notify.NewOrchestrator(ev, nil, lib, &notify.LogSender{Log: zerolog.Nop()}, notify.DefaultSubjects(), zerolog.Nop())

	h := &api.Handler{
		Store:         st,
		Evaluator:     ev,
		Orchestrator:  dryRun,
		DryRun:        dryRun,
		LookaheadDays: 3,
		Log:           zerolog.Nop(),
	}

	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, st
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// =============================================================================
// PEOPLE CRUD
// =============================================================================

func TestCreateAndGetPerson(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people", api.CreatePersonRequest{
		Name:      "John Doe",
		Alias:     "Johnny",
		Email:     "john@example.com",
		Birthday:  "1980-06-15",
		StartDate: "2020-03-10",
		Interests: []string{"hiking"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decode[api.PersonDTO](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Johnny", created.Alias)
	assert.Equal(t, "1980-06-15", created.Birthday)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/people/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[api.PersonDTO](t, resp)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "john@example.com", got.Email)
}

func TestCreatePerson_InvalidDateNamesField(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people", api.CreatePersonRequest{
		Name:      "Bad Date",
		Email:     "bad@example.com",
		Birthday:  "15/06/1980",
		StartDate: "2020-03-10",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errResp := decode[api.ErrorResponse](t, resp)
	assert.Contains(t, errResp.Error, "birthday")
}

func TestCreatePerson_DuplicateEmailConflicts(t *testing.T) {
	srv, _ := newTestServer(t)

	req := api.CreatePersonRequest{
		Name:      "First",
		Email:     "dup@example.com",
		Birthday:  "1990-01-01",
		StartDate: "2020-01-01",
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	req.Name = "Second"
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/people", req)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdatePerson_PartialMerge(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people", api.CreatePersonRequest{
		Name:      "Jane Smith",
		Alias:     "JS",
		Email:     "jane@example.com",
		Birthday:  "1985-08-22",
		StartDate: "2018-06-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.PersonDTO](t, resp)

	alias := ""
	resp = doJSON(t, http.MethodPatch, srv.URL+"/api/people/"+created.ID, api.UpdatePersonRequest{
		Alias: &alias,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[api.PersonDTO](t, resp)

	assert.Empty(t, updated.Alias, "present-but-empty alias clears it")
	assert.Equal(t, "Jane Smith", updated.Name, "absent fields untouched")
	assert.Equal(t, "1985-08-22", updated.Birthday)
}

func TestDeletePerson(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people", api.CreatePersonRequest{
		Name:      "Gone Soon",
		Email:     "gone@example.com",
		Birthday:  "1990-01-01",
		StartDate: "2020-01-01",
	})
	created := decode[api.PersonDTO](t, resp)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/people/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/people/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestGetPerson_UnknownID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/people/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// =============================================================================
// EVENT QUERIES
// =============================================================================

func TestUpcomingBirthdays_WindowParam(t *testing.T) {
	srv, _ := newTestServer(t)

	// Fixed "today" is 2023-06-01; birthday in 2 days.
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people", api.CreatePersonRequest{
		Name:      "Soon",
		Email:     "soon@example.com",
		Birthday:  "1990-06-03",
		StartDate: "2019-11-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/events/birthdays?days=3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	matches := decode[[]api.UpcomingBirthdayDTO](t, resp)
	require.Len(t, matches, 1)
	assert.Equal(t, "Soon", matches[0].Person.Name)
	assert.Equal(t, 2, matches[0].DaysAway)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/events/birthdays?days=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	matches = decode[[]api.UpcomingBirthdayDTO](t, resp)
	assert.Empty(t, matches)
}

func TestUpcomingBirthdays_BadWindowParam(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/events/birthdays?days=soon", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestTodaysEvents(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people", api.CreatePersonRequest{
		Name:      "Jane Smith",
		Email:     "jane@example.com",
		Birthday:  "1985-08-22",
		StartDate: "2018-06-01", // 5-year milestone today
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/events/today", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	today := decode[api.TodayDTO](t, resp)
	assert.Empty(t, today.Birthdays)
	require.Len(t, today.Anniversaries, 1)
	assert.Equal(t, 5, today.Anniversaries[0].Years)
}

// =============================================================================
// MANUAL CHECK
// =============================================================================

func TestCheck_DryRun(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/people", api.CreatePersonRequest{
		Name:      "John Doe",
		Email:     "john@example.com",
		Birthday:  "1980-06-01", // today
		StartDate: "2020-03-10",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/check?dry_run=true", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	check := decode[api.CheckResponse](t, resp)

	assert.True(t, check.DryRun)
	assert.Equal(t, 1, check.Sent)
	assert.Equal(t, 0, check.Failed)
	require.Len(t, check.Outcomes, 1)
	assert.Equal(t, "birthday", check.Outcomes[0].Event)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
