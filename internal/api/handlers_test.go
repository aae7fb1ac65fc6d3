package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/everforgeworks/congregation/internal/game"
	"github.com/everforgeworks/congregation/internal/iso"
	"github.com/everforgeworks/congregation/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	session *game.Session
	server  *Server
	mux     *http.ServeMux
}

func newFixture(t *testing.T, hub *Hub) *fixture {
	t.Helper()
	u, err := game.DefaultConfig()
	require.NoError(t, err)

	session := game.NewSession(u, time.Hour, rand.New(rand.NewSource(1)))
	server := NewServer(session, scene.NewComposer(rand.New(rand.NewSource(2))), hub)
	session.OnChange(server.Broadcast)

	ctx, cancel := context.WithCancel(context.Background())
	go session.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-session.Done()
	})
	return &fixture{session: session, server: server, mux: server.Routes()}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestGetState(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/state", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	v := decode[game.StateView](t, rec)
	assert.Equal(t, int64(100), v.Money)
	assert.Equal(t, int64(5), v.Members)
	assert.Equal(t, 20, v.Capacity)
	assert.Equal(t, "Living Room", v.VenueName)
	assert.Equal(t, 1, v.Day)
}

func TestGetVenuesAndStaff(t *testing.T) {
	f := newFixture(t, nil)

	venues := decode[[]game.Venue](t, f.do(t, http.MethodGet, "/api/venues", ""))
	require.Len(t, venues, 5)
	assert.Equal(t, "Stadium", venues[4].Name)

	staff := decode[[]game.StaffView](t, f.do(t, http.MethodGet, "/api/staff", ""))
	require.Len(t, staff, 3)
	assert.Equal(t, "Worship Leader", staff[0].Name)
	assert.True(t, staff[0].CanAfford)
	assert.False(t, staff[2].CanAfford)
}

func TestGetScene(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/scene", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var frame struct {
		VenueKey string `json:"venue_key"`
		Seats    int    `json:"seats"`
		Occupied int    `json:"occupied"`
		Items    []struct {
			Category string    `json:"category"`
			Kind     string    `json:"kind"`
			Screen   iso.Point `json:"screen"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &frame))
	assert.Equal(t, "living_room", frame.VenueKey)
	assert.Equal(t, 9, frame.Seats)
	assert.Equal(t, 2, frame.Occupied)
	require.NotEmpty(t, frame.Items)
	assert.Equal(t, "tile", frame.Items[0].Category)
	assert.Equal(t, "occupant", frame.Items[len(frame.Items)-1].Category)
}

func TestHoldServiceEndpoint(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/actions/service", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[game.StateView](t, rec)
	assert.Equal(t, int64(117), v.Money)
	assert.Equal(t, int64(40), v.Spirit)
	assert.Equal(t, "Held Service! Collected $17.", v.Messages[0])

	for i := 0; i < 4; i++ {
		require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/api/actions/service", "").Code)
	}
	rec = f.do(t, http.MethodPost, "/api/actions/service", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Not enough Spirit to hold service!", f.session.Snapshot().Messages[0])
}

func TestOutreachEndpoint(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/actions/outreach", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[OutreachResponse](t, rec)
	assert.GreaterOrEqual(t, resp.Joined, 1)
	assert.LessOrEqual(t, resp.Joined, 3)
	assert.Equal(t, int64(90), resp.State.Money)
	assert.Equal(t, int64(5+resp.Joined), resp.State.Members)
}

func TestUpgradeEndpoint(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/venue/upgrade", "")
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Equal(t, "living_room", f.session.Snapshot().Venue)

	require.NoError(t, f.session.Do(context.Background(), func(u *game.Universe, st *game.State, _ *rand.Rand) error {
		st.AddMoney(900)
		return nil
	}))
	rec = f.do(t, http.MethodPost, "/api/venue/upgrade", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[game.StateView](t, rec)
	assert.Equal(t, int64(0), v.Money)
	assert.Equal(t, "School Auditorium", v.VenueName)
	assert.Equal(t, "Upgraded to School Auditorium!", v.Messages[0])
}

func TestUpgradeEndpointAtFinalVenue(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, f.session.Do(context.Background(), func(u *game.Universe, st *game.State, _ *rand.Rand) error {
		st.Venue = "stadium"
		return nil
	}))
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/api/venue/upgrade", "").Code)
}

func TestHireEndpoint(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/staff/hire", `{"staff_key":"worshipLeader"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[game.StateView](t, rec)
	assert.Equal(t, int64(0), v.Money)
	assert.Equal(t, 1, v.Staff[0].Owned)
	assert.Equal(t, "Hired Worship Leader!", v.Messages[0])

	assert.Equal(t, http.StatusPaymentRequired, f.do(t, http.MethodPost, "/api/staff/hire", `{"staff_key":"adminStaff"}`).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/api/staff/hire", `{"staff_key":"bishop"}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/api/staff/hire", `{`).Code)
}

func TestMethodsAreEnforced(t *testing.T) {
	f := newFixture(t, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, f.do(t, http.MethodGet, "/api/actions/service", "").Code)
}

func TestClosedSessionIsUnavailable(t *testing.T) {
	u, err := game.DefaultConfig()
	require.NoError(t, err)
	session := game.NewSession(u, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go session.Run(ctx)
	cancel()
	<-session.Done()

	mux := NewServer(session, scene.NewComposer(rand.New(rand.NewSource(1))), nil).Routes()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/actions/outreach", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPulseCarriesFrameOnlyWhenSceneChanges(t *testing.T) {
	f := newFixture(t, nil)
	u := f.session.Universe()
	st := f.session.Snapshot()

	first := f.server.PulseFor(u, st)
	require.NotNil(t, first.Frame)
	assert.Equal(t, int64(5), first.State.Members)

	st.Money += 10
	second := f.server.PulseFor(u, st)
	assert.Nil(t, second.Frame)

	st.Members = 20
	third := f.server.PulseFor(u, st)
	require.NotNil(t, third.Frame)
	assert.Equal(t, 9, third.Frame.Occupied)
}
