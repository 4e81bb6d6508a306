package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyrosy/tripdesk/internal/domain"
)

type travelSite struct {
	actorID       int
	actorName     string
	bookings      string
	enquiries     string
	trips         map[int]string
	bookingStatus int
	tripStatus    int

	requests int32
}

func (s *travelSite) handler(t *testing.T, expectedToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Helper()
		atomic.AddInt32(&s.requests, 1)

		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		switch {
		case r.URL.Path == "/wp-json/wp/v2/users/me":
			if expectedToken != "" && r.Header.Get("Authorization") != "Basic "+expectedToken {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = fmt.Fprintf(w, `{"id":%d,"name":%q}`, s.actorID, s.actorName)
		case r.URL.Path == "/wp-json/wp/v2/booking":
			assert.Equal(t, "provider", r.URL.Query().Get("meta_key"))
			assert.Equal(t, fmt.Sprint(s.actorID), r.URL.Query().Get("meta_value"))
			if s.bookingStatus != 0 {
				w.WriteHeader(s.bookingStatus)
				return
			}
			_, _ = fmt.Fprint(w, s.bookings)
		case r.URL.Path == "/wp-json/wp/v2/enquiry":
			_, _ = fmt.Fprint(w, s.enquiries)
		case strings.HasPrefix(r.URL.Path, "/wp-json/wp/v2/trip/"):
			if s.tripStatus != 0 {
				w.WriteHeader(s.tripStatus)
				return
			}
			var tripID int
			_, err := fmt.Sscanf(r.URL.Path, "/wp-json/wp/v2/trip/%d", &tripID)
			require.NoError(t, err)
			title, ok := s.trips[tripID]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = fmt.Fprintf(w, `{"title":{"rendered":%q}}`, title)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func defaultTravelSite() *travelSite {
	return &travelSite{
		actorID:   7,
		actorName: "alice",
		bookings: `[{
			"id": 101,
			"title": {"rendered": "Booking #101"},
			"date": "2026-03-01T10:30:00",
			"status": "confirmed",
			"meta": {"order_trips": {"cart1": {"title": "Safari"}}}
		}]`,
		enquiries: `[{
			"id": 201,
			"title": {"rendered": "Enquiry #201"},
			"date": "2026-05-10T08:15:00",
			"meta": {"wp_travel_engine_enquiry_trip_id": [42]}
		}]`,
		trips: map[int]string{42: "Annapurna Sunrise"},
	}
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSessionFixture(home, site string) error {
	configDir := filepath.Join(home, ".tripdesk")
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return err
	}

	session := fmt.Sprintf(`version = 1
site = %q
actor_id = 7
actor_name = "alice"
token = %q
`, site, domain.BasicToken("alice", "app-pw"))

	return os.WriteFile(filepath.Join(configDir, "session.toml"), []byte(session), 0o600)
}

func sessionFixturePath(home string) string {
	return filepath.Join(home, ".tripdesk", "session.toml")
}

func TestLoginMissingInputMakesNoNetworkCall(t *testing.T) {
	site := defaultTravelSite()
	server := httptest.NewServer(site.handler(t, ""))
	defer server.Close()

	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"login",
		"--site", server.URL,
		"--app-password", "app-pw",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing input: username")
	assert.Zero(t, atomic.LoadInt32(&site.requests))
}

func TestLoginHappyPathShowsEnrichedDashboard(t *testing.T) {
	token := domain.BasicToken("alice", "app-pw")
	site := defaultTravelSite()
	server := httptest.NewServer(site.handler(t, token))
	defer server.Close()

	home := t.TempDir()

	stdout, _, err := executeCLI(t, home,
		"login",
		"--site", server.URL,
		"--username", "alice",
		"--app-password", "app-pw",
	)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged in as alice (#7)")
	assert.Contains(t, stdout, "Bookings (1)")
	assert.Contains(t, stdout, "Safari")
	assert.Contains(t, stdout, "Enquiries (1)")
	assert.Contains(t, stdout, "Annapurna Sunrise")

	persisted, err := os.ReadFile(sessionFixturePath(home))
	require.NoError(t, err)
	assert.Contains(t, string(persisted), "actor_id = 7")
	assert.Contains(t, string(persisted), "alice")
	assert.Contains(t, string(persisted), server.URL)
}

func TestLoginRejectedCredentials(t *testing.T) {
	site := defaultTravelSite()
	server := httptest.NewServer(site.handler(t, domain.BasicToken("alice", "right-pw")))
	defer server.Close()

	home := t.TempDir()

	_, _, err := executeCLI(t, home,
		"login",
		"--site", server.URL,
		"--username", "alice",
		"--app-password", "wrong-pw",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	_, statErr := os.Stat(sessionFixturePath(home))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDashboardUsesPersistedSession(t *testing.T) {
	site := defaultTravelSite()
	server := httptest.NewServer(site.handler(t, ""))
	defer server.Close()

	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, server.URL))

	stdout, _, err := executeCLI(t, home, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, stdout, "alice (#7)")
	assert.Contains(t, stdout, "Safari")
	assert.Contains(t, stdout, "Annapurna Sunrise")
}

func TestDashboardWithoutSession(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestDashboardFallsBackWhenTripLookupFails(t *testing.T) {
	site := defaultTravelSite()
	site.tripStatus = http.StatusInternalServerError
	server := httptest.NewServer(site.handler(t, ""))
	defer server.Close()

	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, server.URL))

	stdout, _, err := executeCLI(t, home, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Safari")
	assert.Contains(t, stdout, "Unknown Trip")
}

func TestDashboardFetchFailureClearsSession(t *testing.T) {
	site := defaultTravelSite()
	site.bookingStatus = http.StatusInternalServerError
	server := httptest.NewServer(site.handler(t, ""))
	defer server.Close()

	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, server.URL))

	_, _, err := executeCLI(t, home, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch collections")

	_, statErr := os.Stat(sessionFixturePath(home))
	assert.True(t, os.IsNotExist(statErr))

	_, _, err = executeCLI(t, home, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestDashboardJSONOutput(t *testing.T) {
	site := defaultTravelSite()
	server := httptest.NewServer(site.handler(t, ""))
	defer server.Close()

	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, server.URL))

	stdout, _, err := executeCLI(t, home, "dashboard", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"Bookings"`)
	assert.Contains(t, stdout, `"TripName": "Safari"`)
}

func TestWhoamiWithPersistedSession(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, "https://world.hyrosy.com"))

	stdout, _, err := executeCLI(t, home, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "alice (#7) @ https://world.hyrosy.com")
}

func TestWhoamiWithoutSession(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestLogoutTwiceLeavesSameState(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeSessionFixture(home, "https://world.hyrosy.com"))

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out")

	stdout, _, err = executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Logged out")

	_, statErr := os.Stat(sessionFixturePath(home))
	assert.True(t, os.IsNotExist(statErr))
}
