package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcraft/attractions"
	"tripcraft/auth"
	"tripcraft/autocom"
	"tripcraft/catalog"
	"tripcraft/events"
	"tripcraft/home"
	"tripcraft/imgproxy"
	"tripcraft/itinerary"
	"tripcraft/middleware"
	"tripcraft/mq"
	"tripcraft/planner"
	"tripcraft/profile"
	"tripcraft/ratelim"
	"tripcraft/rides"
)

const secret = "test-secret"

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	cat := catalog.NewSampleMemory(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	routeStore := itinerary.NewMemoryStore()

	evs, err := cat.Events(ctx)
	require.NoError(t, err)
	atts, err := cat.Attractions(ctx)
	require.NoError(t, err)
	suggester := autocom.New(nil)
	require.NoError(t, suggester.Index(ctx, evs, atts))

	hub := rides.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	svc, err := auth.NewService(secret, time.Hour)
	require.NoError(t, err)

	router := New(Deps{
		Auth:        middleware.NewAuth(secret),
		RateLimiter: ratelim.NewRateLimiter(1000, 1000),
		Login:       auth.NewHandler(svc),
		Events:      events.NewHandler(cat, suggester),
		Attractions: attractions.NewHandler(cat),
		Rides:       rides.NewHandler(cat, hub, mq.NewSeatBus(nil, hub.Deliver)),
		Itinerary:   itinerary.NewHandler(planner.New(cat, planner.DefaultConfig(), planner.NewRandSource), routeStore, "share"),
		Home:        home.NewHandler(cat.Regions()),
		Profile:     profile.NewHandler(cat, routeStore),
		Suggester:   suggester,
		Images:      imgproxy.New(nil),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func login(t *testing.T, srv *httptest.Server, email, password string) string {
	t.Helper()
	resp, body := do(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newServer(t)

	resp, _ := do(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicCatalogRoutes(t *testing.T) {
	srv := newServer(t)

	resp, body := do(t, srv, http.MethodGet, "/api/events?lng=en", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["items"])

	resp, body = do(t, srv, http.MethodGet, "/api/attractions?region=Kotayk", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["items"])

	resp, _ = do(t, srv, http.MethodGet, "/api/attractions/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = do(t, srv, http.MethodGet, "/api/autocomplete?q=gar&lng=en", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["items"])

	resp, body = do(t, srv, http.MethodGet, "/api/travel-plans", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["items"])

	resp, _ = do(t, srv, http.MethodGet, "/api/img?url=file:///etc/passwd", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestItineraryRoute(t *testing.T) {
	srv := newServer(t)

	req := map[string]any{
		"startDate":       "2025-06-01",
		"days":            3,
		"budgetPerPerson": 100000,
		"startRegion":     "Yerevan",
		"lng":             "en",
	}
	resp, body := do(t, srv, http.MethodPost, "/api/itinerary", "", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 3)

	resp, _ = do(t, srv, http.MethodPost, "/api/itinerary", "", map[string]any{"days": 0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProtectedRoutes(t *testing.T) {
	srv := newServer(t)

	resp, _ := do(t, srv, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	user := login(t, srv, "user@user.com", "user")
	resp, body := do(t, srv, http.MethodGet, "/api/profile", user, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotNil(t, body["user"])

	resp, _ = do(t, srv, http.MethodGet, "/api/users", user, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodDelete, "/api/events/ev_1", user, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	admin := login(t, srv, "admin@admin.com", "admin")
	resp, body = do(t, srv, http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["items"], 3)

	resp, _ = do(t, srv, http.MethodGet, "/api/routes", "demo", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
