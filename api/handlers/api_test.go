package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/druktrails/bhutan-tourism-api/api"
	"github.com/druktrails/bhutan-tourism-api/api/handlers"
	"github.com/druktrails/bhutan-tourism-api/config"
	"github.com/druktrails/bhutan-tourism-api/databases"
	"github.com/druktrails/bhutan-tourism-api/databases/memdb"
	"github.com/druktrails/bhutan-tourism-api/models"
	"github.com/druktrails/bhutan-tourism-api/notifications"
	"github.com/druktrails/bhutan-tourism-api/seed"
)

const testPassword = "tashi-delek"

type fakeMailer struct {
	mu   sync.Mutex
	sent []notifications.Message
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg notifications.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeMailer) messages() []notifications.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notifications.Message(nil), f.sent...)
}

type testEnv struct {
	app    *handlers.App
	db     *memdb.Database
	mailer *fakeMailer
	admin  api.TokenResponse
	guest  api.TokenResponse
}

func testConfig() config.Config {
	return config.Config{
		BaseURL:              "https://cms.druktrails.bt",
		JWTSecret:            "test-secret",
		JWTTTL:               time.Hour,
		AdminNotifyEmail:     "ops@druktrails.bt",
		EnquiryRatePerMinute: 100,
		RequestTimeout:       5 * time.Second,
	}
}

// newTestEnv seeds an in-memory catalogue plus one admin and one guest user
func newTestEnv(t *testing.T, tweak ...func(*config.Config)) *testEnv {
	t.Helper()
	db := memdb.New()
	_, err := seed.Run(context.Background(), db)
	require.NoError(t, err)

	users := databases.NewUserDatabase(db)
	for _, u := range []models.User{
		{Email: "admin@druktrails.bt", Username: "admin", Role: models.RoleAdmin},
		{Email: "guest@druktrails.bt", Username: "guest", Role: models.RoleGuest},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
		require.NoError(t, err)
		u.PasswordHash = string(hash)
		_, err = users.Create(context.Background(), &u)
		require.NoError(t, err)
	}

	conf := testConfig()
	for _, fn := range tweak {
		fn(&conf)
	}
	env := &testEnv{db: db, mailer: &fakeMailer{}}
	env.app = handlers.NewApp(conf, db, env.mailer)
	env.admin = env.login(t, "admin")
	env.guest = env.login(t, "guest@druktrails.bt")
	return env
}

func (e *testEnv) login(t *testing.T, login string) api.TokenResponse {
	t.Helper()
	return e.loginWith(t, login, testPassword)
}

func (e *testEnv) loginWith(t *testing.T, login, password string) api.TokenResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", nil)
	req.SetBasicAuth(login, password)
	rr := httptest.NewRecorder()
	e.app.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var tok api.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tok))
	return tok
}

// do sends body as JSON. token may be empty for public routes.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.app.Router.ServeHTTP(rr, req)
	return rr
}

func decodeInto[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func responseMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body.Response
}

func TestHealthCheckHandler(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive": true}`, rr.Body.String())
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]interface{}{"name": "Haa", "slug": "haa", "region": "west"}

	rr := env.do(t, http.MethodPost, "/api/v1/admin/destinations", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/v1/admin/destinations", body, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = env.do(t, http.MethodPost, "/api/v1/admin/destinations", body, env.guest.Token)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "forbidden", responseMessage(t, rr))

	rr = env.do(t, http.MethodPost, "/api/v1/admin/destinations", body, env.admin.Token)
	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestAdminRoutesAcceptBasicAuth(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.SetBasicAuth("admin", testPassword)
	rr := httptest.NewRecorder()
	env.app.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestMetricsEndpointReportsRouteTemplates(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/v1/destinations/paro", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(api.RequestIDHeader))

	rr = env.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	out := rr.Body.String()
	assert.True(t, strings.Contains(out, `tourism_http_requests_total{method="GET",route="/api/v1/destinations/{slug}",status="200"} 1`), out)
}
