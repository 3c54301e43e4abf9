package endpoint

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/config"
	"github.com/ariebrainware/clinic-booking/directory"
	"github.com/ariebrainware/clinic-booking/middleware"
	"github.com/ariebrainware/clinic-booking/model"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-123"

// testNow is Saturday 2025-03-01 08:00 UTC.
var testNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	r   *gin.Engine
	db  *gorm.DB
	svc *booking.Service
	dir *directory.Directory
}

// setupEndpointTestDB opens an in-memory database with every model migrated.
func setupEndpointTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("APPENV", "test")

	db, err := config.ConnectMySQL()
	require.NoError(t, err, "failed to connect test DB")
	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// setupEndpointTest wires the full route table against a fresh database.
// Security events are discarded and the JWT secret is set for the test.
func setupEndpointTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	previousSecret := util.GetJWTSecretByte()
	util.SetJWTSecret(testSecret)
	previousLogger := util.GetSecurityLoggerForTest()
	util.SetSecurityLoggerForTest(zerolog.Nop())
	t.Cleanup(func() {
		util.SetJWTSecret(string(previousSecret))
		util.SetSecurityLoggerForTest(previousLogger)
	})

	db := setupEndpointTestDB(t)
	env := &testEnv{
		db:  db,
		svc: booking.NewService(db, booking.WithClock(func() time.Time { return testNow })),
		dir: directory.New(db, time.Minute, zerolog.Nop()),
	}
	env.r = gin.New()
	env.r.Use(middleware.DatabaseMiddleware(db), middleware.ServiceMiddleware(env.svc, env.dir))
	RegisterRoutes(env.r, RouteOptions{})
	return env
}

// newTestRouter returns a new Gin engine configured for tests.
// Use this for tests that don't need a DB injected.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func tokenFor(t *testing.T, subject string) string {
	t.Helper()
	tok, err := util.SignToken(subject, util.Claims{Email: subject + "@example.com", Name: "Test " + subject}, time.Hour, util.TokenOptions{})
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w, resp, err := performRequest(e.r, requestSpec{method: method, requestPath: path, token: token, body: body})
	require.NoError(t, err, "response was not JSON: %s", w.Body.String())
	return w, resp
}

// sync registers subject and returns its token and user id.
func (e *testEnv) sync(t *testing.T, subject string) (string, uint) {
	t.Helper()
	tok := tokenFor(t, subject)
	w, resp := e.do(t, http.MethodPost, "/users/sync", tok, nil)
	assertSuccessResponse(t, w, resp)
	return tok, uint(data(t, resp)["ID"].(float64))
}

func (e *testEnv) seedAdmin(t *testing.T) string {
	t.Helper()
	require.NoError(t, model.SeedAdmin(e.db, "idp|admin", "admin@example.com"))
	return tokenFor(t, "idp|admin")
}

// seedDoctor syncs subject, promotes it and returns its token and doctor id.
func (e *testEnv) seedDoctor(t *testing.T, adminToken, subject string) (string, uint) {
	t.Helper()
	tok, userID := e.sync(t, subject)
	w, resp := e.do(t, http.MethodPatch, fmt.Sprintf("/users/%d/promote", userID), adminToken, nil)
	assertSuccessResponse(t, w, resp)

	w, resp = e.do(t, http.MethodGet, "/users/me", tok, nil)
	assertSuccessResponse(t, w, resp)
	return tok, uint(data(t, resp)["doctor_id"].(float64))
}

func data(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "data is not an object: %v", resp["data"])
	return d
}

// assertStatus asserts that the response HTTP status code matches the expected value
func assertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, w.Code, w.Body.String())
}

// assertSuccessResponse asserts that the response indicates success with a 2xx status
func assertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, response map[string]interface{}) {
	t.Helper()
	require.True(t, w.Code == http.StatusOK || w.Code == http.StatusCreated, "status %d: %s", w.Code, w.Body.String())
	if response == nil {
		return
	}
	if success, ok := response["success"].(bool); ok {
		assert.True(t, success)
	}
}
