package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/config"
	"github.com/ariebrainware/clinic-booking/directory"
	"github.com/ariebrainware/clinic-booking/model"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "middleware-test-secret"

var dbSeq int64

// newInMemoryDB creates an in-memory sqlite DB with every model migrated.
func newInMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:middleware_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func setGinTestMode() {
	gin.SetMode(gin.TestMode)
}

func setupRedisMock(t *testing.T) redismock.ClientMock {
	rdb, mock := redismock.NewClientMock()
	config.SetRedisClientForTest(rdb)
	t.Cleanup(config.ResetRedisClientForTest)
	return mock
}

// captureSecurityLog redirects security events into a buffer.
func captureSecurityLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	original := util.GetSecurityLoggerForTest()
	util.SetSecurityLoggerForTest(zerolog.New(buf))
	t.Cleanup(func() { util.SetSecurityLoggerForTest(original) })
	return buf
}

func withSecret(t *testing.T) {
	t.Helper()
	previous := util.GetJWTSecretByte()
	util.SetJWTSecret(testSecret)
	t.Cleanup(func() { util.SetJWTSecret(string(previous)) })
}

func bearer(t *testing.T, subject string) string {
	t.Helper()
	tok, err := util.SignToken(subject, util.Claims{}, time.Hour, util.TokenOptions{})
	require.NoError(t, err)
	return "Bearer " + tok
}

func perform(r http.Handler, method, path, auth string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	req.RemoteAddr = "192.168.1.100:1234"
	r.ServeHTTP(w, req)
	return w
}

func TestSetCorsHeadersDefaults(t *testing.T) {
	setGinTestMode()
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/", "")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	w = perform(r, http.MethodOptions, "/", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDatabaseMiddlewareAndGetDB(t *testing.T) {
	setGinTestMode()
	db := &gorm.DB{}
	r := gin.New()
	r.Use(DatabaseMiddleware(db))
	r.GET("/testdb", func(c *gin.Context) {
		if GetDB(c) != db {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/testdb", "").Code)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetDB(c))
	assert.Nil(t, GetService(c))
	assert.Nil(t, GetDirectory(c))
}

func TestServiceMiddleware(t *testing.T) {
	setGinTestMode()
	db := newInMemoryDB(t)
	svc := booking.NewService(db)
	dir := directory.New(db, time.Minute, zerolog.Nop())

	r := gin.New()
	r.Use(ServiceMiddleware(svc, dir))
	r.GET("/", func(c *gin.Context) {
		assert.Same(t, svc, GetService(c))
		assert.Same(t, dir, GetDirectory(c))
		c.Status(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/", "").Code)
}

func TestRequestID(t *testing.T) {
	setGinTestMode()
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := perform(r, http.MethodGet, "/", "")
	generated := w.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestLogger(t *testing.T) {
	setGinTestMode()
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), Logger(zerolog.New(&buf)))
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	perform(r, http.MethodGet, "/missing", "")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, http.StatusNotFound, entry["status"])
	assert.Equal(t, "/missing", entry["path"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestRecovery(t *testing.T) {
	setGinTestMode()
	var buf bytes.Buffer
	r := gin.New()
	r.Use(Recovery(zerolog.New(&buf)))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := perform(r, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAuthenticate(t *testing.T) {
	setGinTestMode()
	withSecret(t)
	logs := captureSecurityLog(t)

	r := gin.New()
	r.Use(Authenticate(util.TokenOptions{}))
	r.GET("/me", func(c *gin.Context) {
		claims, ok := GetClaims(c)
		require.True(t, ok)
		c.String(http.StatusOK, claims.Subject)
	})

	w := perform(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, logs.String(), "UNAUTHORIZED_ACCESS")

	w = perform(r, http.MethodGet, "/me", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodGet, "/me", bearer(t, "idp|jane"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "idp|jane", w.Body.String())
}

func TestResolveActorAndRequireRole(t *testing.T) {
	setGinTestMode()
	withSecret(t)
	captureSecurityLog(t)
	db := newInMemoryDB(t)
	dir := directory.New(db, time.Minute, zerolog.Nop())
	_, err := dir.Sync(context.Background(), directory.Identity{Subject: "idp|jane"})
	require.NoError(t, err)
	require.NoError(t, model.SeedAdmin(db, "idp|root", "root@example.com"))

	r := gin.New()
	r.Use(ServiceMiddleware(booking.NewService(db), dir), Authenticate(util.TokenOptions{}), ResolveActor())
	r.GET("/me", func(c *gin.Context) {
		actor, ok := GetActor(c)
		require.True(t, ok)
		c.String(http.StatusOK, string(actor.Role))
	})
	r.GET("/admin", RequireRole(model.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/me", bearer(t, "idp|jane"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "patient", w.Body.String())

	w = perform(r, http.MethodGet, "/me", bearer(t, "idp|stranger"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "users/sync")

	w = perform(r, http.MethodGet, "/admin", bearer(t, "idp|jane"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, http.MethodGet, "/admin", bearer(t, "idp|root"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResolveActor_MissingDirectory(t *testing.T) {
	setGinTestMode()
	withSecret(t)
	captureSecurityLog(t)

	r := gin.New()
	r.Use(Authenticate(util.TokenOptions{}), ResolveActor())
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/me", bearer(t, "idp|jane"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestEndpointCallLogger(t *testing.T) {
	setGinTestMode()
	logs := captureSecurityLog(t)

	r := gin.New()
	r.Use(RequestID(), EndpointCallLogger())
	r.GET("/test", func(c *gin.Context) {
		c.Set(ActorKey, booking.Actor{UserID: 9, Subject: "idp|doc", Role: model.RoleDoctor})
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test?foo=bar", nil)
	req.RemoteAddr = "192.168.1.100:1234"
	req.Header.Set("User-Agent", "TestAgent/1.0")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "ENDPOINT_CALL", entry["event"])
	assert.Equal(t, "GET /test -> 200", entry["message"])
	assert.Equal(t, "192.168.1.100", entry["ip"])
	assert.Equal(t, "TestAgent/1.0", entry["user_agent"])
	assert.Equal(t, "idp|doc", entry["subject"])
	assert.Equal(t, "doctor", entry["role"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestRateLimiter_WithoutRedis(t *testing.T) {
	setGinTestMode()
	config.SetRedisClientForTest(nil)
	t.Cleanup(config.ResetRedisClientForTest)

	r := gin.New()
	r.Use(RateLimiter(RateLimitConfig{Limit: 1, Window: time.Minute}))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/test", "").Code, "request %d", i+1)
	}
	assert.Error(t, ResetRateLimit("192.168.1.100", "/test"))
}

func TestRateLimiter_WithRedis(t *testing.T) {
	setGinTestMode()
	logs := captureSecurityLog(t)
	mock := setupRedisMock(t)
	key := "ratelimit:/test:192.168.1.100"

	r := gin.New()
	r.Use(RateLimiter(RateLimitConfig{Limit: 2, Window: time.Minute}))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	mock.ExpectIncr(key).SetVal(2)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/test", "").Code)

	mock.ExpectIncr(key).SetVal(3)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	w := perform(r, http.MethodGet, "/test", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, logs.String(), "RATE_LIMIT_EXCEEDED")

	mock.ExpectDel(key).SetVal(1)
	assert.NoError(t, ResetRateLimit("192.168.1.100", "/test"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
