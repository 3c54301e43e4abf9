package util

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ariebrainware/clinic-booking/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestLogger captures security events as JSON lines and restores the
// previous logger and DB on cleanup.
func setupTestLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	original, originalDB := currentSecurityLogger()
	SetSecurityLoggerForTest(zerolog.New(buf))
	SetSecurityLoggerDB(nil)
	t.Cleanup(func() {
		SetSecurityLoggerForTest(original)
		SetSecurityLoggerDB(originalDB)
	})
	return buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines[0], "no log output")
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	return entry
}

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "removes newlines", input: "hello\nworld", expected: "hello world"},
		{name: "removes carriage returns", input: "hello\rworld", expected: "hello world"},
		{name: "removes tabs", input: "hello\tworld", expected: "hello world"},
		{name: "truncates long values", input: strings.Repeat("a", 250), expected: strings.Repeat("a", 200) + "..."},
		{name: "handles normal strings", input: "normal string", expected: "normal string"},
		{name: "handles empty string", input: "", expected: ""},
		{name: "combines multiple issues", input: "line1\nline2\rline3\ttab", expected: "line1 line2 line3 tab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeLogValue(tt.input))
		})
	}
}

func TestLogSecurityEvent(t *testing.T) {
	buf := setupTestLogger(t)

	LogSecurityEvent(SecurityEvent{
		EventType: EventSuspiciousActivity,
		Subject:   "idp|123",
		Role:      "patient",
		RequestID: "req-1",
		IP:        "10.0.0.1",
		UserAgent: "Bot",
		Message:   "Suspicious\nactivity",
		Details:   map[string]interface{}{"reason": "burst", "count": 5},
	})

	entry := lastEntry(t, buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "SUSPICIOUS_ACTIVITY", entry["event"])
	assert.Equal(t, "idp|123", entry["subject"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "Suspicious activity", entry["message"])
	assert.EqualValues(t, 2, entry["details_count"])
}

func TestLogHelpers(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func()
		event   SecurityEventType
		level   string
		message string
	}{
		{
			name:    "unauthorized",
			logFunc: func() { LogUnauthorizedAccess("1.2.3.4", "curl", "/api/v1/reservations", "missing token") },
			event:   EventUnauthorizedAccess,
			level:   "warn",
			message: "Unauthorized access to /api/v1/reservations: missing token",
		},
		{
			name:    "forbidden",
			logFunc: func() { LogForbidden("idp|p", "patient", "1.2.3.4", "/api/v1/procedures", "admin only") },
			event:   EventForbidden,
			level:   "warn",
			message: "Forbidden access to /api/v1/procedures: admin only",
		},
		{
			name:    "rate limit",
			logFunc: func() { LogRateLimitExceeded("idp|p", "1.2.3.4", "/api/v1/reservations") },
			event:   EventRateLimitExceeded,
			level:   "warn",
			message: "Rate limit exceeded for endpoint: /api/v1/reservations",
		},
		{
			name:    "role changed",
			logFunc: func() { LogRoleChanged("idp|admin", "idp|doc", "patient", "doctor") },
			event:   EventRoleChanged,
			level:   "warn",
			message: "Role of idp|doc changed from patient to doctor",
		},
		{
			name:    "user synced",
			logFunc: func() { LogUserSynced("idp|new", "1.2.3.4", "Mozilla/5.0") },
			event:   EventUserSynced,
			level:   "info",
			message: "User synced from identity provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := setupTestLogger(t)
			tt.logFunc()
			entry := lastEntry(t, buf)
			assert.Equal(t, string(tt.event), entry["event"])
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.message, entry["message"])
		})
	}
}

func TestLogSecurityEvent_Persists(t *testing.T) {
	setupTestLogger(t)
	db, err := gorm.Open(sqlite.Open("file:security_log_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.SecurityLog{}))
	SetSecurityLoggerDB(db)

	LogRoleChanged("idp|admin", "idp|doc", "patient", "doctor")

	var rows []model.SecurityLog
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, string(EventRoleChanged), rows[0].EventType)
	assert.Equal(t, "idp|admin", rows[0].Subject)
	assert.Equal(t, "admin", rows[0].Role)
	assert.JSONEq(t, `{"target":"idp|doc","from":"patient","to":"doctor"}`, string(rows[0].Details))
}

func TestSetSecurityLogger_AddsChannel(t *testing.T) {
	buf := setupTestLogger(t)
	SetSecurityLogger(zerolog.New(buf))

	LogUnauthorizedAccess("", "", "/x", "no token")
	assert.Equal(t, "security", lastEntry(t, buf)["channel"])
}
