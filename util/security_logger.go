package util

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ariebrainware/clinic-booking/model"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SecurityEventType represents different types of security events
type SecurityEventType string

const (
	EventUnauthorizedAccess SecurityEventType = "UNAUTHORIZED_ACCESS"
	EventForbidden          SecurityEventType = "FORBIDDEN"
	EventRateLimitExceeded  SecurityEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspiciousActivity SecurityEventType = "SUSPICIOUS_ACTIVITY"
	EventEndpointCall       SecurityEventType = "ENDPOINT_CALL"
	EventRoleChanged        SecurityEventType = "ROLE_CHANGED"
	EventUserSynced         SecurityEventType = "USER_SYNCED"
)

// SecurityEvent represents a security event to be logged
type SecurityEvent struct {
	EventType SecurityEventType
	Subject   string
	Role      string
	RequestID string
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

var (
	securityMu     sync.RWMutex
	securityLogger = zerolog.New(os.Stdout).With().Timestamp().Str("channel", "security").Logger()
	securityDB     *gorm.DB
)

// SetSecurityLogger replaces the logger security events are written to.
// The channel field is always added.
func SetSecurityLogger(logger zerolog.Logger) {
	securityMu.Lock()
	defer securityMu.Unlock()
	securityLogger = logger.With().Str("channel", "security").Logger()
}

// SetSecurityLoggerDB sets a gorm DB instance used to persist security events.
// Call this during application startup after DB initialization. Passing nil
// disables persistence.
func SetSecurityLoggerDB(db *gorm.DB) {
	securityMu.Lock()
	defer securityMu.Unlock()
	securityDB = db
}

func currentSecurityLogger() (zerolog.Logger, *gorm.DB) {
	securityMu.RLock()
	defer securityMu.RUnlock()
	return securityLogger, securityDB
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogSecurityEvent logs a security event and, when a DB is configured,
// persists it as a model.SecurityLog. Persistence is best-effort.
func LogSecurityEvent(event SecurityEvent) {
	logger, db := currentSecurityLogger()

	entry := logger.Warn()
	if event.EventType == EventEndpointCall || event.EventType == EventUserSynced {
		entry = logger.Info()
	}
	entry.
		Str("event", sanitizeLogValue(string(event.EventType))).
		Str("subject", sanitizeLogValue(event.Subject)).
		Str("role", sanitizeLogValue(event.Role)).
		Str("request_id", sanitizeLogValue(event.RequestID)).
		Str("ip", sanitizeLogValue(event.IP)).
		Str("user_agent", sanitizeLogValue(event.UserAgent)).
		Int("details_count", len(event.Details)).
		Msg(sanitizeLogValue(event.Message))

	if db == nil {
		return
	}

	var details datatypes.JSON
	if event.Details != nil {
		if b, err := json.Marshal(event.Details); err == nil {
			details = datatypes.JSON(b)
		}
	}

	row := model.SecurityLog{
		EventType: string(event.EventType),
		Subject:   sanitizeLogValue(event.Subject),
		Role:      sanitizeLogValue(event.Role),
		RequestID: sanitizeLogValue(event.RequestID),
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(GetIPLocation(event.IP).String()),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		Details:   details,
	}
	if err := db.Create(&row).Error; err != nil {
		logger.Error().Err(err).Msg("failed to persist security event")
	}
}

// LogUnauthorizedAccess logs a request that could not be authenticated.
func LogUnauthorizedAccess(ip, userAgent, resource, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventUnauthorizedAccess,
		IP:        ip,
		UserAgent: userAgent,
		Message:   fmt.Sprintf("Unauthorized access to %s: %s", resource, reason),
	})
}

// LogForbidden logs an authenticated actor denied by an authorization rule.
func LogForbidden(subject, role, ip, resource, reason string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventForbidden,
		Subject:   subject,
		Role:      role,
		IP:        ip,
		Message:   fmt.Sprintf("Forbidden access to %s: %s", resource, reason),
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(subject, ip, endpoint string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventRateLimitExceeded,
		Subject:   subject,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}

// LogRoleChanged records an admin promoting or reverting a user.
func LogRoleChanged(actorSubject, targetSubject, from, to string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventRoleChanged,
		Subject:   actorSubject,
		Role:      string(model.RoleAdmin),
		Message:   fmt.Sprintf("Role of %s changed from %s to %s", targetSubject, from, to),
		Details: map[string]interface{}{
			"target": targetSubject,
			"from":   from,
			"to":     to,
		},
	})
}

// LogUserSynced records a login sync of an identity-provider subject.
func LogUserSynced(subject, ip, userAgent string) {
	LogSecurityEvent(SecurityEvent{
		EventType: EventUserSynced,
		Subject:   subject,
		IP:        ip,
		UserAgent: userAgent,
		Message:   "User synced from identity provider",
	})
}

// GetSecurityLoggerForTest returns the current security logger for testing purposes
func GetSecurityLoggerForTest() zerolog.Logger {
	logger, _ := currentSecurityLogger()
	return logger
}

// SetSecurityLoggerForTest sets a logger without adding the channel field.
func SetSecurityLoggerForTest(logger zerolog.Logger) {
	securityMu.Lock()
	defer securityMu.Unlock()
	securityLogger = logger
}
