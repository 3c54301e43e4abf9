// Package events publishes booking lifecycle events to a message broker.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Routing keys used on the topic exchange.
const (
	ReservationCreated   = "reservation.created"
	ReservationConfirmed = "reservation.confirmed"
	ReservationCancelled = "reservation.cancelled"
	ScheduleActivated    = "schedule.activated"
	ScheduleApplied      = "schedule.applied"
	ExceptionAdded       = "schedule.exception.added"
	ExceptionRemoved     = "schedule.exception.removed"
	DoctorAvailability   = "doctor.availability_changed"
)

// Event is the envelope published for every lifecycle change.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	DoctorID   uint        `json:"doctor_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// New stamps an event with a fresh id and the current UTC time.
func New(eventType string, doctorID uint, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		DoctorID:   doctorID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
