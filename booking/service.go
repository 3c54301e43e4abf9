// Package booking implements the availability and booking engine: weekly
// schedule templates, their materialization into availability rows, slot
// generation and the reservation lifecycle.
package booking

import (
	"context"
	"sync"
	"time"

	"github.com/ariebrainware/clinic-booking/events"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AvailabilityCache stores serialized availability results per doctor.
// Invalidate must advance the doctor's generation. Keys embed the generation
// read before the result was computed.
type AvailabilityCache interface {
	Generation(ctx context.Context, doctorID uint) (int64, error)
	Get(ctx context.Context, doctorID uint, key string) ([]byte, bool)
	Set(ctx context.Context, doctorID uint, key string, value []byte) error
	Invalidate(ctx context.Context, doctorID uint) error
}

// Service is the entry point of the booking engine. It is safe for
// concurrent use.
type Service struct {
	db        *gorm.DB
	loc       *time.Location
	now       func() time.Time
	cache     AvailabilityCache
	publisher events.Publisher
	logger    zerolog.Logger
	policy    TransitionPolicy

	doctorLocks sync.Map // doctor id -> *sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithLocation sets the clinic time zone used for schedule wall-clock times.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCache enables availability caching.
func WithCache(c AvailabilityCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithPublisher sets where domain events go. Nil keeps the no-op publisher.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithTransitionPolicy replaces DefaultTransitionPolicy.
func WithTransitionPolicy(p TransitionPolicy) Option {
	return func(s *Service) {
		if p != nil {
			s.policy = p
		}
	}
}

// NewService returns a Service over db with UTC as the clinic zone.
func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:        db,
		loc:       time.UTC,
		now:       time.Now,
		publisher: events.Noop{},
		logger:    zerolog.Nop(),
		policy:    DefaultTransitionPolicy,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the clinic time zone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// lockDoctor serializes writes that must not race for the same doctor.
func (s *Service) lockDoctor(doctorID uint) func() {
	v, _ := s.doctorLocks.LoadOrStore(doctorID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// committed runs the side effects of a successful write: the doctor's cached
// availability is dropped and the event is published. Failures are logged,
// the write itself already succeeded.
func (s *Service) committed(ctx context.Context, e events.Event) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, e.DoctorID); err != nil {
			s.logger.Warn().Err(err).Uint("doctor_id", e.DoctorID).Msg("failed to invalidate availability cache")
		}
	}
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.logger.Warn().Err(err).Str("event", e.Type).Str("event_id", e.ID).Msg("failed to publish event")
		return
	}
	s.logger.Debug().Str("event", e.Type).Uint("doctor_id", e.DoctorID).Msg("event published")
}
