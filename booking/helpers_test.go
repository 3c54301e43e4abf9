package booking

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ariebrainware/clinic-booking/events"
	"github.com/ariebrainware/clinic-booking/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq int64

// fixedNow is Saturday 2025-03-01 08:00 UTC; the next Monday is 2025-03-03.
var fixedNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

const nextMonday = "2025-03-03"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:booking_%d_%d?mode=memory&cache=shared", time.Now().UnixNano(), atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

type memoryCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	generations map[uint]int64
	hits        int
	invalidated []uint

	// beforeSet runs ahead of every store, outside the lock.
	beforeSet func()
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}, generations: map[uint]int64{}}
}

func (c *memoryCache) Generation(_ context.Context, doctorID uint) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[doctorID], nil
}

func (c *memoryCache) key(doctorID uint, key string) string {
	return fmt.Sprintf("%d|%s", doctorID, key)
}

func (c *memoryCache) Get(_ context.Context, doctorID uint, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[c.key(doctorID, key)]
	if ok {
		c.hits++
	}
	return b, ok
}

func (c *memoryCache) Set(_ context.Context, doctorID uint, key string, value []byte) error {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(doctorID, key)] = value
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, doctorID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := fmt.Sprintf("%d|", doctorID)
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
		}
	}
	c.generations[doctorID]++
	c.invalidated = append(c.invalidated, doctorID)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	db    *gorm.DB
	svc   *Service
	cache *memoryCache
	pub   *recordingPublisher

	doctor       model.Doctor
	otherDoctor  model.Doctor
	patient      model.Patient
	otherPatient model.Patient
	procedure    model.Procedure

	admin             Actor
	doctorActor       Actor
	otherDoctorActor  Actor
	patientActor      Actor
	otherPatientActor Actor
}

func uintPtr(v uint) *uint { return &v }
func boolPtr(v bool) *bool { return &v }

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	db := setupTestDB(t)
	f := &fixture{db: db, cache: newMemoryCache(), pub: &recordingPublisher{}}

	mkUser := func(subject string, role model.Role) model.User {
		u := model.User{Subject: subject, Email: subject + "@example.com", FirstName: subject, Role: role}
		require.NoError(t, db.Create(&u).Error)
		return u
	}

	adminUser := mkUser("admin", model.RoleAdmin)
	f.admin = Actor{UserID: adminUser.ID, Subject: adminUser.Subject, Role: model.RoleAdmin}

	f.procedure = model.Procedure{Name: "Cleaning", DurationMin: 30, Active: true}
	require.NoError(t, db.Create(&f.procedure).Error)

	for i, d := range []*model.Doctor{&f.doctor, &f.otherDoctor} {
		u := mkUser(fmt.Sprintf("doctor%d", i), model.RoleDoctor)
		*d = model.Doctor{UserID: u.ID, Specialty: "General", Available: true}
		require.NoError(t, db.Create(d).Error)
	}
	require.NoError(t, db.Model(&f.doctor).Association("Procedures").Append(&f.procedure))
	f.doctorActor = Actor{UserID: f.doctor.UserID, Role: model.RoleDoctor, DoctorID: uintPtr(f.doctor.ID)}
	f.otherDoctorActor = Actor{UserID: f.otherDoctor.UserID, Role: model.RoleDoctor, DoctorID: uintPtr(f.otherDoctor.ID)}

	for i, p := range []*model.Patient{&f.patient, &f.otherPatient} {
		u := mkUser(fmt.Sprintf("patient%d", i), model.RolePatient)
		*p = model.Patient{UserID: u.ID}
		require.NoError(t, db.Create(p).Error)
	}
	f.patientActor = Actor{UserID: f.patient.UserID, Role: model.RolePatient, PatientID: uintPtr(f.patient.ID)}
	f.otherPatientActor = Actor{UserID: f.otherPatient.UserID, Role: model.RolePatient, PatientID: uintPtr(f.otherPatient.ID)}

	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithCache(f.cache),
		WithPublisher(f.pub),
	}
	f.svc = NewService(db, append(base, opts...)...)
	return f
}

// activateMondayMorning gives the fixture doctor a single Monday 09:00-12:00 block.
func (f *fixture) activateMondayMorning(t *testing.T) model.WeeklyScheduleTemplate {
	t.Helper()
	ctx := context.Background()
	tpl, err := f.svc.CreateTemplate(ctx, f.doctorActor, f.doctor.ID, "Mondays", []TemplateItemInput{
		{DayOfWeek: model.Monday, StartTime: "09:00", EndTime: "12:00"},
	})
	require.NoError(t, err)
	_, err = f.svc.Activate(ctx, f.doctorActor, tpl.ID)
	require.NoError(t, err)
	return *tpl
}

// at returns the UTC instant for HH:MM on the given date.
func at(t *testing.T, date, clock string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	require.NoError(t, err)
	return ts
}

func (f *fixture) book(t *testing.T, clock string, duration int) (*model.Reservation, error) {
	t.Helper()
	return f.svc.CreateReservation(context.Background(), f.patientActor, CreateReservationInput{
		DoctorID:    f.doctor.ID,
		ProcedureID: uintPtr(f.procedure.ID),
		Start:       at(t, nextMonday, clock),
		DurationMin: duration,
	})
}
