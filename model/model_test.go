package model

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing with the specified models.
// The database name is uniquified using the current Unix nanosecond timestamp to prevent
// cross-test contamination when tests run in the same process.
func setupTestDB(t *testing.T, name string, models ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("failed to auto-migrate models: %v", err)
		}
	}
	return db
}

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		day      time.Weekday
		expected int
	}{
		{time.Monday, Monday},
		{time.Tuesday, Tuesday},
		{time.Wednesday, Wednesday},
		{time.Thursday, Thursday},
		{time.Friday, Friday},
		{time.Saturday, Saturday},
		{time.Sunday, Sunday},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, WeekdayIndex(tt.day), tt.day.String())
	}
}

func TestRoleAndStatusValid(t *testing.T) {
	assert.True(t, RolePatient.Valid())
	assert.True(t, RoleDoctor.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("nurse").Valid())

	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusConfirmed.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, ReservationStatus("done").Valid())
}

func TestReservationOverlaps(t *testing.T) {
	base := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	r := Reservation{StartTime: base, EndTime: base.Add(30 * time.Minute)}

	assert.True(t, r.Overlaps(base, base.Add(30*time.Minute)))
	assert.True(t, r.Overlaps(base.Add(-10*time.Minute), base.Add(time.Minute)))
	assert.True(t, r.Overlaps(base.Add(29*time.Minute), base.Add(time.Hour)))
	assert.False(t, r.Overlaps(base.Add(30*time.Minute), base.Add(time.Hour)), "touching end is not an overlap")
	assert.False(t, r.Overlaps(base.Add(-30*time.Minute), base), "touching start is not an overlap")
}

func TestDoctorOffers(t *testing.T) {
	d := Doctor{Procedures: []Procedure{{Model: gorm.Model{ID: 2}}, {Model: gorm.Model{ID: 5}}}}
	assert.True(t, d.Offers(5))
	assert.False(t, d.Offers(3))
}

func TestAvailabilityExceptionWholeDay(t *testing.T) {
	assert.True(t, AvailabilityException{Date: "2025-02-14"}.WholeDay())
	assert.False(t, AvailabilityException{Date: "2025-02-14", StartTime: "13:00", EndTime: "15:00"}.WholeDay())
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Jane Doe", User{FirstName: "Jane", LastName: "Doe"}.FullName())
	assert.Equal(t, "Jane", User{FirstName: "Jane"}.FullName())
}

func TestAllModelsMigrate(t *testing.T) {
	db := setupTestDB(t, "all", All()...)
	for _, m := range All() {
		assert.True(t, db.Migrator().HasTable(m), fmt.Sprintf("%T", m))
	}
	assert.True(t, db.Migrator().HasTable("doctor_procedures"))
}

func TestTemplateNameUniquePerDoctor(t *testing.T) {
	db := setupTestDB(t, "template_unique", All()...)

	assert.NoError(t, db.Create(&WeeklyScheduleTemplate{DoctorID: 1, Name: "Default"}).Error)
	assert.NoError(t, db.Create(&WeeklyScheduleTemplate{DoctorID: 2, Name: "Default"}).Error)

	err := db.Create(&WeeklyScheduleTemplate{DoctorID: 1, Name: "Default"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestDoctorAvailabilityUniqueRow(t *testing.T) {
	db := setupTestDB(t, "availability_unique", All()...)

	row := DoctorAvailability{DoctorID: 1, DayOfWeek: Monday, StartTime: "09:00", EndTime: "12:00", Active: true}
	assert.NoError(t, db.Create(&row).Error)

	dup := DoctorAvailability{DoctorID: 1, DayOfWeek: Monday, StartTime: "09:00", EndTime: "12:00", Active: true}
	assert.ErrorIs(t, db.Create(&dup).Error, gorm.ErrDuplicatedKey)
}

func TestTemplatePreloadsItems(t *testing.T) {
	db := setupTestDB(t, "template_items", All()...)

	tpl := WeeklyScheduleTemplate{
		DoctorID: 1,
		Name:     "Mornings",
		Items: []TemplateItem{
			{DayOfWeek: Monday, StartTime: "09:00", EndTime: "12:00", Active: true},
			{DayOfWeek: Wednesday, StartTime: "09:00", EndTime: "12:00", Active: false},
		},
	}
	assert.NoError(t, db.Create(&tpl).Error)

	var found WeeklyScheduleTemplate
	assert.NoError(t, db.Preload("Items").First(&found, tpl.ID).Error)
	assert.Len(t, found.Items, 2)
	assert.False(t, found.IsActive)
}

func TestSeedAdmin(t *testing.T) {
	db := setupTestDB(t, "seed_admin", &User{})

	assert.NoError(t, SeedAdmin(db, "", "ignored@example.com"))
	var count int64
	db.Model(&User{}).Count(&count)
	assert.Zero(t, count)

	assert.NoError(t, SeedAdmin(db, "idp|root", "root@example.com"))
	assert.NoError(t, SeedAdmin(db, "idp|root", "root@example.com"))

	var admins []User
	assert.NoError(t, db.Where("subject = ?", "idp|root").Find(&admins).Error)
	assert.Len(t, admins, 1)
	assert.Equal(t, RoleAdmin, admins[0].Role)
}

func TestSeedAdminPromotesExistingUser(t *testing.T) {
	db := setupTestDB(t, "seed_admin_promote", &User{})

	assert.NoError(t, db.Create(&User{Subject: "idp|ops", Role: RolePatient}).Error)
	assert.NoError(t, SeedAdmin(db, "idp|ops", ""))

	var u User
	assert.NoError(t, db.Where("subject = ?", "idp|ops").First(&u).Error)
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestSecurityLogModel_Create(t *testing.T) {
	db := setupTestDB(t, "security_log", &SecurityLog{})

	entry := SecurityLog{
		EventType: "RESERVATION_CREATED",
		Subject:   "idp|123",
		Role:      string(RolePatient),
		IP:        "192.168.1.1",
		Message:   "reservation 1 created",
		Details:   []byte(`{"doctor_id":1}`),
	}
	assert.NoError(t, db.Create(&entry).Error)
	assert.NotZero(t, entry.ID)

	var found SecurityLog
	assert.NoError(t, db.First(&found, entry.ID).Error)
	assert.Equal(t, "RESERVATION_CREATED", found.EventType)
	assert.Equal(t, "idp|123", found.Subject)
	assert.NotNil(t, found.Details)
}
