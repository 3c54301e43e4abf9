package model

import "time"

// Weekdays are numbered 0 (Monday) through 6 (Sunday).
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayIndex converts a time.Weekday into the 0=Monday numbering used by schedules.
func WeekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// WeeklyScheduleTemplate is a named, reusable weekly availability pattern.
// At most one template per doctor has IsActive set.
// @Description Weekly schedule template
type WeeklyScheduleTemplate struct {
	ID        uint           `json:"id" gorm:"primarykey" example:"1"`
	DoctorID  uint           `json:"doctor_id" gorm:"not null;uniqueIndex:idx_template_doctor_name;index" example:"1"`
	Doctor    *Doctor        `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Name      string         `json:"name" gorm:"size:191;not null;uniqueIndex:idx_template_doctor_name" example:"Summer hours"`
	IsActive  bool           `json:"is_active" gorm:"column:is_active;not null" example:"false"`
	Items     []TemplateItem `json:"items" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TemplateItem is one day-of-week block of a template. Times are "HH:MM"
// in the clinic time zone.
type TemplateItem struct {
	ID         uint   `json:"id" gorm:"primarykey"`
	TemplateID uint   `json:"template_id" gorm:"not null;index"`
	DayOfWeek  int    `json:"day_of_week" gorm:"column:day_of_week;not null" example:"0"`
	StartTime  string `json:"start_time" gorm:"column:start_time;size:5;not null" example:"09:00"`
	EndTime    string `json:"end_time" gorm:"column:end_time;size:5;not null" example:"12:00"`
	Active     bool   `json:"active" gorm:"column:active;not null" example:"true"`
}

// DoctorAvailability is a materialized weekly availability row. Rows are
// replaced wholesale whenever a template is applied to the doctor.
type DoctorAvailability struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	DoctorID  uint      `json:"doctor_id" gorm:"not null;uniqueIndex:idx_availability_slot"`
	Doctor    *Doctor   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	DayOfWeek int       `json:"day_of_week" gorm:"column:day_of_week;not null;uniqueIndex:idx_availability_slot"`
	StartTime string    `json:"start_time" gorm:"column:start_time;size:5;not null;uniqueIndex:idx_availability_slot"`
	EndTime   string    `json:"end_time" gorm:"column:end_time;size:5;not null;uniqueIndex:idx_availability_slot"`
	Active    bool      `json:"active" gorm:"column:active;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// AvailabilityException removes availability on a specific date without
// touching template-derived rows. Empty StartTime and EndTime block the whole day.
type AvailabilityException struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	DoctorID  uint      `json:"doctor_id" gorm:"not null;index:idx_exception_doctor_date"`
	Doctor    *Doctor   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Date      string    `json:"date" gorm:"column:date;size:10;not null;index:idx_exception_doctor_date" example:"2025-02-14"`
	StartTime string    `json:"start_time,omitempty" gorm:"column:start_time;size:5" example:"13:00"`
	EndTime   string    `json:"end_time,omitempty" gorm:"column:end_time;size:5" example:"15:00"`
	Reason    string    `json:"reason" gorm:"column:reason;size:255" example:"Conference"`
	CreatedAt time.Time `json:"created_at"`
}

// WholeDay reports whether the exception blocks the entire date.
func (e AvailabilityException) WholeDay() bool {
	return e.StartTime == "" && e.EndTime == ""
}
