package model

import (
	"time"

	"gorm.io/gorm"
)

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Reservation represents a booked appointment
// @Description Reservation of a doctor's time by a patient
type Reservation struct {
	gorm.Model
	PatientID   uint              `json:"patient_id" gorm:"not null;index"`
	Patient     *Patient          `json:"patient,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	DoctorID    uint              `json:"doctor_id" gorm:"not null;index:idx_reservation_doctor_range"`
	Doctor      *Doctor           `json:"doctor,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	ProcedureID *uint             `json:"procedure_id"`
	Procedure   *Procedure        `json:"procedure,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	StartTime   time.Time         `json:"start_time" gorm:"column:start_time;not null;index:idx_reservation_doctor_range"`
	EndTime     time.Time         `json:"end_time" gorm:"column:end_time;not null;index:idx_reservation_doctor_range"`
	DurationMin int               `json:"duration_min" gorm:"column:duration_min;not null" example:"30"`
	Status      ReservationStatus `json:"status" gorm:"column:status;type:varchar(16);not null;index" example:"pending"`
	Notes       string            `json:"notes" gorm:"column:notes;type:text"`
	DoctorNotes string            `json:"doctor_notes" gorm:"column:doctor_notes;type:text"`
}

// Overlaps reports whether the reservation intersects the half-open interval [start, end).
func (r Reservation) Overlaps(start, end time.Time) bool {
	return r.StartTime.Before(end) && r.EndTime.After(start)
}
