package booking

import (
	"context"
	"errors"
	"time"

	"github.com/ariebrainware/clinic-booking/events"
	"github.com/ariebrainware/clinic-booking/model"
	"gorm.io/gorm"
)

// DoctorFilter narrows ListDoctors.
type DoctorFilter struct {
	ProcedureID   *uint
	AvailableOnly bool
}

// DoctorStats summarizes one doctor's workload.
type DoctorStats struct {
	DoctorID         uint   `json:"doctor_id"`
	PendingUpcoming  int64  `json:"pending_upcoming"`
	WeekReservations int64  `json:"week_reservations"`
	DistinctPatients int64  `json:"distinct_patients"`
	WeekStart        string `json:"week_start"`
	WeekEnd          string `json:"week_end"`
}

// ClinicStats summarizes the whole clinic for administrators.
type ClinicStats struct {
	PendingUpcoming  int64  `json:"pending_upcoming"`
	WeekReservations int64  `json:"week_reservations"`
	TotalPatients    int64  `json:"total_patients"`
	TotalDoctors     int64  `json:"total_doctors"`
	WeekStart        string `json:"week_start"`
	WeekEnd          string `json:"week_end"`
}

// ListDoctors returns doctors with user and procedures, filtered by f.
func (s *Service) ListDoctors(ctx context.Context, f DoctorFilter) ([]model.Doctor, error) {
	q := s.db.WithContext(ctx).Preload("User").Preload("Procedures").Order("doctors.id ASC")
	if f.AvailableOnly {
		q = q.Where("doctors.available = ?", true)
	}
	if f.ProcedureID != nil {
		q = q.Joins("JOIN doctor_procedures dp ON dp.doctor_id = doctors.id").
			Where("dp.procedure_id = ?", *f.ProcedureID)
	}
	var out []model.Doctor
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetDoctor returns the doctor with user and procedures or ErrNotFound.
func (s *Service) GetDoctor(ctx context.Context, id uint) (*model.Doctor, error) {
	return findDoctor(s.db.WithContext(ctx), id)
}

func findDoctor(db *gorm.DB, id uint) (*model.Doctor, error) {
	var d model.Doctor
	if err := db.Preload("User").Preload("Procedures").First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("doctor %d", id)
		}
		return nil, err
	}
	return &d, nil
}

// SetDoctorProcedures replaces the set of procedures the doctor performs.
func (s *Service) SetDoctorProcedures(ctx context.Context, actor Actor, doctorID uint, procedureIDs []uint) (*model.Doctor, error) {
	if !actor.CanManageDoctor(doctorID) {
		return nil, forbidden("only the doctor or an admin can change procedures")
	}

	var doctor *model.Doctor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if doctor, err = findDoctor(tx, doctorID); err != nil {
			return err
		}

		var procs []model.Procedure
		if len(procedureIDs) > 0 {
			if err := tx.Where("id IN ?", procedureIDs).Find(&procs).Error; err != nil {
				return err
			}
			if len(procs) != len(uniqueIDs(procedureIDs)) {
				return notFound("one or more procedures do not exist")
			}
		}

		assoc := tx.Model(doctor).Association("Procedures")
		if len(procs) == 0 {
			if err := assoc.Clear(); err != nil {
				return err
			}
		} else if err := assoc.Replace(&procs); err != nil {
			return err
		}
		doctor.Procedures = procs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doctor, nil
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// SetDoctorAvailable toggles whether the doctor accepts new reservations.
func (s *Service) SetDoctorAvailable(ctx context.Context, actor Actor, doctorID uint, available bool) (*model.Doctor, error) {
	if !actor.CanManageDoctor(doctorID) {
		return nil, forbidden("only the doctor or an admin can change availability")
	}
	db := s.db.WithContext(ctx)
	doctor, err := findDoctor(db, doctorID)
	if err != nil {
		return nil, err
	}
	if err := db.Model(doctor).Update("available", available).Error; err != nil {
		return nil, err
	}
	doctor.Available = available

	s.committed(ctx, events.New(events.DoctorAvailability, doctorID, map[string]bool{"available": available}))
	return doctor, nil
}

// week returns [start, end) of the Monday-based week weekOffset weeks from
// the current one, in the clinic zone.
func (s *Service) week(weekOffset int) (time.Time, time.Time) {
	today := midnight(s.now(), s.loc)
	start := today.AddDate(0, 0, -model.WeekdayIndex(today.Weekday())+7*weekOffset)
	return start, start.AddDate(0, 0, 7)
}

// DoctorStats reports the calling doctor's pending upcoming reservations,
// reservations in the selected week and number of distinct patients.
func (s *Service) DoctorStats(ctx context.Context, actor Actor, weekOffset int) (*DoctorStats, error) {
	if actor.Role != model.RoleDoctor || actor.DoctorID == nil {
		return nil, forbidden("only doctors have personal stats")
	}
	doctorID := *actor.DoctorID
	start, end := s.week(weekOffset)
	stats := &DoctorStats{
		DoctorID:  doctorID,
		WeekStart: start.Format(dateLayout),
		WeekEnd:   end.AddDate(0, 0, -1).Format(dateLayout),
	}

	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&model.Reservation{}).Where("doctor_id = ?", doctorID)
	}
	if err := base().Where("status = ? AND start_time >= ?", model.StatusPending, s.now().UTC()).
		Count(&stats.PendingUpcoming).Error; err != nil {
		return nil, err
	}
	if err := base().Where("start_time >= ? AND start_time < ?", start.UTC(), end.UTC()).
		Count(&stats.WeekReservations).Error; err != nil {
		return nil, err
	}
	if err := base().Distinct("patient_id").Count(&stats.DistinctPatients).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// ClinicStats is the admin counterpart of DoctorStats.
func (s *Service) ClinicStats(ctx context.Context, actor Actor, weekOffset int) (*ClinicStats, error) {
	if !actor.IsAdmin() {
		return nil, forbidden("only admins can read clinic stats")
	}
	start, end := s.week(weekOffset)
	stats := &ClinicStats{
		WeekStart: start.Format(dateLayout),
		WeekEnd:   end.AddDate(0, 0, -1).Format(dateLayout),
	}

	db := s.db.WithContext(ctx)
	if err := db.Model(&model.Reservation{}).
		Where("status = ? AND start_time >= ?", model.StatusPending, s.now().UTC()).
		Count(&stats.PendingUpcoming).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Reservation{}).
		Where("start_time >= ? AND start_time < ?", start.UTC(), end.UTC()).
		Count(&stats.WeekReservations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Patient{}).Count(&stats.TotalPatients).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Doctor{}).Count(&stats.TotalDoctors).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
