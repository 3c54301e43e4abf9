package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ariebrainware/clinic-booking/events"
	"github.com/ariebrainware/clinic-booking/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultDurationMin is used when a reservation has neither an explicit
// duration nor a procedure.
const DefaultDurationMin = 30

// CreateReservationInput holds the booking request. PatientID may be left
// zero when a patient books for themselves.
type CreateReservationInput struct {
	PatientID   uint      `json:"patient_id"`
	DoctorID    uint      `json:"doctor_id"`
	ProcedureID *uint     `json:"procedure_id"`
	Start       time.Time `json:"start_time"`
	DurationMin int       `json:"duration_min"`
	Notes       string    `json:"notes"`
}

// ReservationFilter narrows ListReservations. Zero values mean "any".
type ReservationFilter struct {
	Status    model.ReservationStatus
	DoctorID  *uint
	PatientID *uint
	From      *time.Time
	To        *time.Time
}

// CreateReservation books [Start, Start+duration) with the doctor as a
// pending reservation.
//
// The check-and-insert is serialized per doctor: a process-wide lock keyed
// by doctor id plus a transaction holding a row lock on the doctor. Of N
// concurrent overlapping requests exactly one succeeds; the others get
// ErrConflict.
func (s *Service) CreateReservation(ctx context.Context, actor Actor, in CreateReservationInput) (*model.Reservation, error) {
	switch {
	case actor.IsAdmin():
		if in.PatientID == 0 {
			return nil, invalid("patient_id is required")
		}
	case actor.Role == model.RolePatient && actor.PatientID != nil:
		if in.PatientID == 0 {
			in.PatientID = *actor.PatientID
		}
		if in.PatientID != *actor.PatientID {
			return nil, forbidden("patients can only book for themselves")
		}
	default:
		return nil, forbidden("only patients and admins can create reservations")
	}

	if in.DoctorID == 0 {
		return nil, invalid("doctor_id is required")
	}
	if in.Start.IsZero() {
		return nil, invalid("start_time is required")
	}
	if in.DurationMin < 0 {
		return nil, invalid("duration_min must be positive")
	}
	start := in.Start.Truncate(time.Minute).UTC()
	if !start.After(s.now()) {
		return nil, invalid("start_time must be in the future")
	}

	unlock := s.lockDoctor(in.DoctorID)
	defer unlock()

	var res model.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doctor model.Doctor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&doctor, in.DoctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("doctor %d", in.DoctorID)
			}
			return err
		}
		if err := tx.First(&model.Patient{}, in.PatientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("patient %d", in.PatientID)
			}
			return err
		}
		if !doctor.Available {
			return invalid("doctor %d is not accepting reservations", doctor.ID)
		}

		duration := in.DurationMin
		if in.ProcedureID != nil {
			proc, err := s.bookableProcedure(tx, &doctor, *in.ProcedureID)
			if err != nil {
				return err
			}
			if duration == 0 {
				duration = proc.DurationMin
			}
		}
		if duration == 0 {
			duration = DefaultDurationMin
		}
		end := start.Add(time.Duration(duration) * time.Minute)

		if err := s.checkWithinSchedule(tx, doctor.ID, interval{start, end}); err != nil {
			return err
		}

		var overlapping int64
		if err := tx.Model(&model.Reservation{}).
			Where("doctor_id = ? AND status <> ?", doctor.ID, model.StatusCancelled).
			Where("start_time < ? AND end_time > ?", end, start).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return conflict("doctor %d already has a reservation overlapping %s", doctor.ID, start.In(s.loc).Format(time.RFC3339))
		}

		res = model.Reservation{
			PatientID:   in.PatientID,
			DoctorID:    doctor.ID,
			ProcedureID: in.ProcedureID,
			StartTime:   start,
			EndTime:     end,
			DurationMin: duration,
			Status:      model.StatusPending,
			Notes:       strings.TrimSpace(in.Notes),
		}
		return tx.Create(&res).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Uint("reservation_id", res.ID).
		Uint("doctor_id", res.DoctorID).
		Uint("patient_id", res.PatientID).
		Time("start", res.StartTime).
		Msg("reservation created")
	s.committed(ctx, events.New(events.ReservationCreated, res.DoctorID, res))
	return &res, nil
}

// bookableProcedure returns the procedure if it is active and offered by
// the doctor. The doctor's procedures are loaded into doctor.
func (s *Service) bookableProcedure(tx *gorm.DB, doctor *model.Doctor, procedureID uint) (*model.Procedure, error) {
	var proc model.Procedure
	if err := tx.First(&proc, procedureID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("procedure %d", procedureID)
		}
		return nil, err
	}
	if !proc.Active {
		return nil, invalid("procedure %d is not active", procedureID)
	}

	if err := tx.Model(doctor).Association("Procedures").Find(&doctor.Procedures); err != nil {
		return nil, err
	}
	if !doctor.Offers(procedureID) {
		return nil, invalid("doctor %d does not perform procedure %d", doctor.ID, procedureID)
	}
	return &proc, nil
}

// checkWithinSchedule requires slot to lie inside one active availability
// row of its weekday and outside every exception of that date.
func (s *Service) checkWithinSchedule(tx *gorm.DB, doctorID uint, slot interval) error {
	day := midnight(slot.start, s.loc)
	date := day.Format(dateLayout)

	var rows []model.DoctorAvailability
	if err := tx.Where("doctor_id = ? AND day_of_week = ? AND active = ?", doctorID, model.WeekdayIndex(day.Weekday()), true).
		Find(&rows).Error; err != nil {
		return err
	}
	inside := false
	for _, r := range rows {
		start, end, err := parseClockRange(r.StartTime, r.EndTime)
		if err != nil {
			continue
		}
		if !slot.start.Before(atClock(day, start)) && !slot.end.After(atClock(day, end)) {
			inside = true
			break
		}
	}
	if !inside {
		return invalid("requested time is outside the doctor's availability")
	}

	var excs []model.AvailabilityException
	if err := tx.Where("doctor_id = ? AND date = ?", doctorID, date).Find(&excs).Error; err != nil {
		return err
	}
	for _, cut := range exceptionIntervals(day, excs) {
		if slot.overlaps(cut) {
			return invalid("doctor %d is unavailable at the requested time", doctorID)
		}
	}
	return nil
}

// TransitionReservation moves a reservation to a new status. The state
// machine is checked first (ErrInvalidTransition), then the transition
// policy (ErrForbidden).
func (s *Service) TransitionReservation(ctx context.Context, actor Actor, id uint, to model.ReservationStatus) (*model.Reservation, error) {
	if !to.Valid() {
		return nil, invalid("unknown status %q", to)
	}

	var res model.Reservation
	var from model.ReservationStatus
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&res, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation %d", id)
			}
			return err
		}
		from = res.Status
		if !allowedTransition(from, to) {
			return &TransitionError{From: from, To: to}
		}
		if !s.policy(actor, res, to) {
			return forbidden("not allowed to mark reservation %d as %s", id, to)
		}
		res.Status = to
		return tx.Model(&res).Update("status", to).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("reservation_id", id).Str("from", string(from)).Str("to", string(to)).Msg("reservation status changed")
	eventType := events.ReservationConfirmed
	if to == model.StatusCancelled {
		eventType = events.ReservationCancelled
	}
	s.committed(ctx, events.New(eventType, res.DoctorID, res))
	return &res, nil
}

// TransitionError reports a transition the state machine does not allow.
type TransitionError struct {
	From, To model.ReservationStatus
}

func (e *TransitionError) Error() string {
	return "cannot move reservation from " + string(e.From) + " to " + string(e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// visibleTo restricts a reservation query to what actor may read.
func visibleTo(db *gorm.DB, actor Actor) (*gorm.DB, error) {
	switch {
	case actor.IsAdmin():
		return db, nil
	case actor.Role == model.RoleDoctor && actor.DoctorID != nil:
		return db.Where("doctor_id = ?", *actor.DoctorID), nil
	case actor.PatientID != nil:
		return db.Where("patient_id = ?", *actor.PatientID), nil
	}
	return nil, forbidden("actor has no reservation profile")
}

// ListReservations returns the reservations visible to actor, ordered by
// start time.
func (s *Service) ListReservations(ctx context.Context, actor Actor, f ReservationFilter) ([]model.Reservation, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, invalid("unknown status %q", f.Status)
	}
	q, err := visibleTo(s.db.WithContext(ctx).Model(&model.Reservation{}), actor)
	if err != nil {
		return nil, err
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.DoctorID != nil {
		q = q.Where("doctor_id = ?", *f.DoctorID)
	}
	if f.PatientID != nil {
		q = q.Where("patient_id = ?", *f.PatientID)
	}
	if f.From != nil {
		q = q.Where("end_time > ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("start_time < ?", f.To.UTC())
	}

	var out []model.Reservation
	if err := q.Preload("Procedure").Order("start_time ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetReservation returns the reservation if actor may see it. Reservations
// outside the actor's scope are reported as not found.
func (s *Service) GetReservation(ctx context.Context, actor Actor, id uint) (*model.Reservation, error) {
	q, err := visibleTo(s.db.WithContext(ctx), actor)
	if err != nil {
		return nil, err
	}
	var res model.Reservation
	if err := q.Preload("Procedure").First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("reservation %d", id)
		}
		return nil, err
	}
	return &res, nil
}

// UpdateDoctorNotes sets the doctor's private notes on a reservation.
func (s *Service) UpdateDoctorNotes(ctx context.Context, actor Actor, id uint, notes string) (*model.Reservation, error) {
	var res model.Reservation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&res, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("reservation %d", id)
			}
			return err
		}
		if !actor.CanManageDoctor(res.DoctorID) {
			return forbidden("only the reservation's doctor or an admin can edit doctor notes")
		}
		res.DoctorNotes = strings.TrimSpace(notes)
		return tx.Model(&res).Update("doctor_notes", res.DoctorNotes).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
