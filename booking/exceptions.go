package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ariebrainware/clinic-booking/events"
	"github.com/ariebrainware/clinic-booking/model"
	"gorm.io/gorm"
)

// ExceptionInput blocks a date, or a time range on that date, for a doctor.
// Leave StartTime and EndTime empty to block the whole day.
type ExceptionInput struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

// AddException records a one-day override of the doctor's weekly availability.
func (s *Service) AddException(ctx context.Context, actor Actor, doctorID uint, in ExceptionInput) (*model.AvailabilityException, error) {
	if !actor.CanManageDoctor(doctorID) {
		return nil, forbidden("only the doctor or an admin can add exceptions")
	}

	day, err := parseDate(strings.TrimSpace(in.Date), s.loc)
	if err != nil {
		return nil, invalid("%v", err)
	}
	exc := model.AvailabilityException{
		DoctorID: doctorID,
		Date:     day.Format(dateLayout),
		Reason:   strings.TrimSpace(in.Reason),
	}
	if in.StartTime != "" || in.EndTime != "" {
		start, end, err := parseClockRange(in.StartTime, in.EndTime)
		if err != nil {
			return nil, invalid("%v", err)
		}
		exc.StartTime, exc.EndTime = formatClock(start), formatClock(end)
	}

	db := s.db.WithContext(ctx)
	if err := db.First(&model.Doctor{}, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("doctor %d", doctorID)
		}
		return nil, err
	}
	if err := db.Create(&exc).Error; err != nil {
		return nil, err
	}

	s.committed(ctx, events.New(events.ExceptionAdded, doctorID, exc))
	return &exc, nil
}

// ListExceptions returns the doctor's exceptions ordered by date, optionally
// restricted to [from, to] (inclusive, YYYY-MM-DD).
func (s *Service) ListExceptions(ctx context.Context, doctorID uint, from, to string) ([]model.AvailabilityException, error) {
	q := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if from != "" {
		d, err := parseDate(from, s.loc)
		if err != nil {
			return nil, invalid("%v", err)
		}
		q = q.Where("date >= ?", d.Format(dateLayout))
	}
	if to != "" {
		d, err := parseDate(to, s.loc)
		if err != nil {
			return nil, invalid("%v", err)
		}
		q = q.Where("date <= ?", d.Format(dateLayout))
	}

	var out []model.AvailabilityException
	if err := q.Order("date ASC, start_time ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteException removes one of the doctor's exceptions.
func (s *Service) DeleteException(ctx context.Context, actor Actor, doctorID, exceptionID uint) error {
	if !actor.CanManageDoctor(doctorID) {
		return forbidden("only the doctor or an admin can remove exceptions")
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND doctor_id = ?", exceptionID, doctorID).
		Delete(&model.AvailabilityException{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("exception %d", exceptionID)
	}

	s.committed(ctx, events.New(events.ExceptionRemoved, doctorID, map[string]uint{"exception_id": exceptionID}))
	return nil
}

// exceptionIntervals converts the exceptions of one calendar day into
// concrete intervals on that day.
func exceptionIntervals(day time.Time, excs []model.AvailabilityException) []interval {
	var out []interval
	for _, e := range excs {
		if e.WholeDay() {
			out = append(out, interval{day, day.AddDate(0, 0, 1)})
			continue
		}
		start, end, err := parseClockRange(e.StartTime, e.EndTime)
		if err != nil {
			continue
		}
		out = append(out, interval{atClock(day, start), atClock(day, end)})
	}
	return out
}
