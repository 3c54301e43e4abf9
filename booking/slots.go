package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ariebrainware/clinic-booking/model"
	"gorm.io/gorm"
)

const (
	defaultRangeDays = 7
	maxRangeDays     = 62
)

// AvailabilityQuery selects the doctor and date range to compute slots for.
// Dates are YYYY-MM-DD in the clinic time zone; leaving both empty selects
// the seven days starting today.
type AvailabilityQuery struct {
	DoctorID    uint
	ProcedureID *uint
	StartDate   string
	EndDate     string
}

// Slot is a time interval on a given date. ReservationID and Status are set
// for reserved intervals only.
type Slot struct {
	Date          string                  `json:"date"`
	Start         time.Time               `json:"start"`
	End           time.Time               `json:"end"`
	ReservationID uint                    `json:"reservation_id,omitempty"`
	Status        model.ReservationStatus `json:"status,omitempty"`
}

// Availability is the result of ComputeAvailability.
type Availability struct {
	DoctorID    uint   `json:"doctor_id"`
	ProcedureID *uint  `json:"procedure_id,omitempty"`
	DurationMin int    `json:"duration_min,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	// Blocks are the working intervals after exceptions are removed.
	Blocks []Slot `json:"blocks"`
	// Available holds bookable slots of the procedure's duration, or free
	// sub-intervals of the blocks when no procedure was given.
	Available []Slot `json:"available"`
	Reserved  []Slot `json:"reserved"`
}

// ComputeAvailability walks the doctor's active weekly rows over the
// requested dates and subtracts exceptions and non-cancelled reservations.
func (s *Service) ComputeAvailability(ctx context.Context, q AvailabilityQuery) (*Availability, error) {
	from, to, err := s.dateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}

	gen, cacheable := s.availabilityGeneration(ctx, q.DoctorID)

	db := s.db.WithContext(ctx)
	var doctor model.Doctor
	if err := db.First(&doctor, q.DoctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("doctor %d", q.DoctorID)
		}
		return nil, err
	}

	var duration int
	if q.ProcedureID != nil {
		var proc model.Procedure
		if err := db.First(&proc, *q.ProcedureID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("procedure %d", *q.ProcedureID)
			}
			return nil, err
		}
		duration = proc.DurationMin
		if duration <= 0 {
			return nil, invalid("procedure %d has no duration", proc.ID)
		}
	}

	cacheKey := fmt.Sprintf("g%d:%s:%s:%d:%t", gen, from.Format(dateLayout), to.Format(dateLayout), duration, doctor.Available)
	if cacheable {
		if cached, ok := s.cachedAvailability(ctx, q.DoctorID, cacheKey); ok {
			cached.ProcedureID = q.ProcedureID
			return cached, nil
		}
	}

	var rows []model.DoctorAvailability
	if err := db.Where("doctor_id = ? AND active = ?", q.DoctorID, true).
		Order("day_of_week ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoSchedule
	}

	var excs []model.AvailabilityException
	if err := db.Where("doctor_id = ? AND date >= ? AND date <= ?", q.DoctorID, from.Format(dateLayout), to.Format(dateLayout)).
		Find(&excs).Error; err != nil {
		return nil, err
	}

	rangeStart, rangeEnd := from, to.AddDate(0, 0, 1)
	var reservations []model.Reservation
	if err := db.Where("doctor_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
		q.DoctorID, model.StatusCancelled, rangeEnd.UTC(), rangeStart.UTC()).
		Order("start_time ASC, id ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	result := &Availability{
		DoctorID:    q.DoctorID,
		ProcedureID: q.ProcedureID,
		DurationMin: duration,
		StartDate:   from.Format(dateLayout),
		EndDate:     to.Format(dateLayout),
		Blocks:      []Slot{},
		Available:   []Slot{},
		Reserved:    make([]Slot, 0, len(reservations)),
	}

	reserved := make([]interval, 0, len(reservations))
	for _, r := range reservations {
		iv := interval{r.StartTime.In(s.loc), r.EndTime.In(s.loc)}
		reserved = append(reserved, iv)
		result.Reserved = append(result.Reserved, Slot{
			Date:          iv.start.Format(dateLayout),
			Start:         iv.start,
			End:           iv.end,
			ReservationID: r.ID,
			Status:        r.Status,
		})
	}

	rowsByDay := make(map[int][]model.DoctorAvailability, 7)
	for _, r := range rows {
		rowsByDay[r.DayOfWeek] = append(rowsByDay[r.DayOfWeek], r)
	}
	excsByDate := make(map[string][]model.AvailabilityException)
	for _, e := range excs {
		excsByDate[e.Date] = append(excsByDate[e.Date], e)
	}

	step := time.Duration(duration) * time.Minute
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		date := day.Format(dateLayout)
		cuts := exceptionIntervals(day, excsByDate[date])

		for _, row := range rowsByDay[model.WeekdayIndex(day.Weekday())] {
			start, end, err := parseClockRange(row.StartTime, row.EndTime)
			if err != nil {
				s.logger.Warn().Err(err).Uint("availability_id", row.ID).Msg("skipping malformed availability row")
				continue
			}

			for _, b := range subtract([]interval{{atClock(day, start), atClock(day, end)}}, cuts) {
				result.Blocks = append(result.Blocks, Slot{Date: date, Start: b.start, End: b.end})
				if !doctor.Available {
					continue
				}
				if step > 0 {
					result.Available = append(result.Available, walkSlots(date, b, step, reserved)...)
					continue
				}
				for _, free := range subtract([]interval{b}, reserved) {
					result.Available = append(result.Available, Slot{Date: date, Start: free.start, End: free.end})
				}
			}
		}
	}

	if cacheable {
		s.storeAvailability(ctx, q.DoctorID, cacheKey, result)
	}
	return result, nil
}

// walkSlots cuts block into consecutive slots of length step, dropping the
// ones that intersect a reserved interval.
func walkSlots(date string, block interval, step time.Duration, reserved []interval) []Slot {
	var out []Slot
	for t := block.start; !t.Add(step).After(block.end); t = t.Add(step) {
		slot := interval{t, t.Add(step)}
		taken := false
		for _, r := range reserved {
			if slot.overlaps(r) {
				taken = true
				break
			}
		}
		if !taken {
			out = append(out, Slot{Date: date, Start: slot.start, End: slot.end})
		}
	}
	return out
}

// dateRange resolves the requested dates to midnights in the clinic zone.
func (s *Service) dateRange(startDate, endDate string) (time.Time, time.Time, error) {
	if startDate == "" && endDate == "" {
		today := midnight(s.now(), s.loc)
		return today, today.AddDate(0, 0, defaultRangeDays-1), nil
	}
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, invalid("start_date and end_date must be given together")
	}
	from, err := parseDate(startDate, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("%v", err)
	}
	to, err := parseDate(endDate, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, invalid("%v", err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, invalid("end_date %s is before start_date %s", endDate, startDate)
	}
	if from.AddDate(0, 0, maxRangeDays-1).Before(to) {
		return time.Time{}, time.Time{}, invalid("date range may span at most %d days", maxRangeDays)
	}
	return from, to, nil
}

// availabilityGeneration must run before any read that feeds a cached
// result. Without a usable generation nothing is cached.
func (s *Service) availabilityGeneration(ctx context.Context, doctorID uint) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx, doctorID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("doctor_id", doctorID).Msg("availability cache generation unavailable")
		return 0, false
	}
	return gen, true
}

func (s *Service) cachedAvailability(ctx context.Context, doctorID uint, key string) (*Availability, bool) {
	if s.cache == nil {
		return nil, false
	}
	b, ok := s.cache.Get(ctx, doctorID, key)
	if !ok {
		return nil, false
	}
	var a Availability
	if err := json.Unmarshal(b, &a); err != nil {
		s.logger.Warn().Err(err).Uint("doctor_id", doctorID).Msg("discarding unreadable cached availability")
		return nil, false
	}
	for _, list := range [][]Slot{a.Blocks, a.Available, a.Reserved} {
		for i := range list {
			list[i].Start = list[i].Start.In(s.loc)
			list[i].End = list[i].End.In(s.loc)
		}
	}
	return &a, true
}

func (s *Service) storeAvailability(ctx context.Context, doctorID uint, key string, a *Availability) {
	if s.cache == nil {
		return
	}
	b, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, doctorID, key, b); err != nil {
		s.logger.Warn().Err(err).Uint("doctor_id", doctorID).Msg("failed to cache availability")
	}
}
