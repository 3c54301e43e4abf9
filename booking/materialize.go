package booking

import (
	"context"
	"errors"

	"github.com/ariebrainware/clinic-booking/events"
	"github.com/ariebrainware/clinic-booking/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Activate makes the template the doctor's only active template and rebuilds
// the doctor's availability rows from its active items.
//
// This is destructive: every existing availability row of the doctor is
// deleted, including rows that did not come from a template. Availability
// exceptions are stored separately and survive.
func (s *Service) Activate(ctx context.Context, actor Actor, templateID uint) ([]model.DoctorAvailability, error) {
	owner, err := s.templateOwner(ctx, templateID)
	if err != nil {
		return nil, err
	}
	unlock := s.lockDoctor(owner)
	defer unlock()

	var (
		tpl  *model.WeeklyScheduleTemplate
		rows []model.DoctorAvailability
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockDoctorRow(tx, owner); err != nil {
			return err
		}
		var err error
		tpl, err = findTemplate(tx, templateID)
		if err != nil {
			return err
		}
		if !actor.CanManageDoctor(tpl.DoctorID) {
			return forbidden("only the owning doctor or an admin can activate template %d", templateID)
		}

		if err := tx.Model(&model.WeeklyScheduleTemplate{}).
			Where("doctor_id = ? AND id <> ?", tpl.DoctorID, tpl.ID).
			Update("is_active", false).Error; err != nil {
			return err
		}
		if err := tx.Model(tpl).Update("is_active", true).Error; err != nil {
			return err
		}

		rows, err = replaceAvailability(tx, tpl.DoctorID, tpl.Items)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("template_id", templateID).Uint("doctor_id", tpl.DoctorID).Int("rows", len(rows)).Msg("template activated")
	s.committed(ctx, events.New(events.ScheduleActivated, tpl.DoctorID, map[string]interface{}{
		"template_id": tpl.ID,
		"rows":        len(rows),
	}))
	return rows, nil
}

// ApplyToDoctor materializes the template's active items as the availability
// of doctorID without changing which template is active. Admins may apply any
// template to any doctor; a doctor may only apply their own templates to
// themselves.
func (s *Service) ApplyToDoctor(ctx context.Context, actor Actor, templateID, doctorID uint) ([]model.DoctorAvailability, error) {
	unlock := s.lockDoctor(doctorID)
	defer unlock()

	var rows []model.DoctorAvailability
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tpl, err := findTemplate(tx, templateID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !(actor.IsDoctor(tpl.DoctorID) && tpl.DoctorID == doctorID) {
			return forbidden("cannot apply template %d to doctor %d", templateID, doctorID)
		}
		if err := lockDoctorRow(tx, doctorID); err != nil {
			return err
		}

		rows, err = replaceAvailability(tx, doctorID, tpl.Items)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("template_id", templateID).Uint("doctor_id", doctorID).Int("rows", len(rows)).Msg("template applied")
	s.committed(ctx, events.New(events.ScheduleApplied, doctorID, map[string]interface{}{
		"template_id": templateID,
		"rows":        len(rows),
	}))
	return rows, nil
}

// templateOwner returns the doctor a template belongs to.
func (s *Service) templateOwner(ctx context.Context, templateID uint) (uint, error) {
	var tpl model.WeeklyScheduleTemplate
	if err := s.db.WithContext(ctx).Select("id", "doctor_id").First(&tpl, templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, notFound("template %d", templateID)
		}
		return 0, err
	}
	return tpl.DoctorID, nil
}

// lockDoctorRow takes the row lock that orders schedule writes against
// reservations of the same doctor across processes.
func lockDoctorRow(tx *gorm.DB, doctorID uint) error {
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model.Doctor{}, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("doctor %d", doctorID)
		}
		return err
	}
	return nil
}

// replaceAvailability deletes all availability rows of the doctor and
// recreates one row per active item. Must run inside a transaction.
func replaceAvailability(tx *gorm.DB, doctorID uint, items []model.TemplateItem) ([]model.DoctorAvailability, error) {
	if err := tx.Where("doctor_id = ?", doctorID).Delete(&model.DoctorAvailability{}).Error; err != nil {
		return nil, err
	}

	rows := make([]model.DoctorAvailability, 0, len(items))
	for _, it := range items {
		if !it.Active {
			continue
		}
		rows = append(rows, model.DoctorAvailability{
			DoctorID:  doctorID,
			DayOfWeek: it.DayOfWeek,
			StartTime: it.StartTime,
			EndTime:   it.EndTime,
			Active:    true,
		})
	}
	if len(rows) == 0 {
		return rows, nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAvailability returns the doctor's materialized weekly rows.
func (s *Service) ListAvailability(ctx context.Context, doctorID uint) ([]model.DoctorAvailability, error) {
	db := s.db.WithContext(ctx)
	if err := db.First(&model.Doctor{}, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("doctor %d", doctorID)
		}
		return nil, err
	}
	var rows []model.DoctorAvailability
	if err := db.Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
