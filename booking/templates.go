package booking

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/ariebrainware/clinic-booking/model"
	"gorm.io/gorm"
)

// TemplateItemInput describes one weekly block of a new template.
// Active defaults to true.
type TemplateItemInput struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    *bool  `json:"active"`
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// CreateTemplate stores a new inactive template for the doctor. Template
// names are unique per doctor.
func (s *Service) CreateTemplate(ctx context.Context, actor Actor, doctorID uint, name string, items []TemplateItemInput) (*model.WeeklyScheduleTemplate, error) {
	if !actor.CanManageDoctor(doctorID) {
		return nil, forbidden("only the doctor or an admin can create templates")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("template name is required")
	}
	if len(name) > 191 {
		return nil, invalid("template name is too long")
	}
	rows, err := buildTemplateItems(items)
	if err != nil {
		return nil, err
	}

	tpl := model.WeeklyScheduleTemplate{DoctorID: doctorID, Name: name, IsActive: false, Items: rows}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&model.Doctor{}, doctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("doctor %d", doctorID)
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.WeeklyScheduleTemplate{}).
			Where("doctor_id = ? AND name = ?", doctorID, name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return conflict("template %q already exists for doctor %d", name, doctorID)
		}

		if err := tx.Create(&tpl).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("template %q already exists for doctor %d", name, doctorID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("template_id", tpl.ID).Uint("doctor_id", doctorID).Int("items", len(rows)).Msg("template created")
	return &tpl, nil
}

// buildTemplateItems validates the input blocks. Active blocks on the same
// day must not overlap; inactive ones are kept as-is.
func buildTemplateItems(items []TemplateItemInput) ([]model.TemplateItem, error) {
	type span struct{ start, end int }
	activeByDay := make(map[int][]span)
	rows := make([]model.TemplateItem, 0, len(items))

	for i, it := range items {
		if it.DayOfWeek < model.Monday || it.DayOfWeek > model.Sunday {
			return nil, invalid("item %d: day_of_week must be between 0 (Monday) and 6 (Sunday)", i)
		}
		start, end, err := parseClockRange(it.StartTime, it.EndTime)
		if err != nil {
			return nil, invalid("item %d: %v", i, err)
		}
		active := it.Active == nil || *it.Active
		if active {
			activeByDay[it.DayOfWeek] = append(activeByDay[it.DayOfWeek], span{start, end})
		}
		rows = append(rows, model.TemplateItem{
			DayOfWeek: it.DayOfWeek,
			StartTime: formatClock(start),
			EndTime:   formatClock(end),
			Active:    active,
		})
	}

	for day, spans := range activeByDay {
		sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		for i := 1; i < len(spans); i++ {
			if spans[i].start < spans[i-1].end {
				return nil, invalid("active items overlap on day %d", day)
			}
		}
	}
	return rows, nil
}

// ListTemplates returns templates with their items, optionally for one doctor.
func (s *Service) ListTemplates(ctx context.Context, doctorID *uint) ([]model.WeeklyScheduleTemplate, error) {
	q := s.db.WithContext(ctx).Preload("Items", orderedItems).Order("doctor_id ASC, id ASC")
	if doctorID != nil {
		q = q.Where("doctor_id = ?", *doctorID)
	}
	var templates []model.WeeklyScheduleTemplate
	if err := q.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// GetTemplate returns the template with its items ordered by id.
func (s *Service) GetTemplate(ctx context.Context, id uint) (*model.WeeklyScheduleTemplate, error) {
	return findTemplate(s.db.WithContext(ctx), id)
}

func findTemplate(db *gorm.DB, id uint) (*model.WeeklyScheduleTemplate, error) {
	var tpl model.WeeklyScheduleTemplate
	if err := db.Preload("Items", orderedItems).First(&tpl, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("template %d", id)
		}
		return nil, err
	}
	return &tpl, nil
}

// DeleteTemplate removes a template and its items. Availability rows that
// were materialized from it are left untouched.
func (s *Service) DeleteTemplate(ctx context.Context, actor Actor, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tpl model.WeeklyScheduleTemplate
		if err := tx.First(&tpl, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("template %d", id)
			}
			return err
		}
		if !actor.CanManageDoctor(tpl.DoctorID) {
			return forbidden("only the owning doctor or an admin can delete template %d", id)
		}
		if err := tx.Where("template_id = ?", id).Delete(&model.TemplateItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tpl).Error
	})
}
