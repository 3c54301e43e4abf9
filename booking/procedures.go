package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/ariebrainware/clinic-booking/model"
	"gorm.io/gorm"
)

// ProcedureInput creates a procedure. Active defaults to true.
type ProcedureInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DurationMin int    `json:"duration_min"`
	Active      *bool  `json:"active"`
}

// ProcedureUpdate patches a procedure; nil fields are left unchanged.
type ProcedureUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	DurationMin *int    `json:"duration_min"`
	Active      *bool   `json:"active"`
}

// CreateProcedure adds a procedure to the catalog. Admin only.
func (s *Service) CreateProcedure(ctx context.Context, actor Actor, in ProcedureInput) (*model.Procedure, error) {
	if !actor.IsAdmin() {
		return nil, forbidden("only admins can manage procedures")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("procedure name is required")
	}
	if in.DurationMin <= 0 {
		return nil, invalid("duration_min must be positive")
	}

	proc := model.Procedure{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		DurationMin: in.DurationMin,
		Active:      in.Active == nil || *in.Active,
	}
	if err := s.db.WithContext(ctx).Create(&proc).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("procedure %q already exists", name)
		}
		return nil, err
	}
	return &proc, nil
}

// UpdateProcedure patches a catalog procedure. Admin only.
func (s *Service) UpdateProcedure(ctx context.Context, actor Actor, id uint, in ProcedureUpdate) (*model.Procedure, error) {
	if !actor.IsAdmin() {
		return nil, forbidden("only admins can manage procedures")
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("procedure name is required")
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.DurationMin != nil {
		if *in.DurationMin <= 0 {
			return nil, invalid("duration_min must be positive")
		}
		updates["duration_min"] = *in.DurationMin
	}
	if in.Active != nil {
		updates["active"] = *in.Active
	}

	var proc model.Procedure
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&proc, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("procedure %d", id)
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&proc).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("procedure %q already exists", updates["name"])
			}
			return err
		}
		return tx.First(&proc, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &proc, nil
}

// ListProcedures returns procedures ordered by name.
func (s *Service) ListProcedures(ctx context.Context, activeOnly bool) ([]model.Procedure, error) {
	q := s.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var out []model.Procedure
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetProcedure returns the procedure or ErrNotFound.
func (s *Service) GetProcedure(ctx context.Context, id uint) (*model.Procedure, error) {
	var proc model.Procedure
	if err := s.db.WithContext(ctx).First(&proc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("procedure %d", id)
		}
		return nil, err
	}
	return &proc, nil
}
