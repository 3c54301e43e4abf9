package model

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Role is the persisted authorization role of a user.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// SeedAdmin makes sure a user with the given identity-provider subject exists
// and carries the admin role. It is used to bootstrap the first administrator.
func SeedAdmin(db *gorm.DB, subject, email string) error {
	if subject == "" {
		return nil
	}

	var existing User
	err := db.Where("subject = ?", subject).First(&existing).Error
	if err == nil {
		if existing.Role == RoleAdmin {
			return nil
		}
		return db.Model(&existing).Update("role", RoleAdmin).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := db.Create(&User{Subject: subject, Email: email, Role: RoleAdmin}).Error; err != nil {
		return fmt.Errorf("failed to seed admin %s: %w", subject, err)
	}
	return nil
}
