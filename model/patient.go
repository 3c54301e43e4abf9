package model

import "gorm.io/gorm"

// Patient is the booking profile of a user with the patient role.
type Patient struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	User        User   `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	PhoneNumber string `json:"phone_number" gorm:"column:phone_number;size:20"`
}
