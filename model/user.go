package model

import (
	"strings"

	"gorm.io/gorm"
)

// User is a person known to the identity provider.
// @Description Directory user synchronized from the identity provider
type User struct {
	gorm.Model
	Subject   string `json:"subject" gorm:"column:subject;size:191;uniqueIndex;not null" example:"auth0|64b1f0c2"`
	Email     string `json:"email" gorm:"column:email;size:191;index" example:"jane@example.com"`
	FirstName string `json:"first_name" gorm:"column:first_name;size:100" example:"Jane"`
	LastName  string `json:"last_name" gorm:"column:last_name;size:100" example:"Doe"`
	Role      Role   `json:"role" gorm:"column:role;type:varchar(16);not null;default:patient" example:"patient"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
