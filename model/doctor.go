package model

import "gorm.io/gorm"

// Doctor represents a doctor profile
// @Description Doctor profile with the procedures they perform
type Doctor struct {
	gorm.Model
	UserID      uint        `json:"user_id" gorm:"uniqueIndex;not null"`
	User        User        `json:"user" gorm:"constraint:OnDelete:CASCADE"`
	Specialty   string      `json:"specialty" gorm:"column:specialty;size:100" example:"Orthodontics"`
	PhoneNumber string      `json:"phone_number" gorm:"column:phone_number;size:20" example:"+56912345678"`
	Available   bool        `json:"available" gorm:"column:available" example:"true"`
	Procedures  []Procedure `json:"procedures" gorm:"many2many:doctor_procedures;"`
}

// Offers reports whether the doctor performs the procedure.
func (d Doctor) Offers(procedureID uint) bool {
	for _, p := range d.Procedures {
		if p.ID == procedureID {
			return true
		}
	}
	return false
}
