package model

import "gorm.io/gorm"

// Procedure represents a bookable clinical procedure
// @Description Procedure with its standard duration
type Procedure struct {
	gorm.Model
	Name        string `json:"name" gorm:"column:name;size:191;uniqueIndex;not null" example:"Cleaning"`
	Description string `json:"description" gorm:"column:description;type:text" example:"Routine dental cleaning"`
	DurationMin int    `json:"duration_min" gorm:"column:duration_min;not null" example:"30"`
	Active      bool   `json:"active" gorm:"column:active" example:"true"`
}
