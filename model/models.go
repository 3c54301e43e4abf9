package model

// All lists every model managed by migrations, parents first.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Procedure{},
		&Doctor{},
		&Patient{},
		&WeeklyScheduleTemplate{},
		&TemplateItem{},
		&DoctorAvailability{},
		&AvailabilityException{},
		&Reservation{},
		&SecurityLog{},
	}
}
