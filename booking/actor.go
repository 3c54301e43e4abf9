package booking

import "github.com/ariebrainware/clinic-booking/model"

// Actor is the authenticated caller of a booking operation, as resolved by
// the user directory.
type Actor struct {
	UserID    uint       `json:"user_id"`
	Subject   string     `json:"subject"`
	Role      model.Role `json:"role"`
	DoctorID  *uint      `json:"doctor_id,omitempty"`
	PatientID *uint      `json:"patient_id,omitempty"`
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// IsDoctor reports whether the actor is the doctor with the given id.
func (a Actor) IsDoctor(doctorID uint) bool {
	return a.Role == model.RoleDoctor && a.DoctorID != nil && *a.DoctorID == doctorID
}

// IsPatient reports whether the actor is the patient with the given id.
func (a Actor) IsPatient(patientID uint) bool {
	return a.PatientID != nil && *a.PatientID == patientID
}

// CanManageDoctor is true for admins and for the doctor themselves.
func (a Actor) CanManageDoctor(doctorID uint) bool {
	return a.IsAdmin() || a.IsDoctor(doctorID)
}

// TransitionPolicy decides whether actor may move r to status to. It is only
// consulted for transitions the state machine allows.
type TransitionPolicy func(actor Actor, r model.Reservation, to model.ReservationStatus) bool

// DefaultTransitionPolicy lets the owning doctor or an admin confirm, and the
// owning patient, owning doctor or an admin cancel.
func DefaultTransitionPolicy(actor Actor, r model.Reservation, to model.ReservationStatus) bool {
	if actor.IsAdmin() {
		return true
	}
	switch to {
	case model.StatusConfirmed:
		return actor.IsDoctor(r.DoctorID)
	case model.StatusCancelled:
		return actor.IsDoctor(r.DoctorID) || actor.IsPatient(r.PatientID)
	}
	return false
}

// allowedTransition encodes the reservation state machine.
func allowedTransition(from, to model.ReservationStatus) bool {
	switch from {
	case model.StatusPending:
		return to == model.StatusConfirmed || to == model.StatusCancelled
	case model.StatusConfirmed:
		return to == model.StatusCancelled
	}
	return false
}
