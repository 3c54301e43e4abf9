package endpoint

import (
	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/model"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status model.ReservationStatus `json:"status" binding:"required"`
}

type doctorNotesRequest struct {
	DoctorNotes string `json:"doctor_notes"`
}

// ListReservations godoc
// @Summary      List reservations
// @Description  Results are scoped to what the caller may see: patients their own, doctors theirs, admins all.
// @Tags         Reservations
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending, confirmed or cancelled"
// @Param        doctor_id query int false "Doctor ID"
// @Param        patient_id query int false "Patient ID"
// @Param        from query string false "RFC 3339 lower bound"
// @Param        to query string false "RFC 3339 upper bound"
// @Success      200 {object} util.APIResponse{data=object} "Reservations retrieved"
// @Failure      400 {object} util.APIResponse "Invalid filter"
// @Router       /reservations [get]
func ListReservations(c *gin.Context) {
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	doctorID, ok := parseOptionalUintQuery(c, "doctor_id")
	if !ok {
		return
	}
	patientID, ok := parseOptionalUintQuery(c, "patient_id")
	if !ok {
		return
	}
	from, ok := parseOptionalTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseOptionalTimeQuery(c, "to")
	if !ok {
		return
	}

	reservations, err := svc.ListReservations(c.Request.Context(), actor, booking.ReservationFilter{
		Status:    model.ReservationStatus(c.Query("status")),
		DoctorID:  doctorID,
		PatientID: patientID,
		From:      from,
		To:        to,
	})
	if err != nil {
		respondError(c, "Failed to list reservations", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Reservations retrieved",
		Data: map[string]interface{}{"total": len(reservations), "reservations": reservations},
	})
}

// GetReservation godoc
// @Summary      Get a reservation
// @Tags         Reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Reservation ID"
// @Success      200 {object} util.APIResponse{data=model.Reservation} "Reservation retrieved"
// @Failure      404 {object} util.APIResponse "Reservation not found"
// @Router       /reservations/{id} [get]
func GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	reservation, err := svc.GetReservation(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, "Reservation not found", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Reservation retrieved", Data: reservation})
}

// CreateReservation godoc
// @Summary      Book a reservation
// @Description  Creates a pending reservation. start_time is RFC 3339. Patients book for themselves, admins must pass patient_id.
// @Tags         Reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body booking.CreateReservationInput true "Reservation"
// @Success      201 {object} util.APIResponse{data=model.Reservation} "Reservation created"
// @Failure      400 {object} util.APIResponse "Invalid request or outside the schedule"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      409 {object} util.APIResponse "Slot already taken"
// @Router       /reservations [post]
func CreateReservation(c *gin.Context) {
	var req booking.CreateReservationInput
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	reservation, err := svc.CreateReservation(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, "Failed to create reservation", err)
		return
	}
	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Reservation created", Data: reservation})
}

// UpdateReservationStatus godoc
// @Summary      Confirm or cancel a reservation
// @Tags         Reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Reservation ID"
// @Param        request body statusRequest true "New status"
// @Success      200 {object} util.APIResponse{data=model.Reservation} "Reservation updated"
// @Failure      400 {object} util.APIResponse "Unknown status"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "Reservation not found"
// @Failure      422 {object} util.APIResponse "Transition not allowed"
// @Router       /reservations/{id}/status [patch]
func UpdateReservationStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	reservation, err := svc.TransitionReservation(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		respondError(c, "Failed to update reservation status", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Reservation " + string(reservation.Status), Data: reservation})
}

// UpdateReservationNotes godoc
// @Summary      Set doctor notes
// @Tags         Reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Reservation ID"
// @Param        request body doctorNotesRequest true "Notes"
// @Success      200 {object} util.APIResponse{data=model.Reservation} "Notes updated"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "Reservation not found"
// @Router       /reservations/{id}/notes [patch]
func UpdateReservationNotes(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req doctorNotesRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	reservation, err := svc.UpdateDoctorNotes(c.Request.Context(), actor, id, req.DoctorNotes)
	if err != nil {
		respondError(c, "Failed to update notes", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Notes updated", Data: reservation})
}
