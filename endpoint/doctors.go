package endpoint

import (
	"fmt"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
)

type setProceduresRequest struct {
	ProcedureIDs []uint `json:"procedure_ids"`
}

type setAvailableRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// ListDoctors godoc
// @Summary      List doctors
// @Tags         Doctors
// @Produce      json
// @Security     BearerAuth
// @Param        procedure_id query int false "Only doctors performing this procedure"
// @Param        available query bool false "Only doctors accepting reservations"
// @Success      200 {object} util.APIResponse{data=object} "Doctors retrieved"
// @Failure      400 {object} util.APIResponse "Invalid procedure_id"
// @Router       /doctors [get]
func ListDoctors(c *gin.Context) {
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}
	procedureID, ok := parseOptionalUintQuery(c, "procedure_id")
	if !ok {
		return
	}
	doctors, err := svc.ListDoctors(c.Request.Context(), booking.DoctorFilter{
		ProcedureID:   procedureID,
		AvailableOnly: c.Query("available") == "true",
	})
	if err != nil {
		respondError(c, "Failed to list doctors", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Doctors retrieved",
		Data: map[string]interface{}{"total": len(doctors), "doctors": doctors},
	})
}

// GetDoctor godoc
// @Summary      Get a doctor with user and procedures
// @Tags         Doctors
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Doctor ID"
// @Success      200 {object} util.APIResponse{data=model.Doctor} "Doctor retrieved"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Router       /doctors/{id} [get]
func GetDoctor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}
	doctor, err := svc.GetDoctor(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Doctor not found", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Doctor retrieved", Data: doctor})
}

// SetDoctorProcedures godoc
// @Summary      Replace the procedures a doctor performs
// @Tags         Doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Doctor ID"
// @Param        request body endpoint.setProceduresRequest true "Procedure IDs"
// @Success      200 {object} util.APIResponse{data=model.Doctor} "Doctor procedures updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "Doctor or procedure not found"
// @Router       /doctors/{id}/procedures [patch]
func SetDoctorProcedures(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req setProceduresRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	doctor, err := svc.SetDoctorProcedures(c.Request.Context(), actor, id, req.ProcedureIDs)
	if err != nil {
		respondError(c, "Failed to update doctor procedures", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Doctor procedures updated", Data: doctor})
}

// SetDoctorAvailable godoc
// @Summary      Toggle whether a doctor accepts reservations
// @Tags         Doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Doctor ID"
// @Param        request body endpoint.setAvailableRequest true "Availability flag"
// @Success      200 {object} util.APIResponse{data=model.Doctor} "Doctor availability updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Router       /doctors/{id}/available [patch]
func SetDoctorAvailable(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req setAvailableRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	doctor, err := svc.SetDoctorAvailable(c.Request.Context(), actor, id, *req.Available)
	if err != nil {
		respondError(c, "Failed to update doctor availability", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Doctor availability updated", Data: doctor})
}

// GetDoctorAvailability godoc
// @Summary      Weekly availability rows of a doctor
// @Tags         Doctors
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Doctor ID"
// @Success      200 {object} util.APIResponse{data=object} "Availability retrieved"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Router       /doctors/{id}/availability [get]
func GetDoctorAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}
	rows, err := svc.ListAvailability(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Failed to list availability", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Availability retrieved",
		Data: map[string]interface{}{"total": len(rows), "availability": rows},
	})
}

// ListExceptions godoc
// @Summary      List availability exceptions of a doctor
// @Tags         Doctors
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Doctor ID"
// @Param        from query string false "First date (YYYY-MM-DD)"
// @Param        to query string false "Last date (YYYY-MM-DD)"
// @Success      200 {object} util.APIResponse{data=object} "Exceptions retrieved"
// @Failure      400 {object} util.APIResponse "Invalid date"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Router       /doctors/{id}/exceptions [get]
func ListExceptions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}
	excs, err := svc.ListExceptions(c.Request.Context(), id, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, "Failed to list exceptions", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Exceptions retrieved",
		Data: map[string]interface{}{"total": len(excs), "exceptions": excs},
	})
}

// AddException godoc
// @Summary      Block a whole day or a time range of a doctor
// @Description  Omit start_time and end_time to block the whole day
// @Tags         Doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Doctor ID"
// @Param        request body booking.ExceptionInput true "Exception"
// @Success      201 {object} util.APIResponse{data=model.AvailabilityException} "Exception added"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "Doctor not found"
// @Router       /doctors/{id}/exceptions [post]
func AddException(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req booking.ExceptionInput
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	exc, err := svc.AddException(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, "Failed to add exception", err)
		return
	}
	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Exception added", Data: exc})
}

// DeleteException godoc
// @Summary      Delete an availability exception
// @Tags         Doctors
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Doctor ID"
// @Param        exceptionID path int true "Exception ID"
// @Success      200 {object} util.APIResponse "Exception deleted"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "Exception not found"
// @Router       /doctors/{id}/exceptions/{exceptionID} [delete]
func DeleteException(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	exceptionID, ok := parseIDParam(c, "exceptionID")
	if !ok {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	if err := svc.DeleteException(c.Request.Context(), actor, id, exceptionID); err != nil {
		respondError(c, "Failed to delete exception", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Exception deleted", Data: map[string]uint{"id": exceptionID}})
}

// MyStats godoc
// @Summary      Reservation counters of the calling doctor
// @Tags         Stats
// @Produce      json
// @Security     BearerAuth
// @Param        week_offset query int false "Weeks relative to the current one"
// @Success      200 {object} util.APIResponse{data=booking.DoctorStats} "Doctor stats"
// @Failure      400 {object} util.APIResponse "Invalid week_offset"
// @Failure      403 {object} util.APIResponse "Doctors only"
// @Router       /doctors/me/stats [get]
func MyStats(c *gin.Context) {
	weekOffset, ok := parseWeekOffset(c)
	if !ok {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	stats, err := svc.DoctorStats(c.Request.Context(), actor, weekOffset)
	if err != nil {
		respondError(c, "Failed to compute stats", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Doctor stats", Data: stats})
}

// ClinicStats godoc
// @Summary      Clinic-wide reservation counters (admin only)
// @Tags         Stats
// @Produce      json
// @Security     BearerAuth
// @Param        week_offset query int false "Weeks relative to the current one"
// @Success      200 {object} util.APIResponse{data=booking.ClinicStats} "Clinic stats"
// @Failure      400 {object} util.APIResponse "Invalid week_offset"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Router       /admin/stats [get]
func ClinicStats(c *gin.Context) {
	weekOffset, ok := parseWeekOffset(c)
	if !ok {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	stats, err := svc.ClinicStats(c.Request.Context(), actor, weekOffset)
	if err != nil {
		respondError(c, "Failed to compute stats", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: fmt.Sprintf("Clinic stats for week %s", stats.WeekStart), Data: stats})
}
