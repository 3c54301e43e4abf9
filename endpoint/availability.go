package endpoint

import (
	"fmt"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
)

// GetAvailability godoc
// @Summary      Compute bookable slots
// @Description  Returns schedule blocks, free slots and reserved slots of a doctor between start_date and end_date (YYYY-MM-DD, clinic time zone). Without procedure_id the free intervals are returned unsplit.
// @Tags         Availability
// @Produce      json
// @Security     BearerAuth
// @Param        doctor_id query int true "Doctor ID"
// @Param        procedure_id query int false "Procedure ID"
// @Param        start_date query string false "First date, defaults to today"
// @Param        end_date query string false "Last date, defaults to six days after start_date"
// @Success      200 {object} util.APIResponse{data=booking.Availability} "Availability computed"
// @Failure      400 {object} util.APIResponse "Invalid range"
// @Failure      404 {object} util.APIResponse "Doctor, procedure or schedule not found"
// @Router       /availability [get]
func GetAvailability(c *gin.Context) {
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}
	doctorID, ok := parseOptionalUintQuery(c, "doctor_id")
	if !ok {
		return
	}
	if doctorID == nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "doctor_id is required",
			Err: fmt.Errorf("%w: doctor_id is required", booking.ErrValidation),
		})
		return
	}
	procedureID, ok := parseOptionalUintQuery(c, "procedure_id")
	if !ok {
		return
	}

	availability, err := svc.ComputeAvailability(c.Request.Context(), booking.AvailabilityQuery{
		DoctorID:    *doctorID,
		ProcedureID: procedureID,
		StartDate:   c.Query("start_date"),
		EndDate:     c.Query("end_date"),
	})
	if err != nil {
		respondError(c, "Failed to compute availability", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Availability computed", Data: availability})
}
