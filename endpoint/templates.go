package endpoint

import (
	"fmt"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
)

type createTemplateRequest struct {
	// DoctorID defaults to the calling doctor.
	DoctorID uint                        `json:"doctor_id"`
	Name     string                      `json:"name" binding:"required"`
	Items    []booking.TemplateItemInput `json:"items"`
}

type applyTemplateRequest struct {
	DoctorID uint `json:"doctor_id" binding:"required"`
}

// ListTemplates godoc
// @Summary      List schedule templates
// @Description  Doctors see their own templates when no doctor_id filter is given
// @Tags         Templates
// @Produce      json
// @Security     BearerAuth
// @Param        doctor_id query int false "Doctor ID"
// @Success      200 {object} util.APIResponse{data=object} "Templates retrieved"
// @Failure      400 {object} util.APIResponse "Invalid doctor_id"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /templates [get]
func ListTemplates(c *gin.Context) {
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	doctorID, ok := parseOptionalUintQuery(c, "doctor_id")
	if !ok {
		return
	}
	if doctorID == nil && actor.DoctorID != nil && !actor.IsAdmin() {
		doctorID = actor.DoctorID
	}

	templates, err := svc.ListTemplates(c.Request.Context(), doctorID)
	if err != nil {
		respondError(c, "Failed to list templates", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Templates retrieved",
		Data: map[string]interface{}{"total": len(templates), "templates": templates},
	})
}

// GetTemplate godoc
// @Summary      Get a schedule template with its items
// @Tags         Templates
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Template ID"
// @Success      200 {object} util.APIResponse{data=model.WeeklyScheduleTemplate} "Template retrieved"
// @Failure      404 {object} util.APIResponse "Template not found"
// @Router       /templates/{id} [get]
func GetTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}
	tpl, err := svc.GetTemplate(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Template not found", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Template retrieved", Data: tpl})
}

// CreateTemplate godoc
// @Summary      Create a schedule template
// @Description  doctor_id defaults to the calling doctor. Templates are created inactive.
// @Tags         Templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body endpoint.createTemplateRequest true "Template"
// @Success      201 {object} util.APIResponse{data=model.WeeklyScheduleTemplate} "Template created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      409 {object} util.APIResponse "Name already used"
// @Router       /templates [post]
func CreateTemplate(c *gin.Context) {
	var req createTemplateRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	doctorID := req.DoctorID
	if doctorID == 0 {
		if actor.DoctorID == nil {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "doctor_id is required",
				Err: fmt.Errorf("%w: doctor_id is required", booking.ErrValidation),
			})
			return
		}
		doctorID = *actor.DoctorID
	}

	tpl, err := svc.CreateTemplate(c.Request.Context(), actor, doctorID, req.Name, req.Items)
	if err != nil {
		respondError(c, "Failed to create template", err)
		return
	}
	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Template created", Data: tpl})
}

// DeleteTemplate godoc
// @Summary      Delete a schedule template
// @Description  Availability rows materialized from it are kept
// @Tags         Templates
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Template ID"
// @Success      200 {object} util.APIResponse "Template deleted"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "Template not found"
// @Router       /templates/{id} [delete]
func DeleteTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	if err := svc.DeleteTemplate(c.Request.Context(), actor, id); err != nil {
		respondError(c, "Failed to delete template", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Template deleted", Data: map[string]uint{"id": id}})
}

// ActivateTemplate godoc
// @Summary      Activate a schedule template
// @Description  Makes the template the doctor's only active one and replaces all of the doctor's availability rows with its active items
// @Tags         Templates
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Template ID"
// @Success      200 {object} util.APIResponse{data=object} "Template activated"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "Template not found"
// @Router       /templates/{id}/activate [post]
func ActivateTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	rows, err := svc.Activate(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, "Failed to activate template", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Template activated",
		Data: map[string]interface{}{"total": len(rows), "availability": rows},
	})
}

// ApplyTemplate godoc
// @Summary      Apply a template to a doctor
// @Description  Copies the template's active items into the doctor's availability without changing which template is active
// @Tags         Templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Template ID"
// @Param        request body endpoint.applyTemplateRequest true "Target doctor"
// @Success      200 {object} util.APIResponse{data=object} "Template applied"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "Template or doctor not found"
// @Router       /templates/{id}/apply [post]
func ApplyTemplate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req applyTemplateRequest
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	rows, err := svc.ApplyToDoctor(c.Request.Context(), actor, id, req.DoctorID)
	if err != nil {
		respondError(c, "Failed to apply template", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Template applied",
		Data: map[string]interface{}{"total": len(rows), "availability": rows},
	})
}
