package endpoint

import (
	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
)

// ListProcedures godoc
// @Summary      List procedures
// @Description  Returns the catalog. Pass active=true to hide retired procedures.
// @Tags         Procedures
// @Produce      json
// @Security     BearerAuth
// @Param        active query bool false "Only active procedures"
// @Success      200 {object} util.APIResponse{data=object} "Procedures retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Router       /procedures [get]
func ListProcedures(c *gin.Context) {
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}
	procedures, err := svc.ListProcedures(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		respondError(c, "Failed to list procedures", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Procedures retrieved",
		Data: map[string]interface{}{"total": len(procedures), "procedures": procedures},
	})
}

// GetProcedure godoc
// @Summary      Get a procedure
// @Tags         Procedures
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Procedure ID"
// @Success      200 {object} util.APIResponse{data=model.Procedure} "Procedure retrieved"
// @Failure      404 {object} util.APIResponse "Procedure not found"
// @Router       /procedures/{id} [get]
func GetProcedure(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return
	}
	procedure, err := svc.GetProcedure(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Procedure not found", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Procedure retrieved", Data: procedure})
}

// CreateProcedure godoc
// @Summary      Create a procedure (admin only)
// @Tags         Procedures
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body booking.ProcedureInput true "Procedure"
// @Success      201 {object} util.APIResponse{data=model.Procedure} "Procedure created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      409 {object} util.APIResponse "Name already taken"
// @Router       /procedures [post]
func CreateProcedure(c *gin.Context) {
	var req booking.ProcedureInput
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	procedure, err := svc.CreateProcedure(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, "Failed to create procedure", err)
		return
	}
	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "Procedure created", Data: procedure})
}

// UpdateProcedure godoc
// @Summary      Update a procedure (admin only)
// @Tags         Procedures
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Procedure ID"
// @Param        request body booking.ProcedureUpdate true "Fields to change"
// @Success      200 {object} util.APIResponse{data=model.Procedure} "Procedure updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Procedure not found"
// @Failure      409 {object} util.APIResponse "Name already taken"
// @Router       /procedures/{id} [patch]
func UpdateProcedure(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req booking.ProcedureUpdate
	if !bindJSONOrRespond(c, &req, "Invalid request body") {
		return
	}
	svc, actor, ok := serviceAndActor(c)
	if !ok {
		return
	}
	procedure, err := svc.UpdateProcedure(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, "Failed to update procedure", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Procedure updated", Data: procedure})
}
