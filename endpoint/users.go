package endpoint

import (
	"context"
	"fmt"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/directory"
	"github.com/ariebrainware/clinic-booking/middleware"
	"github.com/ariebrainware/clinic-booking/model"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
)

// SyncUser godoc
// @Summary      Register or refresh the caller
// @Description  Creates the token subject as a patient on first call and refreshes email and name afterwards. Roles are never changed.
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=model.User} "User synced"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users/sync [post]
func SyncUser(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Unauthorized", Err: fmt.Errorf("missing token claims")})
		return
	}
	dir, ok := getDirectoryOrRespond(c)
	if !ok {
		return
	}

	user, err := dir.Sync(c.Request.Context(), directory.Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	})
	if err != nil {
		respondError(c, "Failed to sync user", err)
		return
	}
	util.LogUserSynced(user.Subject, c.ClientIP(), c.Request.UserAgent())

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "User synced",
		Data: user,
	})
}

// GetMe godoc
// @Summary      Current actor
// @Description  Returns the caller's user id, role and doctor or patient profile ids
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=booking.Actor} "Current user"
// @Failure      401 {object} util.APIResponse "Unauthorized or not synced"
// @Router       /users/me [get]
func GetMe(c *gin.Context) {
	actor, ok := getActorOrRespond(c)
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Current user",
		Data: actor,
	})
}

// UpdateMe godoc
// @Summary      Update the caller's profile
// @Description  Patients may change their phone number, doctors their phone number and specialty. Sending a role is refused and admins have no editable profile.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body directory.ProfileUpdate true "Profile fields"
// @Success      200 {object} util.APIResponse{data=directory.Profile} "Profile updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Role change or admin profile"
// @Failure      404 {object} util.APIResponse "Profile not found"
// @Router       /users/me [patch]
func UpdateMe(c *gin.Context) {
	dir, ok := getDirectoryOrRespond(c)
	if !ok {
		return
	}
	actor, ok := getActorOrRespond(c)
	if !ok {
		return
	}
	var req directory.ProfileUpdate
	if !bindJSONOrRespond(c, &req, "Invalid profile payload") {
		return
	}

	profile, err := dir.UpdateProfile(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, "Failed to update profile", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Profile updated",
		Data: profile,
	})
}

// ListPatients godoc
// @Summary      List patients (admin only)
// @Description  Every term of search must match the first name, last name or email
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Name or email terms"
// @Success      200 {object} util.APIResponse{data=object} "Patients retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Router       /patients [get]
func ListPatients(c *gin.Context) {
	dir, ok := getDirectoryOrRespond(c)
	if !ok {
		return
	}
	actor, ok := getActorOrRespond(c)
	if !ok {
		return
	}
	patients, err := dir.ListPatients(c.Request.Context(), actor, c.Query("search"))
	if err != nil {
		respondError(c, "Failed to list patients", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: map[string]interface{}{"total": len(patients), "patients": patients},
	})
}

// ListUsers godoc
// @Summary      List users (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse{data=object} "Users retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Router       /users [get]
func ListUsers(c *gin.Context) {
	dir, ok := getDirectoryOrRespond(c)
	if !ok {
		return
	}
	actor, ok := getActorOrRespond(c)
	if !ok {
		return
	}
	users, err := dir.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, "Failed to list users", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Users retrieved",
		Data: map[string]interface{}{"total": len(users), "users": users},
	})
}

// PromoteUser godoc
// @Summary      Promote a patient to doctor (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} util.APIResponse{data=model.User} "User promoted"
// @Failure      400 {object} util.APIResponse "User is not a patient"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "User not found"
// @Router       /users/{id}/promote [patch]
func PromoteUser(c *gin.Context) {
	changeRole(c, "promoted to doctor", (*directory.Directory).Promote)
}

// RevertUser godoc
// @Summary      Revert a doctor to patient (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "User ID"
// @Success      200 {object} util.APIResponse{data=model.User} "User reverted"
// @Failure      400 {object} util.APIResponse "User is not a doctor"
// @Failure      403 {object} util.APIResponse "Forbidden"
// @Failure      404 {object} util.APIResponse "User not found"
// @Router       /users/{id}/revert [patch]
func RevertUser(c *gin.Context) {
	changeRole(c, "reverted to patient", (*directory.Directory).Revert)
}

func changeRole(c *gin.Context, done string, change func(*directory.Directory, context.Context, booking.Actor, uint) (*model.User, error)) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	dir, ok := getDirectoryOrRespond(c)
	if !ok {
		return
	}
	actor, ok := getActorOrRespond(c)
	if !ok {
		return
	}

	user, err := change(dir, c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, "Failed to change role", err)
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "User " + done,
		Data: user,
	})
}
