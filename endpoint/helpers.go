package endpoint

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/directory"
	"github.com/ariebrainware/clinic-booking/middleware"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
)

// respondError maps booking sentinel errors onto the response envelope.
func respondError(c *gin.Context, msg string, err error) {
	params := util.APIErrorParams{Msg: msg, Err: err}
	switch {
	case errors.Is(err, booking.ErrNotFound):
		util.CallErrorNotFound(c, params)
	case errors.Is(err, booking.ErrValidation):
		util.CallUserError(c, params)
	case errors.Is(err, booking.ErrConflict):
		util.CallConflict(c, params)
	case errors.Is(err, booking.ErrForbidden):
		if actor, ok := middleware.GetActor(c); ok {
			util.LogForbidden(actor.Subject, string(actor.Role), c.ClientIP(), c.Request.URL.Path, err.Error())
		}
		util.CallForbidden(c, params)
	case errors.Is(err, booking.ErrInvalidTransition):
		util.CallUnprocessable(c, params)
	default:
		_ = c.Error(err)
		util.CallServerError(c, params)
	}
}

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func getServiceOrRespond(c *gin.Context) (*booking.Service, bool) {
	svc := middleware.GetService(c)
	if svc == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Booking service not available", Err: fmt.Errorf("service is nil")})
		return nil, false
	}
	return svc, true
}

func getDirectoryOrRespond(c *gin.Context) (*directory.Directory, bool) {
	dir := middleware.GetDirectory(c)
	if dir == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "User directory not available", Err: fmt.Errorf("directory is nil")})
		return nil, false
	}
	return dir, true
}

func getActorOrRespond(c *gin.Context) (booking.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Unauthorized", Err: fmt.Errorf("actor not resolved")})
		return booking.Actor{}, false
	}
	return actor, true
}

// serviceAndActor is the common prologue of authenticated booking handlers.
func serviceAndActor(c *gin.Context) (*booking.Service, booking.Actor, bool) {
	svc, ok := getServiceOrRespond(c)
	if !ok {
		return nil, booking.Actor{}, false
	}
	actor, ok := getActorOrRespond(c)
	if !ok {
		return nil, booking.Actor{}, false
	}
	return svc, actor, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Invalid %s", name),
			Err: fmt.Errorf("%s must be a positive integer, got %q", name, raw),
		})
		return 0, false
	}
	return uint(id), true
}

// parseOptionalUintQuery returns nil for an absent parameter.
func parseOptionalUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Invalid %s", name),
			Err: fmt.Errorf("%s must be a positive integer, got %q", name, raw),
		})
		return nil, false
	}
	id := uint(v)
	return &id, true
}

// parseOptionalTimeQuery accepts RFC 3339 timestamps.
func parseOptionalTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Invalid %s", name),
			Err: fmt.Errorf("%s must be an RFC 3339 timestamp: %w", name, err),
		})
		return nil, false
	}
	return &t, true
}

func parseWeekOffset(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("week_offset", "0")
	v, err := strconv.Atoi(raw)
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid week_offset", Err: err})
		return 0, false
	}
	return v, true
}
