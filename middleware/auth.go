package middleware

import (
	"errors"
	"fmt"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/model"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
)

// Authenticate verifies the bearer token and stores its claims in the
// context. Resolution of the subject into an actor is left to ResolveActor
// so that POST /users/sync can run for subjects not registered yet.
func Authenticate(opts util.TokenOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}

		raw, ok := util.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, "missing bearer token")
			return
		}
		claims, err := util.ParseToken(raw, opts)
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func unauthorized(c *gin.Context, reason string) {
	util.LogUnauthorizedAccess(c.ClientIP(), c.Request.UserAgent(), c.Request.URL.Path, reason)
	util.CallUserNotAuthorized(c, util.APIErrorParams{
		Msg: "Unauthorized",
		Err: fmt.Errorf("unauthorized: %s", reason),
	})
	c.Abort()
}

// GetClaims returns the verified token claims.
func GetClaims(c *gin.Context) (*util.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*util.Claims)
	return claims, ok
}

// ResolveActor looks the token subject up in the user directory. It must run
// after Authenticate and ServiceMiddleware.
func ResolveActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			unauthorized(c, "missing claims")
			return
		}
		dir := GetDirectory(c)
		if dir == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "User directory not available",
				Err: fmt.Errorf("directory not found in context"),
			})
			c.Abort()
			return
		}

		actor, err := dir.Resolve(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, booking.ErrNotFound) {
				unauthorized(c, "user is not registered, call POST /users/sync first")
				return
			}
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to resolve user", Err: err})
			c.Abort()
			return
		}

		c.Set(ActorKey, actor)
		c.Next()
	}
}

// GetActor returns the actor set by ResolveActor.
func GetActor(c *gin.Context) (booking.Actor, bool) {
	v, ok := c.Get(ActorKey)
	if !ok {
		return booking.Actor{}, false
	}
	actor, ok := v.(booking.Actor)
	return actor, ok
}

// RequireRole rejects actors whose role is not in roles with 403.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	allowed := make([]string, 0, len(roles))
	for _, r := range roles {
		allowed = append(allowed, string(r))
	}
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			unauthorized(c, "missing actor")
			return
		}
		if !util.Contains(string(actor.Role), allowed) {
			util.LogForbidden(actor.Subject, string(actor.Role), c.ClientIP(), c.Request.URL.Path, "role not allowed")
			util.CallForbidden(c, util.APIErrorParams{
				Msg: "You are not allowed to access this resource",
				Err: fmt.Errorf("%w: role %s not allowed", booking.ErrForbidden, actor.Role),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
