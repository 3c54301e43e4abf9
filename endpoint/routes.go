package endpoint

import (
	"github.com/ariebrainware/clinic-booking/middleware"
	"github.com/ariebrainware/clinic-booking/model"
	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
)

// RouteOptions configures authentication and throttling of the API routes.
type RouteOptions struct {
	Token     util.TokenOptions
	RateLimit middleware.RateLimitConfig
}

// RegisterRoutes mounts every API route on r. The service and directory must
// already be injected with middleware.ServiceMiddleware.
func RegisterRoutes(r gin.IRouter, opts RouteOptions) {
	authed := r.Group("", middleware.Authenticate(opts.Token), middleware.RateLimiter(opts.RateLimit))
	authed.POST("/users/sync", SyncUser)

	api := authed.Group("", middleware.ResolveActor())
	admin := api.Group("", middleware.RequireRole(model.RoleAdmin))

	api.GET("/users/me", GetMe)
	api.PATCH("/users/me", UpdateMe)
	admin.GET("/patients", ListPatients)
	admin.GET("/users", ListUsers)
	admin.PATCH("/users/:id/promote", PromoteUser)
	admin.PATCH("/users/:id/revert", RevertUser)

	api.GET("/procedures", ListProcedures)
	api.GET("/procedures/:id", GetProcedure)
	admin.POST("/procedures", CreateProcedure)
	admin.PATCH("/procedures/:id", UpdateProcedure)

	api.GET("/doctors", ListDoctors)
	api.GET("/doctors/me/stats", middleware.RequireRole(model.RoleDoctor), MyStats)
	api.GET("/doctors/:id", GetDoctor)
	api.PATCH("/doctors/:id/procedures", SetDoctorProcedures)
	api.PATCH("/doctors/:id/available", SetDoctorAvailable)
	api.GET("/doctors/:id/availability", GetDoctorAvailability)
	api.GET("/doctors/:id/exceptions", ListExceptions)
	api.POST("/doctors/:id/exceptions", AddException)
	api.DELETE("/doctors/:id/exceptions/:exceptionID", DeleteException)
	admin.GET("/admin/stats", ClinicStats)

	api.GET("/templates", ListTemplates)
	api.POST("/templates", CreateTemplate)
	api.GET("/templates/:id", GetTemplate)
	api.DELETE("/templates/:id", DeleteTemplate)
	api.POST("/templates/:id/activate", ActivateTemplate)
	api.POST("/templates/:id/apply", ApplyTemplate)

	api.GET("/availability", GetAvailability)

	api.GET("/reservations", ListReservations)
	api.POST("/reservations", CreateReservation)
	api.GET("/reservations/:id", GetReservation)
	api.PATCH("/reservations/:id/status", UpdateReservationStatus)
	api.PATCH("/reservations/:id/notes", UpdateReservationNotes)
}
