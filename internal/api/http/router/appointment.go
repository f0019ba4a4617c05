package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Omar96MJ/sanad-sub001/internal/api/http/handler"
	"github.com/Omar96MJ/sanad-sub001/pkg/authorize"
)

func (r *Router) registerAppointmentRoutes(
	api fiber.Router,
	h *handler.AppointmentHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	appts := api.Group("/appointments", authRequired)

	appts.Post("/", requirePerm(authorize.ResourceAppointment, authorize.ActionCreate), h.Book)
	appts.Get("/", requirePerm(authorize.ResourceAppointment, authorize.ActionList), h.List)
	appts.Get("/dashboard", requirePerm(authorize.ResourceAppointment, authorize.ActionList), h.Dashboard)
	appts.Get("/:id", requirePerm(authorize.ResourceAppointment, authorize.ActionRead), h.Get)
	appts.Patch("/:id/status", requirePerm(authorize.ResourceAppointment, authorize.ActionUpdate), h.UpdateStatus)
}
