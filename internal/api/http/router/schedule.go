package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Omar96MJ/sanad-sub001/internal/api/http/handler"
	"github.com/Omar96MJ/sanad-sub001/pkg/authorize"
)

func (r *Router) registerScheduleRoutes(
	api fiber.Router,
	h *handler.ScheduleHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	schedule := api.Group("/schedule", authRequired)

	schedule.Put("/me", requirePerm(authorize.ResourceAvailability, authorize.ActionUpdate), h.SaveMyGrid)
	schedule.Get("/:doctorID/grid", requirePerm(authorize.ResourceAvailability, authorize.ActionRead), h.GetGrid)
	schedule.Get("/:doctorID/slots", requirePerm(authorize.ResourceAvailability, authorize.ActionRead), h.ListSlots)
}
