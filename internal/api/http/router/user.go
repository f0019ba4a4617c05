package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Omar96MJ/sanad-sub001/internal/api/http/handler"
	"github.com/Omar96MJ/sanad-sub001/pkg/authorize"
)

func (r *Router) registerUserRoutes(
	api fiber.Router,
	h *handler.UserHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	users := api.Group("/users", authRequired)
	users.Get("/me", h.Me)
	users.Patch("/me/phone", h.UpdatePhone)

	doctors := api.Group("/doctors", authRequired)
	doctors.Get("/", requirePerm(authorize.ResourceDoctorProfile, authorize.ActionList), h.ListDoctors)
	doctors.Get("/me", requirePerm(authorize.ResourceDoctorProfile, authorize.ActionRead), h.MyDoctorProfile)
	doctors.Patch("/me", requirePerm(authorize.ResourceDoctorProfile, authorize.ActionUpdate), h.UpdateMyDoctorProfile)
	doctors.Get("/:id", requirePerm(authorize.ResourceDoctorProfile, authorize.ActionRead), h.GetDoctor)
}
