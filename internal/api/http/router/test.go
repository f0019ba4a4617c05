package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Omar96MJ/sanad-sub001/internal/api/http/handler"
	"github.com/Omar96MJ/sanad-sub001/pkg/authorize"
)

func (r *Router) registerTestRoutes(
	api fiber.Router,
	h *handler.TestHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	tests := api.Group("/tests", authRequired)

	tests.Post("/", requirePerm(authorize.ResourcePsychTest, authorize.ActionManage), h.Create)
	tests.Get("/", requirePerm(authorize.ResourcePsychTest, authorize.ActionList), h.List)
	// registered before /:id so "history" is not parsed as a test id
	tests.Get("/history", requirePerm(authorize.ResourcePsychTest, authorize.ActionList), h.History)
	tests.Get("/:id", requirePerm(authorize.ResourcePsychTest, authorize.ActionRead), h.Get)
	tests.Post("/:id/submit", requirePerm(authorize.ResourcePsychTest, authorize.ActionCreate), h.Submit)
}
