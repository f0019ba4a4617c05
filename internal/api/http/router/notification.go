package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Omar96MJ/sanad-sub001/internal/api/http/handler"
	"github.com/Omar96MJ/sanad-sub001/pkg/authorize"
)

func (r *Router) registerNotificationRoutes(
	api fiber.Router,
	h *handler.NotificationHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	notifs := api.Group("/notifications", authRequired)

	notifs.Get("/", requirePerm(authorize.ResourceNotification, authorize.ActionList), h.List)
	notifs.Post("/read-all", requirePerm(authorize.ResourceNotification, authorize.ActionUpdate), h.MarkAllRead)
	notifs.Patch("/:id/read", requirePerm(authorize.ResourceNotification, authorize.ActionUpdate), h.MarkRead)
}
