package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Omar96MJ/sanad-sub001/internal/api/http/handler"
	"github.com/Omar96MJ/sanad-sub001/pkg/authorize"
)

func (r *Router) registerConversationRoutes(
	api fiber.Router,
	h *handler.ConversationHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	convs := api.Group("/conversations", authRequired)

	convs.Get("/", requirePerm(authorize.ResourceConversation, authorize.ActionList), h.List)
	convs.Post("/", requirePerm(authorize.ResourceConversation, authorize.ActionCreate), h.Start)

	c := convs.Group("/:id")
	c.Get("/", requirePerm(authorize.ResourceConversation, authorize.ActionRead), h.Get)
	c.Get("/messages", requirePerm(authorize.ResourceMessage, authorize.ActionList), h.ListMessages)
	c.Post("/messages", requirePerm(authorize.ResourceMessage, authorize.ActionCreate), h.SendMessage)
	c.Delete("/messages/:messageID", requirePerm(authorize.ResourceMessage, authorize.ActionDelete), h.DeleteMessage)
}
