package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Omar96MJ/sanad-sub001/internal/api/http/handler"
	"github.com/Omar96MJ/sanad-sub001/pkg/authorize"
)

func (r *Router) registerFileRoutes(
	api fiber.Router,
	h *handler.FileHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	files := api.Group("/files", authRequired)

	files.Post("/profile-image", requirePerm(authorize.ResourceFile, authorize.ActionCreate), h.UploadProfileImage)
	// object keys contain slashes, so the key is matched as a wildcard
	files.Get("/*", requirePerm(authorize.ResourceFile, authorize.ActionRead), h.GetDownloadURL)
	files.Delete("/*", requirePerm(authorize.ResourceFile, authorize.ActionDelete), h.Delete)
}
