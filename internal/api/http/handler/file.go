package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Omar96MJ/sanad-sub001/internal/service/file"
	"github.com/Omar96MJ/sanad-sub001/internal/service/user"
	pasetotoken "github.com/Omar96MJ/sanad-sub001/pkg/paseto"
)

type FileHandler struct {
	svc   file.Service
	users user.Service
}

func NewFileHandler(svc file.Service, users user.Service) *FileHandler {
	return &FileHandler{svc: svc, users: users}
}

func mapFileError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, file.ErrFileTooLarge),
		errors.Is(err, file.ErrUnsupportedType):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /files/profile-image
// Stores the upload and records the object key on the caller's profile.
func (h *FileHandler) UploadProfileImage(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	result, err := h.svc.UploadProfileImage(c.Context(), claims.UserID, fh)
	if err != nil {
		return mapFileError(c, err)
	}

	if err := h.users.UpdateImage(c.Context(), claims.UserID, result.Key); err != nil {
		return internalError(c)
	}

	return created(c, result)
}

// GET /files/*
// Object keys contain slashes, so the key is the remainder of the path.
func (h *FileHandler) GetDownloadURL(c fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return badRequest(c, "file key is required")
	}

	url, err := h.svc.GetDownloadURL(c.Context(), key)
	if err != nil {
		return mapFileError(c, err)
	}

	return ok(c, fiber.Map{"url": url})
}

// DELETE /files/*
func (h *FileHandler) Delete(c fiber.Ctx) error {
	key := c.Params("*")
	if key == "" {
		return badRequest(c, "file key is required")
	}

	if err := h.svc.Delete(c.Context(), key); err != nil {
		return mapFileError(c, err)
	}

	return noContent(c)
}
