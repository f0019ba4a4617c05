package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/service/user"
	pasetotoken "github.com/Omar96MJ/sanad-sub001/pkg/paseto"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func mapUserError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, user.ErrDoctorNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, user.ErrInvalidPhone):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// GET /users/me
func (h *UserHandler) Me(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	u, err := h.svc.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return mapUserError(c, err)
	}

	return ok(c, u)
}

// PATCH /users/me/phone
func (h *UserHandler) UpdatePhone(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	var body struct {
		Phone string `json:"phone"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Phone == "" {
		return badRequest(c, "phone is required")
	}

	normalized, err := h.svc.UpdatePhone(c.Context(), claims.UserID, body.Phone)
	if err != nil {
		return mapUserError(c, err)
	}

	return ok(c, fiber.Map{"phone": normalized})
}

// GET /doctors
func (h *UserHandler) ListDoctors(c fiber.Ctx) error {
	var q struct {
		AcceptingOnly bool `query:"accepting_only"`
	}
	_ = c.Bind().Query(&q)

	doctors, err := h.svc.ListDoctors(c.Context(), q.AcceptingOnly)
	if err != nil {
		return mapUserError(c, err)
	}

	return ok(c, doctors)
}

// GET /doctors/me  (doctor accounts only)
func (h *UserHandler) MyDoctorProfile(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	doctor, err := h.svc.GetDoctorByUser(c.Context(), claims.UserID)
	if err != nil {
		return mapUserError(c, err)
	}

	return ok(c, doctor)
}

// GET /doctors/:id
func (h *UserHandler) GetDoctor(c fiber.Ctx) error {
	doctorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid doctor id")
	}

	doctor, err := h.svc.GetDoctor(c.Context(), doctorID)
	if err != nil {
		return mapUserError(c, err)
	}

	return ok(c, doctor)
}

// PATCH /doctors/me
func (h *UserHandler) UpdateMyDoctorProfile(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	var body struct {
		DisplayName    *string `json:"display_name"`
		Specialization *string `json:"specialization"`
		Bio            *string `json:"bio"`
		IsAccepting    *bool   `json:"is_accepting"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	doctor, err := h.svc.GetDoctorByUser(c.Context(), claims.UserID)
	if err != nil {
		return mapUserError(c, err)
	}

	updated, err := h.svc.UpdateDoctor(c.Context(), doctor.ID, user.UpdateDoctorRequest{
		DisplayName:    body.DisplayName,
		Specialization: body.Specialization,
		Bio:            body.Bio,
		IsAccepting:    body.IsAccepting,
	})
	if err != nil {
		return mapUserError(c, err)
	}

	return ok(c, updated)
}
