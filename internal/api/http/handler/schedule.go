package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/service/availability"
	"github.com/Omar96MJ/sanad-sub001/internal/service/user"
	pasetotoken "github.com/Omar96MJ/sanad-sub001/pkg/paseto"
)

type ScheduleHandler struct {
	svc   availability.Service
	users user.Service
}

func NewScheduleHandler(svc availability.Service, users user.Service) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, users: users}
}

func mapScheduleError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, availability.ErrDoctorNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, user.ErrDoctorNotFound):
		return notFound(c, err.Error())
	default:
		return internalError(c)
	}
}

// GET /schedule/:doctorID/grid
// Returns the weekly availability matrix: 7 days of 12 working hours.
func (h *ScheduleHandler) GetGrid(c fiber.Ctx) error {
	doctorID, err := uuid.Parse(c.Params("doctorID"))
	if err != nil {
		return badRequest(c, "invalid doctor id")
	}

	grid, err := h.svc.Grid(c.Context(), doctorID)
	if err != nil {
		return mapScheduleError(c, err)
	}

	return ok(c, fiber.Map{
		"grid":       grid,
		"start_hour": availability.StartHour,
		"end_hour":   availability.EndHour,
	})
}

// GET /schedule/:doctorID/slots
func (h *ScheduleHandler) ListSlots(c fiber.Ctx) error {
	doctorID, err := uuid.Parse(c.Params("doctorID"))
	if err != nil {
		return badRequest(c, "invalid doctor id")
	}

	slots, err := h.svc.ListSlots(c.Context(), doctorID)
	if err != nil {
		return mapScheduleError(c, err)
	}

	return ok(c, slots)
}

// PUT /schedule/me
// Replaces the caller's availability wholesale from a 7x12 matrix.
func (h *ScheduleHandler) SaveMyGrid(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	doctor, err := h.users.GetDoctorByUser(c.Context(), claims.UserID)
	if err != nil {
		return mapScheduleError(c, err)
	}

	var body struct {
		Grid [][]bool `json:"grid"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	grid, ok2 := gridFromRows(body.Grid)
	if !ok2 {
		return badRequest(c, "grid must be 7 rows of 12 hour flags")
	}

	if err := h.svc.Save(c.Context(), availability.SaveRequest{
		DoctorID: doctor.ID,
		Grid:     grid,
	}); err != nil {
		return mapScheduleError(c, err)
	}

	return ok(c, fiber.Map{"hours": grid.Hours()})
}

func gridFromRows(rows [][]bool) (availability.Grid, bool) {
	var g availability.Grid
	if len(rows) != availability.DayCount {
		return g, false
	}
	for d, row := range rows {
		if len(row) != availability.HourCount {
			return g, false
		}
		for i, v := range row {
			g[d][i] = v
		}
	}
	return g, true
}
