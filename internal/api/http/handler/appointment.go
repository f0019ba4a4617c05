package handler

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/service/appointment"
	"github.com/Omar96MJ/sanad-sub001/internal/service/user"
	pasetotoken "github.com/Omar96MJ/sanad-sub001/pkg/paseto"
)

type AppointmentHandler struct {
	svc   appointment.Service
	users user.Service
}

func NewAppointmentHandler(svc appointment.Service, users user.Service) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, users: users}
}

// isParty reports whether the caller is one of the appointment's two sides.
// Appointments reference the doctor profile row, not the doctor's account,
// so doctor callers are matched through their profile.
func (h *AppointmentHandler) isParty(ctx context.Context, claims *pasetotoken.Claims, appt *model.Appointment) bool {
	if claims.Role == string(model.RoleAdmin) || appt.PatientID == claims.UserID {
		return true
	}
	if claims.Role == string(model.RoleDoctor) {
		doctor, err := h.users.GetDoctorByUser(ctx, claims.UserID)
		return err == nil && doctor.ID == appt.DoctorID
	}
	return false
}

func mapAppointmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, appointment.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, appointment.ErrDoctorNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, appointment.ErrMissingFields):
		return badRequest(c, err.Error())
	case errors.Is(err, appointment.ErrInvalidSession):
		return badRequest(c, err.Error())
	case errors.Is(err, appointment.ErrInvalidStatus):
		return badRequest(c, err.Error())
	case errors.Is(err, appointment.ErrAlreadyCompleted):
		return conflict(c, err.Error())
	case errors.Is(err, appointment.ErrAlreadyCancelled):
		return conflict(c, err.Error())
	case errors.Is(err, appointment.ErrInvalidTransition):
		return conflict(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /appointments
func (h *AppointmentHandler) Book(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	var body struct {
		DoctorID    string    `json:"doctor_id"`
		SessionDate time.Time `json:"session_date"`
		SessionType string    `json:"session_type"`
		Notes       *string   `json:"notes"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	doctorID, err := uuid.Parse(body.DoctorID)
	if err != nil {
		return badRequest(c, "invalid doctor id")
	}

	appt, err := h.svc.Book(c.Context(), appointment.BookRequest{
		PatientID:   claims.UserID,
		DoctorID:    doctorID,
		SessionDate: body.SessionDate,
		SessionType: model.SessionType(body.SessionType),
		Notes:       body.Notes,
	})
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return created(c, appt)
}

// GET /appointments?view=upcoming|completed|cancelled
func (h *AppointmentHandler) List(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	appts, err := h.svc.List(c.Context(), claims.UserID, model.Role(claims.Role))
	if err != nil {
		return mapAppointmentError(c, err)
	}

	if view := model.ViewStatus(c.Query("view")); view != "" {
		filtered := make([]*model.Appointment, 0, len(appts))
		for _, a := range appts {
			if model.ViewStatusOf(a.Status) == view {
				filtered = append(filtered, a)
			}
		}
		appts = filtered
	}

	return ok(c, appts)
}

// GET /appointments/dashboard  (patient dashboard, denormalized rows)
func (h *AppointmentHandler) Dashboard(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	rows, err := h.svc.ListPatientView(c.Context(), claims.UserID)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return ok(c, rows)
}

// GET /appointments/:id
func (h *AppointmentHandler) Get(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	apptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	appt, err := h.svc.GetByID(c.Context(), apptID)
	if err != nil {
		return mapAppointmentError(c, err)
	}

	// only the two parties may read an appointment
	if !h.isParty(c.Context(), claims, appt) {
		return forbidden(c)
	}

	return ok(c, appt)
}

// PATCH /appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	apptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	var body struct {
		Status      string     `json:"status"`
		SessionDate *time.Time `json:"session_date"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	appt, err := h.svc.GetByID(c.Context(), apptID)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	if !h.isParty(c.Context(), claims, appt) {
		return forbidden(c)
	}

	updated, err := h.svc.UpdateStatus(c.Context(), apptID, appointment.UpdateStatusRequest{
		Status:      model.AppointmentStatus(body.Status),
		SessionDate: body.SessionDate,
	})
	if err != nil {
		return mapAppointmentError(c, err)
	}

	return ok(c, updated)
}
