package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/service/conversation"
	"github.com/Omar96MJ/sanad-sub001/internal/service/user"
	pasetotoken "github.com/Omar96MJ/sanad-sub001/pkg/paseto"
)

type ConversationHandler struct {
	svc   conversation.Service
	users user.Service
}

func NewConversationHandler(svc conversation.Service, users user.Service) *ConversationHandler {
	return &ConversationHandler{svc: svc, users: users}
}

func mapConversationError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, conversation.ErrNotFound),
		errors.Is(err, conversation.ErrMessageNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, conversation.ErrNotParticipant):
		return forbidden(c)
	case errors.Is(err, conversation.ErrEmptyMessage):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /conversations
// A doctor opens a conversation with a patient and vice versa; the caller's
// side is always taken from their token.
func (h *ConversationHandler) Start(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	var body struct {
		PatientID string `json:"patient_id"`
		DoctorID  string `json:"doctor_id"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := conversation.StartRequest{}
	switch model.Role(claims.Role) {
	case model.RoleDoctor:
		patientID, err := uuid.Parse(body.PatientID)
		if err != nil {
			return badRequest(c, "invalid patient id")
		}
		req.DoctorID = claims.UserID
		req.PatientID = patientID
	default:
		doctorID, err := uuid.Parse(body.DoctorID)
		if err != nil {
			return badRequest(c, "invalid doctor id")
		}
		// Patients address doctors by profile id, as everywhere else in the
		// API; conversations hang off the account, so translate here.
		doctor, err := h.users.GetDoctor(c.Context(), doctorID)
		if err != nil {
			if errors.Is(err, user.ErrDoctorNotFound) {
				return notFound(c, err.Error())
			}
			return internalError(c)
		}
		req.PatientID = claims.UserID
		req.DoctorID = doctor.UserID
	}

	conv, err := h.svc.Start(c.Context(), req)
	if err != nil {
		return mapConversationError(c, err)
	}

	return created(c, conv)
}

// GET /conversations
func (h *ConversationHandler) List(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	convs, err := h.svc.List(c.Context(), claims.UserID)
	if err != nil {
		return mapConversationError(c, err)
	}

	return ok(c, convs)
}

// GET /conversations/:id
func (h *ConversationHandler) Get(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid conversation id")
	}

	conv, err := h.svc.GetByID(c.Context(), convID, claims.UserID)
	if err != nil {
		return mapConversationError(c, err)
	}

	return ok(c, conv)
}

// GET /conversations/:id/messages?page=&per_page=
func (h *ConversationHandler) ListMessages(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid conversation id")
	}

	var query struct {
		Page    int `query:"page"`
		PerPage int `query:"per_page"`
	}
	if err := c.Bind().Query(&query); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	msgs, err := h.svc.ListMessages(c.Context(), convID, claims.UserID, conversation.ListMessagesRequest{
		Page:    query.Page,
		PerPage: query.PerPage,
	})
	if err != nil {
		return mapConversationError(c, err)
	}

	return ok(c, msgs)
}

// POST /conversations/:id/messages
func (h *ConversationHandler) SendMessage(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid conversation id")
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	msg, err := h.svc.SendMessage(c.Context(), convID, conversation.SendMessageRequest{
		SenderID: claims.UserID,
		Content:  body.Content,
	})
	if err != nil {
		return mapConversationError(c, err)
	}

	return created(c, msg)
}

// DELETE /conversations/:id/messages/:messageID
func (h *ConversationHandler) DeleteMessage(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid conversation id")
	}
	messageID, err := uuid.Parse(c.Params("messageID"))
	if err != nil {
		return badRequest(c, "invalid message id")
	}

	if err := h.svc.DeleteMessage(c.Context(), convID, messageID, claims.UserID); err != nil {
		return mapConversationError(c, err)
	}

	return noContent(c)
}
