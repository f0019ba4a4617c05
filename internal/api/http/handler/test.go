package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/service/psychtest"
	pasetotoken "github.com/Omar96MJ/sanad-sub001/pkg/paseto"
)

type TestHandler struct {
	svc psychtest.Service
}

func NewTestHandler(svc psychtest.Service) *TestHandler {
	return &TestHandler{svc: svc}
}

func mapTestError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, psychtest.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, psychtest.ErrInvalidTest),
		errors.Is(err, psychtest.ErrAnswerCount),
		errors.Is(err, psychtest.ErrInvalidAnswer),
		errors.Is(err, psychtest.ErrScoreOutOfRange):
		return badRequest(c, err.Error())
	default:
		return internalError(c)
	}
}

// POST /tests
func (h *TestHandler) Create(c fiber.Ctx) error {
	var body struct {
		Name        string              `json:"name"`
		Category    *string             `json:"category"`
		Description *string             `json:"description"`
		Questions   []model.Question    `json:"questions"`
		Bands       []model.ScoringBand `json:"bands"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	test, err := h.svc.Create(c.Context(), psychtest.CreateRequest{
		Name:        body.Name,
		Category:    body.Category,
		Description: body.Description,
		Questions:   body.Questions,
		Bands:       body.Bands,
	})
	if err != nil {
		return mapTestError(c, err)
	}

	return created(c, test)
}

// GET /tests
func (h *TestHandler) List(c fiber.Ctx) error {
	tests, err := h.svc.List(c.Context())
	if err != nil {
		return mapTestError(c, err)
	}
	return ok(c, tests)
}

// GET /tests/:id
func (h *TestHandler) Get(c fiber.Ctx) error {
	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid test id")
	}

	test, err := h.svc.GetByID(c.Context(), testID)
	if err != nil {
		return mapTestError(c, err)
	}

	return ok(c, test)
}

// POST /tests/:id/submit
func (h *TestHandler) Submit(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	testID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid test id")
	}

	var body struct {
		Answers []int `json:"answers"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	result, err := h.svc.Submit(c.Context(), psychtest.SubmitRequest{
		PatientID: claims.UserID,
		TestID:    testID,
		Answers:   body.Answers,
	})
	if err != nil {
		return mapTestError(c, err)
	}

	return created(c, result)
}

// GET /tests/history
func (h *TestHandler) History(c fiber.Ctx) error {
	claims, valid := pasetotoken.ClaimsFromFiber(c)
	if !valid {
		return unauthorized(c)
	}

	results, err := h.svc.History(c.Context(), claims.UserID)
	if err != nil {
		return mapTestError(c, err)
	}

	return ok(c, results)
}
