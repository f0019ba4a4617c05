package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/service/conversation"
	pasetotoken "github.com/Omar96MJ/sanad-sub001/pkg/paseto"
)

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(b)
}

type fakeConvService struct {
	started *conversation.StartRequest
}

func (f *fakeConvService) Start(_ context.Context, req conversation.StartRequest) (*model.Conversation, error) {
	f.started = &req
	return &model.Conversation{
		ID:        uuid.Must(uuid.NewV7()),
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
	}, nil
}

func (f *fakeConvService) GetByID(_ context.Context, _, _ uuid.UUID) (*model.Conversation, error) {
	return nil, conversation.ErrNotFound
}

func (f *fakeConvService) List(_ context.Context, _ uuid.UUID) ([]*model.Conversation, error) {
	return nil, nil
}

func (f *fakeConvService) ListMessages(_ context.Context, _, _ uuid.UUID, _ conversation.ListMessagesRequest) ([]*model.Message, error) {
	return nil, nil
}

func (f *fakeConvService) SendMessage(_ context.Context, _ uuid.UUID, _ conversation.SendMessageRequest) (*model.Message, error) {
	return nil, conversation.ErrNotFound
}

func (f *fakeConvService) DeleteMessage(_ context.Context, _, _, _ uuid.UUID) error {
	return conversation.ErrMessageNotFound
}

// Patients address doctors by profile id. Start has to translate that to the
// doctor's account id before the thread is created.
func TestConversationStartResolvesDoctorProfile(t *testing.T) {
	patientID := uuid.Must(uuid.NewV7())
	profile := &model.DoctorProfile{
		ID:          uuid.Must(uuid.NewV7()),
		UserID:      uuid.Must(uuid.NewV7()),
		DisplayName: "Dr. Huda",
	}

	convs := &fakeConvService{}
	users := &fakeUserService{doctors: []*model.DoctorProfile{profile}}
	h := NewConversationHandler(convs, users)

	claims := &pasetotoken.Claims{UserID: patientID, Role: string(model.RolePatient)}
	app := newAuthedApp(claims, func(app *fiber.App) {
		app.Post("/conversations", h.Start)
	})

	req := httptest.NewRequest(http.MethodPost, "/conversations",
		jsonBody(t, map[string]any{"doctor_id": profile.ID.String()}))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if convs.started == nil {
		t.Fatal("service was not called")
	}
	if convs.started.DoctorID != profile.UserID {
		t.Fatalf("DoctorID = %s, want doctor account id %s", convs.started.DoctorID, profile.UserID)
	}
	if convs.started.PatientID != patientID {
		t.Fatalf("PatientID = %s, want %s", convs.started.PatientID, patientID)
	}
}

func TestConversationStartUnknownDoctor(t *testing.T) {
	convs := &fakeConvService{}
	users := &fakeUserService{}
	h := NewConversationHandler(convs, users)

	claims := &pasetotoken.Claims{UserID: uuid.Must(uuid.NewV7()), Role: string(model.RolePatient)}
	app := newAuthedApp(claims, func(app *fiber.App) {
		app.Post("/conversations", h.Start)
	})

	req := httptest.NewRequest(http.MethodPost, "/conversations",
		jsonBody(t, map[string]any{"doctor_id": uuid.Must(uuid.NewV7()).String()}))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	if convs.started != nil {
		t.Fatal("service should not be called for an unknown doctor")
	}
}

// Doctor-side Start keeps the caller's own account id; no translation.
func TestConversationStartDoctorSide(t *testing.T) {
	doctorUserID := uuid.Must(uuid.NewV7())
	patientID := uuid.Must(uuid.NewV7())

	convs := &fakeConvService{}
	h := NewConversationHandler(convs, &fakeUserService{})

	claims := &pasetotoken.Claims{UserID: doctorUserID, Role: string(model.RoleDoctor)}
	app := newAuthedApp(claims, func(app *fiber.App) {
		app.Post("/conversations", h.Start)
	})

	req := httptest.NewRequest(http.MethodPost, "/conversations",
		jsonBody(t, map[string]any{"patient_id": patientID.String()}))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if convs.started == nil || convs.started.DoctorID != doctorUserID {
		t.Fatal("doctor's own account id should be used as the doctor side")
	}
}
