package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/service/availability"
	pasetotoken "github.com/Omar96MJ/sanad-sub001/pkg/paseto"
)

type fakeAvailabilityService struct {
	saved *availability.SaveRequest
}

func (f *fakeAvailabilityService) Grid(_ context.Context, _ uuid.UUID) (availability.Grid, error) {
	return availability.Grid{}, nil
}

func (f *fakeAvailabilityService) Save(_ context.Context, req availability.SaveRequest) error {
	f.saved = &req
	return nil
}

func (f *fakeAvailabilityService) ListSlots(_ context.Context, _ uuid.UUID) ([]model.AvailabilitySlot, error) {
	return nil, nil
}

func TestScheduleSaveMyGrid(t *testing.T) {
	profile := &model.DoctorProfile{
		ID:          uuid.Must(uuid.NewV7()),
		UserID:      uuid.Must(uuid.NewV7()),
		DisplayName: "Dr. Huda",
	}
	claims := &pasetotoken.Claims{UserID: profile.UserID, Role: string(model.RoleDoctor)}

	fullWeek := make([][]bool, availability.DayCount)
	for d := range fullWeek {
		fullWeek[d] = make([]bool, availability.HourCount)
	}
	fullWeek[0][0] = true
	fullWeek[6][11] = true

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"valid grid", map[string]any{"grid": fullWeek}, http.StatusOK},
		{"too few rows", map[string]any{"grid": fullWeek[:3]}, http.StatusBadRequest},
		{"short row", map[string]any{"grid": [][]bool{{true}, {}, {}, {}, {}, {}, {}}}, http.StatusBadRequest},
		{"missing grid", map[string]any{}, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAvailabilityService{}
			users := &fakeUserService{doctors: []*model.DoctorProfile{profile}}
			h := NewScheduleHandler(svc, users)

			app := newAuthedApp(claims, func(app *fiber.App) {
				app.Put("/schedule/me", h.SaveMyGrid)
			})

			req := httptest.NewRequest(http.MethodPut, "/schedule/me", jsonBody(t, tc.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.want)
			}
			if tc.want == http.StatusOK {
				if svc.saved == nil {
					t.Fatal("service was not called")
				}
				if svc.saved.DoctorID != profile.ID {
					t.Fatalf("DoctorID = %s, want doctor profile id %s", svc.saved.DoctorID, profile.ID)
				}
				if svc.saved.Grid.Hours() != 2 {
					t.Fatalf("hours = %d, want 2", svc.saved.Grid.Hours())
				}
			} else if svc.saved != nil {
				t.Fatal("service should not be called for a malformed grid")
			}
		})
	}
}
