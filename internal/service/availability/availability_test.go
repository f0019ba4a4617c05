package availability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
)

type fakeSlotStore struct {
	slots    []model.AvailabilitySlot
	hours    int
	replaced bool
	listErr  error
}

func (f *fakeSlotStore) ListSlots(_ context.Context, _ uuid.UUID) ([]model.AvailabilitySlot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.slots, nil
}

func (f *fakeSlotStore) ReplaceSlots(_ context.Context, doctorID uuid.UUID, slots []model.AvailabilitySlot, hours int) error {
	f.slots = slots
	f.hours = hours
	f.replaced = true
	return nil
}

type fakeDoctorStore struct {
	doctor *model.DoctorProfile
}

func (f *fakeDoctorStore) GetDoctorByID(_ context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	if f.doctor == nil || f.doctor.ID != id {
		return nil, store.ErrNotFound
	}
	return f.doctor, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_Grid(t *testing.T) {
	slots := []model.AvailabilitySlot{
		slot(1, "09:00:00", "11:00:00"),
	}
	svc := New(&fakeSlotStore{slots: slots}, &fakeDoctorStore{}, testLogger())

	g, err := svc.Grid(context.Background(), uuid.Must(uuid.NewV7()))
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	if !g[1][1] || !g[1][2] {
		t.Fatal("expected Monday 09:00 and 10:00 cells set")
	}
	if got := g.Hours(); got != 2 {
		t.Fatalf("Hours() = %d, want 2", got)
	}
}

func TestService_Save(t *testing.T) {
	doctorID := uuid.Must(uuid.NewV7())
	slotStore := &fakeSlotStore{}
	svc := New(slotStore, &fakeDoctorStore{doctor: &model.DoctorProfile{ID: doctorID}}, testLogger())

	var g Grid
	g[1][1] = true
	g[1][2] = true

	if err := svc.Save(context.Background(), SaveRequest{DoctorID: doctorID, Grid: g}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !slotStore.replaced {
		t.Fatal("ReplaceSlots was not called")
	}
	if len(slotStore.slots) != 2 {
		t.Fatalf("persisted %d slots, want 2", len(slotStore.slots))
	}
	if slotStore.hours != 2 {
		t.Fatalf("persisted hours counter = %d, want 2", slotStore.hours)
	}
}

func TestService_Save_DoctorNotFound(t *testing.T) {
	svc := New(&fakeSlotStore{}, &fakeDoctorStore{}, testLogger())

	err := svc.Save(context.Background(), SaveRequest{DoctorID: uuid.Must(uuid.NewV7())})
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Fatalf("Save error = %v, want ErrDoctorNotFound", err)
	}
}

func TestService_Grid_StoreError(t *testing.T) {
	wantErr := errors.New("connection refused")
	svc := New(&fakeSlotStore{listErr: wantErr}, &fakeDoctorStore{}, testLogger())

	_, err := svc.Grid(context.Background(), uuid.Must(uuid.NewV7()))
	if !errors.Is(err, wantErr) {
		t.Fatalf("Grid error = %v, want wrapped %v", err, wantErr)
	}
}
