package appointment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
)

type fakeStore struct {
	appts      map[uuid.UUID]*model.Appointment
	listResult []*model.Appointment
	views      map[uuid.UUID]*model.PatientAppointment
	upsertErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appts: make(map[uuid.UUID]*model.Appointment),
		views: make(map[uuid.UUID]*model.PatientAppointment),
	}
}

func (f *fakeStore) Create(_ context.Context, a *model.Appointment) (*model.Appointment, error) {
	cp := *a
	cp.ID = uuid.Must(uuid.NewV7())
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.appts[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return a, nil
}

func (f *fakeStore) ListForOwner(_ context.Context, _ uuid.UUID, _ model.Role) ([]*model.Appointment, error) {
	return f.listResult, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus, sessionDate *time.Time) (*model.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	a.Status = status
	if sessionDate != nil {
		a.SessionDate = *sessionDate
	}
	a.UpdatedAt = time.Now()
	return a, nil
}

func (f *fakeStore) UpsertPatientAppointment(_ context.Context, pa *model.PatientAppointment) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.views[pa.AppointmentID] = pa
	return nil
}

func (f *fakeStore) ListPatientAppointments(_ context.Context, patientID uuid.UUID) ([]*model.PatientAppointment, error) {
	var out []*model.PatientAppointment
	for _, v := range f.views {
		if v.PatientID == patientID {
			out = append(out, v)
		}
	}
	return out, nil
}

type fakeDoctors struct {
	doctor *model.DoctorProfile
}

func (f *fakeDoctors) GetDoctorByID(_ context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	if f.doctor == nil || f.doctor.ID != id {
		return nil, store.ErrNotFound
	}
	return f.doctor, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(st *fakeStore, doc *model.DoctorProfile) Service {
	return New(st, &fakeDoctors{doctor: doc}, nil, testLogger())
}

func validBook(doctorID uuid.UUID) BookRequest {
	return BookRequest{
		PatientID:   uuid.Must(uuid.NewV7()),
		DoctorID:    doctorID,
		SessionDate: time.Now().Add(48 * time.Hour),
		SessionType: model.SessionTherapy,
	}
}

func TestBook(t *testing.T) {
	doctor := &model.DoctorProfile{ID: uuid.Must(uuid.NewV7()), DisplayName: "Dr. Layla Hassan"}
	st := newFakeStore()
	svc := newTestService(st, doctor)

	appt, err := svc.Book(context.Background(), validBook(doctor.ID))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if appt.Status != model.StatusScheduled {
		t.Errorf("status = %s, want scheduled", appt.Status)
	}

	view, ok := st.views[appt.ID]
	if !ok {
		t.Fatal("patient view row was not written")
	}
	if view.DoctorName != "Dr. Layla Hassan" {
		t.Errorf("view doctor_name = %q", view.DoctorName)
	}
	if view.Status != model.ViewUpcoming {
		t.Errorf("view status = %s, want upcoming", view.Status)
	}
}

func TestBook_Validation(t *testing.T) {
	doctor := &model.DoctorProfile{ID: uuid.Must(uuid.NewV7())}
	svc := newTestService(newFakeStore(), doctor)

	tests := []struct {
		name    string
		mutate  func(*BookRequest)
		wantErr error
	}{
		{"missing patient", func(r *BookRequest) { r.PatientID = uuid.Nil }, ErrMissingFields},
		{"missing doctor", func(r *BookRequest) { r.DoctorID = uuid.Nil }, ErrMissingFields},
		{"missing date", func(r *BookRequest) { r.SessionDate = time.Time{} }, ErrMissingFields},
		{"bad session type", func(r *BookRequest) { r.SessionType = "walk_in" }, ErrInvalidSession},
		{"unknown doctor", func(r *BookRequest) { r.DoctorID = uuid.Must(uuid.NewV7()) }, ErrDoctorNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validBook(doctor.ID)
			tc.mutate(&req)
			if _, err := svc.Book(context.Background(), req); !errors.Is(err, tc.wantErr) {
				t.Fatalf("Book error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestBook_ViewWriteFailureDoesNotFailBooking(t *testing.T) {
	doctor := &model.DoctorProfile{ID: uuid.Must(uuid.NewV7()), DisplayName: "Dr. Omar"}
	st := newFakeStore()
	st.upsertErr = errors.New("connection reset")
	svc := newTestService(st, doctor)

	appt, err := svc.Book(context.Background(), validBook(doctor.ID))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if appt == nil || appt.Status != model.StatusScheduled {
		t.Fatal("booking did not succeed despite view write failure")
	}
}

func TestList_UnknownCounterpart(t *testing.T) {
	st := newFakeStore()
	st.listResult = []*model.Appointment{
		{ID: uuid.Must(uuid.NewV7())},
		{ID: uuid.Must(uuid.NewV7()), Counterpart: &model.CounterpartProfile{Name: "Dr. Amal"}},
	}
	svc := newTestService(st, nil)

	appts, err := svc.List(context.Background(), uuid.Must(uuid.NewV7()), model.RolePatient)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if appts[0].Counterpart == nil || appts[0].Counterpart.Name != "Unknown" {
		t.Errorf("missing counterpart not replaced with Unknown: %+v", appts[0].Counterpart)
	}
	if appts[1].Counterpart.Name != "Dr. Amal" {
		t.Errorf("existing counterpart overwritten: %+v", appts[1].Counterpart)
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	later := time.Now().Add(72 * time.Hour)

	tests := []struct {
		name    string
		from    model.AppointmentStatus
		req     UpdateStatusRequest
		wantErr error
	}{
		{"scheduled to cancelled", model.StatusScheduled, UpdateStatusRequest{Status: model.StatusCancelled}, nil},
		{"scheduled to completed", model.StatusScheduled, UpdateStatusRequest{Status: model.StatusCompleted}, nil},
		{"scheduled to no_show", model.StatusScheduled, UpdateStatusRequest{Status: model.StatusNoShow}, nil},
		{"rescheduled to cancelled", model.StatusRescheduled, UpdateStatusRequest{Status: model.StatusCancelled}, nil},
		{"cancelled to rescheduled", model.StatusCancelled, UpdateStatusRequest{Status: model.StatusRescheduled, SessionDate: &later}, nil},
		{"cancel a cancelled", model.StatusCancelled, UpdateStatusRequest{Status: model.StatusCancelled}, ErrAlreadyCancelled},
		{"cancel a completed", model.StatusCompleted, UpdateStatusRequest{Status: model.StatusCancelled}, ErrAlreadyCompleted},
		{"complete a no_show", model.StatusNoShow, UpdateStatusRequest{Status: model.StatusCompleted}, ErrInvalidTransition},
		{"reschedule without date", model.StatusScheduled, UpdateStatusRequest{Status: model.StatusRescheduled}, ErrMissingFields},
		{"unknown status", model.StatusScheduled, UpdateStatusRequest{Status: "archived"}, ErrInvalidStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doctor := &model.DoctorProfile{ID: uuid.Must(uuid.NewV7()), DisplayName: "Dr. Sara"}
			st := newFakeStore()
			svc := newTestService(st, doctor)

			appt, err := svc.Book(context.Background(), validBook(doctor.ID))
			if err != nil {
				t.Fatalf("Book: %v", err)
			}
			st.appts[appt.ID].Status = tc.from

			updated, err := svc.UpdateStatus(context.Background(), appt.ID, tc.req)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("UpdateStatus error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				return
			}
			if updated.Status != tc.req.Status {
				t.Errorf("status = %s, want %s", updated.Status, tc.req.Status)
			}
			if view := st.views[appt.ID]; view.Status != model.ViewStatusOf(tc.req.Status) {
				t.Errorf("view status = %s, want %s", view.Status, model.ViewStatusOf(tc.req.Status))
			}
		})
	}
}

func TestUpdateStatus_RescheduleSetsNewDate(t *testing.T) {
	doctor := &model.DoctorProfile{ID: uuid.Must(uuid.NewV7()), DisplayName: "Dr. Sara"}
	st := newFakeStore()
	svc := newTestService(st, doctor)

	appt, err := svc.Book(context.Background(), validBook(doctor.ID))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	newDate := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Second)
	updated, err := svc.UpdateStatus(context.Background(), appt.ID, UpdateStatusRequest{
		Status:      model.StatusRescheduled,
		SessionDate: &newDate,
	})
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !updated.SessionDate.Equal(newDate) {
		t.Errorf("session_date = %v, want %v", updated.SessionDate, newDate)
	}
}

func TestSyncPatientView(t *testing.T) {
	doctor := &model.DoctorProfile{ID: uuid.Must(uuid.NewV7()), DisplayName: "Dr. Nadia"}
	st := newFakeStore()
	st.upsertErr = errors.New("transient")
	svc := newTestService(st, doctor)

	appt, err := svc.Book(context.Background(), validBook(doctor.ID))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if _, ok := st.views[appt.ID]; ok {
		t.Fatal("view row present despite failing upsert")
	}

	st.upsertErr = nil
	if err := svc.SyncPatientView(context.Background(), appt.ID); err != nil {
		t.Fatalf("SyncPatientView: %v", err)
	}
	view, ok := st.views[appt.ID]
	if !ok {
		t.Fatal("view row missing after repair")
	}
	if view.DoctorName != "Dr. Nadia" || view.Status != model.ViewUpcoming {
		t.Errorf("repaired view = %+v", view)
	}
}
