package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
)

type fakeUserStore struct {
	users   map[uuid.UUID]*model.User
	doctors map[uuid.UUID]*model.DoctorProfile
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   make(map[uuid.UUID]*model.User),
		doctors: make(map[uuid.UUID]*model.DoctorProfile),
	}
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) UpdateUserPhone(_ context.Context, id uuid.UUID, phone string) error {
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Phone = &phone
	return nil
}

func (f *fakeUserStore) UpdateUserImage(_ context.Context, id uuid.UUID, image string) error {
	u, ok := f.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Image = &image
	return nil
}

func (f *fakeUserStore) GetDoctorByID(_ context.Context, id uuid.UUID) (*model.DoctorProfile, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return d, nil
}

func (f *fakeUserStore) GetDoctorByUserID(_ context.Context, userID uuid.UUID) (*model.DoctorProfile, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) ListDoctors(_ context.Context, acceptingOnly bool) ([]*model.DoctorProfile, error) {
	var out []*model.DoctorProfile
	for _, d := range f.doctors {
		if acceptingOnly && !d.IsAccepting {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateDoctor(_ context.Context, d *model.DoctorProfile) (*model.DoctorProfile, error) {
	if _, ok := f.doctors[d.ID]; !ok {
		return nil, store.ErrNotFound
	}
	f.doctors[d.ID] = d
	return d, nil
}

func TestUpdatePhone_Normalizes(t *testing.T) {
	st := newFakeUserStore()
	id := uuid.Must(uuid.NewV7())
	st.users[id] = &model.User{ID: id}
	svc := New(st)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"national format", "0512345678", "+966512345678"},
		{"already e164", "+966512345678", "+966512345678"},
		{"spaces and dashes", "051-234-5678", "+966512345678"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.UpdatePhone(context.Background(), id, tc.input)
			if err != nil {
				t.Fatalf("UpdatePhone(%q): %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("UpdatePhone(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestUpdatePhone_Invalid(t *testing.T) {
	st := newFakeUserStore()
	id := uuid.Must(uuid.NewV7())
	st.users[id] = &model.User{ID: id}
	svc := New(st)

	for _, input := range []string{"", "not a number", "123"} {
		if _, err := svc.UpdatePhone(context.Background(), id, input); !errors.Is(err, ErrInvalidPhone) {
			t.Errorf("UpdatePhone(%q) error = %v, want ErrInvalidPhone", input, err)
		}
	}
}

func TestUpdateDoctor_PartialUpdate(t *testing.T) {
	st := newFakeUserStore()
	id := uuid.Must(uuid.NewV7())
	spec := "CBT"
	st.doctors[id] = &model.DoctorProfile{
		ID:             id,
		DisplayName:    "Dr. Huda",
		Specialization: &spec,
		IsAccepting:    true,
	}
	svc := New(st)

	newName := "Dr. Huda Al-Rashid"
	accepting := false
	d, err := svc.UpdateDoctor(context.Background(), id, UpdateDoctorRequest{
		DisplayName: &newName,
		IsAccepting: &accepting,
	})
	if err != nil {
		t.Fatalf("UpdateDoctor: %v", err)
	}
	if d.DisplayName != newName {
		t.Errorf("display name = %q, want %q", d.DisplayName, newName)
	}
	if d.IsAccepting {
		t.Error("is_accepting not updated")
	}
	if d.Specialization == nil || *d.Specialization != "CBT" {
		t.Error("untouched field changed")
	}
}

func TestListDoctors_AcceptingFilter(t *testing.T) {
	st := newFakeUserStore()
	a := uuid.Must(uuid.NewV7())
	b := uuid.Must(uuid.NewV7())
	st.doctors[a] = &model.DoctorProfile{ID: a, IsAccepting: true}
	st.doctors[b] = &model.DoctorProfile{ID: b, IsAccepting: false}
	svc := New(st)

	docs, err := svc.ListDoctors(context.Background(), true)
	if err != nil {
		t.Fatalf("ListDoctors: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != a {
		t.Fatalf("accepting filter returned %d doctors", len(docs))
	}
}
