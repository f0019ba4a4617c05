package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
)

type fakeNotifStore struct {
	rows []*model.Notification

	lastLimit  int
	lastOffset int
	lastUnread bool
}

func (f *fakeNotifStore) Create(_ context.Context, n *model.Notification) (*model.Notification, error) {
	cp := *n
	cp.ID = uuid.Must(uuid.NewV7())
	f.rows = append(f.rows, &cp)
	return &cp, nil
}

func (f *fakeNotifStore) List(_ context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]*model.Notification, error) {
	f.lastLimit, f.lastOffset, f.lastUnread = limit, offset, unreadOnly

	var out []*model.Notification
	for _, n := range f.rows {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotifStore) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	for _, n := range f.rows {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeNotifStore) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	for _, n := range f.rows {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func TestCreateAndList(t *testing.T) {
	st := &fakeNotifStore{}
	svc := New(st)
	userID := uuid.Must(uuid.NewV7())

	if _, err := svc.Create(context.Background(), CreateRequest{
		UserID: userID,
		Type:   "appointment_created",
		Title:  "تم حجز الجلسة",
		Data:   map[string]any{"appointment_id": "x"},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	notifs, err := svc.List(context.Background(), userID, false, 1, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notifs) != 1 {
		t.Fatalf("List returned %d rows, want 1", len(notifs))
	}
	if notifs[0].Type != "appointment_created" {
		t.Fatalf("Type = %q", notifs[0].Type)
	}
}

func TestList_PagingDefaults(t *testing.T) {
	st := &fakeNotifStore{}
	svc := New(st)
	userID := uuid.Must(uuid.NewV7())

	// Out-of-range paging falls back to page 1, 20 per page.
	if _, err := svc.List(context.Background(), userID, true, 0, 500); err != nil {
		t.Fatalf("List: %v", err)
	}
	if st.lastLimit != 20 || st.lastOffset != 0 {
		t.Fatalf("limit/offset = %d/%d, want 20/0", st.lastLimit, st.lastOffset)
	}
	if !st.lastUnread {
		t.Fatal("unreadOnly not forwarded")
	}

	if _, err := svc.List(context.Background(), userID, false, 3, 10); err != nil {
		t.Fatalf("List: %v", err)
	}
	if st.lastLimit != 10 || st.lastOffset != 20 {
		t.Fatalf("limit/offset = %d/%d, want 10/20", st.lastLimit, st.lastOffset)
	}
}

func TestMarkRead(t *testing.T) {
	st := &fakeNotifStore{}
	svc := New(st)
	userID := uuid.Must(uuid.NewV7())

	n, err := svc.Create(context.Background(), CreateRequest{UserID: userID, Type: "message_new", Title: "رسالة جديدة"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Another user's id must not reach this row.
	if err := svc.MarkRead(context.Background(), n.ID, uuid.Must(uuid.NewV7())); !errors.Is(err, ErrNotFound) {
		t.Fatalf("MarkRead foreign user error = %v, want ErrNotFound", err)
	}

	if err := svc.MarkRead(context.Background(), n.ID, userID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	unread, err := svc.List(context.Background(), userID, true, 1, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("unread count = %d, want 0", len(unread))
	}
}

func TestMarkAllRead(t *testing.T) {
	st := &fakeNotifStore{}
	svc := New(st)
	userID := uuid.Must(uuid.NewV7())

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(context.Background(), CreateRequest{UserID: userID, Type: "message_new", Title: "رسالة جديدة"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if err := svc.MarkAllRead(context.Background(), userID); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}

	unread, err := svc.List(context.Background(), userID, true, 1, 20)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("unread count = %d, want 0", len(unread))
	}
}
