package conversation

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Omar96MJ/sanad-sub001/internal/model"
	"github.com/Omar96MJ/sanad-sub001/internal/store"
)

type fakeConvStore struct {
	convs    map[uuid.UUID]*model.Conversation
	messages map[uuid.UUID]*model.Message
}

func newFakeConvStore() *fakeConvStore {
	return &fakeConvStore{
		convs:    make(map[uuid.UUID]*model.Conversation),
		messages: make(map[uuid.UUID]*model.Message),
	}
}

func (f *fakeConvStore) Create(_ context.Context, patientID, doctorID uuid.UUID) (*model.Conversation, error) {
	c := &model.Conversation{
		ID:        uuid.Must(uuid.NewV7()),
		PatientID: patientID,
		DoctorID:  doctorID,
		CreatedAt: time.Now(),
	}
	f.convs[c.ID] = c
	return c, nil
}

func (f *fakeConvStore) GetByID(_ context.Context, id uuid.UUID) (*model.Conversation, error) {
	c, ok := f.convs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (f *fakeConvStore) FindByPair(_ context.Context, patientID, doctorID uuid.UUID) (*model.Conversation, error) {
	for _, c := range f.convs {
		if c.PatientID == patientID && c.DoctorID == doctorID {
			return c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeConvStore) ListForUser(_ context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	var out []*model.Conversation
	for _, c := range f.convs {
		if c.Participant(userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].CreatedAt, out[j].CreatedAt
		if out[i].LastMessageAt != nil {
			ti = *out[i].LastMessageAt
		}
		if out[j].LastMessageAt != nil {
			tj = *out[j].LastMessageAt
		}
		return ti.After(tj)
	})
	return out, nil
}

func (f *fakeConvStore) TouchLastMessage(_ context.Context, id uuid.UUID, at time.Time) error {
	c, ok := f.convs[id]
	if !ok {
		return store.ErrNotFound
	}
	c.LastMessageAt = &at
	return nil
}

func (f *fakeConvStore) CreateMessage(_ context.Context, m *model.Message) (*model.Message, error) {
	cp := *m
	cp.ID = uuid.Must(uuid.NewV7())
	cp.CreatedAt = time.Now()
	f.messages[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeConvStore) GetMessage(_ context.Context, convID, messageID uuid.UUID) (*model.Message, error) {
	m, ok := f.messages[messageID]
	if !ok || m.ConversationID != convID || m.DeletedAt != nil {
		return nil, store.ErrNotFound
	}
	return m, nil
}

func (f *fakeConvStore) ListMessages(_ context.Context, convID uuid.UUID, limit, offset int) ([]*model.Message, error) {
	var out []*model.Message
	for _, m := range f.messages {
		if m.ConversationID == convID && m.DeletedAt == nil {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeConvStore) SoftDeleteMessage(_ context.Context, messageID uuid.UUID) error {
	m, ok := f.messages[messageID]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now()
	m.DeletedAt = &now
	return nil
}

func TestStart_ReusesExistingThread(t *testing.T) {
	st := newFakeConvStore()
	svc := New(st, nil)

	patientID := uuid.Must(uuid.NewV7())
	doctorID := uuid.Must(uuid.NewV7())

	first, err := svc.Start(context.Background(), StartRequest{PatientID: patientID, DoctorID: doctorID})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	second, err := svc.Start(context.Background(), StartRequest{PatientID: patientID, DoctorID: doctorID})
	if err != nil {
		t.Fatalf("Start again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatal("second Start created a duplicate thread")
	}
	if len(st.convs) != 1 {
		t.Fatalf("store holds %d conversations, want 1", len(st.convs))
	}
}

func TestSendMessage_TouchesAndReorders(t *testing.T) {
	st := newFakeConvStore()
	svc := New(st, nil)

	patientID := uuid.Must(uuid.NewV7())
	docA := uuid.Must(uuid.NewV7())
	docB := uuid.Must(uuid.NewV7())

	convA, _ := svc.Start(context.Background(), StartRequest{PatientID: patientID, DoctorID: docA})
	convB, _ := svc.Start(context.Background(), StartRequest{PatientID: patientID, DoctorID: docB})

	if _, err := svc.SendMessage(context.Background(), convA.ID, SendMessageRequest{
		SenderID: patientID, Content: "hello",
	}); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	list, err := svc.List(context.Background(), patientID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].ID != convA.ID {
		t.Fatal("conversation with new message is not first")
	}
	if list[0].LastMessageAt == nil {
		t.Fatal("last_message_at not touched")
	}
	_ = convB
}

func TestSendMessage_Validation(t *testing.T) {
	st := newFakeConvStore()
	svc := New(st, nil)

	patientID := uuid.Must(uuid.NewV7())
	conv, _ := svc.Start(context.Background(), StartRequest{
		PatientID: patientID, DoctorID: uuid.Must(uuid.NewV7()),
	})

	if _, err := svc.SendMessage(context.Background(), conv.ID, SendMessageRequest{
		SenderID: patientID, Content: "   ",
	}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("blank content error = %v, want ErrEmptyMessage", err)
	}

	if _, err := svc.SendMessage(context.Background(), conv.ID, SendMessageRequest{
		SenderID: uuid.Must(uuid.NewV7()), Content: "hi",
	}); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("outsider error = %v, want ErrNotParticipant", err)
	}

	if _, err := svc.SendMessage(context.Background(), uuid.Must(uuid.NewV7()), SendMessageRequest{
		SenderID: patientID, Content: "hi",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing thread error = %v, want ErrNotFound", err)
	}
}

func TestDeleteMessage_OnlySender(t *testing.T) {
	st := newFakeConvStore()
	svc := New(st, nil)

	patientID := uuid.Must(uuid.NewV7())
	doctorID := uuid.Must(uuid.NewV7())
	conv, _ := svc.Start(context.Background(), StartRequest{PatientID: patientID, DoctorID: doctorID})

	msg, err := svc.SendMessage(context.Background(), conv.ID, SendMessageRequest{
		SenderID: patientID, Content: "take this back",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	if err := svc.DeleteMessage(context.Background(), conv.ID, msg.ID, doctorID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("non-sender delete error = %v, want ErrNotParticipant", err)
	}
	if err := svc.DeleteMessage(context.Background(), conv.ID, msg.ID, patientID); err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}

	msgs, err := svc.ListMessages(context.Background(), conv.ID, patientID, ListMessagesRequest{})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("deleted message still listed: %d rows", len(msgs))
	}
}
