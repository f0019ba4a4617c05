package pasetotoken

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := New(Config{
		Mode:       ModeLocal,
		Issuer:     "sanad",
		Audience:   "sanad-api",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}, NewLocalKeys())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	m := newTestManager(t)
	userID := uuid.Must(uuid.NewV7())
	sessionID := uuid.Must(uuid.NewV7())

	tok, err := m.IssueAccess(userID, &sessionID, "patient")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Type != TokenTypeAccess {
		t.Errorf("type = %s, want access", claims.Type)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.SessionID == nil || *claims.SessionID != sessionID {
		t.Errorf("session id = %v, want %s", claims.SessionID, sessionID)
	}
	if claims.Role != "patient" {
		t.Errorf("role = %q, want patient", claims.Role)
	}
}

func TestVerify_RejectsForeignKey(t *testing.T) {
	m := newTestManager(t)
	other := newTestManager(t)

	tok, err := m.IssueRefresh(uuid.Must(uuid.NewV7()), nil, "doctor")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	if _, err := other.Verify(tok); err == nil {
		t.Fatal("token verified under a different key")
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	m := newTestManager(t)
	for _, tok := range []string{"", "v4.local.garbage", "not-a-token"} {
		if _, err := m.Verify(tok); err == nil {
			t.Errorf("Verify(%q) accepted", tok)
		}
	}
}

func TestNew_ConfigValidation(t *testing.T) {
	keys := NewLocalKeys()
	if _, err := New(Config{Mode: ModeLocal, Audience: "a"}, keys); err == nil {
		t.Error("missing issuer accepted")
	}
	if _, err := New(Config{Mode: ModeLocal, Issuer: "i"}, keys); err == nil {
		t.Error("missing audience accepted")
	}
	if _, err := New(Config{Mode: ModePublic, Issuer: "i", Audience: "a"}, keys); err == nil {
		t.Error("mode mismatch accepted")
	}
}
