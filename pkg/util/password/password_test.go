package password

import (
	"errors"
	"strings"
	"testing"
)

func TestHash_Format(t *testing.T) {
	hash, err := Hash("correcthorsebatterystaple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=") {
		t.Errorf("Hash() format invalid, got %s", hash)
	}
	if parts := strings.Split(hash, "$"); len(parts) != 6 {
		t.Errorf("Hash() expected 6 parts, got %d", len(parts))
	}
}

func TestVerify(t *testing.T) {
	password := "mysecretpassword"
	hash, err := Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
	}{
		{"correct password", hash, password, nil},
		{"wrong password", hash, "wrongpassword", ErrMismatch},
		{"invalid hash format", "notahash", password, ErrInvalidHash},
		{"empty password", hash, "", ErrMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Verify(tc.hash, tc.password)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Verify() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestHash_Salted(t *testing.T) {
	a, _ := Hash("same password")
	b, _ := Hash("same password")
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestVerify_CustomParams(t *testing.T) {
	p := &Params{Memory: 16 * 1024, Iterations: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	hash, err := HashWithParams("pw", p)
	if err != nil {
		t.Fatalf("HashWithParams() error = %v", err)
	}
	// Parameters are read back from the hash itself.
	if err := Verify(hash, "pw"); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestMatch(t *testing.T) {
	hash, _ := Hash("pw")
	if !Match(hash, "pw") {
		t.Error("Match() = false for correct password")
	}
	if Match(hash, "nope") {
		t.Error("Match() = true for wrong password")
	}
}
