package middleware

import (
	"testing"
)

func TestIssueAndParseToken(t *testing.T) {
	secret := []byte("test-secret")

	token, err := IssueToken(secret, 42, "ada@example.com")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	user := parseToken(secret, token)
	if user == nil {
		t.Fatal("expected valid token to parse")
	}
	if user.UserID != 42 || user.Email != "ada@example.com" {
		t.Fatalf("unexpected claims: %+v", user)
	}
}

func TestParseTokenRejections(t *testing.T) {
	secret := []byte("test-secret")
	token, err := IssueToken(secret, 1, "a@b.co")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	tests := []struct {
		name   string
		secret []byte
		token  string
	}{
		{"WrongSecret", []byte("other-secret"), token},
		{"Garbage", secret, "not.a.token"},
		{"Empty", secret, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if user := parseToken(tc.secret, tc.token); user != nil {
				t.Fatalf("expected rejection, got %+v", user)
			}
		})
	}
}
