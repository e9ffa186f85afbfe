package jwtauth

import (
	"context"
	"testing"
	"time"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	m, err := NewManager("test-secret")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := m.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("expected user-123, got %q", claims.UserID)
	}
}

func TestVerify_ExpiredToken(t *testing.T) {
	m, err := NewManager("test-secret")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	issued := time.Now()
	m.now = func() time.Time { return issued }

	token, err := m.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Justo antes de expirar todavía vale
	m.now = func() time.Time { return issued.Add(sessionTTL - time.Minute) }
	if _, err := m.Verify(context.Background(), token); err != nil {
		t.Fatalf("expected valid before expiry, got %v", err)
	}

	// Pasada la ventana de 24h, falla
	m.now = func() time.Time { return issued.Add(sessionTTL + time.Minute) }
	if _, err := m.Verify(context.Background(), token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	m, _ := NewManager("test-secret")

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Verify(context.Background(), tok); err == nil {
			t.Fatalf("expected error for token %q", tok)
		}
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	issuer, _ := NewManager("secret-a")
	verifier, _ := NewManager("secret-b")

	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}
