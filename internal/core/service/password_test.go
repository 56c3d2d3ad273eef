package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("correcthorse1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "correcthorse1" {
		t.Fatalf("expected digest, got plaintext")
	}
	if !h.Verify("correcthorse1", digest) {
		t.Fatalf("expected password to verify")
	}
	if h.Verify("correcthorse2", digest) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestBcryptHasher_Salted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, _ := h.Hash("same-password")
	b, _ := h.Hash("same-password")
	if a == b {
		t.Fatalf("expected distinct digests for the same password")
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	h := NewBcryptHasher(99)
	digest, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		t.Fatalf("Cost returned error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestVerifyPassword_GarbageDigest(t *testing.T) {
	if VerifyPassword("not-a-bcrypt-digest", "anything") {
		t.Fatalf("expected garbage digest to fail")
	}
}
