package auth

import "testing"

// Use cost 4 for fast tests.
const testBcryptCost = 4

func TestPasswordHashRoundTrip(t *testing.T) {
	h := NewPasswordHasher(testBcryptCost)

	hash, err := h.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !h.Verify("correct horse battery staple", hash) {
		t.Fatal("expected the original password to verify")
	}
	if h.Verify("wrong horse", hash) {
		t.Fatal("expected a different password to fail verification")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	h := NewPasswordHasher(testBcryptCost)

	first, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password should differ")
	}
	if !h.Verify("password123", first) || !h.Verify("password123", second) {
		t.Fatal("both hashes should verify against the original password")
	}
}

func TestPasswordVerifyMalformedHash(t *testing.T) {
	h := NewPasswordHasher(testBcryptCost)

	if h.Verify("anything", "not-a-bcrypt-hash") {
		t.Fatal("a malformed stored hash must not verify")
	}
	if h.Verify("anything", "") {
		t.Fatal("an empty stored hash must not verify")
	}
}
