package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	passwords := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := passwords.Hash("whoopey")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "whoopey" {
		t.Error("Hash() returned the plaintext")
	}

	if err := passwords.Verify(hash, "whoopey"); err != nil {
		t.Errorf("Verify(correct password) error = %v", err)
	}
	if err := passwords.Verify(hash, "wrong"); err == nil {
		t.Error("Verify(wrong password) error = nil, want error")
	}
}

func TestHash_RejectsOverlongPassword(t *testing.T) {
	passwords := NewPasswordServiceWithCost(bcrypt.MinCost)

	if _, err := passwords.Hash(strings.Repeat("a", 73)); err == nil {
		t.Error("Hash(73 bytes) error = nil, want error")
	}
	if _, err := passwords.Hash(strings.Repeat("a", 72)); err != nil {
		t.Errorf("Hash(72 bytes) error = %v, want nil", err)
	}
}

func TestHash_SaltsEachCall(t *testing.T) {
	passwords := NewPasswordServiceWithCost(bcrypt.MinCost)

	first, err := passwords.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := passwords.Hash("secret")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical, want distinct salts")
	}
}

func TestNewPasswordServiceWithCost_OutOfRange(t *testing.T) {
	tests := []struct {
		name string
		cost int
	}{
		{"below minimum", bcrypt.MinCost - 1},
		{"above maximum", bcrypt.MaxCost + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passwords := NewPasswordServiceWithCost(tt.cost)
			if passwords.cost != defaultCost {
				t.Errorf("cost = %d, want default %d", passwords.cost, defaultCost)
			}
		})
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	passwords := NewPasswordService()

	if err := passwords.Verify("not-a-bcrypt-hash", "secret"); err == nil {
		t.Error("Verify(malformed hash) error = nil, want error")
	}
}
