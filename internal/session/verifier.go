package session

import "golang.org/x/crypto/bcrypt"

// CredentialVerifier compares a login attempt against a stored credential.
// The manager's state machine is verifier-agnostic, so the comparison policy
// can be swapped without touching it.
type CredentialVerifier interface {
	Verify(candidate, stored string) bool
}

// PlainVerifier performs an exact, case-sensitive comparison against the
// plaintext password the backend stores. This is the backend's actual
// credential model; see BcryptVerifier for the hardened variant.
type PlainVerifier struct{}

func (PlainVerifier) Verify(candidate, stored string) bool {
	return candidate == stored
}

// BcryptVerifier treats the stored credential as a bcrypt hash.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(candidate, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
