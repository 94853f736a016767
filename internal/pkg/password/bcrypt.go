// Package password wraps the adaptive hash used to store and verify user
// passwords. The rest of the system treats it as a black box behind
// ports.PasswordVerifier.
package password

import "golang.org/x/crypto/bcrypt"

// Bcrypt verifies plaintext passwords against bcrypt hashes. The zero value
// is ready to use.
type Bcrypt struct{}

// Verify reports whether password matches the stored hash. bcrypt is
// deliberately slow; callers wanting backpressure throttle in front of this.
func (Bcrypt) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Hash produces a bcrypt hash at the default cost. Used by the seeding
// tooling, never on the request path.
func Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
