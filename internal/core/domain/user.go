package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User models an account in the read-only credential set. The set is loaded
// once at startup and never mutated afterwards; the core only reads it.
type User struct {
	Username     string   `json:"username"`
	PasswordHash string   `json:"-"`
	Roles        []string `json:"roles"`
	Enabled      bool     `json:"enabled"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
