package userstore

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// fileUser mirrors one entry of the seed file. PasswordHash is json:"-" on
// the domain type so it gets its own wire name here.
type fileUser struct {
	Username     string   `json:"username"`
	PasswordHash string   `json:"password_hash"`
	Roles        []string `json:"roles"`
	Enabled      bool     `json:"enabled"`
}

// LoadFile reads the JSON seed file and returns the populated store. The
// file is read exactly once; edits after startup have no effect on a running
// process.
func LoadFile(path string) (*Memory, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var entries []fileUser
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse users file %s: %w", path, err)
	}

	users := make([]domain.User, 0, len(entries))
	for i, e := range entries {
		if e.Username == "" || e.PasswordHash == "" {
			return nil, fmt.Errorf("users file %s: entry %d missing username or password_hash", path, i)
		}
		// An enabled account must carry at least one role or every token it
		// mints would be useless to the role checks downstream.
		if e.Enabled && len(e.Roles) == 0 {
			return nil, fmt.Errorf("users file %s: enabled user %q has no roles", path, e.Username)
		}
		users = append(users, domain.User{
			Username:     e.Username,
			PasswordHash: e.PasswordHash,
			Roles:        e.Roles,
			Enabled:      e.Enabled,
		})
	}
	return NewMemory(users), nil
}
