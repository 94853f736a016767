package domain

// TokenTypeBearer is the only token type this service issues.
const TokenTypeBearer = "Bearer"

// AuthResult is the successful outcome of an authentication: a signed token
// plus enough metadata for the client to schedule its refresh. It lives for
// the duration of one request.
type AuthResult struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}
