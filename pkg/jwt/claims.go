package jwt

import "github.com/golang-jwt/jwt/v5"

// Claims are carried by API bearer tokens. League scopes an organizer token to one league;
// an empty League grants access to every league.
type Claims struct {
	jwt.RegisteredClaims
	League string `json:"league,omitempty"`
	Role   string `json:"role"`
}

type Role string

const (
	RoleViewer    Role = "viewer"
	RoleOrganizer Role = "organizer"
)

// CanWrite reports whether the token may change league state.
func (c *Claims) CanWrite() bool {
	return Role(c.Role) == RoleOrganizer
}
