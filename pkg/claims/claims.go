package claims

import (
	"context"

	jwt "github.com/dgrijalva/jwt-go"
)

type contextKey string

const (
	TokenContextKey contextKey = "token"
)

// Claims carried by every storefront access token. StandardClaims.Id holds
// the session id the token is bound to.
type Claims struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	jwt.StandardClaims
}

func (c *Claims) SessionID() string {
	return c.Id
}

func NewContext(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, TokenContextKey, c)
}

func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(TokenContextKey).(*Claims)
	if !ok || c == nil || c.UserID == 0 {
		return nil, false
	}
	return c, true
}
