package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the session identity carried in the signed token cookie.
// Organization is zero for buyers and admins without an org scope.
type Claims struct {
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	Organization uint   `json:"org,omitempty"`
	jwt.RegisteredClaims
}
