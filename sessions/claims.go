package sessions

import (
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// UserIDFromToken returns the "sub" claim of a JWT without verifying its
// signature. The client never trusts the claim for authorization; it only
// keeps it for display. Opaque tokens yield an empty string.
func UserIDFromToken(rawToken string) string {
	if strings.Count(rawToken, ".") != 2 {
		return ""
	}

	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return ""
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return ""
	}

	if sub, _ := claims["sub"].(string); sub != "" {
		return sub
	}
	// Some API builds put the user ID under "id"
	id, _ := claims["id"].(string)
	return id
}
