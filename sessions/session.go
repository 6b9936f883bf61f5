package sessions

// Session is the client-side authentication state. At most one token is held;
// its presence gates access to the product view. The JSON keys match the
// storage keys the browser build used.
type Session struct {
	Token  string `json:"token,omitempty"`
	UserID string `json:"userId,omitempty"`
}

// Authenticated reports whether a token is held
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store holds the bearer token between runs. There is no local expiry
// tracking; an expired token is only discovered when the API answers 401.
type Store interface {
	// SetToken replaces any held token. The user ID is derived from the token when it is a JWT.
	SetToken(token string) error

	// GetToken returns the held token, ok is false when there is none
	GetToken() (token string, ok bool)

	// UserID returns the user ID stored alongside the token, if any
	UserID() string

	// Clear removes the token and user ID
	Clear() error
}

func newSession(token string) Session {
	return Session{Token: token, UserID: UserIDFromToken(token)}
}
