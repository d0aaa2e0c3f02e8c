package entity

// Profile is the authenticated user as returned by the provider's /me endpoint.
type Profile struct {
	UserID         string `json:"user_id"`
	IdentityNumber string `json:"identity_number"`
	FullName       string `json:"full_name"`
	AvatarURL      string `json:"avatar_url"`
	Biography      string `json:"biography"`
	SessionID      string `json:"session_id"`
	CreatedAt      string `json:"created_at"`
}

// SessionState is the connection state of the session manager.
type SessionState int

const (
	Disconnected SessionState = iota
	Connected
)

func (s SessionState) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// Session is the published view of the session manager.
type Session struct {
	State   SessionState `json:"-"`
	Profile *Profile     `json:"profile,omitempty"`
}
