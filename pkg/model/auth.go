package model

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by the auth endpoints. The token is opaque to
// the client; it is persisted in the credential store and attached as a
// bearer credential by the request pipeline, and must never be logged.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// APIError is the error payload the weather-alert API returns on failure
// responses. Some endpoints use "message", older ones "title".
type APIError struct {
	Message string `json:"message,omitempty"`
	Title   string `json:"title,omitempty"`
}

// Text returns the server-supplied message, preferring "message".
func (e *APIError) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Title
}
