package account

import "time"

// User is the account returned by the companion API
type User struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Characters []string  `json:"characters"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

// APIError is the error body the companion API sends on failure
type APIError struct {
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
	StatusCode int      `json:"statusCode,omitempty"`
}

// MessageResponse is a bare acknowledgement body
type MessageResponse struct {
	Message string `json:"message"`
}
