package models

// TouchRequest is the body of POST /api/users.
type TouchRequest struct {
	Address string `json:"address" example:"0x06C8E296cc63B15b17878b673a9d58E71EA7508b"`
	// Accepted for client compatibility, not stored.
	Username string `json:"username,omitempty"`
}

// UserResponse wraps a possibly absent user.
type UserResponse struct {
	User *User `json:"user"`
}

// TouchResponse reports whether the call created the record.
type TouchResponse struct {
	User    *User `json:"user"`
	Created bool  `json:"created"`
}
