package models

import "time"

// Profile is the subset of a Twitter account linked to a wallet address.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// AuthSession correlates Begin and Complete of one OAuth2 handshake.
// It is keyed by address (one live session per wallet) and looked up by state.
type AuthSession struct {
	Address      string    `bson:"address" json:"address"`
	State        string    `bson:"state" json:"state"`
	CodeVerifier string    `bson:"codeVerifier" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// AuthURLResponse is returned by GET /api/auth/twitter.
type AuthURLResponse struct {
	URL string `json:"url" example:"https://twitter.com/i/oauth2/authorize?client_id=..."`
}

// Callback error codes carried in the redirect's error query parameter.
const (
	ErrMissingCode          = "missing_code"
	ErrMissingState         = "missing_state"
	ErrInvalidState         = "invalid_state"
	ErrTokenExchangeFailed  = "token_exchange_failed"
	ErrProfileFetchFailed   = "profile_fetch_failed"
	ErrTwitterAlreadyLinked = "twitter_already_linked"
	ErrInternal             = "internal_error"
)
