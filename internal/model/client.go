package model

// Client is a responsible party: the parent, tutor or companion who owns
// the account patients are registered under.
type Client struct {
	Base
	Email        string `db:"email" json:"email"`
	Name         string `db:"name" json:"name"`
	Phone        string `db:"phone" json:"phone,omitempty"`
	Password     string `db:"-" json:"password,omitempty"`
	PasswordHash string `db:"password_hash" json:"-"`
	Active       bool   `db:"active" json:"active"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
