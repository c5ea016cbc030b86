package domain

import "time"

// User es la cuenta que inicia sesion con userid + password.
type User struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userid"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
