package domain

import "time"

// Session asocia un token opaco con el usuario dueño. Hay como maximo una por usuario.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
