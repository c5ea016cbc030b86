package domain

import "time"

// ChatHistoryEntry guarda un intercambio con el chatbot.
type ChatHistoryEntry struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatHistoryFields struct {
	Message  string `json:"message" binding:"required"`
	Response string `json:"response"`
}
