package models

import "time"

const (
	SenderClient = "CLIENT"
	SenderAvatar = "AVATAR"
)

type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageCreate is one element of the POST /messages/batch payload.
type MessageCreate struct {
	ID     string `json:"id"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
}
