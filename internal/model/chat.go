package model

import "time"

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderMatch  Sender = "match"
	SenderSystem Sender = "system"
)

// ChatMessage is one immutable entry of a practice conversation.
type ChatMessage struct {
	ID        string    `json:"id"` // ULID, increasing within a process
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
