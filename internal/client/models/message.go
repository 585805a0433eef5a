package models

import "time"

// OutgoingMessage is the body of POST /api/messages. ImageData is base64 or nil.
type OutgoingMessage struct {
	Content      string   `json:"content"`
	RecipientIDs []string `json:"recipient_ids"`
	ImageData    *string  `json:"image_data"`
}

// Message is an entry of GET /api/messages.
type Message struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"sender_id"`
	SenderName   string    `json:"sender_name,omitempty"`
	RecipientIDs []string  `json:"recipient_ids"`
	Content      string    `json:"content"`
	ImageData    *string   `json:"image_data"`
	Timestamp    time.Time `json:"timestamp"`
	ReadBy       []string  `json:"read_by"`
}
