package http

import (
	"time"

	"chat-feed/domain"

	"github.com/samber/lo"
)

// MessageRequest is the inbound JSON payload.
type MessageRequest struct {
	SenderName string `json:"sender_name" validate:"required"`
	Text       string `json:"text"`
}

type MessageResponse struct {
	MessageID      int64     `json:"message_id"`
	SenderName     string    `json:"sender_name"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
	SenderSequence int64     `json:"sender_sequence"`
}

// MessagesListResponse carries the recent window, newest first, at most
// ten entries, never anything newer than the message just accepted.
type MessagesListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

func toMessagesListResponse(window []domain.Message) MessagesListResponse {
	return MessagesListResponse{
		Messages: lo.Map(window, func(m domain.Message, _ int) MessageResponse {
			return MessageResponse{
				MessageID:      m.MessageID,
				SenderName:     m.SenderName,
				Text:           m.Text,
				CreatedAt:      m.CreatedAt,
				SenderSequence: m.SenderSequence,
			}
		}),
	}
}
