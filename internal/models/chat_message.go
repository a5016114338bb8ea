package models

import (
	"strings"

	"gorm.io/gorm"
)

// ChatMessage is a single message in the financial coach conversation.
// CreatedAt orders the conversation.
type ChatMessage struct {
	DefaultModel
	Message  string
	FromUser bool
}

func (m *ChatMessage) BeforeSave(_ *gorm.DB) error {
	m.Message = strings.TrimSpace(m.Message)

	if m.Message == "" {
		return ErrChatMessageEmpty
	}

	return nil
}
