package model

import (
	"fmt"
	"time"
)

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role      ChatRole  `firestore:"role" json:"role"`
	Content   string    `firestore:"content" json:"content"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}

func (m ChatMessage) Validate() error {
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return fmt.Errorf("chat message: invalid role %q", m.Role)
	}
	if m.Content == "" {
		return fmt.Errorf("chat message: content is required")
	}
	return nil
}
