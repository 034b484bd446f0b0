package models

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one message of a planning conversation.
type ChatMessage struct {
	ID         int64     `db:"id"`
	PlanningID int64     `db:"planning_id"`
	UserID     uuid.UUID `db:"user_id"`
	Role       ChatRole  `db:"role"`
	Content    string    `db:"content"`
	CreatedAt  time.Time `db:"created_at"`
}
