package domain

import (
	"strings"
	"time"
)

// VerifiedUser proves a chat has confirmed ownership of a corporate email.
// It survives across sessions: a new intake flow skips verification unless
// the user logs out.
type VerifiedUser struct {
	ChatID    int64     `json:"chat_id" dynamodbav:"chat_id"`
	Email     string    `json:"email" dynamodbav:"email"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Login returns the tracker login derived from the email local-part
// (everything before the first '@').
func (u *VerifiedUser) Login() string {
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

// MessageLogEntry is one audited inbound message. Append-only; never read
// back by the engine.
type MessageLogEntry struct {
	ChatID    int64     `json:"chat_id" dynamodbav:"chat_id"`
	EntryID   string    `json:"entry_id" dynamodbav:"entry_id"` // ULID, sorts by arrival
	Text      string    `json:"text" dynamodbav:"text"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}
