package domain

import "fmt"

// Ticket is the outbound issue payload. Transient: built from a completed
// Session plus the VerifiedUser record, submitted once, never persisted.
type Ticket struct {
	Summary     string `validate:"required"`
	Description string `validate:"required"`
	Queue       string `validate:"required"`
	Author      string `validate:"required"`
	Followers   []string
	Attachment  *Attachment
}

// Attachment is an optional image attached to a ticket.
type Attachment struct {
	Filename string
	Data     []byte
}

// CreatedTicket is the tracker's answer to a successful submission.
type CreatedTicket struct {
	Key string `json:"key"`
	ID  string `json:"id"`
}

// BuildTicket assembles the outbound payload from a completed session.
// The summary is prefixed with the business unit, and the description
// gains the reporter's corporate email and phone number so the tracker
// ticket is self-contained.
func BuildTicket(s *Session, user *VerifiedUser, queue string, attachment *Attachment) *Ticket {
	summary := s.Summary
	if s.BusinessUnit != "" {
		summary = fmt.Sprintf("[%s] %s", s.BusinessUnit, summary)
	}
	description := fmt.Sprintf("%s\n\nКорпоративная почта: %s\nТелефон: %s",
		s.Description, user.Email, s.Phone)
	login := user.Login()
	return &Ticket{
		Summary:     summary,
		Description: description,
		Queue:       queue,
		Author:      login,
		Followers:   []string{login},
		Attachment:  attachment,
	}
}
