package models

import "time"

// EmailMessage is an email sent through the backend.
type EmailMessage struct {
	ID        string    `json:"_id"`
	FromEmail string    `json:"fromEmail,omitempty"`
	ToEmail   string    `json:"toEmail"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	SentBy    UserRef   `json:"sentBy"`
	IsFlagged bool      `json:"isFlagged,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// SendEmailInput is the body of POST /api/email.
type SendEmailInput struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
