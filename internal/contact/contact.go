// Copyright (c) 2026 TrendHive. All rights reserved.

// Package contact implements the public contact form: submissions are
// persisted for the support team and acknowledged by email.
package contact

import "time"

// # Field Identifiers (JSON + validation)

const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone_number"
	FieldSubject = "subject"
	FieldMessage = "message"
)

// Submission is one contact form entry.
type Submission struct {
	ID          string    `json:"id"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}
