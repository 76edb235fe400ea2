// Copyright (c) 2026 TrendHive. All rights reserved.

package social

import "time"

// # Field Identifiers (JSON + validation)

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldContent     = "content"
	FieldGroupID     = "group_id"
	FieldMessage     = "message"
)

// Group is a member-run community inside the social feed.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatorID   string    `json:"creator_id"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
