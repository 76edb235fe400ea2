// Copyright (c) 2026 TrendHive. All rights reserved.

/*
Package social implements the community side of TrendHive: groups with
memberships, and posts with likes and comments.

Architecture:

  - Service: Orchestrates group lifecycle, membership rules, and the feed.
  - Repositories: PostgreSQL persistence for groups, memberships, posts,
    likes, and comments.
  - Mail: Fire-and-forget welcome emails on group join.

Ownership rules are enforced here, not in handlers: only the creator mutates
a group, only the author mutates a post, only the comment author deletes a
comment.
*/
package social

import (
	"context"

	"github.com/trendhive/trendhive/internal/platform/mail"
)

// MemberProfile is the slice of an account the social domain needs for
// notifications.
type MemberProfile struct {
	ID    string
	Name  string
	Email string
}

// MemberResolver looks up account details for notification dispatch.
// Implemented by an adapter over the auth service.
type MemberResolver interface {
	ResolveMember(ctx context.Context, userID string) (*MemberProfile, error)
}

// Service implements the social use cases.
type Service struct {
	groupRepository GroupRepository
	postRepository  PostRepository
	members         MemberResolver
	mailer          mail.Sender
}

// NewService constructs a new social [Service] with its dependencies.
func NewService(
	groupRepo GroupRepository,
	postRepo PostRepository,
	members MemberResolver,
	mailer mail.Sender,
) *Service {
	return &Service{
		groupRepository: groupRepo,
		postRepository:  postRepo,
		members:         members,
		mailer:          mailer,
	}
}
