// Copyright (c) 2026 TrendHive. All rights reserved.

package social

import (
	"context"
	"log/slog"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/ctxutil"
	"github.com/trendhive/trendhive/internal/platform/mail"
	"github.com/trendhive/trendhive/internal/platform/validate"
	"github.com/trendhive/trendhive/pkg/pagination"
	"github.com/trendhive/trendhive/pkg/slug"
	"github.com/trendhive/trendhive/pkg/uuidv7"
)

// # Group Lifecycle

// GroupInput holds the writable group fields.
type GroupInput struct {
	Name        string
	Description string
}

func (input GroupInput) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 100).
		MaxLen(FieldDescription, input.Description, 1000)
	return validator.Err()
}

/*
ListGroups returns a page of groups with an optional free-text search.

Parameters:
  - ctx: context.Context
  - search: string
  - params: pagination.Params

Returns:
  - []Group, int: Page and total match count
  - error: Storage errors
*/
func (service *Service) ListGroups(ctx context.Context, search string, params pagination.Params) ([]Group, int, error) {
	return service.groupRepository.List(ctx, search, params.Limit, params.Offset())
}

/*
GetGroup resolves a single group.

Parameters:
  - ctx: context.Context
  - groupID: string

Returns:
  - *Group: Group with live member count
  - error: apperr.NotFound or storage errors
*/
func (service *Service) GetGroup(ctx context.Context, groupID string) (*Group, error) {
	return service.groupRepository.FindByID(ctx, groupID)
}

/*
CreateGroup opens a new group and enrolls the creator as its first member.

Parameters:
  - ctx: context.Context
  - creatorID: string
  - input: GroupInput

Returns:
  - *Group: Created group
  - error: Validation, Conflict (duplicate name), or storage errors
*/
func (service *Service) CreateGroup(ctx context.Context, creatorID string, input GroupInput) (*Group, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	group := &Group{
		ID:          uuidv7.New(),
		Name:        input.Name,
		Slug:        slug.From(input.Name),
		Description: input.Description,
		CreatorID:   creatorID,
	}

	if err := service.groupRepository.Create(ctx, group); err != nil {
		return nil, err
	}

	// The creator is always the first member.
	if err := service.groupRepository.AddMember(ctx, group.ID, creatorID); err != nil {
		return nil, err
	}
	group.MemberCount = 1

	service.sendWelcome(ctx, creatorID, group.Name)
	return group, nil
}

/*
UpdateGroup edits a group. Creator only.

Parameters:
  - ctx: context.Context
  - actorID, groupID: string
  - input: GroupInput

Returns:
  - *Group: Updated group
  - error: Forbidden, validation, Conflict, or storage errors
*/
func (service *Service) UpdateGroup(ctx context.Context, actorID, groupID string, input GroupInput) (*Group, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	group, err := service.groupRepository.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if group.CreatorID != actorID {
		return nil, apperr.Forbidden("Only the group creator can edit the group")
	}

	group.Name = input.Name
	group.Slug = slug.From(input.Name)
	group.Description = input.Description

	if err := service.groupRepository.Update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

/*
DeleteGroup removes a group with all its posts and memberships. Creator only.

Parameters:
  - ctx: context.Context
  - actorID, groupID: string

Returns:
  - error: Forbidden, apperr.NotFound, or storage errors
*/
func (service *Service) DeleteGroup(ctx context.Context, actorID, groupID string) error {
	group, err := service.groupRepository.FindByID(ctx, groupID)
	if err != nil {
		return err
	}

	if group.CreatorID != actorID {
		return apperr.Forbidden("Only the group creator can delete the group")
	}

	return service.groupRepository.Delete(ctx, groupID)
}

// # Membership

/*
JoinGroup enrolls the user and greets them by email.

Parameters:
  - ctx: context.Context
  - userID, groupID: string

Returns:
  - *Group: Group with refreshed member count
  - error: apperr.NotFound, Conflict (already a member), or storage errors
*/
func (service *Service) JoinGroup(ctx context.Context, userID, groupID string) (*Group, error) {
	group, err := service.groupRepository.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if err := service.groupRepository.AddMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	group.MemberCount++

	service.sendWelcome(ctx, userID, group.Name)
	return group, nil
}

/*
LeaveGroup drops the user's membership.

Description: The creator cannot leave their own group; they must delete it.

Parameters:
  - ctx: context.Context
  - userID, groupID: string

Returns:
  - error: Forbidden (creator), apperr.NotFound (group or membership), or
    storage errors
*/
func (service *Service) LeaveGroup(ctx context.Context, userID, groupID string) error {
	group, err := service.groupRepository.FindByID(ctx, groupID)
	if err != nil {
		return err
	}

	if group.CreatorID == userID {
		return apperr.Forbidden("The group creator cannot leave the group")
	}

	return service.groupRepository.RemoveMember(ctx, groupID, userID)
}

/*
GroupFeed returns the group's posts. Members only.

Parameters:
  - ctx: context.Context
  - userID, groupID: string
  - params: pagination.Params

Returns:
  - []Post, int: Hydrated page and total
  - error: Forbidden (non-member), apperr.NotFound, or storage errors
*/
func (service *Service) GroupFeed(ctx context.Context, userID, groupID string, params pagination.Params) ([]Post, int, error) {
	if _, err := service.groupRepository.FindByID(ctx, groupID); err != nil {
		return nil, 0, err
	}

	isMember, err := service.groupRepository.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, 0, err
	}
	if !isMember {
		return nil, 0, apperr.Forbidden("Join the group to see its feed")
	}

	return service.postRepository.List(ctx, "", groupID, params.Limit, params.Offset())
}

// sendWelcome dispatches the join greeting fire-and-forget. A resolution
// failure is logged, never surfaced.
func (service *Service) sendWelcome(ctx context.Context, userID, groupName string) {
	member, err := service.members.ResolveMember(ctx, userID)
	if err != nil {
		ctxutil.GetLogger(ctx).Warn("group_welcome_resolve_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return
	}

	service.mailer.SendAsync(ctx, mail.GroupWelcomeMessage(member.Email, member.Name, groupName))
}
