// Copyright (c) 2026 TrendHive. All rights reserved.

package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/dberr"
)

// PostgresGroupRepository implements [GroupRepository] using pgx.
type PostgresGroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates a new PostgreSQL implementation of [GroupRepository].
func NewGroupRepository(pool *pgxpool.Pool) *PostgresGroupRepository {
	return &PostgresGroupRepository{pool: pool}
}

/*
Create persists a new group record into the social.community table.

Parameters:
  - ctx: context.Context
  - group: *Group

Returns:
  - error: apperr.Conflict on duplicate name, or storage failures
*/
func (repository *PostgresGroupRepository) Create(ctx context.Context, group *Group) error {
	const query = `
		INSERT INTO social.community (id, name, slug, description, creatorid, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	group.CreatedAt = now
	group.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		group.ID,
		group.Name,
		group.Slug,
		group.Description,
		group.CreatorID,
		group.CreatedAt,
		group.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_group_repo_create")
	}

	return nil
}

/*
FindByID resolves a group with its live member count.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - *Group: Hydrated group entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresGroupRepository) FindByID(ctx context.Context, id string) (*Group, error) {
	const query = `
		SELECT g.id, g.name, g.slug, g.description, g.creatorid, g.createdat, g.updatedat,
		       (SELECT count(*) FROM social.community_member m WHERE m.groupid = g.id) AS membercount
		FROM social.community g
		WHERE g.id = $1`

	group := &Group{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Slug,
		&group.Description,
		&group.CreatorID,
		&group.CreatedAt,
		&group.UpdatedAt,
		&group.MemberCount,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Group")
		}
		return nil, fmt.Errorf("postgres_group_repo_find_failed: %w", err)
	}

	return group, nil
}

/*
List returns a page of groups, newest first.

Parameters:
  - ctx: context.Context
  - search: string (matches name and description, empty lists all)
  - limit, offset: int

Returns:
  - []Group, int: Page and total match count
  - error: Execution errors
*/
func (repository *PostgresGroupRepository) List(ctx context.Context, search string, limit, offset int) ([]Group, int, error) {
	const query = `
		SELECT g.id, g.name, g.slug, g.description, g.creatorid, g.createdat, g.updatedat,
		       (SELECT count(*) FROM social.community_member m WHERE m.groupid = g.id) AS membercount,
		       count(*) OVER() AS totalcount
		FROM social.community g
		WHERE $1 = '' OR g.name ILIKE '%' || $1 || '%' OR g.description ILIKE '%' || $1 || '%'
		ORDER BY g.createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_group_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var groups []Group
	var total int
	for rows.Next() {
		var group Group
		err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Slug,
			&group.Description,
			&group.CreatorID,
			&group.CreatedAt,
			&group.UpdatedAt,
			&group.MemberCount,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_group_repo_list_scan_failed: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_group_repo_list_rows_failed: %w", err)
	}

	return groups, total, nil
}

/*
Update persists the mutable group fields.

Parameters:
  - ctx: context.Context
  - group: *Group

Returns:
  - error: apperr.NotFound, apperr.Conflict (name), or update failures
*/
func (repository *PostgresGroupRepository) Update(ctx context.Context, group *Group) error {
	const query = `
		UPDATE social.community
		SET name = $2, slug = $3, description = $4, updatedat = $5
		WHERE id = $1`

	group.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(ctx, query,
		group.ID,
		group.Name,
		group.Slug,
		group.Description,
		group.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "postgres_group_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Group")
	}

	return nil
}

/*
Delete removes the group. Memberships and posts cascade via foreign keys.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresGroupRepository) Delete(ctx context.Context, id string) error {
	const query = "DELETE FROM social.community WHERE id = $1"

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("postgres_group_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Group")
	}

	return nil
}

// # Memberships

/*
AddMember enrolls a user into a group.

Parameters:
  - ctx: context.Context
  - groupID, userID: string

Returns:
  - error: apperr.Conflict on duplicate membership, or execution errors
*/
func (repository *PostgresGroupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	const query = `
		INSERT INTO social.community_member (groupid, userid, joinedat)
		VALUES ($1, $2, $3)`

	if _, err := repository.pool.Exec(ctx, query, groupID, userID, time.Now()); err != nil {
		return dberr.Wrap(err, "postgres_group_repo_add_member")
	}

	return nil
}

/*
RemoveMember drops a membership.

Parameters:
  - ctx: context.Context
  - groupID, userID: string

Returns:
  - error: apperr.NotFound when the membership does not exist
*/
func (repository *PostgresGroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	const query = "DELETE FROM social.community_member WHERE groupid = $1 AND userid = $2"

	tag, err := repository.pool.Exec(ctx, query, groupID, userID)
	if err != nil {
		return fmt.Errorf("postgres_group_repo_remove_member_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Membership")
	}

	return nil
}

/*
IsMember reports whether the user belongs to the group.

Parameters:
  - ctx: context.Context
  - groupID, userID: string

Returns:
  - bool: Membership flag
  - error: Execution errors
*/
func (repository *PostgresGroupRepository) IsMember(ctx context.Context, groupID, userID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM social.community_member WHERE groupid = $1 AND userid = $2
		)`

	var isMember bool
	if err := repository.pool.QueryRow(ctx, query, groupID, userID).Scan(&isMember); err != nil {
		return false, fmt.Errorf("postgres_group_repo_is_member_failed: %w", err)
	}

	return isMember, nil
}

/*
MemberGroupIDs lists the ids of every group the user has joined.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - []string: Group ids (empty slice when none)
  - error: Execution errors
*/
func (repository *PostgresGroupRepository) MemberGroupIDs(ctx context.Context, userID string) ([]string, error) {
	const query = "SELECT groupid FROM social.community_member WHERE userid = $1 ORDER BY joinedat"

	rows, err := repository.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_group_repo_member_groups_failed: %w", err)
	}
	defer rows.Close()

	groupIDs := []string{}
	for rows.Next() {
		var groupID string
		if err := rows.Scan(&groupID); err != nil {
			return nil, fmt.Errorf("postgres_group_repo_member_groups_scan_failed: %w", err)
		}
		groupIDs = append(groupIDs, groupID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_group_repo_member_groups_rows_failed: %w", err)
	}

	return groupIDs, nil
}
