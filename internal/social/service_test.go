// Copyright (c) 2026 TrendHive. All rights reserved.

package social

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendhive/trendhive/internal/platform/apperr"
	"github.com/trendhive/trendhive/internal/platform/mail"
	"github.com/trendhive/trendhive/pkg/pagination"
)

// # Test Doubles

type fakeGroupRepository struct {
	groups  map[string]*Group
	members map[string]map[string]bool
}

func newFakeGroupRepository() *fakeGroupRepository {
	return &fakeGroupRepository{
		groups:  make(map[string]*Group),
		members: make(map[string]map[string]bool),
	}
}

func (repo *fakeGroupRepository) Create(_ context.Context, group *Group) error {
	for _, existing := range repo.groups {
		if existing.Name == group.Name {
			return apperr.Conflict("Group name already taken")
		}
	}
	clone := *group
	repo.groups[group.ID] = &clone
	return nil
}

func (repo *fakeGroupRepository) FindByID(_ context.Context, id string) (*Group, error) {
	group, ok := repo.groups[id]
	if !ok {
		return nil, apperr.NotFound("Group")
	}
	clone := *group
	clone.MemberCount = len(repo.members[id])
	return &clone, nil
}

func (repo *fakeGroupRepository) List(_ context.Context, _ string, limit, offset int) ([]Group, int, error) {
	var all []Group
	for id := range repo.groups {
		group, _ := repo.FindByID(context.Background(), id)
		all = append(all, *group)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if offset > total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (repo *fakeGroupRepository) Update(_ context.Context, group *Group) error {
	if _, ok := repo.groups[group.ID]; !ok {
		return apperr.NotFound("Group")
	}
	clone := *group
	repo.groups[group.ID] = &clone
	return nil
}

func (repo *fakeGroupRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.groups[id]; !ok {
		return apperr.NotFound("Group")
	}
	delete(repo.groups, id)
	delete(repo.members, id)
	return nil
}

func (repo *fakeGroupRepository) AddMember(_ context.Context, groupID, userID string) error {
	if repo.members[groupID] == nil {
		repo.members[groupID] = make(map[string]bool)
	}
	if repo.members[groupID][userID] {
		return apperr.Conflict("Already a member of this group")
	}
	repo.members[groupID][userID] = true
	return nil
}

func (repo *fakeGroupRepository) RemoveMember(_ context.Context, groupID, userID string) error {
	if !repo.members[groupID][userID] {
		return apperr.NotFound("Membership")
	}
	delete(repo.members[groupID], userID)
	return nil
}

func (repo *fakeGroupRepository) IsMember(_ context.Context, groupID, userID string) (bool, error) {
	return repo.members[groupID][userID], nil
}

func (repo *fakeGroupRepository) MemberGroupIDs(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for groupID, members := range repo.members {
		if members[userID] {
			ids = append(ids, groupID)
		}
	}
	return ids, nil
}

type fakePostRepository struct {
	posts    map[string]*Post
	likes    map[string]map[string]bool
	comments map[string]*Comment
	groups   *fakeGroupRepository
}

func newFakePostRepository(groups *fakeGroupRepository) *fakePostRepository {
	return &fakePostRepository{
		posts:    make(map[string]*Post),
		likes:    make(map[string]map[string]bool),
		comments: make(map[string]*Comment),
		groups:   groups,
	}
}

func (repo *fakePostRepository) Create(_ context.Context, post *Post) error {
	clone := *post
	repo.posts[post.ID] = &clone
	return nil
}

func (repo *fakePostRepository) FindByID(_ context.Context, id string) (*Post, error) {
	post, ok := repo.posts[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	return repo.hydrate(post), nil
}

func (repo *fakePostRepository) hydrate(post *Post) *Post {
	clone := *post
	clone.Likes = []string{}
	for userID := range repo.likes[post.ID] {
		clone.Likes = append(clone.Likes, userID)
	}
	sort.Strings(clone.Likes)
	clone.Comments = []Comment{}
	for _, comment := range repo.comments {
		if comment.PostID == post.ID {
			clone.Comments = append(clone.Comments, *comment)
		}
	}
	return &clone
}

func (repo *fakePostRepository) List(_ context.Context, authorID, groupID string, limit, offset int) ([]Post, int, error) {
	var all []Post
	for _, post := range repo.posts {
		if authorID != "" && post.AuthorID != authorID {
			continue
		}
		if groupID != "" && post.GroupID != groupID {
			continue
		}
		all = append(all, *repo.hydrate(post))
	}
	return pageOf(all, limit, offset)
}

func (repo *fakePostRepository) Feed(ctx context.Context, userID string, limit, offset int) ([]Post, int, error) {
	joined, _ := repo.groups.MemberGroupIDs(ctx, userID)
	joinedSet := make(map[string]bool, len(joined))
	for _, id := range joined {
		joinedSet[id] = true
	}

	var all []Post
	for _, post := range repo.posts {
		if post.AuthorID == userID || (post.GroupID != "" && joinedSet[post.GroupID]) {
			all = append(all, *repo.hydrate(post))
		}
	}
	return pageOf(all, limit, offset)
}

func (repo *fakePostRepository) Update(_ context.Context, post *Post) error {
	if _, ok := repo.posts[post.ID]; !ok {
		return apperr.NotFound("Post")
	}
	clone := *post
	repo.posts[post.ID] = &clone
	return nil
}

func (repo *fakePostRepository) Delete(_ context.Context, id string) error {
	if _, ok := repo.posts[id]; !ok {
		return apperr.NotFound("Post")
	}
	delete(repo.posts, id)
	delete(repo.likes, id)
	for commentID, comment := range repo.comments {
		if comment.PostID == id {
			delete(repo.comments, commentID)
		}
	}
	return nil
}

func (repo *fakePostRepository) HasLiked(_ context.Context, postID, userID string) (bool, error) {
	return repo.likes[postID][userID], nil
}

func (repo *fakePostRepository) AddLike(_ context.Context, postID, userID string) error {
	if repo.likes[postID] == nil {
		repo.likes[postID] = make(map[string]bool)
	}
	repo.likes[postID][userID] = true
	return nil
}

func (repo *fakePostRepository) RemoveLike(_ context.Context, postID, userID string) error {
	delete(repo.likes[postID], userID)
	return nil
}

func (repo *fakePostRepository) AddComment(_ context.Context, comment *Comment) error {
	clone := *comment
	repo.comments[comment.ID] = &clone
	return nil
}

func (repo *fakePostRepository) FindComment(_ context.Context, commentID string) (*Comment, error) {
	comment, ok := repo.comments[commentID]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	clone := *comment
	return &clone, nil
}

func (repo *fakePostRepository) DeleteComment(_ context.Context, commentID string) error {
	if _, ok := repo.comments[commentID]; !ok {
		return apperr.NotFound("Comment")
	}
	delete(repo.comments, commentID)
	return nil
}

func pageOf(all []Post, limit, offset int) ([]Post, int, error) {
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	if offset > total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

type fakeMemberResolver struct{}

func (fakeMemberResolver) ResolveMember(_ context.Context, userID string) (*MemberProfile, error) {
	return &MemberProfile{ID: userID, Name: "Member " + userID, Email: userID + "@example.com"}, nil
}

type recordingMailer struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (m *recordingMailer) Send(_ context.Context, message mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return nil
}

func (m *recordingMailer) SendAsync(ctx context.Context, message mail.Message) {
	_ = m.Send(ctx, message)
}

func (m *recordingMailer) sent() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mail.Message{}, m.messages...)
}

func newTestSocial() (*Service, *fakeGroupRepository, *fakePostRepository, *recordingMailer) {
	groups := newFakeGroupRepository()
	posts := newFakePostRepository(groups)
	mailer := &recordingMailer{}
	service := NewService(groups, posts, fakeMemberResolver{}, mailer)
	return service, groups, posts, mailer
}

func defaultPage() pagination.Params {
	return pagination.Params{Page: 1, Limit: 20}
}

// # Groups

func TestCreateGroup_CreatorAutoJoinsAndGetsWelcomeMail(t *testing.T) {
	service, groups, _, mailer := newTestSocial()

	group, err := service.CreateGroup(context.Background(), "creator-1", GroupInput{
		Name:        "Streetwear Finds",
		Description: "Drops and restocks",
	})
	require.NoError(t, err)
	assert.Equal(t, "streetwear-finds", group.Slug)
	assert.Equal(t, 1, group.MemberCount)

	isMember, err := groups.IsMember(context.Background(), group.ID, "creator-1")
	require.NoError(t, err)
	assert.True(t, isMember)

	require.Len(t, mailer.sent(), 1)
	assert.Contains(t, mailer.sent()[0].Subject, "Streetwear Finds")
}

func TestCreateGroup_DuplicateNameConflicts(t *testing.T) {
	service, _, _, _ := newTestSocial()

	_, err := service.CreateGroup(context.Background(), "creator-1", GroupInput{Name: "Sneakerheads"})
	require.NoError(t, err)

	_, err = service.CreateGroup(context.Background(), "creator-2", GroupInput{Name: "Sneakerheads"})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestUpdateGroup_OnlyCreator(t *testing.T) {
	service, _, _, _ := newTestSocial()

	group, err := service.CreateGroup(context.Background(), "creator-1", GroupInput{Name: "Vintage"})
	require.NoError(t, err)

	_, err = service.UpdateGroup(context.Background(), "intruder", group.ID, GroupInput{Name: "Hijacked"})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	updated, err := service.UpdateGroup(context.Background(), "creator-1", group.ID, GroupInput{Name: "Vintage Archive"})
	require.NoError(t, err)
	assert.Equal(t, "Vintage Archive", updated.Name)
}

func TestJoinGroup_TwiceConflicts(t *testing.T) {
	service, _, _, mailer := newTestSocial()

	group, err := service.CreateGroup(context.Background(), "creator-1", GroupInput{Name: "Denim"})
	require.NoError(t, err)

	joined, err := service.JoinGroup(context.Background(), "member-1", group.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, joined.MemberCount)
	assert.Len(t, mailer.sent(), 2) // creator welcome + member welcome

	_, err = service.JoinGroup(context.Background(), "member-1", group.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestLeaveGroup_CreatorCannotLeave(t *testing.T) {
	service, _, _, _ := newTestSocial()

	group, err := service.CreateGroup(context.Background(), "creator-1", GroupInput{Name: "Thrift"})
	require.NoError(t, err)

	err = service.LeaveGroup(context.Background(), "creator-1", group.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	_, err = service.JoinGroup(context.Background(), "member-1", group.ID)
	require.NoError(t, err)
	require.NoError(t, service.LeaveGroup(context.Background(), "member-1", group.ID))

	// Leaving again surfaces the missing membership.
	err = service.LeaveGroup(context.Background(), "member-1", group.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestGroupFeed_MembersOnly(t *testing.T) {
	service, _, _, _ := newTestSocial()

	group, err := service.CreateGroup(context.Background(), "creator-1", GroupInput{Name: "Fit Pics"})
	require.NoError(t, err)

	_, err = service.CreatePost(context.Background(), "creator-1", PostInput{
		Content: "First drop of the season",
		GroupID: group.ID,
	})
	require.NoError(t, err)

	_, _, err = service.GroupFeed(context.Background(), "outsider", group.ID, defaultPage())
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	_, err = service.JoinGroup(context.Background(), "outsider", group.ID)
	require.NoError(t, err)

	posts, total, err := service.GroupFeed(context.Background(), "outsider", group.ID, defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "First drop of the season", posts[0].Content)
}

// # Posts

func TestCreatePost_GroupPostRequiresMembership(t *testing.T) {
	service, _, _, _ := newTestSocial()

	group, err := service.CreateGroup(context.Background(), "creator-1", GroupInput{Name: "Haul Reviews"})
	require.NoError(t, err)

	_, err = service.CreatePost(context.Background(), "outsider", PostInput{
		Content: "Sneaking in",
		GroupID: group.ID,
	})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	post, err := service.CreatePost(context.Background(), "creator-1", PostInput{
		Content: "Welcome post",
		GroupID: group.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, group.ID, post.GroupID)
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}

func TestUpdateAndDeletePost_AuthorOnly(t *testing.T) {
	service, _, _, _ := newTestSocial()

	post, err := service.CreatePost(context.Background(), "author-1", PostInput{Content: "Original"})
	require.NoError(t, err)

	_, err = service.UpdatePost(context.Background(), "other", post.ID, PostInput{Content: "Edited"})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	err = service.DeletePost(context.Background(), "other", post.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	updated, err := service.UpdatePost(context.Background(), "author-1", post.ID, PostInput{Content: "Edited"})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Content)

	require.NoError(t, service.DeletePost(context.Background(), "author-1", post.ID))
	_, err = service.GetPost(context.Background(), post.ID)
	require.Error(t, err)
}

func TestToggleLike_FlipsOnAndOff(t *testing.T) {
	service, _, _, _ := newTestSocial()

	post, err := service.CreatePost(context.Background(), "author-1", PostInput{Content: "Like me"})
	require.NoError(t, err)

	liked, err := service.ToggleLike(context.Background(), "fan-1", post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fan-1"}, liked.Likes)

	unliked, err := service.ToggleLike(context.Background(), "fan-1", post.ID)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)
}

func TestComments_DeleteByCommentAuthorOnly(t *testing.T) {
	service, _, _, _ := newTestSocial()

	post, err := service.CreatePost(context.Background(), "author-1", PostInput{Content: "Discuss"})
	require.NoError(t, err)

	withComment, err := service.AddComment(context.Background(), "commenter-1", post.ID, "Hot take")
	require.NoError(t, err)
	require.Len(t, withComment.Comments, 1)
	commentID := withComment.Comments[0].ID

	// The post author does not own the comment.
	err = service.DeleteComment(context.Background(), "author-1", post.ID, commentID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// A mismatched post/comment pair is treated as missing.
	err = service.DeleteComment(context.Background(), "commenter-1", "other-post", commentID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	require.NoError(t, service.DeleteComment(context.Background(), "commenter-1", post.ID, commentID))

	refreshed, err := service.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, refreshed.Comments)
}

func TestPersonalFeed_OwnPostsPlusJoinedGroups(t *testing.T) {
	service, _, _, _ := newTestSocial()

	group, err := service.CreateGroup(context.Background(), "creator-1", GroupInput{Name: "Deals"})
	require.NoError(t, err)

	_, err = service.CreatePost(context.Background(), "creator-1", PostInput{Content: "Group deal", GroupID: group.ID})
	require.NoError(t, err)
	_, err = service.CreatePost(context.Background(), "reader", PostInput{Content: "My own post"})
	require.NoError(t, err)
	_, err = service.CreatePost(context.Background(), "stranger", PostInput{Content: "Unrelated"})
	require.NoError(t, err)

	// Before joining: only the reader's own post.
	posts, total, err := service.PersonalFeed(context.Background(), "reader", defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "My own post", posts[0].Content)

	_, err = service.JoinGroup(context.Background(), "reader", group.ID)
	require.NoError(t, err)

	_, total, err = service.PersonalFeed(context.Background(), "reader", defaultPage())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}
