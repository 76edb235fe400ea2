// Copyright (c) 2026 TrendHive. All rights reserved.

package social

import "time"

// Post is a feed entry, either personal or published inside a group.
type Post struct {
	ID       string `json:"id"`
	AuthorID string `json:"author_id"`

	// GroupID is empty for personal posts.
	GroupID string `json:"group_id,omitempty"`

	Content  string `json:"content"`
	ImageURL string `json:"image_url,omitempty"`

	// Likes holds the ids of users who currently like the post.
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is a single reply on a post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
