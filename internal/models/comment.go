package models

import "time"

// Comment is authored content scoped to exactly one parent post. Both
// the author and the parent are fixed at creation.
type Comment struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	AuthorID uint      `json:"-" gorm:"index;not null"`
	Author   User      `json:"-"`
	PostID   uint      `json:"post" gorm:"index;not null"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// CommentResponse is the wire shape of a comment, with the author
// rendered as a username.
type CommentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Post    uint      `json:"post"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

// NewCommentResponse builds the response shape from a comment with its
// author preloaded.
func NewCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Author:  c.Author.Username,
		Post:    c.PostID,
		Text:    c.Text,
		Created: c.Created,
	}
}
