package models

import "time"

// Post is an authored publication. The author is fixed at creation and
// never changes afterwards.
type Post struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	AuthorID uint      `json:"-" gorm:"index;not null"`
	Author   User      `json:"-"`
	Text     string    `json:"text"`
	Image    string    `json:"image,omitempty"`
	GroupID  *uint     `json:"group,omitempty" gorm:"index"`
	PubDate  time.Time `json:"pub_date"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Text  string `json:"text" validate:"required,min=1"`
	Image string `json:"image,omitempty" validate:"omitempty,max=500"`
	Group *uint  `json:"group,omitempty"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Text  string `json:"text,omitempty" validate:"omitempty,min=1"`
	Image string `json:"image,omitempty" validate:"omitempty,max=500"`
	Group *uint  `json:"group,omitempty"`
}

// PostResponse is the wire shape of a post, with the author rendered
// as a username.
type PostResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Image   string    `json:"image,omitempty"`
	Group   *uint     `json:"group"`
}

// NewPostResponse builds the response shape from a post with its
// author preloaded.
func NewPostResponse(p *Post) PostResponse {
	return PostResponse{
		ID:      p.ID,
		Author:  p.Author.Username,
		Text:    p.Text,
		PubDate: p.PubDate,
		Image:   p.Image,
		Group:   p.GroupID,
	}
}
