package models

import "time"

// Follow is a directed edge: UserID follows FollowingID. The composite
// unique index is the authoritative guard against duplicate edges; the
// application-level check only produces a friendlier error first.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"-" gorm:"index;uniqueIndex:idx_follows_user_following;not null"`
	User        User      `json:"-"`
	FollowingID uint      `json:"-" gorm:"uniqueIndex:idx_follows_user_following;not null"`
	Following   User      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateFollowRequest defines the request body for creating a follow
// edge. The follower is always the authenticated user; a "user" field
// in the body is ignored.
type CreateFollowRequest struct {
	Following string `json:"following" validate:"required"`
}

// FollowResponse is the wire shape of a follow edge, both ends
// rendered as usernames.
type FollowResponse struct {
	User      string `json:"user"`
	Following string `json:"following"`
}

// NewFollowResponse builds the response shape from a follow edge with
// both users preloaded.
func NewFollowResponse(f *Follow) FollowResponse {
	return FollowResponse{
		User:      f.User.Username,
		Following: f.Following.Username,
	}
}
