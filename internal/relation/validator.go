// Package relation enforces the integrity rules of the follow relation
// and of comment-to-post scoping. Both checks are decision functions
// over store state; neither writes anything.
package relation

import (
	"errors"

	"github.com/MaximSupreme/api-final-yatube/internal/models"
	"github.com/MaximSupreme/api-final-yatube/internal/repositories"
	"gorm.io/gorm"
)

var (
	// ErrSelfFollow is returned when a user tries to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrParentNotFound is returned when the post a comment operation
	// is scoped to does not exist.
	ErrParentNotFound = errors.New("post not found")
)

// Validator checks relationship invariants before the handlers write.
type Validator struct {
	followRepository repositories.FollowRepository
	postRepository   repositories.PostRepository
}

// NewValidator creates a new Validator
func NewValidator(followRepo repositories.FollowRepository, postRepo repositories.PostRepository) *Validator {
	return &Validator{
		followRepository: followRepo,
		postRepository:   postRepo,
	}
}

// ValidateFollowCreate rejects self-follows and pairs that already
// have an edge. The duplicate check is a fast path; the store's
// composite unique index remains the authoritative guard against the
// concurrent check-then-insert race.
func (v *Validator) ValidateFollowCreate(userID, followingID uint) error {
	if userID == followingID {
		return ErrSelfFollow
	}
	exists, err := v.followRepository.IsFollowing(userID, followingID)
	if err != nil {
		return err
	}
	if exists {
		return repositories.ErrDuplicateFollow
	}
	return nil
}

// ResolveCommentParent looks up the post a comment operation is nested
// under. Every comment list or create goes through here before any
// authorization check.
func (v *Validator) ResolveCommentParent(postID uint) (*models.Post, error) {
	post, err := v.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	return post, nil
}
