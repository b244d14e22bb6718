package repositories

import (
	"errors"

	"github.com/MaximSupreme/api-final-yatube/internal/models"
	"gorm.io/gorm"
)

// ErrDuplicateFollow is returned when a follow edge for the same
// (user, following) pair already exists. The application-level check
// produces it first; the composite unique index produces it under a
// concurrent race.
var ErrDuplicateFollow = errors.New("already following this user")

// FollowRepository defines the interface for follow data operations.
// The relation is append-only: list and create, nothing else.
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	IsFollowing(userID, followingID uint) (bool, error)
	GetFollowsByUserID(userID uint, search string) ([]models.Follow, error)
}

// GormFollowRepository implements FollowRepository on a gorm DB
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GormFollowRepository
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// CreateFollow inserts a follow edge and reloads both user
// associations. A unique-index violation maps to ErrDuplicateFollow.
func (r *GormFollowRepository) CreateFollow(follow *models.Follow) error {
	if err := r.db.Create(follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateFollow
		}
		return err
	}
	return r.db.Preload("User").Preload("Following").First(follow, follow.ID).Error
}

// IsFollowing reports whether the edge (userID, followingID) exists
func (r *GormFollowRepository) IsFollowing(userID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("user_id = ? AND following_id = ?", userID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowsByUserID retrieves the outgoing edges of one user,
// optionally narrowed to followed users whose username contains search
func (r *GormFollowRepository) GetFollowsByUserID(userID uint, search string) ([]models.Follow, error) {
	var follows []models.Follow
	q := r.db.Preload("User").Preload("Following").Where("user_id = ?", userID)
	if search != "" {
		q = q.Where("following_id IN (?)",
			r.db.Model(&models.User{}).Select("id").Where("username LIKE ?", "%"+search+"%"),
		)
	}
	if err := q.Order("id").Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}
