package repositories

import (
	"github.com/MaximSupreme/api-final-yatube/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPosts(limit, offset int) ([]models.Post, error)
	CountPosts() (int64, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
}

// GormPostRepository implements PostRepository on a gorm DB
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// CreatePost creates a new post and reloads its author association
func (r *GormPostRepository) CreatePost(post *models.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return err
	}
	return r.db.Preload("Author").First(post, post.ID).Error
}

// GetPostByID retrieves a post by ID with its author preloaded
func (r *GormPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts retrieves a limit/offset window of posts, newest first
func (r *GormPostRepository) GetPosts(limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.Preload("Author").Order("pub_date DESC, id DESC").Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPosts returns the total number of posts
func (r *GormPostRepository) CountPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// UpdatePost updates an existing post
func (r *GormPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost deletes a post by ID together with its comments
func (r *GormPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
