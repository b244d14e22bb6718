package repositories

import (
	"github.com/MaximSupreme/api-final-yatube/internal/models"
	"gorm.io/gorm"
)

// GroupRepository defines the interface for group data operations.
// Groups are read-only through the API, so there are no write methods.
type GroupRepository interface {
	GetGroups() ([]models.Group, error)
	GetGroupByID(id uint) (*models.Group, error)
}

// GormGroupRepository implements GroupRepository on a gorm DB
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GormGroupRepository
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

// GetGroups retrieves all groups
func (r *GormGroupRepository) GetGroups() ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Order("id").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// GetGroupByID retrieves a group by ID
func (r *GormGroupRepository) GetGroupByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}
