package repositories

import (
	"github.com/campuswall/backend/internal/models"
	"gorm.io/gorm"
)

// LostItemRepository defines the interface for lost & found operations
type LostItemRepository interface {
	CreateLostItem(item *models.LostItem) error
	GetLostItemByID(id uint) (*models.LostItem, error)
	GetOpenReports(kind string) ([]models.LostItem, error)
	Resolve(id, reporterID uint) error
}

type postgresLostItemRepository struct {
	db *gorm.DB
}

func NewPostgresLostItemRepository(db *gorm.DB) LostItemRepository {
	return &postgresLostItemRepository{db: db}
}

func (r *postgresLostItemRepository) CreateLostItem(item *models.LostItem) error {
	return r.db.Create(item).Error
}

func (r *postgresLostItemRepository) GetLostItemByID(id uint) (*models.LostItem, error) {
	var item models.LostItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// GetOpenReports retrieves unresolved reports, optionally filtered by kind
func (r *postgresLostItemRepository) GetOpenReports(kind string) ([]models.LostItem, error) {
	var items []models.LostItem
	query := r.db.Where("resolved = ?", false)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

// Resolve closes a report, scoped to its reporter
func (r *postgresLostItemRepository) Resolve(id, reporterID uint) error {
	return r.db.Model(&models.LostItem{}).
		Where("id = ? AND reporter_id = ?", id, reporterID).
		Update("resolved", true).Error
}
