package repositories

import (
	"github.com/campuswall/backend/internal/models"
	"gorm.io/gorm"
)

// RequestRepository defines the interface for item request operations
type RequestRepository interface {
	CreateRequest(request *models.ItemRequest) error
	GetRequestByID(id uint) (*models.ItemRequest, error)
	GetOpenByCategory(categoryID uint) ([]models.ItemRequest, error)
	GetOpenByRequesterID(requesterID uint) ([]models.ItemRequest, error)
	CloseRequest(id uint) error
}

type postgresRequestRepository struct {
	db *gorm.DB
}

func NewPostgresRequestRepository(db *gorm.DB) RequestRepository {
	return &postgresRequestRepository{db: db}
}

func (r *postgresRequestRepository) CreateRequest(request *models.ItemRequest) error {
	return r.db.Create(request).Error
}

func (r *postgresRequestRepository) GetRequestByID(id uint) (*models.ItemRequest, error) {
	var request models.ItemRequest
	if err := r.db.First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// GetOpenByCategory retrieves every open request in a category, the input to
// suggestion-matching fan-out.
func (r *postgresRequestRepository) GetOpenByCategory(categoryID uint) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	err := r.db.Where("category_id = ? AND open = ?", categoryID, true).
		Order("created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *postgresRequestRepository) GetOpenByRequesterID(requesterID uint) ([]models.ItemRequest, error) {
	var requests []models.ItemRequest
	err := r.db.Where("requester_id = ? AND open = ?", requesterID, true).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *postgresRequestRepository) CloseRequest(id uint) error {
	return r.db.Model(&models.ItemRequest{}).Where("id = ?", id).Update("open", false).Error
}
