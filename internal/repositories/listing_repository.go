package repositories

import (
	"github.com/campuswall/backend/internal/models"
	"gorm.io/gorm"
)

// ListingRepository defines the interface for marketplace listing operations
type ListingRepository interface {
	CreateListing(listing *models.Listing) error
	GetListingByID(id uint) (*models.Listing, error)
	GetActiveListings(page, limit int) ([]models.Listing, int64, error)
	GetPendingListings() ([]models.Listing, error)
	GetListingsBySellerID(sellerID uint) ([]models.Listing, error)
	UpdateStatus(id uint, status string) error
}

type postgresListingRepository struct {
	db *gorm.DB
}

func NewPostgresListingRepository(db *gorm.DB) ListingRepository {
	return &postgresListingRepository{db: db}
}

func (r *postgresListingRepository) CreateListing(listing *models.Listing) error {
	return r.db.Create(listing).Error
}

func (r *postgresListingRepository) GetListingByID(id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.First(&listing, id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *postgresListingRepository) GetActiveListings(page, limit int) ([]models.Listing, int64, error) {
	var listings []models.Listing
	var total int64

	r.db.Model(&models.Listing{}).Where("status = ?", models.ListingStatusActive).Count(&total)

	offset := (page - 1) * limit
	err := r.db.Where("status = ?", models.ListingStatusActive).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&listings).Error

	return listings, total, err
}

func (r *postgresListingRepository) GetPendingListings() ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Where("status = ?", models.ListingStatusPending).
		Order("created_at ASC").
		Find(&listings).Error
	return listings, err
}

func (r *postgresListingRepository) GetListingsBySellerID(sellerID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (r *postgresListingRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Listing{}).Where("id = ?", id).Update("status", status).Error
}
