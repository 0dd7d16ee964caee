package repositories

import (
	"errors"

	"skillboard_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPortfolioItemNotFound = errors.New("portfolio item not found")
	ErrUploadNotFound        = errors.New("upload not found")
)

type PortfolioRepository interface {
	CreateItem(db *gorm.DB, item *models.PortfolioItem) error
	CreateItemWithUpload(db *gorm.DB, item *models.PortfolioItem, upload *models.Upload) error

	FindUploadByID(db *gorm.DB, id string) (*models.Upload, error)
	FindUploadPathsForStudent(db *gorm.DB, studentID string) ([]string, error)

	DeleteItemsForStudent(db *gorm.DB, studentID string) error
	DeleteUploadsForUser(db *gorm.DB, userID string) error
}

type PortfolioRepositoryImpl struct{}

func NewPortfolioRepository() PortfolioRepository {
	return &PortfolioRepositoryImpl{}
}

func (r *PortfolioRepositoryImpl) CreateItem(db *gorm.DB, item *models.PortfolioItem) error {
	return db.Create(item).Error
}

// CreateItemWithUpload stores the upload row first, then the portfolio item
// referencing it. Callers run this inside a transaction.
func (r *PortfolioRepositoryImpl) CreateItemWithUpload(db *gorm.DB, item *models.PortfolioItem, upload *models.Upload) error {
	if err := db.Create(upload).Error; err != nil {
		return err
	}
	item.UploadID = &upload.ID
	return db.Create(item).Error
}

func (r *PortfolioRepositoryImpl) FindUploadByID(db *gorm.DB, id string) (*models.Upload, error) {
	var upload models.Upload
	err := db.First(&upload, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return &upload, nil
}

// FindUploadPathsForStudent returns the storage paths referenced by the
// student's portfolio, for file cleanup on cascading delete.
func (r *PortfolioRepositoryImpl) FindUploadPathsForStudent(db *gorm.DB, studentID string) ([]string, error) {
	var paths []string
	err := db.Model(&models.Upload{}).
		Joins("JOIN portfolio_items pi ON pi.upload_id = uploads.id").
		Where("pi.student_id = ?", studentID).
		Pluck("uploads.path", &paths).Error
	return paths, err
}

func (r *PortfolioRepositoryImpl) DeleteItemsForStudent(db *gorm.DB, studentID string) error {
	return db.Where("student_id = ?", studentID).Delete(&models.PortfolioItem{}).Error
}

func (r *PortfolioRepositoryImpl) DeleteUploadsForUser(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.Upload{}).Error
}
