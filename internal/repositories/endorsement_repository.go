package repositories

import (
	"errors"

	"skillboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDuplicateEndorsement = errors.New("endorsement already exists for this session")

type EndorsementRepository interface {
	Create(db *gorm.DB, endorsement *models.Endorsement) error
	CountBySkill(db *gorm.DB, skillID string) (int64, error)
	CountAll(db *gorm.DB) (int64, error)
	DeleteForSkills(db *gorm.DB, skillIDs []string) error
}

type EndorsementRepositoryImpl struct{}

func NewEndorsementRepository() EndorsementRepository {
	return &EndorsementRepositoryImpl{}
}

// Create inserts the endorsement row. The (skill_id, session_key) unique
// index is the only dedupe mechanism: no SELECT-before-INSERT, the violation
// itself is the signal.
func (r *EndorsementRepositoryImpl) Create(db *gorm.DB, endorsement *models.Endorsement) error {
	err := db.Create(endorsement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEndorsement
		}
		return err
	}
	return nil
}

// CountBySkill returns the true row count, the audit counterpart of the
// denormalized skill counter.
func (r *EndorsementRepositoryImpl) CountBySkill(db *gorm.DB, skillID string) (int64, error) {
	var count int64
	err := db.Model(&models.Endorsement{}).Where("skill_id = ?", skillID).Count(&count).Error
	return count, err
}

func (r *EndorsementRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Endorsement{}).Count(&count).Error
	return count, err
}

func (r *EndorsementRepositoryImpl) DeleteForSkills(db *gorm.DB, skillIDs []string) error {
	if len(skillIDs) == 0 {
		return nil
	}
	return db.Where("skill_id IN ?", skillIDs).Delete(&models.Endorsement{}).Error
}
