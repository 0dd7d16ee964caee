package repositories

import (
	"errors"

	"skillboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillRepository interface {
	GetOrCreate(db *gorm.DB, studentID, name string) (*models.Skill, bool, error)
	FindByID(db *gorm.DB, id string) (*models.Skill, error)
	FindByIDWithStudent(db *gorm.DB, id string) (*models.Skill, error)
	IncrementEndorsementCount(db *gorm.DB, id string) error
	GetEndorsementCount(db *gorm.DB, id string) (uint, error)
	SetEndorsementCount(db *gorm.DB, id string, count uint) error
	FindIDsForStudent(db *gorm.DB, studentID string) ([]string, error)
	DeleteForStudent(db *gorm.DB, studentID string) error
}

type SkillRepositoryImpl struct{}

func NewSkillRepository() SkillRepository {
	return &SkillRepositoryImpl{}
}

// GetOrCreate adds the named skill to the student, or returns the existing
// row when the (student, name) pair already exists. The second return value
// reports whether a new row was created.
func (r *SkillRepositoryImpl) GetOrCreate(db *gorm.DB, studentID, name string) (*models.Skill, bool, error) {
	var skill models.Skill
	err := db.Where("student_id = ? AND name = ?", studentID, name).First(&skill).Error
	if err == nil {
		return &skill, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	skill = models.Skill{
		StudentID: studentID,
		Name:      name,
	}
	if err := db.Create(&skill).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("student_id = ? AND name = ?", studentID, name).First(&skill).Error; err != nil {
				return nil, false, err
			}
			return &skill, false, nil
		}
		return nil, false, err
	}
	return &skill, true, nil
}

func (r *SkillRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Skill, error) {
	var skill models.Skill
	err := db.First(&skill, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepositoryImpl) FindByIDWithStudent(db *gorm.DB, id string) (*models.Skill, error) {
	var skill models.Skill
	err := db.Preload("Student").First(&skill, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, err
	}
	return &skill, nil
}

// IncrementEndorsementCount bumps the denormalized counter with a single
// relative UPDATE so concurrent increments cannot lose writes.
func (r *SkillRepositoryImpl) IncrementEndorsementCount(db *gorm.DB, id string) error {
	result := db.Model(&models.Skill{}).Where("id = ?", id).
		UpdateColumn("endorsement_count", gorm.Expr("endorsement_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepositoryImpl) GetEndorsementCount(db *gorm.DB, id string) (uint, error) {
	var count uint
	err := db.Model(&models.Skill{}).Where("id = ?", id).
		Select("endorsement_count").Scan(&count).Error
	return count, err
}

func (r *SkillRepositoryImpl) SetEndorsementCount(db *gorm.DB, id string, count uint) error {
	result := db.Model(&models.Skill{}).Where("id = ?", id).
		UpdateColumn("endorsement_count", count)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *SkillRepositoryImpl) FindIDsForStudent(db *gorm.DB, studentID string) ([]string, error) {
	var ids []string
	err := db.Model(&models.Skill{}).Where("student_id = ?", studentID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *SkillRepositoryImpl) DeleteForStudent(db *gorm.DB, studentID string) error {
	return db.Where("student_id = ?", studentID).Delete(&models.Skill{}).Error
}
