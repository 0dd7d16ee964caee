package repositories

import (
	"errors"

	"skillboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrStudentNotFound = errors.New("student not found")

type StudentRepository interface {
	GetOrCreateByUser(db *gorm.DB, userID string) (*models.Student, error)
	FindByID(db *gorm.DB, id string) (*models.Student, error)
	FindByIDWithChildren(db *gorm.DB, id string) (*models.Student, error)
	Update(db *gorm.DB, student *models.Student) error
	FindAll(db *gorm.DB) ([]models.Student, error)
	CountAll(db *gorm.DB) (int64, error)
	CountPublic(db *gorm.DB) (int64, error)

	CreateProject(db *gorm.DB, project *models.Project) error
	CreateAward(db *gorm.DB, award *models.Award) error

	DeleteProjectsForStudent(db *gorm.DB, studentID string) error
	DeleteAwardsForStudent(db *gorm.DB, studentID string) error
	Delete(db *gorm.DB, id string) error
}

type StudentRepositoryImpl struct{}

func NewStudentRepository() StudentRepository {
	return &StudentRepositoryImpl{}
}

// GetOrCreateByUser returns the user's student profile, creating an empty
// public one on first access.
func (r *StudentRepositoryImpl) GetOrCreateByUser(db *gorm.DB, userID string) (*models.Student, error) {
	var student models.Student
	err := db.Where("user_id = ?", userID).First(&student).Error
	if err == nil {
		return &student, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	student = models.Student{
		UserID:   userID,
		IsPublic: true,
	}
	if err := db.Create(&student).Error; err != nil {
		// Lost the race against a concurrent first edit; re-read.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("user_id = ?", userID).First(&student).Error; err != nil {
				return nil, err
			}
			return &student, nil
		}
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Student, error) {
	var student models.Student
	err := db.First(&student, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepositoryImpl) FindByIDWithChildren(db *gorm.DB, id string) (*models.Student, error) {
	var student models.Student
	err := db.
		Preload("Skills").
		Preload("Projects").
		Preload("Awards").
		Preload("PortfolioItems").
		Preload("PortfolioItems.Upload").
		First(&student, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepositoryImpl) Update(db *gorm.DB, student *models.Student) error {
	result := db.Model(student).Updates(map[string]interface{}{
		"bio":       student.Bio,
		"is_public": student.IsPublic,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

// FindAll returns every student, private included. Admin use only.
func (r *StudentRepositoryImpl) FindAll(db *gorm.DB) ([]models.Student, error) {
	var students []models.Student
	err := db.Preload("User").Order("created_at ASC").Find(&students).Error
	return students, err
}

func (r *StudentRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Student{}).Count(&count).Error
	return count, err
}

func (r *StudentRepositoryImpl) CountPublic(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Student{}).Where("is_public = ?", true).Count(&count).Error
	return count, err
}

func (r *StudentRepositoryImpl) CreateProject(db *gorm.DB, project *models.Project) error {
	return db.Create(project).Error
}

func (r *StudentRepositoryImpl) CreateAward(db *gorm.DB, award *models.Award) error {
	return db.Create(award).Error
}

func (r *StudentRepositoryImpl) DeleteProjectsForStudent(db *gorm.DB, studentID string) error {
	return db.Where("student_id = ?", studentID).Delete(&models.Project{}).Error
}

func (r *StudentRepositoryImpl) DeleteAwardsForStudent(db *gorm.DB, studentID string) error {
	return db.Where("student_id = ?", studentID).Delete(&models.Award{}).Error
}

func (r *StudentRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Student{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}
