package services

import (
	"context"
	"time"

	"skillboard_backend/internal/logger"
	"skillboard_backend/internal/models"
	"skillboard_backend/internal/repositories"
	"skillboard_backend/internal/services/dto"
	"skillboard_backend/internal/storage"
	"skillboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdminService interface {
	// Dashboard returns site-wide counts.
	Dashboard(db *gorm.DB) (*dto.DashboardResponse, error)

	// ListStudents returns every student, private profiles included.
	ListStudents(db *gorm.DB) (*dto.AdminStudentListResponse, error)

	// DeleteStudent removes the student, the owning user account, and
	// everything hanging off them, including stored portfolio files.
	DeleteStudent(ctx context.Context, db *gorm.DB, studentID string) error
}

type AdminServiceImpl struct {
	userRepo         repositories.UserRepository
	studentRepo      repositories.StudentRepository
	skillRepo        repositories.SkillRepository
	endorsementRepo  repositories.EndorsementRepository
	portfolioRepo    repositories.PortfolioRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	storage          storage.Storage
}

func NewAdminService(
	userRepo repositories.UserRepository,
	studentRepo repositories.StudentRepository,
	skillRepo repositories.SkillRepository,
	endorsementRepo repositories.EndorsementRepository,
	portfolioRepo repositories.PortfolioRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	storageInstance storage.Storage,
) AdminService {
	return &AdminServiceImpl{
		userRepo:         userRepo,
		studentRepo:      studentRepo,
		skillRepo:        skillRepo,
		endorsementRepo:  endorsementRepo,
		portfolioRepo:    portfolioRepo,
		refreshTokenRepo: refreshTokenRepo,
		storage:          storageInstance,
	}
}

func (s *AdminServiceImpl) Dashboard(db *gorm.DB) (*dto.DashboardResponse, error) {
	total, err := s.studentRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	public, err := s.studentRepo.CountPublic(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	admins, err := s.userRepo.CountByRole(db, models.UserRoleAdmin)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	endorsements, err := s.endorsementRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.DashboardResponse{
		TotalStudents:     total,
		PublicStudents:    public,
		TotalAdmins:       admins,
		TotalEndorsements: endorsements,
	}, nil
}

func (s *AdminServiceImpl) ListStudents(db *gorm.DB) (*dto.AdminStudentListResponse, error) {
	students, err := s.studentRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rows := make([]dto.AdminStudentRow, 0, len(students))
	for _, st := range students {
		row := dto.AdminStudentRow{
			ID:        st.ID,
			UserID:    st.UserID,
			Bio:       st.Bio,
			IsPublic:  st.IsPublic,
			CreatedAt: st.CreatedAt.Format(time.RFC3339),
		}
		if st.User != nil {
			row.Email = st.User.Email
		}
		rows = append(rows, row)
	}

	return &dto.AdminStudentListResponse{Students: rows}, nil
}

func (s *AdminServiceImpl) DeleteStudent(ctx context.Context, db *gorm.DB, studentID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	student, err := s.studentRepo.FindByID(tx, studentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStudentNotFound) {
			return apperrors.ErrStudentNotFound
		}
		return apperrors.InternalError(err)
	}

	// Collect storage paths before the rows disappear; files are removed
	// only after the transaction commits.
	uploadPaths, err := s.portfolioRepo.FindUploadPathsForStudent(tx, studentID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	skillIDs, err := s.skillRepo.FindIDsForStudent(tx, studentID)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.endorsementRepo.DeleteForSkills(tx, skillIDs); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.skillRepo.DeleteForStudent(tx, studentID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.studentRepo.DeleteProjectsForStudent(tx, studentID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.studentRepo.DeleteAwardsForStudent(tx, studentID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.portfolioRepo.DeleteItemsForStudent(tx, studentID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.portfolioRepo.DeleteUploadsForUser(tx, student.UserID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.refreshTokenRepo.DeleteByUser(tx, student.UserID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.studentRepo.Delete(tx, studentID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(tx, student.UserID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	for _, path := range uploadPaths {
		if err := s.storage.Delete(ctx, path); err != nil {
			logger.CtxWithError(ctx, "failed to remove portfolio file", err, "path", path)
		}
	}

	logger.CtxInfo(ctx, "student deleted", "student_id", studentID, "user_id", student.UserID)
	return nil
}
