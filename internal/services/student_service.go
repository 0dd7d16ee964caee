package services

import (
	"context"
	"fmt"
	"path/filepath"

	"skillboard_backend/internal/auth"
	"skillboard_backend/internal/logger"
	"skillboard_backend/internal/models"
	"skillboard_backend/internal/repositories"
	"skillboard_backend/internal/services/dto"
	"skillboard_backend/internal/storage"
	"skillboard_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxBioLength = 4000

type StudentService interface {
	// GetStudent returns a student's profile with children. Hidden profiles
	// answer with the same not-found error as missing ones.
	GetStudent(ctx context.Context, db *gorm.DB, studentID string, ident auth.Identity) (*dto.StudentResponse, error)

	// GetOwnProfile returns (creating on first access) the caller's profile.
	GetOwnProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.StudentResponse, error)

	// EditProfile applies one profile-editor cycle. Sections are validated
	// and applied independently; partial success is reported per section.
	EditProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.ProfileEditRequest) (*dto.ProfileEditResponse, error)
}

type StudentServiceImpl struct {
	studentRepo   repositories.StudentRepository
	skillRepo     repositories.SkillRepository
	portfolioRepo repositories.PortfolioRepository
	storage       storage.Storage
	maxUploadSize int64
}

func NewStudentService(
	studentRepo repositories.StudentRepository,
	skillRepo repositories.SkillRepository,
	portfolioRepo repositories.PortfolioRepository,
	storageInstance storage.Storage,
	maxUploadSize int64,
) StudentService {
	return &StudentServiceImpl{
		studentRepo:   studentRepo,
		skillRepo:     skillRepo,
		portfolioRepo: portfolioRepo,
		storage:       storageInstance,
		maxUploadSize: maxUploadSize,
	}
}

func (s *StudentServiceImpl) GetStudent(ctx context.Context, db *gorm.DB, studentID string, ident auth.Identity) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.FindByIDWithChildren(db, studentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !CanViewStudent(student, ident) {
		// Same answer as a missing record, by design.
		return nil, apperrors.ErrStudentNotFound
	}

	return s.buildStudentResponse(ctx, student), nil
}

func (s *StudentServiceImpl) GetOwnProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.StudentResponse, error) {
	student, err := s.studentRepo.GetOrCreateByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	full, err := s.studentRepo.FindByIDWithChildren(db, student.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildStudentResponse(ctx, full), nil
}

func (s *StudentServiceImpl) EditProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.ProfileEditRequest) (*dto.ProfileEditResponse, error) {
	student, err := s.studentRepo.GetOrCreateByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ProfileEditResponse{
		Errors: map[string]string{},
	}

	// Each section runs on its own; a failed section never rolls back the
	// ones that already applied.
	s.applyProfileSection(db, student, req, resp)
	s.applySkillSection(db, student, req, resp)
	s.applyProjectSection(db, student, req, resp)
	s.applyAwardSection(db, student, req, resp)
	s.applyPortfolioSection(ctx, db, student, req, resp)

	if len(resp.Errors) == 0 {
		resp.Errors = nil
	}
	return resp, nil
}

func (s *StudentServiceImpl) applyProfileSection(db *gorm.DB, student *models.Student, req *dto.ProfileEditRequest, resp *dto.ProfileEditResponse) {
	if req.Bio == nil && req.IsPublic == nil {
		return
	}

	if req.Bio != nil {
		if len(*req.Bio) > maxBioLength {
			resp.Errors["bio"] = fmt.Sprintf("Must be at most %d characters long", maxBioLength)
			return
		}
		student.Bio = *req.Bio
	}
	if req.IsPublic != nil {
		student.IsPublic = *req.IsPublic
	}

	if err := s.studentRepo.Update(db, student); err != nil {
		resp.Errors["profile"] = "Failed to update profile"
		return
	}
	resp.ProfileUpdated = true
	resp.Messages = append(resp.Messages, "Profile updated.")
}

func (s *StudentServiceImpl) applySkillSection(db *gorm.DB, student *models.Student, req *dto.ProfileEditRequest, resp *dto.ProfileEditResponse) {
	if req.SkillName == "" {
		return
	}

	_, created, err := s.skillRepo.GetOrCreate(db, student.ID, req.SkillName)
	if err != nil {
		resp.Errors["skill_name"] = "Failed to add skill"
		return
	}
	if created {
		resp.SkillAdded = true
		resp.Messages = append(resp.Messages, "Skill added.")
	} else {
		resp.Messages = append(resp.Messages, "Skill already present.")
	}
}

func (s *StudentServiceImpl) applyProjectSection(db *gorm.DB, student *models.Student, req *dto.ProfileEditRequest, resp *dto.ProfileEditResponse) {
	if req.ProjectTitle == "" {
		return
	}

	project := &models.Project{
		StudentID:   student.ID,
		Title:       req.ProjectTitle,
		Description: req.ProjectDescription,
	}
	if err := s.studentRepo.CreateProject(db, project); err != nil {
		resp.Errors["project_title"] = "Failed to add project"
		return
	}
	resp.ProjectAdded = true
	resp.Messages = append(resp.Messages, "Project added.")
}

func (s *StudentServiceImpl) applyAwardSection(db *gorm.DB, student *models.Student, req *dto.ProfileEditRequest, resp *dto.ProfileEditResponse) {
	if req.AwardTitle == "" {
		return
	}

	award := &models.Award{
		StudentID:   student.ID,
		Title:       req.AwardTitle,
		Description: req.AwardDescription,
	}
	if err := s.studentRepo.CreateAward(db, award); err != nil {
		resp.Errors["award_title"] = "Failed to add award"
		return
	}
	resp.AwardAdded = true
	resp.Messages = append(resp.Messages, "Award added.")
}

func (s *StudentServiceImpl) applyPortfolioSection(ctx context.Context, db *gorm.DB, student *models.Student, req *dto.ProfileEditRequest, resp *dto.ProfileEditResponse) {
	if req.PortfolioTitle == "" {
		return
	}
	if req.PortfolioFile == nil && req.PortfolioURL == "" {
		resp.Errors["portfolio_title"] = "Provide a file or a URL for the portfolio item"
		return
	}

	item := &models.PortfolioItem{
		StudentID: student.ID,
		Title:     req.PortfolioTitle,
		URL:       req.PortfolioURL,
	}

	if req.PortfolioFile == nil {
		if err := s.portfolioRepo.CreateItem(db, item); err != nil {
			resp.Errors["portfolio_title"] = "Failed to add portfolio item"
			return
		}
		resp.PortfolioItemAdded = true
		resp.Messages = append(resp.Messages, "Portfolio item added.")
		return
	}

	file := req.PortfolioFile
	if s.maxUploadSize > 0 && file.Size > s.maxUploadSize {
		resp.Errors["portfolio_file"] = "File too large"
		return
	}

	path := fmt.Sprintf("portfolio/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	if err := s.storage.Save(ctx, path, file.Reader, file.ContentType); err != nil {
		logger.CtxWithError(ctx, "failed to store portfolio file", err, "path", path)
		resp.Errors["portfolio_file"] = "Failed to store file"
		return
	}

	upload := &models.Upload{
		UserID:   student.UserID,
		Path:     path,
		MimeType: file.ContentType,
		Size:     file.Size,
	}

	tx := db.Begin()
	if tx.Error != nil {
		resp.Errors["portfolio_title"] = "Failed to add portfolio item"
		return
	}
	if err := s.portfolioRepo.CreateItemWithUpload(tx, item, upload); err != nil {
		tx.Rollback()
		// Orphaned file cleanup; the DB row is the source of truth.
		_ = s.storage.Delete(ctx, path)
		resp.Errors["portfolio_title"] = "Failed to add portfolio item"
		return
	}
	if err := tx.Commit().Error; err != nil {
		_ = s.storage.Delete(ctx, path)
		resp.Errors["portfolio_title"] = "Failed to add portfolio item"
		return
	}

	resp.PortfolioItemAdded = true
	resp.Messages = append(resp.Messages, "Portfolio item added.")
}

func (s *StudentServiceImpl) buildStudentResponse(ctx context.Context, student *models.Student) *dto.StudentResponse {
	resp := &dto.StudentResponse{
		ID:             student.ID,
		Bio:            student.Bio,
		IsPublic:       student.IsPublic,
		Skills:         make([]dto.SkillResponse, 0, len(student.Skills)),
		Projects:       student.Projects,
		Awards:         student.Awards,
		PortfolioItems: make([]dto.PortfolioItemResponse, 0, len(student.PortfolioItems)),
	}

	for _, skill := range student.Skills {
		resp.Skills = append(resp.Skills, dto.SkillResponse{
			ID:               skill.ID,
			Name:             skill.Name,
			EndorsementCount: skill.EndorsementCount,
		})
	}

	for _, item := range student.PortfolioItems {
		itemResp := dto.PortfolioItemResponse{
			ID:    item.ID,
			Title: item.Title,
			URL:   item.URL,
		}
		if item.Upload != nil {
			// Files are addressed publicly by upload ID, not storage path.
			if url, err := s.storage.GetURL(ctx, item.Upload.ID); err == nil {
				itemResp.FileURL = url
			}
		}
		resp.PortfolioItems = append(resp.PortfolioItems, itemResp)
	}

	return resp
}
