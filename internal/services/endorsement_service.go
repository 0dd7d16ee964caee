package services

import (
	"skillboard_backend/internal/auth"
	"skillboard_backend/internal/models"
	"skillboard_backend/internal/repositories"
	"skillboard_backend/internal/services/dto"
	"skillboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EndorsementService interface {
	// Endorse records one endorsement for the identity's session and returns
	// the post-increment counter value.
	Endorse(db *gorm.DB, skillID string, ident auth.Identity) (uint, error)

	// AdminEndorse unconditionally increments the counter without inserting
	// an endorsement row. Not deduplicated; works on private profiles.
	AdminEndorse(db *gorm.DB, skillID string) (uint, error)

	// Audit returns the counter next to the true row count.
	Audit(db *gorm.DB, skillID string) (*dto.EndorsementAuditResponse, error)

	// Repair resets the counter to the row count and returns the new value.
	Repair(db *gorm.DB, skillID string) (uint, error)
}

type EndorsementServiceImpl struct {
	skillRepo       repositories.SkillRepository
	endorsementRepo repositories.EndorsementRepository
}

func NewEndorsementService(
	skillRepo repositories.SkillRepository,
	endorsementRepo repositories.EndorsementRepository,
) EndorsementService {
	return &EndorsementServiceImpl{
		skillRepo:       skillRepo,
		endorsementRepo: endorsementRepo,
	}
}

func (s *EndorsementServiceImpl) Endorse(db *gorm.DB, skillID string, ident auth.Identity) (uint, error) {
	if ident.SessionKey == "" {
		return 0, apperrors.NewBadRequestError("Missing endorsement session")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return 0, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	skill, err := s.skillRepo.FindByIDWithStudent(tx, skillID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSkillNotFound) {
			return 0, apperrors.ErrSkillNotFound
		}
		return 0, apperrors.InternalError(err)
	}

	if !CanEndorseSkill(skill.Student, ident) {
		return 0, apperrors.ErrProfileIsPrivate
	}

	endorsement := &models.Endorsement{
		SkillID:    skill.ID,
		SessionKey: ident.SessionKey,
	}
	if ident.IsAuthenticated() {
		userID := ident.UserID
		endorsement.EndorserID = &userID
	}

	// The unique index decides duplicates; on violation nothing is counted.
	if err := s.endorsementRepo.Create(tx, endorsement); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateEndorsement) {
			return 0, apperrors.ErrDuplicateEndorsement
		}
		return 0, apperrors.InternalError(err)
	}

	// Relative update: two concurrent endorsements both land.
	if err := s.skillRepo.IncrementEndorsementCount(tx, skill.ID); err != nil {
		return 0, apperrors.InternalError(err)
	}

	count, err := s.skillRepo.GetEndorsementCount(tx, skill.ID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *EndorsementServiceImpl) AdminEndorse(db *gorm.DB, skillID string) (uint, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return 0, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	// No row insert and no dedupe check here: the override intentionally
	// leaves the counter ahead of the row count.
	if err := s.skillRepo.IncrementEndorsementCount(tx, skillID); err != nil {
		if apperrors.Is(err, repositories.ErrSkillNotFound) {
			return 0, apperrors.ErrSkillNotFound
		}
		return 0, apperrors.InternalError(err)
	}

	count, err := s.skillRepo.GetEndorsementCount(tx, skillID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *EndorsementServiceImpl) Audit(db *gorm.DB, skillID string) (*dto.EndorsementAuditResponse, error) {
	skill, err := s.skillRepo.FindByID(db, skillID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSkillNotFound) {
			return nil, apperrors.ErrSkillNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	rows, err := s.endorsementRepo.CountBySkill(db, skillID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.EndorsementAuditResponse{
		SkillID: skill.ID,
		Counter: skill.EndorsementCount,
		Rows:    rows,
		Drift:   int64(skill.EndorsementCount) - rows,
	}, nil
}

func (s *EndorsementServiceImpl) Repair(db *gorm.DB, skillID string) (uint, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return 0, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.skillRepo.FindByID(tx, skillID); err != nil {
		if apperrors.Is(err, repositories.ErrSkillNotFound) {
			return 0, apperrors.ErrSkillNotFound
		}
		return 0, apperrors.InternalError(err)
	}

	rows, err := s.endorsementRepo.CountBySkill(tx, skillID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	if err := s.skillRepo.SetEndorsementCount(tx, skillID, uint(rows)); err != nil {
		return 0, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return 0, apperrors.InternalError(err)
	}
	return uint(rows), nil
}
