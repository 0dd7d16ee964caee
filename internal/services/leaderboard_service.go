package services

import (
	"skillboard_backend/internal/models"
	"skillboard_backend/internal/repositories"
	"skillboard_backend/internal/services/dto"
	"skillboard_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type LeaderboardService interface {
	// Leaderboard ranks public students by the requested strategy.
	// Unrecognized values fall back to the overall score.
	Leaderboard(db *gorm.DB, by string) (*dto.LeaderboardResponse, error)

	// PublicStudents is the unranked public list with aggregate counts.
	PublicStudents(db *gorm.DB) (*dto.StudentListResponse, error)
}

type LeaderboardServiceImpl struct {
	leaderboardRepo repositories.LeaderboardRepository
}

func NewLeaderboardService(leaderboardRepo repositories.LeaderboardRepository) LeaderboardService {
	return &LeaderboardServiceImpl{
		leaderboardRepo: leaderboardRepo,
	}
}

func (s *LeaderboardServiceImpl) Leaderboard(db *gorm.DB, by string) (*dto.LeaderboardResponse, error) {
	strategy := models.ParseRankStrategy(by)

	rows, err := s.leaderboardRepo.PublicAggregates(db, strategy)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LeaderboardResponse{
		By:       strategy,
		Students: rows,
	}, nil
}

func (s *LeaderboardServiceImpl) PublicStudents(db *gorm.DB) (*dto.StudentListResponse, error) {
	rows, err := s.leaderboardRepo.PublicList(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.StudentListResponse{Students: rows}, nil
}
