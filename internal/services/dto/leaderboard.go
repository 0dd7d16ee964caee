package dto

import "skillboard_backend/internal/models"

type LeaderboardResponse struct {
	By       models.RankStrategy  `json:"by"`
	Students []models.StudentRank `json:"students"`
}

type StudentListResponse struct {
	Students []models.StudentRank `json:"students"`
}

type DashboardResponse struct {
	TotalStudents     int64 `json:"total_students"`
	PublicStudents    int64 `json:"public_students"`
	TotalAdmins       int64 `json:"total_admins"`
	TotalEndorsements int64 `json:"total_endorsements"`
}
