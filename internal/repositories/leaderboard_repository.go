package repositories

import (
	"skillboard_backend/internal/models"

	"gorm.io/gorm"
)

type LeaderboardRepository interface {
	// PublicAggregates returns every public student with aggregate counts,
	// ordered by the strategy's key tuple.
	PublicAggregates(db *gorm.DB, strategy models.RankStrategy) ([]models.StudentRank, error)

	// PublicList returns the same aggregate rows in storage order (the
	// public student list page).
	PublicList(db *gorm.DB) ([]models.StudentRank, error)
}

type LeaderboardRepositoryImpl struct{}

func NewLeaderboardRepository() LeaderboardRepository {
	return &LeaderboardRepositoryImpl{}
}

// aggregateQuery builds the per-student metric row. Counts use per-entity
// subqueries so one metric cannot inflate another through join fan-out.
// Endorsements are counted from rows, not from the denormalized skill
// counters.
func (r *LeaderboardRepositoryImpl) aggregateQuery(db *gorm.DB) *gorm.DB {
	return db.Table("students").
		Select(`students.id AS student_id,
			students.user_id,
			students.bio,
			(SELECT COUNT(*) FROM skills sk WHERE sk.student_id = students.id) AS num_skills,
			(SELECT COUNT(*) FROM projects pr WHERE pr.student_id = students.id) AS num_projects,
			(SELECT COUNT(*) FROM awards aw WHERE aw.student_id = students.id) AS num_awards,
			(SELECT COUNT(*) FROM endorsements en
				JOIN skills es ON en.skill_id = es.id
				WHERE es.student_id = students.id) AS total_endorsements`).
		Where("students.is_public = ?", true)
}

// orderClause maps each strategy to its explicit ordering-key tuple. Ties
// beyond the listed keys are left to storage order.
func orderClause(strategy models.RankStrategy) string {
	switch strategy {
	case models.StrategyProjects:
		return "num_projects DESC, num_skills DESC, num_awards DESC"
	case models.StrategySkills:
		return "num_skills DESC, num_projects DESC, num_awards DESC"
	case models.StrategyAwards:
		return "num_awards DESC, num_projects DESC, num_skills DESC"
	case models.StrategyEndorsements:
		return "total_endorsements DESC, num_projects DESC"
	default:
		return "overall_score DESC, num_projects DESC"
	}
}

func (r *LeaderboardRepositoryImpl) PublicAggregates(db *gorm.DB, strategy models.RankStrategy) ([]models.StudentRank, error) {
	base := r.aggregateQuery(db)

	board := db.Table("(?) AS board", base).
		Select(`board.*,
			(board.num_projects * 3 + board.num_skills * 2 + board.num_awards + board.total_endorsements) AS overall_score`).
		Order(orderClause(strategy))

	var rows []models.StudentRank
	if err := board.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *LeaderboardRepositoryImpl) PublicList(db *gorm.DB) ([]models.StudentRank, error) {
	var rows []models.StudentRank
	if err := r.aggregateQuery(db).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
