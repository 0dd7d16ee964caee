package models

// RankStrategy selects the leaderboard ordering. It is a closed set: any
// unrecognized input parses to StrategyOverall.
type RankStrategy string

const (
	StrategyOverall      RankStrategy = "overall"
	StrategyProjects     RankStrategy = "projects"
	StrategySkills       RankStrategy = "skills"
	StrategyAwards       RankStrategy = "awards"
	StrategyEndorsements RankStrategy = "endorsements"
)

// ParseRankStrategy maps a query value to a strategy, falling back to
// StrategyOverall.
func ParseRankStrategy(s string) RankStrategy {
	switch RankStrategy(s) {
	case StrategyProjects, StrategySkills, StrategyAwards, StrategyEndorsements, StrategyOverall:
		return RankStrategy(s)
	default:
		return StrategyOverall
	}
}

// StudentRank is one leaderboard row: a public student plus the aggregate
// metrics the ranking orders by. TotalEndorsements counts Endorsement rows,
// not the denormalized per-skill counters.
type StudentRank struct {
	StudentID         string `json:"student_id"`
	UserID            string `json:"user_id"`
	Bio               string `json:"bio"`
	NumSkills         int    `json:"num_skills"`
	NumProjects       int    `json:"num_projects"`
	NumAwards         int    `json:"num_awards"`
	TotalEndorsements int    `json:"total_endorsements"`
	OverallScore      int    `json:"overall_score"`
}

// Score computes the weighted overall heuristic:
// 3*projects + 2*skills + 1*awards + 1*endorsements.
func (r StudentRank) Score() int {
	return 3*r.NumProjects + 2*r.NumSkills + r.NumAwards + r.TotalEndorsements
}
