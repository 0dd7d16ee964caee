package dto

import (
	"io"

	"skillboard_backend/internal/models"
)

// ProfileEditRequest carries one profile-editor cycle: an optional
// bio/visibility update plus optional additive sub-forms. Each section is
// validated and applied independently; an empty section is skipped.
type ProfileEditRequest struct {
	Bio      *string `form:"bio" json:"bio"`
	IsPublic *bool   `form:"is_public" json:"is_public"`

	SkillName string `form:"skill_name" json:"skill_name" validate:"omitempty,max=100"`

	ProjectTitle       string `form:"project_title" json:"project_title" validate:"omitempty,max=150"`
	ProjectDescription string `form:"project_description" json:"project_description"`

	AwardTitle       string `form:"award_title" json:"award_title" validate:"omitempty,max=150"`
	AwardDescription string `form:"award_description" json:"award_description"`

	PortfolioTitle string `form:"portfolio_title" json:"portfolio_title" validate:"omitempty,max=150"`
	PortfolioURL   string `form:"portfolio_url" json:"portfolio_url" validate:"omitempty,url"`

	// Optional uploaded file for the portfolio section; attached by the
	// handler from the multipart request.
	PortfolioFile *UploadedFile `form:"-" json:"-"`
}

// UploadedFile is an opaque file handed to the storage backend.
type UploadedFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// ProfileEditResponse reports the outcome of each sub-form separately;
// partial success is allowed.
type ProfileEditResponse struct {
	ProfileUpdated     bool              `json:"profile_updated"`
	SkillAdded         bool              `json:"skill_added"`
	ProjectAdded       bool              `json:"project_added"`
	AwardAdded         bool              `json:"award_added"`
	PortfolioItemAdded bool              `json:"portfolio_item_added"`
	Messages           []string          `json:"messages,omitempty"`
	Errors             map[string]string `json:"errors,omitempty"`
}

type StudentResponse struct {
	ID             string                  `json:"id"`
	Bio            string                  `json:"bio"`
	IsPublic       bool                    `json:"is_public"`
	Skills         []SkillResponse         `json:"skills"`
	Projects       []models.Project        `json:"projects"`
	Awards         []models.Award          `json:"awards"`
	PortfolioItems []PortfolioItemResponse `json:"portfolio_items"`
}

type SkillResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	EndorsementCount uint   `json:"endorsement_count"`
}

// AdminStudentRow is one entry in the admin roster; private profiles are
// listed alongside public ones.
type AdminStudentRow struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	IsPublic  bool   `json:"is_public"`
	CreatedAt string `json:"created_at"`
}

type AdminStudentListResponse struct {
	Students []AdminStudentRow `json:"students"`
}

type PortfolioItemResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	FileURL string `json:"file_url,omitempty"`
	URL     string `json:"url,omitempty"`
}
