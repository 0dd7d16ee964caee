package models

// Student is the portfolio profile attached one-to-one to a User. It is
// created lazily on the first profile edit and removed together with the
// owning account.
type Student struct {
	BaseModel
	UserID   string `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Bio      string `gorm:"type:text" json:"bio"`
	IsPublic bool   `gorm:"not null;default:true" json:"is_public"`

	// Relations
	User           *User           `gorm:"foreignKey:UserID" json:"-"`
	Skills         []Skill         `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"skills,omitempty"`
	Projects       []Project       `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"projects,omitempty"`
	Awards         []Award         `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"awards,omitempty"`
	PortfolioItems []PortfolioItem `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"portfolio_items,omitempty"`
}

type Project struct {
	BaseModel
	StudentID   string `gorm:"type:uuid;not null;index" json:"student_id"`
	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}

type Award struct {
	BaseModel
	StudentID   string `gorm:"type:uuid;not null;index" json:"student_id"`
	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
}
