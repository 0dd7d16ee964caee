package models

// PortfolioItem holds an uploaded file reference, an external URL, or both.
type PortfolioItem struct {
	BaseModel
	StudentID string  `gorm:"type:uuid;not null;index" json:"student_id"`
	Title     string  `gorm:"size:150;not null" json:"title"`
	UploadID  *string `gorm:"type:uuid;index" json:"upload_id,omitempty"`
	URL       string  `gorm:"size:500" json:"url,omitempty"`

	// Relations
	Upload *Upload `gorm:"foreignKey:UploadID" json:"upload,omitempty"`
}

// Upload is a stored file under the storage base path.
type Upload struct {
	BaseModel
	UserID   string `gorm:"type:uuid;not null;index" json:"user_id"`
	Path     string `gorm:"not null" json:"path"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}
