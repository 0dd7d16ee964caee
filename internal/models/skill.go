package models

// Skill belongs to exactly one student. Name is unique per student.
//
// EndorsementCount is a denormalized counter maintained only by relative
// UPDATEs. The admin override path increments it without inserting an
// Endorsement row, so it may drift above the true row count; the audit
// operations expose that drift instead of hiding it.
type Skill struct {
	BaseModel
	StudentID        string `gorm:"type:uuid;not null;uniqueIndex:idx_skill_student_name" json:"student_id"`
	Name             string `gorm:"size:100;not null;uniqueIndex:idx_skill_student_name" json:"name"`
	EndorsementCount uint   `gorm:"not null;default:0" json:"endorsement_count"`

	// Relations
	Student      *Student      `gorm:"foreignKey:StudentID" json:"-"`
	Endorsements []Endorsement `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE" json:"-"`
}

// Endorsement links a skill to an endorser identity: an anonymous browser
// session key, optionally paired with a logged-in user. The composite unique
// index on (skill_id, session_key) is the sole dedupe mechanism; there is no
// application-level locking around it.
type Endorsement struct {
	BaseModel
	SkillID    string  `gorm:"type:uuid;not null;uniqueIndex:idx_endorse_skill_session" json:"skill_id"`
	SessionKey string  `gorm:"size:40;not null;uniqueIndex:idx_endorse_skill_session" json:"session_key"`
	EndorserID *string `gorm:"type:uuid" json:"endorser_id,omitempty"`

	// Relations
	Skill    *Skill `gorm:"foreignKey:SkillID" json:"-"`
	Endorser *User  `gorm:"foreignKey:EndorserID;constraint:OnDelete:SET NULL" json:"-"`
}
