package services

import (
	"testing"

	"skillboard_backend/internal/auth"
	"skillboard_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanViewStudent(t *testing.T) {
	owner := "user-owner"
	publicStudent := &models.Student{UserID: owner, IsPublic: true}
	hiddenStudent := &models.Student{UserID: owner, IsPublic: false}

	anonymous := auth.Identity{SessionKey: "sess"}
	ownerIdent := auth.Identity{UserID: owner, Role: "student"}
	stranger := auth.Identity{UserID: "someone-else", Role: "student"}
	admin := auth.Identity{UserID: "admin-1", Role: "admin"}

	tests := []struct {
		name    string
		student *models.Student
		ident   auth.Identity
		want    bool
	}{
		{"public profile, anonymous", publicStudent, anonymous, true},
		{"public profile, stranger", publicStudent, stranger, true},
		{"hidden profile, anonymous", hiddenStudent, anonymous, false},
		{"hidden profile, stranger", hiddenStudent, stranger, false},
		{"hidden profile, owner", hiddenStudent, ownerIdent, true},
		{"hidden profile, admin", hiddenStudent, admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewStudent(tt.student, tt.ident))
		})
	}
}

func TestCanEndorseSkill_FollowsVisibility(t *testing.T) {
	hidden := &models.Student{UserID: "owner", IsPublic: false}

	assert.False(t, CanEndorseSkill(hidden, auth.Identity{SessionKey: "s"}))
	assert.True(t, CanEndorseSkill(hidden, auth.Identity{UserID: "owner"}))
	assert.True(t, CanEndorseSkill(hidden, auth.Identity{UserID: "x", Role: "admin"}))
}
