package services

import (
	"skillboard_backend/internal/auth"
	"skillboard_backend/internal/models"
)

// Visibility policy. Pure functions over an explicit Identity so the rules
// are testable without a request or a database.
//
// A hidden profile is reported to callers as not-found, never as forbidden:
// the two cases must stay indistinguishable so existence cannot be probed.

// CanViewStudent reports whether the identity may see the student's profile.
func CanViewStudent(student *models.Student, ident auth.Identity) bool {
	if student.IsPublic {
		return true
	}
	if ident.IsAdmin() {
		return true
	}
	return ident.IsAuthenticated() && ident.UserID == student.UserID
}

// CanEndorseSkill reports whether the identity may endorse a skill owned by
// the given student. Follows the profile visibility rule; the admin override
// path is authorized separately at the route level.
func CanEndorseSkill(owner *models.Student, ident auth.Identity) bool {
	return CanViewStudent(owner, ident)
}
