package models

type UserRole string
type UserStatus string

const (
	UserRoleStudent UserRole = "student"
	UserRoleAdmin   UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)
