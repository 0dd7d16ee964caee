package apperrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"

	// Resources
	CodeUserNotFound    ErrorCode = "USER_NOT_FOUND"
	CodeStudentNotFound ErrorCode = "STUDENT_NOT_FOUND"
	CodeSkillNotFound   ErrorCode = "SKILL_NOT_FOUND"
	CodeNotFound        ErrorCode = "NOT_FOUND"

	// Business logic
	CodeEmailAlreadyExists   ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeProfileNotPublic     ErrorCode = "PROFILE_NOT_PUBLIC"
	CodeDuplicateEndorsement ErrorCode = "DUPLICATE_ENDORSEMENT"
	CodeMethodNotAllowed     ErrorCode = "METHOD_NOT_ALLOWED"

	// System
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)
