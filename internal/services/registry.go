package services

// ServiceContainer bundles every service for wiring into handlers.
type ServiceContainer struct {
	AuthService        AuthService
	StudentService     StudentService
	EndorsementService EndorsementService
	LeaderboardService LeaderboardService
	AdminService       AdminService
}
