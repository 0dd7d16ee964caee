package app

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"skillboard_backend/internal/config"
	"skillboard_backend/internal/email"
	"skillboard_backend/internal/handlers"
	"skillboard_backend/internal/logger"
	"skillboard_backend/internal/middleware"
	"skillboard_backend/internal/models"
	"skillboard_backend/internal/repositories"
	"skillboard_backend/internal/routes"
	"skillboard_backend/internal/services"
	"skillboard_backend/internal/storage"
	"skillboard_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := OpenDB(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	startRefreshTokenCleanup(gormDB)

	ginRouter := SetupRouter(cfg, gormDB, sqlDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// OpenDB opens the Postgres connection with driver error translation on, so
// unique-constraint violations surface as gorm.ErrDuplicatedKey.
func OpenDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}

// Migrate creates or updates the schema for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Student{},
		&models.Skill{},
		&models.Project{},
		&models.Award{},
		&models.PortfolioItem{},
		&models.Upload{},
		&models.Endorsement{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, storageInstance)
	appHandlers := initializeHandlers(serviceContainer, storageInstance)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		smtp, err := email.NewSMTPProvider(email.Config{
			SMTPHost:  cfg.Email.SMTPHost,
			SMTPPort:  cfg.Email.SMTPPort,
			Username:  cfg.Email.Username,
			Password:  cfg.Email.Password,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize email provider", "error", err)
		}
		emailProvider = smtp
	} else {
		logger.Warn("SMTP is not configured. Welcome emails are disabled.")
		emailProvider = &MockEmailProvider{}
	}

	userRepo := repositories.NewUserRepository()
	refreshTokenRepo := repositories.NewRefreshTokenRepository()
	studentRepo := repositories.NewStudentRepository()
	skillRepo := repositories.NewSkillRepository()
	endorsementRepo := repositories.NewEndorsementRepository()
	portfolioRepo := repositories.NewPortfolioRepository()
	leaderboardRepo := repositories.NewLeaderboardRepository()

	authService := services.NewAuthService(userRepo, refreshTokenRepo, studentRepo, emailProvider)
	studentService := services.NewStudentService(studentRepo, skillRepo, portfolioRepo, storageInstance, cfg.Upload.MaxSize)
	endorsementService := services.NewEndorsementService(skillRepo, endorsementRepo)
	leaderboardService := services.NewLeaderboardService(leaderboardRepo)
	adminService := services.NewAdminService(userRepo, studentRepo, skillRepo, endorsementRepo, portfolioRepo, refreshTokenRepo, storageInstance)

	return &services.ServiceContainer{
		AuthService:        authService,
		StudentService:     studentService,
		EndorsementService: endorsementService,
		LeaderboardService: leaderboardService,
		AdminService:       adminService,
	}
}

func initializeHandlers(sc *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	portfolioRepo := repositories.NewPortfolioRepository()

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, sc.AuthService),
		StudentHandler:     handlers.NewStudentHandler(baseHandler, sc.StudentService, sc.LeaderboardService),
		ProfileHandler:     handlers.NewProfileHandler(baseHandler, sc.StudentService),
		EndorsementHandler: handlers.NewEndorsementHandler(baseHandler, sc.EndorsementService),
		AdminHandler:       handlers.NewAdminHandler(baseHandler, sc.AuthService, sc.AdminService, sc.StudentService, sc.EndorsementService),
		FileHandler:        handlers.NewFileHandler(baseHandler, storageInstance, portfolioRepo),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// startRefreshTokenCleanup purges expired refresh tokens at boot and then
// every twelve hours. Logout and rotation delete tokens eagerly; this sweep
// catches the ones whose owners simply walked away.
func startRefreshTokenCleanup(db *gorm.DB) {
	refreshTokenRepo := repositories.NewRefreshTokenRepository()

	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()

		for {
			if err := refreshTokenRepo.DeleteExpired(db); err != nil {
				logger.Warn("Failed to purge expired refresh tokens", "error", err)
			}
			<-ticker.C
		}
	}()
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)

	return tx.Commit().Error
}
