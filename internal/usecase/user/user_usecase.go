package user

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/prepkingdom/kingdom-api/internal/domain"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/auth"
	"github.com/prepkingdom/kingdom-api/internal/infrastructure/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserUseCase implements domain.UserUseCase
type UserUseCase struct {
	userRepo     domain.UserRepository
	castleRepo   domain.UserCastleRepository
	villageRepo  domain.UserVillageRepository
	buildingRepo domain.BuildingRepository
	jwtSvc       auth.JWTService
	db           *gorm.DB
	logger       *logger.Logger
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(
	userRepo domain.UserRepository,
	castleRepo domain.UserCastleRepository,
	villageRepo domain.UserVillageRepository,
	buildingRepo domain.BuildingRepository,
	jwtSvc auth.JWTService,
	db *gorm.DB,
	logger *logger.Logger,
) domain.UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		castleRepo:   castleRepo,
		villageRepo:  villageRepo,
		buildingRepo: buildingRepo,
		jwtSvc:       jwtSvc,
		db:           db,
		logger:       logger,
	}
}

// Register creates a new user account
func (uc *UserUseCase) Register(username, password string) (*domain.User, error) {
	uc.logger.Info("Registering new user", zap.String("username", username))

	if username == "" || password == "" {
		return nil, domain.NewBadRequestError(domain.ErrCodeRequiredField, "Username and password are required")
	}

	existing, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		uc.logger.Error("Failed to check existing user", zap.String("username", username), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to check username", 500, err)
	}
	if existing != nil {
		uc.logger.Warn("Registration rejected, username taken", zap.String("username", username))
		return nil, domain.NewAppError(domain.ErrCodeUserExists, "Username already taken", 409, nil)
	}

	user := &domain.User{
		Username: username,
		Password: uc.hashPassword(password),
	}
	if err := uc.userRepo.Create(user); err != nil {
		uc.logger.Error("Failed to create user", zap.String("username", username), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to create user", 500, err)
	}

	uc.logger.Info("User registered", zap.Int64("user_id", user.ID), zap.String("username", username))
	return user, nil
}

// Authenticate validates user credentials and returns a JWT token
func (uc *UserUseCase) Authenticate(username, password string) (string, error) {
	uc.logger.Info("Starting user authentication", zap.String("username", username))

	if username == "" || password == "" {
		uc.logger.Warn("Authentication attempt with empty credentials", zap.String("username", username))
		return "", domain.NewAppError(domain.ErrCodeInvalidCredentials, "Invalid credentials", 401, nil)
	}

	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		uc.logger.Error("Failed to get user from database during authentication",
			zap.String("username", username),
			zap.Error(err))
		return "", domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get user", 500, err)
	}
	if user == nil {
		uc.logger.Warn("Authentication failed - user not found", zap.String("username", username))
		return "", domain.NewAppError(domain.ErrCodeInvalidCredentials, "Invalid credentials", 401, nil)
	}

	if !uc.verifyPassword(password, user.Password) {
		uc.logger.Warn("Authentication failed - invalid password",
			zap.Int64("user_id", user.ID),
			zap.String("username", username))
		return "", domain.NewAppError(domain.ErrCodeInvalidCredentials, "Invalid credentials", 401, nil)
	}

	token, err := uc.jwtSvc.GenerateToken(strconv.FormatInt(user.ID, 10), user.Username, user.IsAdmin)
	if err != nil {
		uc.logger.Error("Failed to generate JWT token",
			zap.Int64("user_id", user.ID),
			zap.Error(err))
		return "", domain.NewAppError(domain.ErrCodeTokenInvalid, "Token generation failed", 500, err)
	}

	uc.logger.Info("User authentication successful",
		zap.Int64("user_id", user.ID),
		zap.String("username", username))
	return token, nil
}

// GetUserInfo retrieves user information by user ID
func (uc *UserUseCase) GetUserInfo(userID int64) (*domain.User, error) {
	if userID <= 0 {
		return nil, domain.NewBadRequestError(domain.ErrCodeInvalidFormat, "Invalid user ID")
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		uc.logger.Error("Failed to get user from database", zap.Int64("user_id", userID), zap.Error(err))
		return nil, domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get user", 500, err)
	}
	if user == nil {
		return nil, domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}
	return user, nil
}

// Onboard records the user's study profile and grants the starting
// buildings: the castle chain head plus each chosen subject's village head.
// All bindings and the profile update commit together.
func (uc *UserUseCase) Onboard(userID int64, input domain.OnboardInput) error {
	uc.logger.Info("Onboarding user", zap.Int64("user_id", userID))

	if len(input.Subjects) == 0 {
		return domain.NewBadRequestError(domain.ErrCodeRequiredField, "At least one subject is required")
	}
	seen := make(map[domain.Subject]bool)
	for _, subject := range input.Subjects {
		if !domain.IsValidSubject(subject) {
			return domain.NewBadRequestError(domain.ErrCodeInvalidFormat, "Unknown subject")
		}
		if seen[subject] {
			return domain.NewBadRequestError(domain.ErrCodeInvalidFormat, "Duplicate subject")
		}
		seen[subject] = true
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get user", 500, err)
	}
	if user == nil {
		return domain.NewAppError(domain.ErrCodeUserNotFound, "User not found", 404, nil)
	}
	if user.HasOnboard {
		uc.logger.Warn("Onboarding rejected, already onboarded", zap.Int64("user_id", userID))
		return domain.NewAppError(domain.ErrCodeAlreadyOnboarded, "User already onboarded", 409, nil)
	}

	tx := uc.db.Begin()
	if tx.Error != nil {
		return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to start transaction", 500, tx.Error)
	}
	txUserRepo := uc.userRepo.WithTransaction(tx)
	txCastleRepo := uc.castleRepo.WithTransaction(tx)
	txVillageRepo := uc.villageRepo.WithTransaction(tx)
	txBuildingRepo := uc.buildingRepo.WithTransaction(tx)

	castleHead, err := txBuildingRepo.GetHead(domain.BuildingTypeCastle, nil)
	if err != nil {
		tx.Rollback()
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get starting castle", 500, err)
	}
	if castleHead == nil {
		tx.Rollback()
		uc.logger.Error("No castle chain seeded")
		return domain.NewAppError(domain.ErrCodeCastleNotFound, "No starting castle available", 500, nil)
	}

	if err := txCastleRepo.Create(&domain.UserCastle{UserID: userID, CastleID: castleHead.ID}); err != nil {
		tx.Rollback()
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to grant starting castle", 500, err)
	}

	for _, subject := range input.Subjects {
		sub := subject
		villageHead, err := txBuildingRepo.GetHead(domain.BuildingTypeVillage, &sub)
		if err != nil {
			tx.Rollback()
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to get starting village", 500, err)
		}
		if villageHead == nil {
			tx.Rollback()
			uc.logger.Error("No village chain seeded for subject", zap.String("subject", string(subject)))
			return domain.NewAppError(domain.ErrCodeVillageNotFound, "No starting village available", 500, nil)
		}

		binding := &domain.UserVillage{UserID: userID, Subject: subject, VillageID: villageHead.ID}
		if err := txVillageRepo.Create(binding); err != nil {
			tx.Rollback()
			return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to grant starting village", 500, err)
		}
	}

	user.HasOnboard = true
	user.CurrentScore = input.CurrentScore
	user.TargetScore = input.TargetScore
	user.ExamDate = input.ExamDate
	if err := txUserRepo.Update(user); err != nil {
		tx.Rollback()
		return domain.NewAppError(domain.ErrCodeDatabaseQuery, "Failed to update user profile", 500, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return domain.NewAppError(domain.ErrCodeDatabaseConnection, "Failed to commit transaction", 500, err)
	}

	uc.logger.Info("User onboarded",
		zap.Int64("user_id", userID),
		zap.Int("subjects", len(input.Subjects)))
	return nil
}

func (uc *UserUseCase) hashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// verifyPassword checks if the provided password matches the stored hash
func (uc *UserUseCase) verifyPassword(password, hashedPassword string) bool {
	if password == "" || hashedPassword == "" {
		return false
	}
	return uc.hashPassword(password) == hashedPassword
}
