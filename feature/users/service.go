package users

import (
	"context"
	"errors"
	"time"

	"parts-finder/core/middleware/auth"
	"parts-finder/core/server"
	"parts-finder/feature/users/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service errors the handler translates to HTTP statuses.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
	ErrNothingToUpdate    = errors.New("no fields to update")
)

const bcryptCost = 10

// Service handles authentication and user administration.
type Service struct {
	db        *gorm.DB
	logger    *zap.Logger
	jwtSecret string
	jwtTTL    time.Duration
}

// NewService creates a new users service.
func NewService(db *gorm.DB, logger *zap.Logger, jwtSecret string, jwtTTL time.Duration) *Service {
	return &Service{db: db, logger: logger, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

// Login verifies the credentials and issues a session token.
// Unknown user and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.Sign(&auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Name:     user.Name,
	}, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token: token,
		User: models.PublicUser{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			Name:     user.Name,
		},
	}, nil
}

// List returns every user, oldest first.
func (s *Service) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

// Create registers a new user with a whitelisted role.
func (s *Service) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if !server.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
		Name:         req.Name,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Update applies the non-empty fields of the request to an existing user.
func (s *Service) Update(ctx context.Context, id uint, req models.UpdateUserRequest) error {
	if req.Role != "" && !server.IsValidRole(req.Role) {
		return ErrInvalidRole
	}

	updates := map[string]any{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return err
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) == 0 {
		return ErrNothingToUpdate
	}

	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
