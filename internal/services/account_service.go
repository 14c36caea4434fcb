// internal/services/account_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/javajoker/perfume-store/internal/config"
	"github.com/javajoker/perfume-store/internal/i18n"
	"github.com/javajoker/perfume-store/internal/models"
	"github.com/javajoker/perfume-store/internal/utils"
)

type AccountService struct {
	db  *gorm.DB
	cfg *config.Config
}

type SignupRequest struct {
	Email        string `json:"email" validate:"required,email,max=254"`
	FirstName    string `json:"first_name" validate:"required,min=2,max=50"`
	LastName     string `json:"last_name" validate:"required,min=2,max=50"`
	Password     string `json:"password" validate:"required,password_policy"`
	ConfPassword string `json:"conf_password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
}

type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password" validate:"required"`
	NewPassword  string `json:"new_password" validate:"required,password_policy"`
	ConfPassword string `json:"conf_password" validate:"required"`
}

func NewAccountService(db *gorm.DB, cfg *config.Config) *AccountService {
	return &AccountService{
		db:  db,
		cfg: cfg,
	}
}

func (s *AccountService) Signup(req *SignupRequest) (*models.User, error) {
	errs := FieldErrors{}
	if err := utils.ValidateStruct(req); err != nil {
		errs.Merge(utils.GetValidationErrors(err))
	}
	if req.Password != req.ConfPassword {
		errs.Add("conf_password", i18n.KeyAuthPasswordMismatch)
	}
	if _, bad := errs["password"]; !bad && req.Password != "" {
		if reason := utils.CheckPasswordSimilarity(req.Password, req.Email, req.FirstName, req.LastName); reason != "" {
			errs.Add("password", reason)
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	email := models.NormalizeEmail(req.Email)
	taken, err := s.emailTaken(email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	user := &models.User{
		Email:     email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login checks the credentials. Unknown emails, wrong passwords and inactive
// accounts all yield ErrInvalidCredentials.
func (s *AccountService) Login(req *LoginRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, FieldErrors(utils.GetValidationErrors(err))
	}

	var user models.User
	if err := s.db.Where("email = ?", models.NormalizeEmail(req.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.db.Model(&user).UpdateColumn("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return &user, nil
}

func (s *AccountService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *AccountService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, FieldErrors(utils.GetValidationErrors(err))
	}

	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	email := models.NormalizeEmail(req.Email)
	if email != user.Email {
		taken, err := s.emailTaken(email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	updates := map[string]interface{}{
		"email":      email,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.GetUser(userID)
}

func (s *AccountService) ChangePassword(userID uint, req *ChangePasswordRequest) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	errs := FieldErrors{}
	if err := utils.ValidateStruct(req); err != nil {
		errs.Merge(utils.GetValidationErrors(err))
	}
	if req.OldPassword != "" && user.CheckPassword(req.OldPassword) != nil {
		errs.Add("old_password", i18n.KeyAuthOldPasswordInvalid)
	}
	if req.NewPassword != req.ConfPassword {
		errs.Add("conf_password", i18n.KeyAuthPasswordMismatch)
	}
	if _, bad := errs["new_password"]; !bad && req.NewPassword != "" {
		if reason := utils.CheckPasswordSimilarity(req.NewPassword, user.Email, user.FirstName, user.LastName); reason != "" {
			errs.Add("new_password", reason)
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.db.Model(user).UpdateColumn("password_hash", user.PasswordHash).Error; err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	return user, nil
}

func (s *AccountService) emailTaken(email string, exceptID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.User{}).Where("email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}
