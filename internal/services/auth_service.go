// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/retailnet/ordering-backend/internal/config"
	"github.com/retailnet/ordering-backend/internal/models"
	"github.com/retailnet/ordering-backend/internal/utils"
)

// AuthHooks are named callback slots fired after auth events. Token-carrying
// hooks are the delivery channel for out-of-band mail; the defaults only log.
type AuthHooks struct {
	AfterRegister       func(user *models.User)
	AfterLogin          func(user *models.User)
	AfterForgotPassword func(user *models.User, token string)
	AfterRequestVerify  func(user *models.User, token string)
}

func DefaultAuthHooks() AuthHooks {
	return AuthHooks{
		AfterRegister: func(user *models.User) {
			logrus.WithField("user_id", user.ID).Info("User has registered")
		},
		AfterLogin: func(user *models.User) {
			logrus.WithField("username", user.Username).Info("User has logged in")
		},
		AfterForgotPassword: func(user *models.User, token string) {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"token":   token,
			}).Info("Password reset requested")
		},
		AfterRequestVerify: func(user *models.User, token string) {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,
				"token":   token,
			}).Info("Email verification requested")
		},
	}
}

type AuthService struct {
	db    *gorm.DB
	cfg   *config.Config
	hooks AuthHooks
}

type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,strong_password"`
	Username string          `json:"username" validate:"required,username"`
	Company  string          `json:"company,omitempty" validate:"omitempty,max=40"`
	Position string          `json:"position,omitempty" validate:"omitempty,max=40"`
	UserType models.UserType `json:"usertype,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,strong_password"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config, hooks AuthHooks) *AuthService {
	return &AuthService{
		db:    db,
		cfg:   cfg,
		hooks: hooks,
	}
}

func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	userType := req.UserType
	if userType == "" {
		userType = models.UserTypeBuyer
	}
	if !userType.Valid() {
		return nil, errors.New("invalid usertype")
	}

	// Check for an existing account first to report which field clashed.
	var existingUser models.User
	if err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existingUser).Error; err == nil {
		if existingUser.Email == req.Email {
			return nil, fmt.Errorf("user with this email %w", ErrAlreadyExists)
		}
		return nil, fmt.Errorf("username %w", ErrAlreadyExists)
	}

	user := &models.User{
		Email:    req.Email,
		Username: req.Username,
		Company:  req.Company,
		Position: req.Position,
		UserType: userType,
		IsActive: true,
	}

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		// A concurrent registration can still hit the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user with this email %w", ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.hooks.AfterRegister != nil {
		s.hooks.AfterRegister(user)
	}

	return user, nil
}

func (s *AuthService) Login(req *LoginRequest) (*models.User, string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, "", fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("database error: %w", err)
	}

	if !user.IsActive {
		return nil, "", errors.New("account is inactive")
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}

	if s.hooks.AfterLogin != nil {
		s.hooks.AfterLogin(&user)
	}

	return &user, token, nil
}

// issueToken produces the bearer artifact for the configured transport: a
// persisted opaque session token, or a signed JWT.
func (s *AuthService) issueToken(user *models.User) (string, error) {
	if s.cfg.Auth.Transport == config.AuthTransportCookie {
		token := &models.AccessToken{
			Token:  utils.GenerateSessionToken(),
			UserID: user.ID,
		}
		if err := s.db.Create(token).Error; err != nil {
			return "", fmt.Errorf("failed to persist access token: %w", err)
		}
		return token.Token, nil
	}

	token, err := utils.GenerateToken(user.ID, user.Username, string(user.UserType),
		utils.ScopeAuth, s.cfg.Auth.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

// Logout invalidates a persisted session token. JWTs expire on their own.
func (s *AuthService) Logout(tokenValue string) error {
	if s.cfg.Auth.Transport != config.AuthTransportCookie || tokenValue == "" {
		return nil
	}
	return s.db.Delete(&models.AccessToken{}, "token = ?", tokenValue).Error
}

func (s *AuthService) ForgotPassword(req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Don't reveal whether the email exists.
		return nil
	}

	token, err := utils.GenerateToken(user.ID, user.Username, string(user.UserType),
		utils.ScopeResetPass, s.cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if s.hooks.AfterForgotPassword != nil {
		s.hooks.AfterForgotPassword(&user, token)
	}

	return nil
}

func (s *AuthService) ResetPassword(req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	claims, err := utils.ValidateToken(req.Token, utils.ScopeResetPass)
	if err != nil {
		return errors.New("invalid or expired reset token")
	}

	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		return fmt.Errorf("user %w", ErrNotFound)
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Drop live sessions so the old credential can't ride along.
	return s.db.Delete(&models.AccessToken{}, "user_id = ?", user.ID).Error
}

func (s *AuthService) RequestVerification(user *models.User) error {
	if user.IsVerified {
		return errors.New("email already verified")
	}

	token, err := utils.GenerateToken(user.ID, user.Username, string(user.UserType),
		utils.ScopeVerification, s.cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to generate verification token: %w", err)
	}

	if s.hooks.AfterRequestVerify != nil {
		s.hooks.AfterRequestVerify(user, token)
	}

	return nil
}

func (s *AuthService) VerifyEmail(token string) error {
	claims, err := utils.ValidateToken(token, utils.ScopeVerification)
	if err != nil {
		return errors.New("invalid verification token")
	}

	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		return fmt.Errorf("user %w", ErrNotFound)
	}

	if user.IsVerified {
		return errors.New("email already verified")
	}

	user.IsVerified = true
	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}

	return nil
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
