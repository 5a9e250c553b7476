package service

import (
	"errors"
	"fmt"

	"vidyamitra_backend/internal/config"
	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/repository"
	"vidyamitra_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, cfg: cfg}
}

// TokenPair is an access token plus the refresh token used to renew it.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *AuthService) Register(name, email, password string) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *AuthService) Login(email, password string) (*TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, util.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := util.ParseJWT(refreshToken, s.cfg.JWT.Secret)
	if err != nil || claims.TokenType != "refresh" {
		return nil, util.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *AuthService) GetCurrentUser(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *model.User) (*TokenPair, error) {
	access, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime, "access")
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}
	refresh, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.RefreshExpire, "refresh")
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
