package auth

import (
	"context"
	"os"
	"time"

	autherrors "nexushr/internal/auth/errors"
	"nexushr/internal/employee"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 8 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	GetMe(ctx context.Context, userID string) (AuthResponse, error)
}

type service struct {
	employeeRepo employee.Repository
}

func NewService(employeeRepo employee.Repository) Service {
	return &service{employeeRepo: employeeRepo}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	user, err := s.employeeRepo.FindByEmail(ctx, email)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return TokenResponse{}, autherrors.ErrInvalidToken
	}

	user, err := s.employeeRepo.FindByID(ctx, userID)
	if err != nil {
		return TokenResponse{}, autherrors.ErrInvalidRefreshToken
	}

	return s.issueTokens(user)
}

func (s *service) GetMe(ctx context.Context, userID string) (AuthResponse, error) {
	user, err := s.employeeRepo.FindByID(ctx, userID)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidToken
	}
	return mapToAuthResponse(user), nil
}

func (s *service) issueTokens(user *employee.Employee) (TokenResponse, error) {
	accessToken, err := generateToken(user.ID.String(), user.Role, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := generateToken(user.ID.String(), user.Role, refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User:         mapToAuthResponse(user),
	}, nil
}

func generateToken(userID, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(user *employee.Employee) AuthResponse {
	return AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
}
