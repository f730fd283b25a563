package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Tkay6677/lunchpay/internal/account"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailExists         = errors.New("email already exists")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

const refreshTokenTTL = 7 * 24 * time.Hour

type Service struct {
	tokens   TokenRepository
	accounts account.Repository
}

func NewService(tokens TokenRepository, accounts account.Repository) *Service {
	return &Service{
		tokens:   tokens,
		accounts: accounts,
	}
}

// Register creates a new guardian account
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	_, err := s.accounts.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, ErrEmailExists
	case !errors.Is(err, account.ErrAccountNotFound):
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := &account.Account{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     account.Role(req.Role),
	}

	created, err := s.accounts.Create(ctx, acc)
	if err != nil {
		return nil, err
	}

	return s.generateTokenPair(ctx, created)
}

// Login authenticates a guardian and returns tokens
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	acc, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(ctx, acc)
}

// RefreshAccessToken generates a new token pair using a refresh token
func (s *Service) RefreshAccessToken(ctx context.Context, refreshTokenString string) (*AuthResponse, error) {
	refreshToken, err := s.tokens.GetRefreshToken(ctx, refreshTokenString)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	acc, err := s.accounts.GetByID(ctx, refreshToken.AccountID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// Rotate: the used refresh token is spent.
	if err := s.tokens.DeleteRefreshToken(ctx, refreshTokenString); err != nil {
		return nil, err
	}

	return s.generateTokenPair(ctx, acc)
}

// Logout invalidates a refresh token
func (s *Service) Logout(ctx context.Context, refreshTokenString string) error {
	return s.tokens.DeleteRefreshToken(ctx, refreshTokenString)
}

// LogoutAll invalidates all refresh tokens for an account
func (s *Service) LogoutAll(ctx context.Context, accountID int) error {
	return s.tokens.DeleteAllAccountTokens(ctx, accountID)
}

// generateTokenPair creates access and refresh tokens
func (s *Service) generateTokenPair(ctx context.Context, acc *account.Account) (*AuthResponse, error) {
	accessToken, err := GenerateAccessToken(acc.ID, acc.Email, string(acc.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(refreshTokenTTL)
	if err := s.tokens.CreateRefreshToken(ctx, acc.ID, refreshToken, expiresAt); err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Account:      acc,
		RedirectTo:   landingRoute(acc.Role),
	}, nil
}

// landingRoute picks the post-auth route by role.
func landingRoute(role account.Role) string {
	if role == account.RoleAdmin {
		return "/admin/dashboard"
	}
	return "/parent/dashboard"
}
