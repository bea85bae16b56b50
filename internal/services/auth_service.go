package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"quote-service/internal/models"
	"quote-service/internal/repository"
	utils "quote-service/shared/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type IAuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	LogoutAll(ctx context.Context, userID string) error
	Authenticate(ctx context.Context, token string) (*models.Claims, error)
}

type AuthService struct {
	userRepo    repository.IUserRepository
	companyRepo repository.ICompanyRepository
	sessionRepo repository.SessionRepository
	jwtService  *JWTService
}

func NewAuthService(
	userRepo repository.IUserRepository,
	companyRepo repository.ICompanyRepository,
	sessionRepo repository.SessionRepository,
	jwtService *JWTService,
) IAuthService {
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
	}
}

// Register creates a company account together with its company profile.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := utils.ValidateEmail(email); err != nil {
		return nil, badRequest("invalid email")
	}
	if len(req.Password) < minPasswordLength {
		return nil, badRequest("password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		companyName = defaultCompanyName(email)
	}
	company := &models.Company{
		ID:    uuid.NewString(),
		Name:  companyName,
		Email: email,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, fromRepository(err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CompanyID:    &company.ID,
		Role:         models.UserRoleCompany,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fromRepository(err)
	}

	slog.Info("User registered", "user_id", user.ID, "company_id", company.ID)
	return s.issue(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	return s.issue(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.DeleteSession(ctx, sessionID)
}

// LogoutAll revokes every session of the user.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) error {
	return s.sessionRepo.DeleteUserSessions(ctx, userID)
}

// Authenticate accepts a token only while its session is live.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Claims, error) {
	claims, err := s.jwtService.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetSession(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: session expired or revoked", ErrUnauthorized)
		}
		return nil, err
	}
	if !session.IsActive || session.TokenHash != hashToken(token) || session.UserID != claims.UserID {
		return nil, fmt.Errorf("%w: session invalid", ErrUnauthorized)
	}
	return claims, nil
}

func (s *AuthService) issue(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	sessionID := uuid.NewString()
	token, err := s.jwtService.GenerateToken(user, sessionID)
	if err != nil {
		return nil, err
	}

	session := &models.UserSession{
		ID:        sessionID,
		UserID:    user.ID,
		Role:      user.Role,
		TokenHash: hashToken(token),
	}
	if user.CompanyID != nil {
		session.CompanyID = *user.CompanyID
	}
	if err := s.sessionRepo.CreateSession(ctx, session, s.jwtService.TTL()); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &models.AuthResponse{
		User:      *user,
		Token:     token,
		ExpiresIn: int64(s.jwtService.TTL().Seconds()),
	}, nil
}

func defaultCompanyName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local + " Insurance"
}
