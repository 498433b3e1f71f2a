package service

import (
	"context" // Request-scoped cancellation
	"errors"  // Sentinel matching
	"strings"
	"time"    // Timestamps

	"eventpay/internal/apperr" // Error kinds
	"eventpay/internal/domain" // Importing domain models
	"eventpay/internal/store"  // Repositories
	"eventpay/internal/utils"  // Cache and code helpers

	"github.com/shopspring/decimal"  // Money amounts
	log "github.com/sirupsen/logrus" // Structured logging
	"golang.org/x/crypto/bcrypt"     // Password hashing
)

// RegisterInput is the data needed to open an account
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    *string
}

// Session is an issued bearer token and the user it belongs to
type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// AuthService verifies credentials and issues and checks bearer tokens
type AuthService struct {
	users    *store.UserStore
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(users *store.UserStore, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a user with the user role and no credits
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := normalizeEmail(in.Email)
	// Hash the password before storing
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to hash password")
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         domain.RoleUser,
		Credits:      decimal.Zero,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.NewConflict("email already registered")
		}
		return nil, apperr.Wrap(err, "failed to create user")
	}
	log.WithFields(log.Fields{"user_id": u.ID, "email": u.Email}).Info("User registered")
	return s.issue(u)
}

// Login checks the credentials and issues a token
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.users.ByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NewUnauthorized("invalid email or password")
		}
		return nil, apperr.Wrap(err, "failed to load user")
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		log.WithField("email", u.Email).Warn("Login rejected")
		return nil, apperr.NewUnauthorized("invalid email or password")
	}
	return s.issue(u)
}

// Authenticate resolves a bearer token to the current user record
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := utils.ParseJWT(token, s.secret)
	if err != nil {
		if errors.Is(err, utils.ErrExpiredToken) {
			return nil, apperr.NewUnauthorized("token expired")
		}
		return nil, apperr.NewUnauthorized("invalid token")
	}
	u, err := s.users.ByID(ctx, claims.Subject) // Role is read fresh on every request
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NewUnauthorized("user not found")
		}
		return nil, apperr.Wrap(err, "failed to load user")
	}
	return u, nil
}

func (s *AuthService) issue(u *domain.User) (*Session, error) {
	token, err := utils.GenerateJWT(u.ID, u.Email, s.secret, s.tokenTTL)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to generate token")
	}
	return &Session{Token: token, User: u}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
