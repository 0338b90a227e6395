package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Deepender31/artwork-backend/internal/core/domain"
	"github.com/Deepender31/artwork-backend/internal/core/ports"
)

// AuthService implements the identity store together with registration and
// token issuance.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case username == "":
		return nil, domain.Validation("username", "username is required")
	case email == "":
		return nil, domain.Validation("email", "email is required")
	case in.Password == "":
		return nil, domain.Validation("password", "password is required")
	}
	role := domain.Role(in.Role)
	if !role.Valid() {
		return nil, domain.Validation("role", "role must be one of: artist, user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		DisplayName:  strings.TrimSpace(in.FirstName + " " + in.LastName),
		Bio:          in.Bio,
		ProfileImage: in.ProfileImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	userID, err := s.VerifyCredential(ctx, identifier, password)
	if err != nil {
		return "", nil, err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// VerifyCredential always runs one bcrypt comparison, against a throwaway
// hash when the identifier is unknown, so the response time does not reveal
// whether the account exists.
func (s *AuthService) VerifyCredential(ctx context.Context, identifier, secret string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || secret == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.throwawayHash(), []byte(secret))
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	return user.ID, nil
}

func (s *AuthService) GetRole(ctx context.Context, userID string) (domain.Role, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) throwawayHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return s.dummyHash
}
