package services

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"tipfit/internal/models"
	"tipfit/internal/repositories"
)

// AuthService is the password-credential collaborator: it accepts or rejects
// (email, password) pairs and creates the account document. The OTP step
// that follows is owned by OTPService.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(strings.TrimSpace(password)) < 6 {
		return nil, ErrWeakPassword
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("[auth][register] lookup failed email=%q: %v", email, err)
		return nil, ErrUpstream
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:            primitive.NewObjectID().Hex(),
		Email:         email,
		Name:          name,
		PasswordHash:  string(hash),
		EmailVerified: false,
		Profile:       models.DefaultProfile(),
		CreatedAt:     time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Printf("[auth][register] create failed email=%q: %v", email, err)
		return nil, ErrUpstream
	}
	log.Printf("[auth][register] created user id=%s email=%q", user.ID, email)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("[auth][login] lookup failed email=%q: %v", email, err)
		return nil, ErrUpstream
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, ErrWrongPassword
	}
	return user, nil
}
