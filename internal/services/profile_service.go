package services

import (
	"context"
	"log"

	"tipfit/internal/models"
	"tipfit/internal/repositories"
)

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	// Update validates ranges field by field before touching the store.
	Update(ctx context.Context, userID string, profile models.Profile) error
}

type profileService struct {
	userRepo repositories.UserRepository
}

func NewProfileService(userRepo repositories.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Printf("[profile][get] lookup failed id=%s: %v", userID, err)
		return nil, ErrUpstream
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return &user.Profile, nil
}

func (s *profileService) Update(ctx context.Context, userID string, profile models.Profile) error {
	if err := ValidateProfile(profile); err != nil {
		return err
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, profile); err != nil {
		user, lookupErr := s.userRepo.GetByID(ctx, userID)
		if lookupErr == nil && user == nil {
			return ErrNotFound
		}
		log.Printf("[profile][update] persist failed id=%s: %v", userID, err)
		return ErrUpstream
	}
	return nil
}

// ValidateProfile checks the ranges the onboarding screens enforce. A
// violation is reported per field and never reaches the persistence layer.
func ValidateProfile(p models.Profile) error {
	fields := map[string]string{}
	if p.Age != nil && (*p.Age < 13 || *p.Age > 120) {
		fields["age"] = "debe estar entre 13 y 120"
	}
	if p.ScreenTime < 0 || p.ScreenTime > 24 {
		fields["screenTime"] = "debe estar entre 0 y 24 horas"
	}
	if p.SleepHours < 0 || p.SleepHours > 24 {
		fields["sleepHours"] = "debe estar entre 0 y 24 horas"
	}
	switch p.ActivityLevel {
	case models.ActivitySedentario, models.ActivityModerado, models.ActivityActivo:
	default:
		fields["activityLevel"] = "debe ser Sedentario, Moderado o Activo"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
