package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"tipfit/internal/models"
	"tipfit/internal/repositories"
)

const otpTTL = 5 * time.Minute

// OTPService issues and verifies the 6-digit email codes. Matching policy is
// strict: the store is queried on email+code+purpose+unused and only expiry
// is resolved in memory (most recently created unexpired candidate wins).
type OTPService interface {
	// Issue generates, persists and emails a code. Email delivery failure
	// does not fail issuance; the result then carries the code itself as
	// the fallback channel.
	Issue(ctx context.Context, email, purpose string) (*IssueResult, error)
	// Verify consumes a code exactly once. For registration it flips the
	// user's emailVerified flag; for login it returns the full user record
	// as the terminal authentication step.
	Verify(ctx context.Context, email, code, purpose string) (*models.User, error)
	Resend(ctx context.Context, email, purpose string) (*IssueResult, error)
}

type IssueResult struct {
	ExpiresAt time.Time `json:"expiresAt"`
	Fallback  bool      `json:"fallback"`
	// Code is set only when the fallback path was used (delivery failed or
	// dev mode); otherwise it travels by email only.
	Code string `json:"code,omitempty"`
}

// RateLimiter throttles code issuance per destination address. A nil limiter
// disables throttling.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type otpService struct {
	repo     repositories.OTPRepository
	userRepo repositories.UserRepository
	emails   EmailService
	limiter  RateLimiter
	devMode  bool
}

func NewOTPService(repo repositories.OTPRepository, userRepo repositories.UserRepository, emails EmailService, limiter RateLimiter, devMode bool) OTPService {
	return &otpService{
		repo:     repo,
		userRepo: userRepo,
		emails:   emails,
		limiter:  limiter,
		devMode:  devMode,
	}
}

// uniform draw over [100000, 999999]; no leading zeros by construction
func (s *otpService) generateCode() string {
	src := rand.NewSource(time.Now().UnixNano())
	rnd := rand.New(src)
	return fmt.Sprintf("%d", 100000+rnd.Intn(900000))
}

func (s *otpService) Issue(ctx context.Context, email, purpose string) (*IssueResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, "otp:"+email)
		if err != nil {
			// a broken limiter must not block logins
			log.Printf("[otp][issue] limiter failed email=%q: %v", email, err)
		} else if !allowed {
			return nil, ErrTooManyRequests
		}
	}

	// login codes only for accounts that exist; registration has no such
	// precondition because the account was just created
	if purpose == models.OTPPurposeLogin {
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			log.Printf("[otp][issue] user lookup failed email=%q: %v", email, err)
			return nil, ErrUpstream
		}
		if user == nil {
			return nil, ErrNotFound
		}
	}

	code := s.generateCode()
	now := time.Now()
	rec := &models.OTPCode{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(otpTTL),
		Used:      false,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		log.Printf("[otp][issue] persist failed email=%q: %v", email, err)
		return nil, ErrUpstream
	}

	res := &IssueResult{ExpiresAt: rec.ExpiresAt}
	if s.devMode {
		res.Fallback = true
		res.Code = code
		log.Printf("[otp][issue] dev mode, code for %s: %s", email, code)
		return res, nil
	}

	if err := s.emails.SendOTPEmail(email, code, purpose); err != nil {
		// delivery is best effort; surface the code to the caller instead
		log.Printf("[otp][issue] email send failed email=%q: %v (falling back)", email, err)
		res.Fallback = true
		res.Code = code
	}
	return res, nil
}

func (s *otpService) Verify(ctx context.Context, email, code, purpose string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.TrimSpace(code)

	candidates, err := s.repo.FindCandidates(ctx, email, code, purpose)
	if err != nil {
		log.Printf("[otp][verify] query failed email=%q: %v", email, err)
		return nil, ErrUpstream
	}

	// keep the most recently created unexpired one
	now := time.Now()
	var valid *models.OTPCode
	for _, c := range candidates {
		if c.Expired(now) {
			continue
		}
		if valid == nil || c.CreatedAt.After(valid.CreatedAt) {
			valid = c
		}
	}
	if valid == nil {
		return nil, ErrInvalidOrExpired
	}

	// at-most-once: the repo matches on used=false, so a concurrent verify
	// of the same code loses here
	if err := s.repo.MarkUsed(ctx, valid.ID, now); err != nil {
		log.Printf("[otp][verify] mark used failed id=%s: %v", valid.ID, err)
		return nil, ErrInvalidOrExpired
	}

	if purpose == models.OTPPurposeRegistration {
		if err := s.userRepo.MarkEmailVerified(ctx, email); err != nil {
			log.Printf("[otp][verify] mark verified failed email=%q: %v", email, err)
			return nil, ErrUpstream
		}
		user, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			log.Printf("[otp][verify] user load failed email=%q: %v", email, err)
			return nil, ErrUpstream
		}
		if user == nil {
			// account document not created yet; hand back a stub so the
			// caller can continue onboarding
			return &models.User{Email: email, Profile: models.DefaultProfile()}, nil
		}
		user.EmailVerified = true
		return user, nil
	}

	// login: load and return the full record, profile included
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Printf("[otp][verify] user load failed email=%q: %v", email, err)
		return nil, ErrUpstream
	}
	if user == nil {
		return nil, ErrNotFound
	}
	log.Printf("[otp][verify] OK email=%q purpose=%s", email, purpose)
	return user, nil
}

// Resend re-issues; previously issued unexpired codes stay valid.
func (s *otpService) Resend(ctx context.Context, email, purpose string) (*IssueResult, error) {
	return s.Issue(ctx, email, purpose)
}
