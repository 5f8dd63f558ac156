package services

import (
	"context"
	"errors"
	"time"

	"tipfit/internal/models"
)

// --- in-memory fakes shared by the service tests ---

type fakeUserRepo struct {
	users map[string]*models.User // keyed by id

	createErr  error
	lookupErr  error
	updateErr  error
	lastTipErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, profile models.Profile) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	u, ok := f.users[id]
	if !ok {
		return errors.New("no documents")
	}
	u.Profile = profile
	return nil
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, email string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, u := range f.users {
		if u.Email == email {
			u.EmailVerified = true
			now := time.Now()
			u.VerifiedAt = &now
		}
	}
	return nil
}

func (f *fakeUserRepo) UpdateLastTip(ctx context.Context, id string, last *models.LastTip) error {
	if f.lastTipErr != nil {
		return f.lastTipErr
	}
	u, ok := f.users[id]
	if !ok {
		return errors.New("no documents")
	}
	u.LastTip = last
	return nil
}

type fakeOTPRepo struct {
	codes []*models.OTPCode

	createErr error
	findErr   error
}

func (f *fakeOTPRepo) Create(ctx context.Context, code *models.OTPCode) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *code
	if cp.ID == "" {
		cp.ID = "otp-" + time.Now().Format("150405.000000000")
	}
	code.ID = cp.ID
	f.codes = append(f.codes, &cp)
	return nil
}

func (f *fakeOTPRepo) FindCandidates(ctx context.Context, email, code, purpose string) ([]*models.OTPCode, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []*models.OTPCode
	for _, c := range f.codes {
		if c.Email == email && c.Code == code && c.Purpose == purpose && !c.Used {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOTPRepo) MarkUsed(ctx context.Context, id string, usedAt time.Time) error {
	for _, c := range f.codes {
		if c.ID == id && !c.Used {
			c.Used = true
			c.UsedAt = &usedAt
			return nil
		}
	}
	return errors.New("no documents")
}

type fakeEmailService struct {
	sent    []string // "email|purpose"
	sendErr error
}

func (f *fakeEmailService) SendOTPEmail(email, code, purpose string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, email+"|"+purpose)
	return nil
}

type fakeTipRepo struct {
	tips     map[string]*models.Tip
	userTips []*models.Tip
	daily    map[string]*models.DailyTip

	insertErr     error
	projectionErr error
	dailyErr      error
	listErr       error
}

func newFakeTipRepo() *fakeTipRepo {
	return &fakeTipRepo{
		tips:  map[string]*models.Tip{},
		daily: map[string]*models.DailyTip{},
	}
}

func (f *fakeTipRepo) InsertTip(ctx context.Context, tip *models.Tip) (*models.Tip, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	cp := *tip
	f.tips[tip.ID] = &cp
	saved := cp
	return &saved, nil
}

func (f *fakeTipRepo) InsertUserTip(ctx context.Context, tip *models.Tip) error {
	if f.projectionErr != nil {
		return f.projectionErr
	}
	cp := *tip
	f.userTips = append(f.userTips, &cp)
	return nil
}

func (f *fakeTipRepo) UpsertDailyTip(ctx context.Context, daily *models.DailyTip) error {
	if f.dailyErr != nil {
		return f.dailyErr
	}
	cp := *daily
	f.daily[daily.ID] = &cp
	return nil
}

func (f *fakeTipRepo) GetDailyTip(ctx context.Context, userID, dateKey string) (*models.DailyTip, error) {
	if f.dailyErr != nil {
		return nil, f.dailyErr
	}
	d, ok := f.daily[userID+"_"+dateKey]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeTipRepo) ListUserTips(ctx context.Context, userID string) ([]*models.Tip, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Tip
	for _, t := range f.userTips {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTipRepo) ListGlobalTips(ctx context.Context, userID string) ([]*models.Tip, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*models.Tip
	for _, t := range f.tips {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeGenerator) GenerateContent(prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
