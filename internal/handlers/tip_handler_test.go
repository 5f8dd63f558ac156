package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tipfit/internal/models"
	"tipfit/internal/pdf"
	"tipfit/internal/services"
)

type stubTipService struct {
	tip       *models.Tip
	err       error
	generated int
	lastLimit int
}

func (s *stubTipService) Generate(ctx context.Context, userID string, profile models.Profile) (*models.Tip, error) {
	s.generated++
	return s.tip, s.err
}

func (s *stubTipService) GetDaily(ctx context.Context, userID string) (*models.Tip, error) {
	return s.tip, s.err
}

func (s *stubTipService) GetHistory(ctx context.Context, userID string, limit int) ([]*models.Tip, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	if s.tip == nil {
		return nil, nil
	}
	return []*models.Tip{s.tip}, nil
}

type stubProfileService struct {
	profile *models.Profile
	err     error
}

func (s *stubProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	return s.profile, s.err
}

func (s *stubProfileService) Update(ctx context.Context, userID string, profile models.Profile) error {
	return s.err
}

type stubReports struct{ path string }

func (s *stubReports) GenerateHistory(data pdf.HistoryData) (string, error) {
	return s.path, nil
}

func tipRouter(tips services.TipService, profiles services.ProfileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) { c.Set("user_id", "u1") }
	h := NewTipHandler(tips, profiles, &stubReports{})
	r.GET("/tips/daily", auth, h.Daily)
	r.POST("/tips/generate", auth, h.Generate)
	r.GET("/tips/history", auth, h.History)
	return r
}

func sampleTip() *models.Tip {
	return &models.Tip{ID: "t1", UserID: "u1", Title: "Muévete más", Category: "ejercicio", CreatedAt: time.Now()}
}

func TestDailyReturnsTip(t *testing.T) {
	r := tipRouter(&stubTipService{tip: sampleTip()}, &stubProfileService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tips/daily", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"t1"`)
}

func TestDailyMapsNotFound(t *testing.T) {
	r := tipRouter(&stubTipService{err: services.ErrNotFound}, &stubProfileService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tips/daily", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Usuario no encontrado")
}

func TestDailyMapsUpstreamTo500(t *testing.T) {
	r := tipRouter(&stubTipService{err: services.ErrUpstream}, &stubProfileService{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tips/daily", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error interno del servidor")
}

func TestGenerateRequiresCompletedProfile(t *testing.T) {
	tips := &stubTipService{tip: sampleTip()}
	stored := models.DefaultProfile() // Completed is false until onboarding ends
	r := tipRouter(tips, &stubProfileService{profile: &stored})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tips/generate", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Completa tu perfil primero")
	assert.Zero(t, tips.generated)
}

func TestGenerateWithBodyProfile(t *testing.T) {
	tips := &stubTipService{tip: sampleTip()}
	r := tipRouter(tips, &stubProfileService{})

	body := `{"age":30,"screenTime":6,"activityLevel":"Activo","sleepHours":7,"completed":true}`
	req := httptest.NewRequest(http.MethodPost, "/tips/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, tips.generated)
}

func TestHistoryLimit(t *testing.T) {
	tips := &stubTipService{tip: sampleTip()}
	r := tipRouter(tips, &stubProfileService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tips/history?limit=5", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, tips.lastLimit)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tips/history?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
