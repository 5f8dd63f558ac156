package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tipfit/internal/models"
	"tipfit/internal/repositories"
)

const defaultTipTitle = "Consejo del día"

// TextGenerator is the opaque text-completion collaborator.
type TextGenerator interface {
	GenerateContent(prompt string) (string, error)
}

type TipService interface {
	// Generate builds the prompt from the profile, calls the generator and
	// persists the result through the three placements. It fails only if
	// the authoritative write fails.
	Generate(ctx context.Context, userID string, profile models.Profile) (*models.Tip, error)
	// GetDaily returns today's tip, generating one on first call of the
	// day. Callers never get "no tip yet".
	GetDaily(ctx context.Context, userID string) (*models.Tip, error)
	// GetHistory merges the per-user projection with the global collection
	// (projection wins on id conflict), newest first.
	GetHistory(ctx context.Context, userID string, limit int) ([]*models.Tip, error)
}

type tipService struct {
	repo       repositories.TipRepository
	userRepo   repositories.UserRepository
	generator  TextGenerator
	categories []Category
}

func NewTipService(repo repositories.TipRepository, userRepo repositories.UserRepository, generator TextGenerator) TipService {
	return &tipService{
		repo:       repo,
		userRepo:   userRepo,
		generator:  generator,
		categories: DefaultCategories,
	}
}

func buildPrompt(p models.Profile) string {
	age := "No especificada"
	if p.Age != nil {
		age = fmt.Sprintf("%d", *p.Age)
	}
	screenTime := p.ScreenTime
	if screenTime == 0 {
		screenTime = 8
	}
	activity := p.ActivityLevel
	if activity == "" {
		activity = models.ActivityModerado
	}
	sleep := p.SleepHours
	if sleep == 0 {
		sleep = 8
	}

	return fmt.Sprintf(`Eres un experto en bienestar y salud. Genera un consejo personalizado y motivacional basado en el perfil del usuario. Debe ser CORTO y caber en un contenedor móvil:

Perfil del usuario:
- Edad: %s
- Horas frente a pantalla: %d horas
- Nivel de actividad: %s
- Horas de sueño: %d horas

Genera un consejo:
1. Personalizado según el perfil
2. Motivacional y positivo
3. Práctico y accionable
4. Máximo 240 caracteres en el cuerpo (no más de 3 líneas)
5. En español
6. Formato: Título + Consejo + Acción específica

Ejemplo de formato:
**Título del Consejo**
Consejo personalizado aquí...

**Acción del día:**
Acción específica que puede hacer hoy.

Responde solo con el consejo formateado, sin explicaciones adicionales.`, age, screenTime, activity, sleep)
}

// parseGenerated splits the raw model output into title and body. The first
// line with the ** marker becomes the title; everything else joined is the
// body, hard-truncated to the card limit.
func parseGenerated(text string) (title, content string) {
	title = defaultTipTitle
	var bodyLines []string
	titleFound := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "**") {
			if !titleFound {
				title = strings.ReplaceAll(line, "**", "")
				titleFound = true
			}
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	content = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	if runes := []rune(content); len(runes) > models.MaxTipContentChars {
		content = strings.TrimSpace(string(runes[:models.MaxTipContentChars]))
	}
	return title, content
}

func (s *tipService) Generate(ctx context.Context, userID string, profile models.Profile) (*models.Tip, error) {
	text, err := s.generator.GenerateContent(buildPrompt(profile))
	if err != nil {
		log.Printf("[tips][generate] gemini failed user=%s: %v", userID, err)
		return nil, ErrUpstream
	}

	title, content := parseGenerated(text)
	tip := &models.Tip{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		Category:  Classify(content, s.categories),
		CreatedAt: time.Now(),
		Profile:   profile,
	}

	// (a) authoritative write; its stored form is the canonical record
	saved, err := s.repo.InsertTip(ctx, tip)
	if err != nil {
		log.Printf("[tips][generate] authoritative insert failed user=%s: %v", userID, err)
		return nil, ErrUpstream
	}

	// (b)+(c) best-effort projections; failures are logged, never fatal
	if err := s.repo.InsertUserTip(ctx, saved); err != nil {
		log.Printf("[tips][generate] user_tips projection failed user=%s tip=%s: %v", userID, saved.ID, err)
	}

	dateKey := models.DateKey(saved.CreatedAt)
	daily := &models.DailyTip{
		ID:        userID + "_" + dateKey,
		UserID:    userID,
		TipID:     saved.ID,
		Title:     saved.Title,
		Content:   saved.Content,
		Category:  saved.Category,
		CreatedAt: saved.CreatedAt,
		Profile:   saved.Profile,
		DateKey:   dateKey,
	}
	if err := s.repo.UpsertDailyTip(ctx, daily); err != nil {
		log.Printf("[tips][generate] daily upsert failed user=%s tip=%s: %v", userID, saved.ID, err)
	}

	last := &models.LastTip{
		TipID:     saved.ID,
		Title:     saved.Title,
		Content:   saved.Content,
		Category:  saved.Category,
		CreatedAt: saved.CreatedAt,
		DateKey:   dateKey,
	}
	if err := s.userRepo.UpdateLastTip(ctx, userID, last); err != nil {
		log.Printf("[tips][generate] lastTip pointer failed user=%s tip=%s: %v", userID, saved.ID, err)
	}

	log.Printf("[tips][generate] OK user=%s tip=%s category=%s", userID, saved.ID, saved.Category)
	return saved, nil
}

func (s *tipService) GetDaily(ctx context.Context, userID string) (*models.Tip, error) {
	today := models.DateKey(time.Now())

	// fast path: direct daily record
	daily, err := s.repo.GetDailyTip(ctx, userID, today)
	if err != nil {
		log.Printf("[tips][daily] read failed user=%s: %v", userID, err)
		return nil, ErrUpstream
	}
	if daily != nil {
		return daily.Tip(), nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Printf("[tips][daily] user load failed user=%s: %v", userID, err)
		return nil, ErrUpstream
	}
	if user == nil {
		return nil, ErrNotFound
	}

	// second fast path: lastTip pointer already points at today
	if user.LastTip != nil && user.LastTip.DateKey == today {
		lt := user.LastTip
		return &models.Tip{
			ID:        lt.TipID,
			UserID:    userID,
			Title:     lt.Title,
			Content:   lt.Content,
			Category:  lt.Category,
			CreatedAt: lt.CreatedAt,
			Profile:   user.Profile,
		}, nil
	}

	// nothing for today: generate on demand
	return s.Generate(ctx, userID, user.Profile)
}

func (s *tipService) GetHistory(ctx context.Context, userID string, limit int) ([]*models.Tip, error) {
	sub, err := s.repo.ListUserTips(ctx, userID)
	if err != nil {
		log.Printf("[tips][history] user_tips read failed user=%s: %v", userID, err)
		return nil, ErrUpstream
	}
	global, err := s.repo.ListGlobalTips(ctx, userID)
	if err != nil {
		log.Printf("[tips][history] tips read failed user=%s: %v", userID, err)
		return nil, ErrUpstream
	}

	byID := make(map[string]*models.Tip, len(sub)+len(global))
	for _, t := range sub {
		byID[t.ID] = t
	}
	for _, t := range global {
		if _, ok := byID[t.ID]; !ok {
			byID[t.ID] = t
		}
	}

	tips := make([]*models.Tip, 0, len(byID))
	for _, t := range byID {
		tips = append(tips, t)
	}
	sort.Slice(tips, func(i, j int) bool {
		return tips[i].CreatedAt.After(tips[j].CreatedAt)
	})
	if limit > 0 && len(tips) > limit {
		tips = tips[:limit]
	}
	return tips, nil
}
