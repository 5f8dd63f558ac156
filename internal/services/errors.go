package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound: missing user/profile, surfaced verbatim.
	ErrNotFound = errors.New("Usuario no encontrado")
	// ErrInvalidOrExpired deliberately does not distinguish wrong code,
	// expired code and already-used code.
	ErrInvalidOrExpired = errors.New("Código inválido o expirado")
	// ErrUpstream is the generic caller-facing error for Gemini/database
	// failures; the detail is logged, never propagated.
	ErrUpstream = errors.New("Error al generar consejo")
)

// Auth error codes, mapped from the credential collaborator to user-facing
// messages (same set and wording the mobile app shows).
var (
	ErrEmailInUse      = errors.New("Este email ya está registrado")
	ErrInvalidEmail    = errors.New("Email inválido")
	ErrWeakPassword    = errors.New("La contraseña debe tener al menos 6 caracteres")
	ErrWrongPassword   = errors.New("Contraseña incorrecta")
	ErrTooManyRequests = errors.New("Demasiados intentos. Inténtalo más tarde")
)

// ValidationError reports profile range violations field by field. It never
// reaches the persistence layer.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "perfil inválido: " + strings.Join(parts, "; ")
}
