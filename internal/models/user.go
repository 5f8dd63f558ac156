package models

import "time"

// Activity levels accepted by the profile (mirror the mobile picker values).
const (
	ActivitySedentario = "Sedentario"
	ActivityModerado   = "Moderado"
	ActivityActivo     = "Activo"
)

// Profile is embedded in the user document. Age is a pointer because a fresh
// account has no age until onboarding completes.
type Profile struct {
	Age           *int   `json:"age" bson:"age"`
	ScreenTime    int    `json:"screenTime" bson:"screenTime"`
	ActivityLevel string `json:"activityLevel" bson:"activityLevel"`
	SleepHours    int    `json:"sleepHours" bson:"sleepHours"`
	Completed     bool   `json:"completed" bson:"completed"`
}

// DefaultProfile returns the values a user document is created with.
func DefaultProfile() Profile {
	return Profile{
		ScreenTime:    8,
		ActivityLevel: ActivityModerado,
		SleepHours:    8,
		Completed:     false,
	}
}

type User struct {
	ID            string     `json:"uid" bson:"_id"`
	Email         string     `json:"email" bson:"email"`
	Name          string     `json:"name" bson:"name"`
	PasswordHash  string     `json:"-" bson:"passwordHash"`
	EmailVerified bool       `json:"emailVerified" bson:"emailVerified"`
	Profile       Profile    `json:"profile" bson:"profile"`
	LastTip       *LastTip   `json:"lastTip,omitempty" bson:"lastTip,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	VerifiedAt    *time.Time `json:"-" bson:"verifiedAt,omitempty"`
	UpdatedAt     time.Time  `json:"-" bson:"updatedAt,omitempty"`
}

// LastTip is the "most recent tip" pointer kept on the user document so the
// daily resolver can short-circuit without composite indexes.
type LastTip struct {
	TipID     string    `json:"tipId" bson:"tipId"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Category  string    `json:"category" bson:"category"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	DateKey   string    `json:"dateKey" bson:"dateKey"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
