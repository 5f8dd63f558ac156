package models

import "time"

// OTP purposes. Login additionally requires the user to exist before a code
// is issued; registration does not.
const (
	OTPPurposeRegistration = "registration"
	OTPPurposeLogin        = "login"
)

// OTPCode is one issued code. Every send creates a new document; codes are
// never deleted, only soft-expired by ExpiresAt and the Used flag. Several
// unused codes may coexist for the same email.
type OTPCode struct {
	ID        string     `json:"-" bson:"_id,omitempty"`
	Email     string     `json:"email" bson:"email"`
	Code      string     `json:"-" bson:"code"`
	Purpose   string     `json:"purpose" bson:"purpose"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	ExpiresAt time.Time  `json:"expiresAt" bson:"expiresAt"`
	Used      bool       `json:"used" bson:"used"`
	UsedAt    *time.Time `json:"-" bson:"usedAt,omitempty"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (o *OTPCode) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
