package models

import "time"

// MaxTipContentChars bounds the tip body so it fits the mobile card.
const MaxTipContentChars = 240

// Tip is immutable once created. The same logical tip is written to the
// global collection (authoritative), the per-user projection and the user's
// lastTip pointer.
type Tip struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Category  string    `json:"category" bson:"category"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	Profile   Profile   `json:"profile" bson:"profile"`
}

// DailyTip is the per-day record, one per user per calendar day.
// Its document id is "{userId}_{dateKey}" with dateKey = local YYYYMMDD.
type DailyTip struct {
	ID        string    `json:"-" bson:"_id"`
	UserID    string    `json:"userId" bson:"userId"`
	TipID     string    `json:"tipId" bson:"tipId"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	Category  string    `json:"category" bson:"category"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	Profile   Profile   `json:"profile" bson:"profile"`
	DateKey   string    `json:"dateKey" bson:"dateKey"`
}

// Tip returns the daily record mapped back to the Tip shape.
func (d *DailyTip) Tip() *Tip {
	return &Tip{
		ID:        d.TipID,
		UserID:    d.UserID,
		Title:     d.Title,
		Content:   d.Content,
		Category:  d.Category,
		CreatedAt: d.CreatedAt,
		Profile:   d.Profile,
	}
}

// DateKey formats t as the local-day key used for daily tip documents.
func DateKey(t time.Time) string {
	return t.Format("20060102")
}
