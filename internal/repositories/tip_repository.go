package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tipfit/internal/models"
)

// TipRepository covers the three physical placements of a tip: the global
// `tips` collection (authoritative), the per-user `user_tips` projection and
// the `daily_tips` per-day record. The lastTip pointer lives on the user
// document and is owned by UserRepository.
type TipRepository interface {
	// InsertTip writes to the authoritative collection and re-reads the
	// stored document so the caller gets the canonical record.
	InsertTip(ctx context.Context, tip *models.Tip) (*models.Tip, error)
	InsertUserTip(ctx context.Context, tip *models.Tip) error
	UpsertDailyTip(ctx context.Context, daily *models.DailyTip) error
	GetDailyTip(ctx context.Context, userID, dateKey string) (*models.DailyTip, error)
	ListUserTips(ctx context.Context, userID string) ([]*models.Tip, error)
	ListGlobalTips(ctx context.Context, userID string) ([]*models.Tip, error)
}

type tipRepository struct {
	tips     *mongo.Collection
	userTips *mongo.Collection
	daily    *mongo.Collection
}

func NewTipRepository(db *mongo.Database) TipRepository {
	return &tipRepository{
		tips:     db.Collection("tips"),
		userTips: db.Collection("user_tips"),
		daily:    db.Collection("daily_tips"),
	}
}

func (r *tipRepository) InsertTip(ctx context.Context, tip *models.Tip) (*models.Tip, error) {
	if _, err := r.tips.InsertOne(ctx, tip); err != nil {
		return nil, fmt.Errorf("tips insert: %w", err)
	}
	var saved models.Tip
	if err := r.tips.FindOne(ctx, bson.M{"_id": tip.ID}).Decode(&saved); err != nil {
		return nil, fmt.Errorf("tips read back: %w", err)
	}
	return &saved, nil
}

func (r *tipRepository) InsertUserTip(ctx context.Context, tip *models.Tip) error {
	if _, err := r.userTips.InsertOne(ctx, tip); err != nil {
		return fmt.Errorf("user_tips insert: %w", err)
	}
	return nil
}

func (r *tipRepository) UpsertDailyTip(ctx context.Context, daily *models.DailyTip) error {
	_, err := r.daily.ReplaceOne(ctx,
		bson.M{"_id": daily.ID},
		daily,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("daily_tips upsert: %w", err)
	}
	return nil
}

func (r *tipRepository) GetDailyTip(ctx context.Context, userID, dateKey string) (*models.DailyTip, error) {
	var d models.DailyTip
	err := r.daily.FindOne(ctx, bson.M{"_id": userID + "_" + dateKey}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("daily_tips get: %w", err)
	}
	return &d, nil
}

func (r *tipRepository) ListUserTips(ctx context.Context, userID string) ([]*models.Tip, error) {
	return r.list(ctx, r.userTips, userID)
}

func (r *tipRepository) ListGlobalTips(ctx context.Context, userID string) ([]*models.Tip, error) {
	return r.list(ctx, r.tips, userID)
}

// list reads by a single equality filter only; ordering and merging are done
// in memory by the service so the collections need no composite index.
func (r *tipRepository) list(ctx context.Context, col *mongo.Collection, userID string) ([]*models.Tip, error) {
	cur, err := col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("%s find: %w", col.Name(), err)
	}
	defer cur.Close(ctx)

	var out []*models.Tip
	for cur.Next(ctx) {
		var t models.Tip
		if err := cur.Decode(&t); err != nil {
			return nil, fmt.Errorf("%s decode: %w", col.Name(), err)
		}
		out = append(out, &t)
	}
	return out, cur.Err()
}
