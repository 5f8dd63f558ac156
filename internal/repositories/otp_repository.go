package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"tipfit/internal/models"
)

type OTPRepository interface {
	Create(ctx context.Context, code *models.OTPCode) error
	// FindCandidates returns every unused code matching email+code+purpose.
	// Expiry is not filtered here; the service resolves it in memory so no
	// composite index on the collection is required.
	FindCandidates(ctx context.Context, email, code, purpose string) ([]*models.OTPCode, error)
	MarkUsed(ctx context.Context, id string, usedAt time.Time) error
}

type otpRepository struct {
	col *mongo.Collection
}

func NewOTPRepository(db *mongo.Database) OTPRepository {
	return &otpRepository{col: db.Collection("otp_codes")}
}

func (r *otpRepository) Create(ctx context.Context, code *models.OTPCode) error {
	if code.ID == "" {
		code.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, code); err != nil {
		return fmt.Errorf("otp insert: %w", err)
	}
	return nil
}

func (r *otpRepository) FindCandidates(ctx context.Context, email, code, purpose string) ([]*models.OTPCode, error) {
	cur, err := r.col.Find(ctx, bson.M{
		"email":   email,
		"code":    code,
		"purpose": purpose,
		"used":    false,
	})
	if err != nil {
		return nil, fmt.Errorf("otp find: %w", err)
	}
	defer cur.Close(ctx)

	var out []*models.OTPCode
	for cur.Next(ctx) {
		var c models.OTPCode
		if err := cur.Decode(&c); err != nil {
			return nil, fmt.Errorf("otp decode: %w", err)
		}
		out = append(out, &c)
	}
	return out, cur.Err()
}

func (r *otpRepository) MarkUsed(ctx context.Context, id string, usedAt time.Time) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "used": false}, bson.M{"$set": bson.M{
		"used":   true,
		"usedAt": usedAt,
	}})
	if err != nil {
		return fmt.Errorf("otp mark used: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
