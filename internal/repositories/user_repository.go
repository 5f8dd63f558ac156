package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tipfit/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, profile models.Profile) error
	MarkEmailVerified(ctx context.Context, email string) error
	UpdateLastTip(ctx context.Context, id string, last *models.LastTip) error
}

type userRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{col: db.Collection("users")}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if _, err := r.col.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("users insert: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users get by id: %w", err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users get by email: %w", err)
	}
	return &u, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, profile models.Profile) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"profile":   profile,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("users update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, email string) error {
	now := time.Now()
	_, err := r.col.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"emailVerified": true,
		"verifiedAt":    now,
	}})
	if err != nil {
		return fmt.Errorf("users mark verified: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateLastTip(ctx context.Context, id string, last *models.LastTip) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"lastTip":   last,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return fmt.Errorf("users update last tip: %w", err)
	}
	return nil
}
