package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	twitter "slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/user/models"
	"slapflip-backend/internal/features/user/repository"
)

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) repository.UserRepository {
	return &mongoRepository{coll: coll}
}

func (r *mongoRepository) GetByAddress(ctx context.Context, address string) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"address": address}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *mongoRepository) Touch(ctx context.Context, address string, now time.Time) (*models.User, bool, error) {
	update := bson.M{
		"$set":         bson.M{"lastSeen": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	res, err := r.upsert(ctx, address, update)
	if err != nil {
		return nil, false, fmt.Errorf("failed to touch user: %w", err)
	}

	user, err := r.GetByAddress(ctx, address)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, fmt.Errorf("user %s vanished after upsert", address)
	}
	return user, res.UpsertedCount > 0, nil
}

func (r *mongoRepository) LinkTwitter(ctx context.Context, address string, profile twitter.Profile, now time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"twitterConnected": true,
			"twitterId":        profile.ID,
			"twitterUsername":  profile.Username,
			"twitterName":      profile.Name,
			"updatedAt":        now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	if _, err := r.upsert(ctx, address, update); err != nil {
		return fmt.Errorf("failed to link twitter to user: %w", err)
	}
	return nil
}

// upsert retries once on a duplicate key error: two concurrent upserts of a
// new address can race on the unique index and the loser must update instead.
func (r *mongoRepository) upsert(ctx context.Context, address string, update bson.M) (*mongo.UpdateResult, error) {
	opts := options.UpdateOne().SetUpsert(true)
	res, err := r.coll.UpdateOne(ctx, bson.M{"address": address}, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		res, err = r.coll.UpdateOne(ctx, bson.M{"address": address}, update, opts)
	}
	return res, err
}
