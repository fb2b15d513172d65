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
	"slapflip-backend/internal/features/whitelist/models"
	"slapflip-backend/internal/features/whitelist/repository"
)

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) repository.WhitelistRepository {
	return &mongoRepository{coll: coll}
}

func (r *mongoRepository) GetByAddress(ctx context.Context, address string) (*models.Application, error) {
	var app models.Application
	err := r.coll.FindOne(ctx, bson.M{"address": address}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

func (r *mongoRepository) ConnectTwitter(ctx context.Context, address string, profile twitter.Profile, now time.Time) error {
	filter := bson.M{"address": address}
	update := bson.M{
		"$set": bson.M{
			"twitterConnected": true,
			"twitterId":        profile.ID,
			"twitterUsername":  profile.Username,
			"twitterName":      profile.Name,
			"updatedAt":        now,
		},
		"$setOnInsert": bson.M{
			"isWhitelisted": false,
			"createdAt":     now,
		},
	}
	opts := options.UpdateOne().SetUpsert(true)

	_, err := r.coll.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		_, err = r.coll.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to connect twitter: %w", err)
	}
	return nil
}

func (r *mongoRepository) Join(ctx context.Context, address, tier string, blocked []models.Status, now time.Time) (bool, error) {
	filter := bson.M{
		"address":          address,
		"twitterConnected": true,
	}
	if len(blocked) > 0 {
		// $nin also matches documents without a status field
		filter["status"] = bson.M{"$nin": blocked}
	}
	update := bson.M{"$set": bson.M{
		"status":    models.StatusPending,
		"tier":      tier,
		"appliedAt": now,
		"updatedAt": now,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to join whitelist: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoRepository) Approve(ctx context.Context, address, tier, by string, now time.Time) (bool, error) {
	set := bson.M{
		"isWhitelisted": true,
		"status":        models.StatusApproved,
		"approvedAt":    now,
		"approvedBy":    by,
		"updatedAt":     now,
	}
	if tier != "" {
		set["tier"] = tier
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"address": address}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to approve application: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoRepository) Deny(ctx context.Context, address, by string, now time.Time) (bool, error) {
	update := bson.M{"$set": bson.M{
		"isWhitelisted": false,
		"status":        models.StatusDenied,
		"deniedAt":      now,
		"deniedBy":      by,
		"updatedAt":     now,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"address": address}, update)
	if err != nil {
		return false, fmt.Errorf("failed to deny application: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]models.Application, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	apps := make([]models.Application, 0)
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("failed to decode applications: %w", err)
	}
	return apps, nil
}

func (r *mongoRepository) FindAddressByTwitterUsername(ctx context.Context, username, except string) (string, error) {
	filter := bson.M{
		"twitterUsername": username,
		"address":         bson.M{"$ne": except},
	}
	opts := options.FindOne().SetProjection(bson.M{"address": 1})

	var app models.Application
	err := r.coll.FindOne(ctx, filter, opts).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up twitter username: %w", err)
	}
	return app.Address, nil
}
