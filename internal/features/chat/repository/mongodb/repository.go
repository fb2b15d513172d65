package mongodb

import (
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"slapflip-backend/internal/features/chat/models"
	"slapflip-backend/internal/features/chat/repository"
)

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) repository.ChatRepository {
	return &mongoRepository{coll: coll}
}

func (r *mongoRepository) Insert(ctx context.Context, msg *models.Message) error {
	if msg.ID.IsZero() {
		msg.ID = bson.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

func (r *mongoRepository) Recent(ctx context.Context, limit int) ([]models.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find chat messages: %w", err)
	}

	msgs := make([]models.Message, 0, limit)
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}
	slices.Reverse(msgs)
	return msgs, nil
}
