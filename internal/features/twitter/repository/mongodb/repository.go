package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"slapflip-backend/internal/features/twitter/models"
	"slapflip-backend/internal/features/twitter/repository"
)

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) repository.SessionRepository {
	return &mongoRepository{coll: coll}
}

func (r *mongoRepository) Save(ctx context.Context, session *models.AuthSession) error {
	update := bson.M{"$set": bson.M{
		"state":        session.State,
		"codeVerifier": session.CodeVerifier,
		"createdAt":    session.CreatedAt,
	}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"address": session.Address}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

func (r *mongoRepository) Consume(ctx context.Context, state string) (*models.AuthSession, error) {
	var session models.AuthSession
	err := r.coll.FindOneAndDelete(ctx, bson.M{"state": state}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume auth session: %w", err)
	}
	return &session, nil
}
