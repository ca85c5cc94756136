package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"clinic-appointments/internal/domain"
)

type MongoSettingsRepo struct{ coll *mongo.Collection }

func NewMongoSettingsRepo(db *mongo.Database) *MongoSettingsRepo {
	return &MongoSettingsRepo{coll: db.Collection(collSettings)}
}

func (r *MongoSettingsRepo) Get(ctx context.Context, userID string) (*domain.Settings, error) {
	var d settingsDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFound("settings", userID)
	}
	if err != nil {
		return nil, domain.Storage("get settings", err)
	}
	return &domain.Settings{UserID: d.UserID, Theme: domain.Theme(d.Theme), UpdatedAt: d.UpdatedAt}, nil
}

func (r *MongoSettingsRepo) Save(ctx context.Context, s *domain.Settings) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": s.UserID},
		bson.M{"$set": bson.M{"theme": string(s.Theme), "updatedAt": s.UpdatedAt}},
		options.UpdateOne().SetUpsert(true),
	)
	return domain.Storage("save settings", err)
}
