package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"clinic-appointments/internal/domain"
)

type MongoAppointmentRepo struct{ coll *mongo.Collection }

func NewMongoAppointmentRepo(db *mongo.Database) *MongoAppointmentRepo {
	return &MongoAppointmentRepo{coll: db.Collection(collAppointments)}
}

func (r *MongoAppointmentRepo) Create(ctx context.Context, a *domain.Appointment) error {
	if err := (domain.StatusChange{Status: a.Status}).Validate(); err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, appointmentToDoc(a)); err != nil {
		return domain.Storage("create appointment", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var d appointmentDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFound("appointment", id)
	}
	if err != nil {
		return nil, domain.Storage("find appointment", err)
	}
	a := d.toDomain()
	return &a, nil
}

func (r *MongoAppointmentRepo) List(ctx context.Context, f domain.AppointmentFilter) ([]domain.Appointment, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, domain.Storage("list appointments", err)
	}
	var docs []appointmentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.Storage("decode appointments", err)
	}
	out := make([]domain.Appointment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id string, ch domain.StatusChange) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{"status": string(ch.Status), "updatedAt": ch.UpdatedAt}}
	if ch.CompletedDate != nil {
		update["$set"].(bson.M)["completedDate"] = *ch.CompletedDate
	} else {
		update["$unset"] = bson.M{"completedDate": ""}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return domain.Storage("update appointment status", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("appointment", id)
	}
	return nil
}
