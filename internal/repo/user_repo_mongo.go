package repo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"clinic-appointments/internal/domain"
)

type MongoUserRepo struct{ coll *mongo.Collection }

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{coll: db.Collection(collUsers)}
}

// 软删的文档带 deletedAt
var deletedAbsent = bson.M{"$exists": false}

func (r *MongoUserRepo) Create(ctx context.Context, u *domain.User) error {
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	if _, err := r.coll.InsertOne(ctx, toUserDoc(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Conflict("user", u.Email)
		}
		return domain.Storage("create user", err)
	}
	return nil
}

func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id, "deletedAt": deletedAbsent}, id)
}

func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, email)
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M, key string) (*domain.User, error) {
	var d userDoc
	err := r.coll.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NotFound("user", key)
	}
	if err != nil {
		return nil, domain.Storage("find user", err)
	}
	u := d.toDomain()
	return &u, nil
}

func (r *MongoUserRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}, "deletedAt": deletedAbsent})
	if err != nil {
		return nil, domain.Storage("find users", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, domain.Storage("decode users", err)
	}
	out := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *MongoUserRepo) List(ctx context.Context, q domain.UserListQuery) ([]domain.User, int64, error) {
	filter := bson.M{}
	if !q.WithDeleted {
		filter["deletedAt"] = deletedAbsent
	}
	if s := strings.TrimSpace(q.Q); s != "" {
		like := bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
		filter["$or"] = bson.A{bson.M{"email": like}, bson.M{"name": like}}
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, domain.Storage("count users", err)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(q.Offset)).
		SetLimit(int64(q.Limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, domain.Storage("list users", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, domain.Storage("decode users", err)
	}
	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, total, nil
}

func (r *MongoUserRepo) Upsert(ctx context.Context, u *domain.User) error {
	now := time.Now()
	u.UpdatedAt = now
	set := bson.M{
		"name":      u.Name,
		"role":      u.Role,
		"extra":     u.Extra,
		"updatedAt": now,
	}
	update := bson.M{"$set": set, "$setOnInsert": bson.M{"createdAt": now}}
	// 空 email 不落字段，避开唯一索引
	if u.Email != "" {
		set["email"] = u.Email
	} else {
		update["$unset"] = bson.M{"email": ""}
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": u.ID}, update, options.UpdateOne().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return domain.Conflict("user", u.Email)
	}
	return domain.Storage("upsert user", err)
}

func (r *MongoUserRepo) SoftDelete(ctx context.Context, id string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "deletedAt": deletedAbsent},
		bson.M{"$set": bson.M{"deletedAt": time.Now()}},
	)
	if err != nil {
		return domain.Storage("delete user", err)
	}
	if res.MatchedCount == 0 {
		return domain.NotFound("user", id)
	}
	return nil
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		Extra:        u.Extra,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		DeletedAt:    u.DeletedAt,
	}
}
