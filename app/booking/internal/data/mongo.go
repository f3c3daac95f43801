package data

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yunmaoQu/train-booking/app/booking/internal/biz"
)

// mongoRepo keeps one document per train and one per user, each user
// document embedding its tickets.
type mongoRepo struct {
	trains *mongo.Collection
	users  *mongo.Collection
	seed   *seed
	log    *log.Helper
}

var _ biz.StateRepo = (*mongoRepo)(nil)

func openMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

func newMongoRepo(db *mongo.Database, sd *seed, logger log.Logger) *mongoRepo {
	return &mongoRepo{
		trains: db.Collection("trains"),
		users:  db.Collection("users"),
		seed:   sd,
		log:    log.NewHelper(log.With(logger, "module", "data/mongo")),
	}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *mongoRepo) LoadTrains(ctx context.Context) ([]*biz.TrainState, error) {
	recs, err := findAll[trainRecord](ctx, r.trains)
	if err != nil {
		return nil, fmt.Errorf("find trains: %w", err)
	}
	if len(recs) == 0 && len(r.seed.trains) > 0 {
		r.log.Infof("seeding %d trains", len(r.seed.trains))
		states := trainStates(r.seed.trains)
		if err := r.SaveTrains(ctx, states); err != nil {
			return nil, err
		}
		return states, nil
	}
	return trainStates(recs), nil
}

func (r *mongoRepo) LoadUsers(ctx context.Context) ([]*biz.UserState, error) {
	recs, err := findAll[userRecord](ctx, r.users)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	if len(recs) == 0 && len(r.seed.users) > 0 {
		r.log.Infof("seeding %d users", len(r.seed.users))
		recs = r.seed.users
		states, err := userStates(recs)
		if err != nil {
			return nil, err
		}
		if err := r.SaveUsers(ctx, states); err != nil {
			return nil, err
		}
		return states, nil
	}
	return userStates(recs)
}

func replaceAll(ctx context.Context, coll *mongo.Collection, ids []string, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(docs))
	for i, doc := range docs {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": ids[i]}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	_, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

func (r *mongoRepo) SaveTrains(ctx context.Context, trains []*biz.TrainState) error {
	ids := make([]string, 0, len(trains))
	docs := make([]interface{}, 0, len(trains))
	for i, t := range trains {
		ids = append(ids, t.ID)
		docs = append(docs, toTrainRecord(t, i))
	}
	if err := replaceAll(ctx, r.trains, ids, docs); err != nil {
		return fmt.Errorf("save trains: %w", err)
	}
	return nil
}

func (r *mongoRepo) SaveUsers(ctx context.Context, users []*biz.UserState) error {
	ids := make([]string, 0, len(users))
	docs := make([]interface{}, 0, len(users))
	for i, u := range users {
		ids = append(ids, u.ID)
		docs = append(docs, toUserRecord(u, i))
	}
	if err := replaceAll(ctx, r.users, ids, docs); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
