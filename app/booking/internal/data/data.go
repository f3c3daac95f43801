package data

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/yunmaoQu/train-booking/app/booking/internal/biz"
	"github.com/yunmaoQu/train-booking/app/booking/internal/conf"
)

const connectTimeout = 10 * time.Second

// NewStateRepo opens the backend named by c.Driver. The returned cleanup
// closes it.
func NewStateRepo(c *conf.Data, logger log.Logger) (biz.StateRepo, func(), error) {
	helper := log.NewHelper(log.With(logger, "module", "data"))
	sd, err := loadSeed(c.SeedTrains, c.SeedUsers)
	if err != nil {
		return nil, nil, err
	}

	switch c.Driver {
	case "", "file":
		if c.File == nil {
			return nil, nil, fmt.Errorf("data.file is not configured")
		}
		return newFileRepo(c.File.TrainsPath, c.File.UsersPath, sd, logger), func() {}, nil

	case "badger":
		if c.Badger == nil {
			return nil, nil, fmt.Errorf("data.badger is not configured")
		}
		db, err := openBadger(c.Badger.Dir, c.Badger.InMemory, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open badger: %w", err)
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				helper.Errorf("close badger: %v", err)
			}
		}
		return newBadgerRepo(db, sd, logger), cleanup, nil

	case "postgres":
		if c.Postgres == nil {
			return nil, nil, fmt.Errorf("data.postgres is not configured")
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		db, err := openPostgres(ctx, c.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := db.Close(); err != nil {
				helper.Errorf("close postgres: %v", err)
			}
		}
		return newPostgresRepo(db, sd, logger), cleanup, nil

	case "mongo":
		if c.Mongo == nil {
			return nil, nil, fmt.Errorf("data.mongo is not configured")
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		client, err := openMongo(ctx, c.Mongo.URI)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				helper.Errorf("disconnect mongo: %v", err)
			}
		}
		return newMongoRepo(client.Database(c.Mongo.Database), sd, logger), cleanup, nil
	}
	return nil, nil, fmt.Errorf("unknown data driver %q", c.Driver)
}
