// Package stores opens the flow.Store backend named by configuration.
package stores

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/config"
	"github.com/meikuraledutech/flow/dynamo"
	"github.com/meikuraledutech/flow/file"
	"github.com/meikuraledutech/flow/memory"
	"github.com/meikuraledutech/flow/mongo"
	"github.com/meikuraledutech/flow/postgres"
	"github.com/meikuraledutech/flow/redis"
)

// Open connects the configured backend. The returned close function releases
// its connections and is never nil.
func Open(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (flow.Store, func(), error) {
	noop := func() {}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store; saved flows are lost on exit")
		return memory.New(), noop, nil

	case config.DriverFile:
		s, err := file.New(cfg.Dir)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using file store", zap.String("dir", cfg.Dir))
		return s, noop, nil

	case config.DriverPostgres:
		s, pool, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("stores: %w", err)
		}
		logger.Info("using postgres store")
		return s, pool.Close, nil

	case config.DriverRedis:
		s, err := redis.Open(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using redis store")
		return s, func() {
			if err := s.Close(); err != nil {
				logger.Warn("close redis", zap.Error(err))
			}
		}, nil

	case config.DriverMongo:
		s, client, err := mongo.Open(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using mongo store")
		return s, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Warn("disconnect mongo", zap.Error(err))
			}
		}, nil

	case config.DriverDynamo:
		s, err := dynamo.Open(ctx, cfg.AWSRegion, cfg.DynamoTable)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using dynamodb store", zap.String("table", cfg.DynamoTable))
		return s, noop, nil
	}

	return nil, noop, fmt.Errorf("stores: unknown driver %q", cfg.Driver)
}
