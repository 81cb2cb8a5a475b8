package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fjod/coastline/internal/config"
	"github.com/fjod/coastline/internal/storage"
	"github.com/redis/go-redis/v9"
)

// openStore connects the key-value backend chosen by STORAGE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		log.Warn("using in-memory storage, state is lost on exit")
		return storage.NewMemoryStore(), nil

	case config.DriverBolt:
		st, err := storage.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		log.Info("opened bolt store", "path", cfg.BoltPath)
		return st, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		log.Info("connected to redis", "addr", cfg.RedisAddr)
		return storage.NewRedisStore(client, cfg.RedisTTL), nil

	case config.DriverMongo:
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		log.Info("connected to mongodb", "db", cfg.MongoDBName)
		return storage.NewMongoStore(db), nil

	case config.DriverPostgres:
		st, err := storage.NewPostgresStore(&storage.Credentials{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
		})
		if err != nil {
			return nil, err
		}
		if err := st.RunMigrations(); err != nil {
			st.Close()
			return nil, err
		}
		log.Info("connected to postgres", "host", cfg.DBHost, "db", cfg.DBName)
		return st, nil
	}
	return nil, fmt.Errorf("%w: unknown STORAGE_DRIVER %q", config.ErrInvalidConfig, cfg.StorageDriver)
}
