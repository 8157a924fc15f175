package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB client
	MongoDB *mongo.Database
	// Redis client
	Redis *redisclient.Client
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(50).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping MongoDB: %w", err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := EnsureRegistrationIndexes(context.Background(), MongoDB.Collection(AppConfig.RegistrationCollection)); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
	return nil
}

// InitRedis initializes the Redis connection
func InitRedis() error {
	opts, err := redisOptions(AppConfig.RedisURI)
	if err != nil {
		return err
	}
	if AppConfig.RedisPassword != "" {
		opts.Password = AppConfig.RedisPassword
	}
	opts.DB = AppConfig.RedisDB
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 2

	client := redisclient.NewClient(redis.NewClient(opts))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("ping Redis at %s: %w", AppConfig.RedisURI, err)
	}

	Redis = client
	logging.Logger.Info("connected to Redis", zap.String("uri", AppConfig.RedisURI))
	return nil
}

// redisOptions accepts either a redis:// URL or a bare host:port
func redisOptions(uri string) (*redis.Options, error) {
	if strings.HasPrefix(uri, "redis://") || strings.HasPrefix(uri, "rediss://") {
		opts, err := redis.ParseURL(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URI: %w", err)
		}
		return opts, nil
	}
	return &redis.Options{Addr: uri}, nil
}

// maskMongoURI masks sensitive information in MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at < 0 {
		return uri
	}
	scheme := "mongodb://"
	if strings.HasPrefix(uri, "mongodb+srv://") {
		scheme = "mongodb+srv://"
	}
	return scheme + "****:****@" + uri[at+1:]
}

// registrationIndexes are the indexes the registrations collection needs
var registrationIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "draft_id", Value: 1}},
		Options: options.Index().SetName("draft_id_1").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "cpf", Value: 1}},
		Options: options.Index().SetName("cpf_1").SetSparse(true),
	},
	{
		Keys:    bson.D{{Key: "submitted_at", Value: -1}},
		Options: options.Index().SetName("submitted_at_-1"),
	},
}

// EnsureRegistrationIndexes creates the registrations collection indexes that don't exist
func EnsureRegistrationIndexes(ctx context.Context, collection *mongo.Collection) error {
	logger := logging.Logger.With(zap.String("collection", collection.Name()))

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		logger.Error("failed to list indexes", zap.Error(err))
		return err
	}
	defer cursor.Close(ctx)

	existingIndexes := make(map[string]bool)
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			continue
		}
		if name, ok := index["name"].(string); ok {
			existingIndexes[name] = true
		}
	}

	created := 0
	for _, indexModel := range registrationIndexes {
		if existingIndexes[*indexModel.Options.Name] {
			continue
		}
		if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
			// Another instance may have created it first
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			logger.Error("failed to create registrations index",
				zap.String("index", *indexModel.Options.Name),
				zap.Error(err))
			return err
		}
		created++
	}

	if created > 0 {
		logger.Info("created registrations collection indexes", zap.Int("count", created))
	} else {
		logger.Debug("registrations collection indexes already exist")
	}
	return nil
}
