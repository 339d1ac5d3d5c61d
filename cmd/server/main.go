package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/afritok/afritok/internal/config"
	"github.com/afritok/afritok/internal/handlers"
	"github.com/afritok/afritok/internal/middleware"
	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/service/challenge"
	"github.com/afritok/afritok/internal/service/session"
	"github.com/afritok/afritok/internal/service/sms"
	"github.com/afritok/afritok/internal/store"
	"github.com/afritok/afritok/internal/store/dynamo"
	"github.com/afritok/afritok/internal/store/memory"
	"github.com/afritok/afritok/internal/store/redisstore"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.Session.Secret == "" {
		secret, err := session.GenerateSecret()
		if err != nil {
			logger.WithError(err).Fatal("Failed to generate session secret")
		}
		cfg.Session.Secret = secret
		logger.Warn("SESSION_SECRET not set, generated a throwaway secret; sessions will not survive a restart")
	}

	entityStore, challengeStore, err := initStores(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize stores")
	}

	sessionService, err := session.NewService(session.Config{
		Secret:        cfg.Session.Secret,
		Expiry:        cfg.Session.Expiry,
		SecureCookies: cfg.IsProduction(),
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize session service")
	}

	challengeService := challenge.NewService(challengeStore, sms.NewLogSender(logger), challenge.Config{
		TTL:         cfg.OTP.Expiry,
		MaxAttempts: cfg.OTP.MaxAttempts,
	}, logger)

	sessionMiddleware := middleware.NewSessionMiddleware(sessionService, entityStore, logger)

	router := handlers.NewRouter(
		handlers.NewAuthHandlers(challengeService, sessionService, entityStore, logger),
		handlers.NewVideoHandlers(entityStore, cfg.App.PublicBaseURL, logger),
		handlers.NewCommentHandlers(entityStore, logger),
		handlers.NewReportHandlers(entityStore, logger),
		handlers.NewFilterHandlers(entityStore, logger),
		handlers.NewCheckoutHandlers(entityStore, logger),
		sessionMiddleware,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func initStores(cfg *config.Config, logger *logrus.Logger) (store.Store, store.ChallengeStore, error) {
	if cfg.App.StoreBackend == "memory" {
		logger.Info("Using in-memory stores")
		mem := memory.NewStore()
		return mem, mem, nil
	}

	dynamoClient, err := initDynamoDB(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	entityStore := dynamo.NewStore(dynamoClient, cfg.DynamoDB.TableName, logger)
	if err := entityStore.SeedFilterPresets(context.Background(), models.DefaultFilterPresets()); err != nil {
		return nil, nil, fmt.Errorf("failed to seed filter presets: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Endpoint,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("Redis client initialized")

	return entityStore, redisstore.NewChallengeStore(redisClient, logger), nil
}

func initDynamoDB(cfg *config.Config, logger *logrus.Logger) (*dynamodb.Client, error) {
	var awsCfg aws.Config
	var err error

	if cfg.DynamoDB.Endpoint != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.DynamoDB.Region),
			awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					return aws.Endpoint{
						URL:           cfg.DynamoDB.Endpoint,
						SigningRegion: cfg.DynamoDB.Region,
					}, nil
				})),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.TODO())
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg)
	logger.Info("DynamoDB client initialized")
	return client, nil
}
