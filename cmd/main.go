package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aph138/otpd/internal/app"
	"github.com/aph138/otpd/internal/cache"
	"github.com/aph138/otpd/internal/config"
	"github.com/aph138/otpd/internal/db"
	"github.com/aph138/otpd/internal/service"
	"github.com/aph138/otpd/pkg/authentication"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	cfg, err := config.Load()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	jwtKey := cfg.JWTSecret
	if len(jwtKey) == 0 {
		jwtKey, err = authentication.GenerateKey(32)
		if err != nil {
			logger.Error(fmt.Sprintf("err when generating key for jwt: %s", err.Error()))
			os.Exit(1)
		}
	}
	jwt, err := authentication.NewJWT(jwtKey)
	if err != nil {
		logger.Error(fmt.Sprintf("err when creating JWT instance: %s", err.Error()))
		os.Exit(1)
	}
	adminToken, err := jwt.NewAdminToken(time.Hour * 24)
	if err != nil {
		logger.Error(fmt.Sprintf("err when creating admin token: %s", err.Error()))
		os.Exit(1)
	}
	logger.Info(fmt.Sprintf("admin token: %s", adminToken))

	c, err := newCache(cfg)
	if err != nil {
		logger.Error(fmt.Sprintf("err when creating cache: %s", err.Error()))
		os.Exit(1)
	}
	d, err := newDatabase(cfg)
	if err != nil {
		logger.Error(fmt.Sprintf("err when creating database: %s", err.Error()))
		os.Exit(1)
	}

	settings := config.NewSettings(cfg)
	otpService := service.NewOTPService(logger, c, d, settings)
	myApp := app.NewApplication(logger, jwt, otpService, cfg.Version)
	if err := myApp.Run(cfg.Addr, cfg.ShutdownTimeout, settings.Reload); err != nil {
		logger.Error(err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := c.Close(ctx); err != nil {
		logger.Error(fmt.Sprintf("err when closing cache: %s", err.Error()))
	}
	if err := d.Close(ctx); err != nil {
		logger.Error(fmt.Sprintf("err when closing database: %s", err.Error()))
	}
}

func newCache(cfg *config.Config) (cache.Cache, error) {
	if cfg.CacheDriver == "memory" {
		return cache.NewMemory(time.Minute), nil
	}
	return cache.NewRedis(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func newDatabase(cfg *config.Config) (db.Database, error) {
	if cfg.StoreDriver == "memory" {
		return db.NewMemory(), nil
	}
	var dbAuthOpt *options.ClientOptions
	if len(cfg.MongoUsername) > 0 {
		dbAuthOpt = options.Client().SetAuth(options.Credential{Username: cfg.MongoUsername, Password: cfg.MongoPassword})
	}
	return db.NewMongo(cfg.MongoURI, cfg.MongoDatabase, cfg.MongoTimeout, dbAuthOpt)
}
