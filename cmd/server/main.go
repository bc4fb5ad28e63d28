package main

import (
	"context"
	"log"

	"github.com/foc-sab/ctrlroom/internal/bootstrap"
	"github.com/foc-sab/ctrlroom/internal/config"
	"github.com/foc-sab/ctrlroom/internal/model"
	"github.com/foc-sab/ctrlroom/internal/repository"
	"github.com/foc-sab/ctrlroom/internal/server"
	"github.com/foc-sab/ctrlroom/pkg/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	if err := bootstrap.SeedAdminUser(context.Background(), userRepo, cfg); err != nil {
		log.Fatalf("failed to provision bootstrap admin: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unreachable, request throttling disabled: %v", err)
			redisClient = nil
		}
	}

	srv := server.NewServer(db, redisClient, cfg)

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.AuthToken{},
		&model.PasswordReset{},
		&model.Computer{},
		&model.Complaint{},
		&model.Software{},
	)
}
