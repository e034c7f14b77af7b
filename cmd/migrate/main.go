package main

import (
	"context"
	"os"

	"store-service/config"
	"store-service/internal/hashing"
	"store-service/internal/migrate"
	"store-service/internal/repository"
	"store-service/internal/service"
	"store-service/pkg/database"
	"store-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDBForMigration(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	ctx := context.Background()

	opts := migrate.DefaultMigrateOptions()

	if err := migrate.MigrateStoreDB(ctx, db, log, opts); err != nil {
		log.Fatal("Ошибка при выполнении миграции", zap.Error(err))
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		repos := repository.New(db)
		created, err := service.EnsureAdmin(ctx, repos, hashing.NewBcrypt(0), cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatal("Ошибка сидирования администратора", zap.Error(err))
		}
		if created {
			log.Info("Администратор создан", zap.String("email", cfg.AdminEmail))
		}
	}

	log.Info("Миграция успешно завершена")
}
