package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"store-service/config"
	"store-service/internal/hashing"
	"store-service/internal/notifier"
	"store-service/internal/producer"
	"store-service/internal/repository"
	"store-service/internal/service"
	"store-service/internal/token"
	transport "store-service/internal/transport/http"
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
	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	emailNotifier, err := notifier.NewEmailNotifier(notifier.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal("Ошибка инициализации почтовых шаблонов", zap.Error(err))
	}

	// Kafka опциональна: без брокеров события просто не публикуются
	var events service.EventBus
	if len(cfg.KafkaBrokers) > 0 {
		kafkaProducer := producer.NewOrderEventProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaProducer.Close()
		events = kafkaProducer
		log.Info("Kafka producer подключен", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	hasher := hashing.NewBcrypt(0)
	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)

	svc := transport.Services{
		Catalog:  service.NewCatalogService(repos),
		Orders:   service.NewOrderService(repos, emailNotifier, events, log, cfg.CaptureTimeout),
		Shipping: service.NewShippingService(repos),
		Auth:     service.NewAdminAuthService(repos, hasher, tokens, cfg.JWT.TTL),
	}

	r := transport.Router(svc, log)

	srv := &nethttp.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Запуск HTTP сервера", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal("HTTP сервер завершился с ошибкой", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Остановка HTTP сервера...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Ошибка при остановке сервера", zap.Error(err))
	}
	log.Info("HTTP сервер остановлен")
}
