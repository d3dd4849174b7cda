package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/cleanora-services/cleany-scheduler/internal/clock"
	"github.com/cleanora-services/cleany-scheduler/internal/config"
	dbpkg "github.com/cleanora-services/cleany-scheduler/internal/db"
	"github.com/cleanora-services/cleany-scheduler/internal/infra/payment"
	"github.com/cleanora-services/cleany-scheduler/internal/lock"
	"github.com/cleanora-services/cleany-scheduler/internal/logger"
	"github.com/cleanora-services/cleany-scheduler/internal/notify"
	"github.com/cleanora-services/cleany-scheduler/internal/reminder"
	"github.com/cleanora-services/cleany-scheduler/internal/routes"
	"github.com/cleanora-services/cleany-scheduler/internal/storage"
)

func main() {

	cfg := config.Load()

	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	locker := lock.NewRedisLocker(redisClient)

	gateway, err := payment.NewMercadoPagoGateway(cfg.MPAccessToken)
	if err != nil {
		logger.Fatal("payment gateway init failed", zap.Error(err))
	}

	mailer := notify.NewSMTPMailer(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.MailFrom,
	)
	notifier := notify.NewDispatcher(db, mailer)

	store := storage.NewS3Store(
		cfg.AWSRegion,
		cfg.AWSAccessKey,
		cfg.AWSSecretKey,
		cfg.S3Bucket,
	)

	clk := clock.System()

	scanner := reminder.NewScanner(db, notifier, clk)
	if err := scanner.Start(); err != nil {
		logger.Fatal("reminder scanner init failed", zap.Error(err))
	}
	defer scanner.Stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Gateway:  gateway,
		Locker:   locker,
		Notifier: notifier,
		Store:    store,
		Clock:    clk,
	})

	logger.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
