package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/careconnect/clinic-scheduler/internal/auth"
	"github.com/careconnect/clinic-scheduler/internal/config"
	dbpkg "github.com/careconnect/clinic-scheduler/internal/db"
	"github.com/careconnect/clinic-scheduler/internal/logger"
	"github.com/careconnect/clinic-scheduler/internal/mailer"
	"github.com/careconnect/clinic-scheduler/internal/middleware"
	"github.com/careconnect/clinic-scheduler/internal/realtime"
	"github.com/careconnect/clinic-scheduler/internal/routes"
	"github.com/careconnect/clinic-scheduler/internal/storage"
)

const tokenTTL = 24 * time.Hour

func main() {

	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer log.Sync() //nolint:errcheck

	db := dbpkg.NewDB(cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	tokens := auth.NewTokenManager(cfg.JWTSecret, tokenTTL)
	revocation := auth.NewRevocationStore(redisClient)

	hub := realtime.NewHub(log)

	mailDispatcher := mailer.NewDispatcher(
		mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom),
		log,
	)

	uploader := storage.NewUploader(cfg)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:         db,
		Cfg:        cfg,
		Log:        log,
		Tokens:     tokens,
		Revocation: revocation,
		Hub:        hub,
		Mail:       mailDispatcher,
		Uploader:   uploader,
	})

	log.Info("server listening", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
