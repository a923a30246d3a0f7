package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/seovista/crm-backend/internal/ai"
	"github.com/seovista/crm-backend/internal/config"
	"github.com/seovista/crm-backend/internal/db"
	"github.com/seovista/crm-backend/internal/logging"
	"github.com/seovista/crm-backend/internal/models"
	"github.com/seovista/crm-backend/internal/server"
	"github.com/seovista/crm-backend/internal/sharecache"
	"github.com/seovista/crm-backend/internal/storage"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	// .env is optional, real deployments use the environment directly
	_ = godotenv.Load()
	log := logging.L()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}

	gdb, err := db.ConnectAndMigrate(cfg.DB.DSN)
	if err != nil {
		log.WithError(err).Fatal("database setup failed")
	}
	if *migrateOnly {
		log.Info("migrations applied, exiting")
		return
	}
	bootstrapAdmin(gdb)

	cache, err := sharecache.New(cfg.Redis.URL)
	if err != nil {
		log.WithError(err).Fatal("redis setup failed")
	}
	if cache.Enabled() {
		log.Info("share token cache enabled")
	}

	var store storage.Uploader
	if cfg.Storage.Endpoint != "" {
		ms, err := storage.NewMinioStore(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.UseSSL)
		if err != nil {
			log.WithError(err).Fatal("object storage setup failed")
		}
		store = ms
	} else {
		log.Warn("MINIO_ENDPOINT not set, document uploads disabled")
	}

	handler := server.New(server.Deps{
		DB:      gdb,
		Cache:   cache,
		Store:   store,
		AI:      ai.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model),
		BaseURL: strings.TrimRight(cfg.App.BaseURL, "/"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.App.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("server stopped")
}

// bootstrapAdmin creates the first staff account from ADMIN_EMAIL and
// ADMIN_PASSWORD when the users table is empty. There is no public signup.
func bootstrapAdmin(gdb *gorm.DB) {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL")))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	var count int64
	if err := gdb.Model(&models.User{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logging.L().WithError(err).Error("admin bootstrap failed")
		return
	}
	user := models.User{Email: email, Password: string(hash), Name: "Admin"}
	if err := gdb.Create(&user).Error; err != nil {
		logging.L().WithError(err).Error("admin bootstrap failed")
		return
	}
	logging.L().WithField("email", email).Info("admin account created")
}
