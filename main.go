package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wirewatch/config"
	"wirewatch/db"
	"wirewatch/handlers"
	"wirewatch/middleware"
	"wirewatch/services"
)

func runMigrations(conn *sql.DB) {
	sqlBytes, err := os.ReadFile("schema.sql")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read schema.sql")
	}

	if _, err := conn.Exec(string(sqlBytes)); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}
	log.Info().Msg("database schema verified")
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg := config.Load()
	log.Info().
		Bool("degraded_fallback", cfg.Features.DegradedFallback).
		Msg("booting wirewatch")

	conn, err := db.Open(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	runMigrations(conn)

	store := services.NewPostgresStore(conn)
	ledger := services.NewLedger(store)
	fetcher := services.NewContentFetcher(cfg.Provider, cfg.Features.DegradedFallback)
	feed := services.NewFeed(fetcher)
	payments := services.NewPaymentClient(cfg.Payments)
	mailer := services.NewReceiptMailer(cfg.Email)

	scheduler := services.NewRefreshScheduler(feed)
	scheduler.Start(context.Background())

	auth := middleware.NewAuth(cfg.Auth.JWTSecret)
	h := handlers.New(conn, feed, ledger, payments, mailer, cfg.Auth.JWTSecret)

	r := gin.Default()

	api := r.Group("/api")
	{
		api.POST("/auth/signup", h.Signup)
		api.POST("/auth/login", h.Login)
		api.GET("/auth/me", auth.Required(), h.Me)

		api.GET("/news", auth.Optional(), h.GetNews)
		api.POST("/news/refresh", auth.Optional(), h.RefreshNews)

		api.POST("/payments/checkout", auth.Required(), h.Checkout)
		api.GET("/subscription", auth.Required(), h.GetSubscription)
	}

	log.Info().Str("port", cfg.Server.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
