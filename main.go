package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"

	"productos/internal/config"
	"productos/internal/logger"
)

func main() {
	cfg, err := config.Load(viper.New())
	if err != nil {
		boot := logger.New(config.LogConfig{Level: "info", Format: "console"})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Log)

	app, err := NewApp(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise application")
	}
	defer app.Close()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("db_driver", cfg.Database.Driver).
			Bool("auth", cfg.Auth.Enabled).
			Bool("events", cfg.RabbitMQ.Enabled()).
			Msg("starting server")
		if err := app.Fiber.Listen(cfg.Port); err != nil {
			log.Error().Err(err).Msg("server stopped")
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Fiber.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}
