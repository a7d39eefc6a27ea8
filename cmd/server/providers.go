// File: cmd/server/providers.go
package main

import (
	"log"

	"weather_prediction_ui/internal/config"
	"weather_prediction_ui/internal/platform/database"
	"weather_prediction_ui/internal/platform/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideLogger builds the application logger; the cleanup flushes it.
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return l, func() {
		logger.Sync(l)
		log.Println("Cleanup finished.")
	}, nil
}

// provideDatabase opens the session store; the cleanup closes it.
func provideDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg, l)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		database.CloseGORMDB(db, l)
	}, nil
}
