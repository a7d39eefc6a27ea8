// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"weather_prediction_ui/internal/app"
	"weather_prediction_ui/internal/backend"
	"weather_prediction_ui/internal/config"
	"weather_prediction_ui/internal/jobs"
	"weather_prediction_ui/internal/session"
	"weather_prediction_ui/internal/ui"

	"github.com/google/wire"
)

var platformSet = wire.NewSet(
	provideLogger,
	provideDatabase,
)

var sessionSet = wire.NewSet(
	session.NewGORMRepository,
	session.NewService,
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		platformSet,
		sessionSet,

		backend.NewClient,
		wire.Bind(new(ui.Backend), new(*backend.Client)),

		ui.NewRegistry,
		ui.NewHandler,
		jobs.NewSessionPurgeJob,

		app.NewServer,
	)
	return nil, nil, nil
}

// initializePurgeJob wires only what the purge-sessions command needs.
func initializePurgeJob(cfg *config.Config) (*jobs.SessionPurgeJob, func(), error) {
	wire.Build(
		platformSet,
		sessionSet,
		jobs.NewSessionPurgeJob,
	)
	return nil, nil, nil
}
