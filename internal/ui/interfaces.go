// File: internal/ui/interfaces.go
package ui

import (
	"context"

	"weather_prediction_ui/internal/backend"

	"golang.org/x/oauth2"
)

// Backend is the remote prediction API a Client drives.
type Backend interface {
	RequestToken(ctx context.Context, creds backend.Credentials) (*oauth2.Token, error)
	Register(ctx context.Context, creds backend.Credentials) error
	Predict(ctx context.Context, tok *oauth2.Token, in backend.PredictionInput) (*backend.Prediction, error)
}

var _ Backend = (*backend.Client)(nil)
