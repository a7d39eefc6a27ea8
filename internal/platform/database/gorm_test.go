package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"weather_prediction_ui/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewGORM_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:          "sqlite",
		DBSource:          filepath.Join(t.TempDir(), "sessions.db"),
		DBMaxIdleConns:    1,
		DBMaxOpenConns:    1,
		DBConnMaxLifetime: time.Minute,
		LogLevel:          "error",
	}

	db, err := NewGORM(cfg, zap.NewNop())
	require.NoError(t, err)
	defer CloseGORMDB(db, zap.NewNop())

	assert.NoError(t, Ping(context.Background(), db))
}

func TestNewGORM_UnknownDriver(t *testing.T) {
	db, err := NewGORM(&config.Config{DBDriver: "mysql"}, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, db)
}
