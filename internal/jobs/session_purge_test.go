package jobs

import (
	"context"
	"errors"
	"testing"

	"weather_prediction_ui/internal/config"
	"weather_prediction_ui/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/oauth2"
)

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Open(ctx context.Context, browserID string) (*session.Session, error) {
	args := m.Called(ctx, browserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) Establish(ctx context.Context, browserID string, tok *oauth2.Token) (*session.Session, error) {
	args := m.Called(ctx, browserID, tok)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionService) Close(ctx context.Context, browserID string) error {
	return m.Called(ctx, browserID).Error(0)
}

func (m *MockSessionService) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestRunOnce(t *testing.T) {
	svc := new(MockSessionService)
	svc.On("PurgeExpired", mock.Anything).Return(int64(2), nil)

	job := NewSessionPurgeJob(svc, zap.NewNop(), &config.Config{})
	n, err := job.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	svc.AssertExpectations(t)
}

func TestRunJob_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := new(MockSessionService)
	svc.On("PurgeExpired", mock.Anything).Return(int64(0), errors.New("db gone"))

	NewSessionPurgeJob(svc, zap.New(core), &config.Config{}).runJob()

	assert.Equal(t, 1, logs.FilterMessage("Session purge job run failed").Len())
}

func TestSetupAndStart(t *testing.T) {
	svc := new(MockSessionService)

	t.Run("empty schedule disables the job", func(t *testing.T) {
		job := NewSessionPurgeJob(svc, zap.NewNop(), &config.Config{})
		assert.NoError(t, job.SetupAndStart())
		assert.Empty(t, job.cronScheduler.Entries())
	})

	t.Run("invalid schedule", func(t *testing.T) {
		job := NewSessionPurgeJob(svc, zap.NewNop(), &config.Config{SessionPurgeSchedule: "every tuesday"})
		assert.Error(t, job.SetupAndStart())
	})

	t.Run("valid schedule", func(t *testing.T) {
		job := NewSessionPurgeJob(svc, zap.NewNop(), &config.Config{SessionPurgeSchedule: "@hourly"})
		require.NoError(t, job.SetupAndStart())
		assert.Len(t, job.cronScheduler.Entries(), 1)
		job.Stop()
	})
}
