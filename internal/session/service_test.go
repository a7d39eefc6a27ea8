package session

import (
	"context"
	"testing"
	"time"

	"weather_prediction_ui/internal/common"
	"weather_prediction_ui/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// MockRepository is a mock type for the Repository type
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, s *Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) FindByBrowserID(ctx context.Context, browserID string) (*Session, error) {
	args := m.Called(ctx, browserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, browserID string) error {
	args := m.Called(ctx, browserID)
	return args.Error(0)
}

func (m *MockRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, expiryCheck bool) *serviceImpl {
	svc := NewService(repo, &config.Config{SessionExpiryCheck: expiryCheck}, zap.NewNop()).(*serviceImpl)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func signedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "a@b.com", ExpiresAt: jwt.NewNumericDate(exp)}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func TestOpen_NoSession(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByBrowserID", mock.Anything, "b1").Return(nil, common.ErrNotFound.WithDetails("Session not found."))

	sess, err := newTestService(repo, true).Open(context.Background(), "b1")
	assert.NoError(t, err)
	assert.Nil(t, sess)
	repo.AssertExpectations(t)
}

func TestOpen_ExpiredSessionIsTornDown(t *testing.T) {
	repo := new(MockRepository)
	expired := &Session{BrowserID: "b1", Token: "tok", ExpiresAt: ptrTime(fixedNow.Add(-time.Minute))}
	repo.On("FindByBrowserID", mock.Anything, "b1").Return(expired, nil)
	repo.On("Delete", mock.Anything, "b1").Return(nil)

	sess, err := newTestService(repo, true).Open(context.Background(), "b1")
	assert.NoError(t, err)
	assert.Nil(t, sess)
	repo.AssertExpectations(t)
}

func TestOpen_ExpiryCheckDisabled(t *testing.T) {
	repo := new(MockRepository)
	expired := &Session{BrowserID: "b1", Token: "tok", ExpiresAt: ptrTime(fixedNow.Add(-time.Minute))}
	repo.On("FindByBrowserID", mock.Anything, "b1").Return(expired, nil)

	sess, err := newTestService(repo, false).Open(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.Token)
	assert.Nil(t, sess.ExpiresAt)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestEstablish_ExpiryFromJWT(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*session.Session")).Return(nil)

	exp := fixedNow.Add(30 * time.Minute)
	tok := &oauth2.Token{AccessToken: signedJWT(t, exp), TokenType: "bearer"}

	sess, err := newTestService(repo, true).Establish(context.Background(), "b1", tok)
	require.NoError(t, err)
	require.NotNil(t, sess.ExpiresAt)
	assert.True(t, exp.Equal(*sess.ExpiresAt))
	assert.Equal(t, "b1", sess.BrowserID)
	repo.AssertExpectations(t)
}

func TestEstablish_ExpiryFromExpiresIn(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	exp := fixedNow.Add(time.Hour)
	sess, err := newTestService(repo, true).Establish(context.Background(), "b1", &oauth2.Token{AccessToken: "opaque", Expiry: exp})
	require.NoError(t, err)
	require.NotNil(t, sess.ExpiresAt)
	assert.True(t, exp.Equal(*sess.ExpiresAt))
}

func TestEstablish_OpaqueTokenNeverExpires(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	sess, err := newTestService(repo, true).Establish(context.Background(), "b1", &oauth2.Token{AccessToken: "tok1"})
	require.NoError(t, err)
	assert.Nil(t, sess.ExpiresAt)
	assert.False(t, sess.Expired(fixedNow.Add(100*365*24*time.Hour)))
}

func TestEstablish_ExpiryCheckDisabled(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	tok := &oauth2.Token{AccessToken: signedJWT(t, fixedNow.Add(time.Minute))}
	sess, err := newTestService(repo, false).Establish(context.Background(), "b1", tok)
	require.NoError(t, err)
	assert.Nil(t, sess.ExpiresAt)
}

func TestEstablish_EmptyToken(t *testing.T) {
	repo := new(MockRepository)

	_, err := newTestService(repo, true).Establish(context.Background(), "b1", &oauth2.Token{})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestClose(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Delete", mock.Anything, "b1").Return(nil)

	assert.NoError(t, newTestService(repo, true).Close(context.Background(), "b1"))
	repo.AssertExpectations(t)
}

func TestPurgeExpired(t *testing.T) {
	repo := new(MockRepository)
	repo.On("DeleteExpired", mock.Anything, fixedNow).Return(int64(3), nil)

	n, err := newTestService(repo, true).PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestService_RoundTripOnSQLite(t *testing.T) {
	svc := newTestService(newTestRepository(t), true)
	ctx := context.Background()

	_, err := svc.Establish(ctx, "b1", &oauth2.Token{AccessToken: "tok1", TokenType: "bearer"})
	require.NoError(t, err)

	sess, err := svc.Open(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "tok1", sess.OAuthToken().AccessToken)

	require.NoError(t, svc.Close(ctx, "b1"))
	sess, err = svc.Open(ctx, "b1")
	require.NoError(t, err)
	assert.Nil(t, sess)
}
