// File: internal/session/service.go
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"weather_prediction_ui/internal/common"
	"weather_prediction_ui/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Service owns the lifecycle of persisted sessions.
type Service interface {
	// Open loads the browser's session. It returns nil when there is none, and
	// tears down an expired session before returning nil.
	Open(ctx context.Context, browserID string) (*Session, error)
	// Establish persists tok as the browser's session, replacing any previous one.
	Establish(ctx context.Context, browserID string, tok *oauth2.Token) (*Session, error)
	// Close removes the browser's session.
	Close(ctx context.Context, browserID string) error
	// PurgeExpired removes every expired session and returns how many were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}

type serviceImpl struct {
	repo        Repository
	logger      *zap.Logger
	expiryCheck bool
	now         func() time.Time
}

// NewService creates a new session service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) Service {
	return &serviceImpl{
		repo:        repo,
		logger:      logger.Named("session"),
		expiryCheck: cfg.SessionExpiryCheck,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *serviceImpl) Open(ctx context.Context, browserID string) (*Session, error) {
	sess, err := s.repo.FindByBrowserID(ctx, browserID)
	if err != nil {
		if apiErr, ok := common.IsAPIError(err); ok && apiErr.Code == common.ErrNotFound.Code {
			return nil, nil
		}
		return nil, err
	}

	if !s.expiryCheck {
		sess.ExpiresAt = nil
		return sess, nil
	}
	if sess.Expired(s.now()) {
		s.logger.Info("Dropping expired session", zap.Timep("expires_at", sess.ExpiresAt))
		if err := s.repo.Delete(ctx, browserID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return sess, nil
}

func (s *serviceImpl) Establish(ctx context.Context, browserID string, tok *oauth2.Token) (*Session, error) {
	if tok == nil || tok.AccessToken == "" {
		return nil, errors.New("cannot establish a session without an access token")
	}

	now := s.now()
	sess := &Session{
		BrowserID: browserID,
		Token:     tok.AccessToken,
		TokenType: tok.TokenType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.expiryCheck {
		sess.ExpiresAt = tokenExpiry(tok)
	}

	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *serviceImpl) Close(ctx context.Context, browserID string) error {
	return s.repo.Delete(ctx, browserID)
}

func (s *serviceImpl) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge expired sessions: %w", err)
	}
	return n, nil
}

// tokenExpiry prefers the expires_in the server sent and falls back to the exp
// claim of a JWT access token. Signatures are not checked; the backend does that.
func tokenExpiry(tok *oauth2.Token) *time.Time {
	if !tok.Expiry.IsZero() {
		exp := tok.Expiry.UTC()
		return &exp
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, claims); err != nil {
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	exp := claims.ExpiresAt.Time.UTC()
	return &exp
}
