// File: internal/ui/client.go
package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"weather_prediction_ui/internal/backend"
	"weather_prediction_ui/internal/session"

	"go.uber.org/zap"
)

// Client is the UI state of one browser: the three forms, the last prediction,
// a Result per operation and the bearer-token session.
type Client struct {
	browserID string
	api       Backend
	sessions  session.Service
	logger    *zap.Logger
	now       func() time.Time

	// ops serialises login, register and predict so overlapping submissions
	// cannot interleave their writes.
	ops sync.Mutex

	mu             sync.RWMutex
	session        *session.Session
	login          backend.Credentials
	register       backend.Credentials
	input          backend.PredictionInput
	prediction     *float64
	loginResult    Result
	registerResult Result
	predictResult  Result
	pending        Operation
}

// NewClient creates the UI state for a browser. The initial state is LoggedIn
// when a session is already persisted for browserID. An error means the
// persisted state is unknown and no Client is returned.
func NewClient(ctx context.Context, browserID string, api Backend, sessions session.Service, logger *zap.Logger) (*Client, error) {
	sess, err := sessions.Open(ctx, browserID)
	if err != nil {
		return nil, fmt.Errorf("load persisted session: %w", err)
	}

	return &Client{
		browserID: browserID,
		api:       api,
		sessions:  sessions,
		logger:    logger,
		now:       time.Now,
		session:   sess,
	}, nil
}

// State returns LoggedIn while a non-expired session is held.
func (c *Client) State(ctx context.Context) State {
	if c.activeSession(ctx) == nil {
		return StateLoggedOut
	}
	return StateLoggedIn
}

// Login exchanges the credentials for a token and persists it.
func (c *Client) Login(ctx context.Context, creds backend.Credentials) Result {
	c.ops.Lock()
	defer c.ops.Unlock()

	c.update(func() {
		c.login = creds
		c.pending = OpLogin
	})
	defer c.update(func() { c.pending = "" })

	tok, err := c.api.RequestToken(ctx, creds)
	if err != nil {
		c.logger.Warn("Login request failed", zap.Error(err))
		return c.setLoginResult(failed(LoginFailedMessage))
	}

	sess, err := c.sessions.Establish(ctx, c.browserID, tok)
	if err != nil {
		c.logger.Error("Failed to persist session", zap.Error(err))
		return c.setLoginResult(failed(LoginFailedMessage))
	}

	c.update(func() { c.session = sess })
	c.logger.Info("Logged in", zap.Timep("expires_at", sess.ExpiresAt))
	return c.setLoginResult(Result{Kind: ResultSuccess})
}

// Register creates an account. Success does not log the user in.
func (c *Client) Register(ctx context.Context, creds backend.Credentials) Result {
	c.ops.Lock()
	defer c.ops.Unlock()

	c.update(func() {
		c.register = creds
		c.pending = OpRegister
	})
	defer c.update(func() { c.pending = "" })

	var res Result
	if err := c.api.Register(ctx, creds); err != nil {
		c.logger.Warn("Registration request failed", zap.Error(err))
		res = failed(RegistrationFailed)
	} else {
		res = succeeded(RegistrationSucceeded)
	}

	c.update(func() { c.registerResult = res })
	return res
}

// Predict sends the measurements with the session's token. On failure the
// previously displayed prediction is kept.
func (c *Client) Predict(ctx context.Context, in backend.PredictionInput) Result {
	c.ops.Lock()
	defer c.ops.Unlock()

	c.update(func() {
		c.input = in
		c.pending = OpPredict
	})
	defer c.update(func() { c.pending = "" })

	sess := c.activeSession(ctx)
	if sess == nil {
		c.logger.Warn("Prediction attempted without a session")
		return c.setPredictResult(failed(PredictionFailedMessage))
	}

	p, err := c.api.Predict(ctx, sess.OAuthToken(), in)
	if err != nil {
		c.logger.Warn("Prediction request failed", zap.Error(err))
		return c.setPredictResult(failed(PredictionFailedMessage))
	}

	temp := p.PredictedTemperature
	c.update(func() { c.prediction = &temp })
	return c.setPredictResult(Result{Kind: ResultSuccess})
}

// Logout drops the session from memory and from storage. It does not wait for
// an in-flight operation and makes no remote call. The in-memory session is
// cleared even when removing the persisted one fails.
func (c *Client) Logout(ctx context.Context) error {
	c.update(func() { c.session = nil })

	if err := c.sessions.Close(ctx, c.browserID); err != nil {
		c.logger.Error("Failed to remove persisted session", zap.Error(err))
		return err
	}
	c.logger.Info("Logged out")
	return nil
}

// View returns a snapshot for rendering.
func (c *Client) View(ctx context.Context) View {
	state := c.State(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()

	v := View{
		State:          state,
		LoginEmail:     c.login.Email,
		RegisterEmail:  c.register.Email,
		Humidity:       c.input.Humidity,
		Pressure:       c.input.Pressure,
		WindSpeed:      c.input.WindSpeed,
		LoginResult:    c.loginResult,
		RegisterResult: c.registerResult,
		PredictResult:  c.predictResult,
		Pending:        string(c.pending),
	}
	if c.prediction != nil {
		p := *c.prediction
		v.Prediction = &p
	}
	return v
}

// activeSession returns the held session, tearing it down first if it has expired.
func (c *Client) activeSession(ctx context.Context) *session.Session {
	c.mu.RLock()
	sess := c.session
	c.mu.RUnlock()

	if sess == nil || !sess.Expired(c.now()) {
		return sess
	}

	c.logger.Info("Session expired", zap.Timep("expires_at", sess.ExpiresAt))
	c.mu.Lock()
	if c.session == sess {
		c.session = nil
	}
	c.mu.Unlock()
	if err := c.sessions.Close(ctx, c.browserID); err != nil {
		c.logger.Error("Failed to remove expired session", zap.Error(err))
	}
	return nil
}

func (c *Client) update(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

func (c *Client) setLoginResult(r Result) Result {
	c.update(func() { c.loginResult = r })
	return r
}

func (c *Client) setPredictResult(r Result) Result {
	c.update(func() { c.predictResult = r })
	return r
}
