// File: internal/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"weather_prediction_ui/internal/config"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	tokenPath    = "/token"
	registerPath = "/register"
	predictPath  = "/predict"

	// maxErrorBody bounds how much of a failed response is kept for logs.
	maxErrorBody = 512
)

// ErrMissingPrediction is returned when /predict succeeds without a temperature.
var ErrMissingPrediction = errors.New("predict response missing predicted_temperature")

// Client talks to the prediction backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	oauth      *oauth2.Config
	logger     *zap.Logger
}

// NewClient builds a Client for cfg.BackendURL.
func NewClient(cfg *config.Config, logger *zap.Logger) (*Client, error) {
	return NewClientWithHTTP(cfg.BackendURL, &http.Client{Timeout: cfg.BackendTimeout}, logger)
}

// NewClientWithHTTP builds a Client around an existing http.Client.
func NewClientWithHTTP(baseURL string, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: scheme and host are required", baseURL)
	}
	base := u.String()

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		oauth: &oauth2.Config{
			Endpoint: oauth2.Endpoint{
				TokenURL:  base + tokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		logger: logger.Named("backend"),
	}, nil
}

// RequestToken exchanges credentials for a bearer token using the password grant.
// The form carries the email as "username".
func (c *Client) RequestToken(ctx context.Context, creds Credentials) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	tok, err := c.oauth.PasswordCredentialsToken(ctx, creds.Email, creds.Password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			return nil, &StatusError{
				Op:         "token",
				StatusCode: retrieveErr.Response.StatusCode,
				Body:       truncate(string(retrieveErr.Body)),
			}
		}
		return nil, fmt.Errorf("token request failed: %w", err)
	}

	c.logger.Debug("Token issued", zap.String("token_type", tok.Type()), zap.Time("expiry", tok.Expiry))
	return tok, nil
}

// Register creates an account. Any 2xx response is success.
func (c *Client) Register(ctx context.Context, creds Credentials) error {
	resp, err := c.postJSON(ctx, registerPath, creds, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus("register", resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Predict asks the backend for a temperature, authorised by tok.
func (c *Client) Predict(ctx context.Context, tok *oauth2.Token, in PredictionInput) (*Prediction, error) {
	if tok == nil || tok.AccessToken == "" {
		return nil, errors.New("predict requires an access token")
	}

	resp, err := c.postJSON(ctx, predictPath, in, tok)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus("predict", resp); err != nil {
		return nil, err
	}

	var body predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode predict response: %w", err)
	}
	if body.PredictedTemperature == nil {
		return nil, ErrMissingPrediction
	}
	return &Prediction{PredictedTemperature: *body.PredictedTemperature}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, tok *oauth2.Token) (*http.Response, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// The backend only accepts Bearer, whatever token_type it issued.
	if tok != nil {
		req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", path, err)
	}
	return resp, nil
}

func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
}

func truncate(s string) string {
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}
