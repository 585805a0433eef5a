package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/dmitrijs2005/nearbyconnect/internal/logging"
	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

type HTTPClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient returns a client for the backend at baseURL, e.g.
// "http://127.0.0.1:8001". A non-positive timeout selects the 10s default.
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    &http.Client{},
		logger:  logger.With("module", "api_client"),
	}
}

// do sends one JSON request and decodes a 2xx body into out (when non-nil).
// An empty token means an unauthenticated call.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}
	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return mapError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return mapError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapStatus(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type authResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    models.AccountUser `json:"user"`
}

func (r *authResponse) session() *models.Session {
	return &models.Session{Token: r.Token, User: r.User}
}

func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResult, error) {
	var res models.SignupResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", "", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Verify(ctx context.Context, userID, code string) (*models.Session, error) {
	req := map[string]string{"user_id": userID, "verification_code": code}

	var res authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/verify", "", req, &res); err != nil {
		return nil, err
	}
	return res.session(), nil
}

func (c *HTTPClient) Login(ctx context.Context, email string) (*models.Session, error) {
	req := map[string]string{"email": email}

	var res authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &res); err != nil {
		return nil, err
	}
	return res.session(), nil
}

type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c *HTTPClient) PushLocation(ctx context.Context, token string, lat, lon float64) error {
	return c.do(ctx, http.MethodPost, "/api/location", token, locationRequest{Latitude: lat, Longitude: lon}, nil)
}

type nearbyRequest struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	RadiusMiles float64 `json:"radius_miles"`
}

type nearbyResponse struct {
	NearbyUsers []models.User `json:"nearby_users"`
}

func (c *HTTPClient) NearbyUsers(ctx context.Context, token string, lat, lon, radiusMiles float64) ([]models.User, error) {
	req := nearbyRequest{Latitude: lat, Longitude: lon, RadiusMiles: radiusMiles}

	var res nearbyResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/nearby", token, req, &res); err != nil {
		return nil, err
	}
	if res.NearbyUsers == nil {
		return []models.User{}, nil
	}
	return res.NearbyUsers, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	var p models.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", token, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/api/profile", token, upd, nil)
}

func (c *HTTPClient) UpdatePreferences(ctx context.Context, token string, prefs []string) error {
	if prefs == nil {
		prefs = []string{}
	}
	req := map[string][]string{"preferences": prefs}
	return c.do(ctx, http.MethodPut, "/api/preferences", token, req, nil)
}

type sendMessageResponse struct {
	Message   string `json:"message"`
	MessageID string `json:"message_id"`
}

func (c *HTTPClient) SendMessage(ctx context.Context, token string, msg models.OutgoingMessage) (string, error) {
	var res sendMessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/messages", token, msg, &res); err != nil {
		return "", err
	}
	return res.MessageID, nil
}

type listMessagesResponse struct {
	Messages []models.Message `json:"messages"`
}

func (c *HTTPClient) ListMessages(ctx context.Context, token string) ([]models.Message, error) {
	var res listMessagesResponse
	if err := c.do(ctx, http.MethodGet, "/api/messages", token, nil, &res); err != nil {
		return nil, err
	}
	return res.Messages, nil
}

// Ping reports whether the backend answers HTTP at all. Any status code,
// including 401/403 for the missing token, counts as reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/profile", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return mapError(err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 500 {
		return mapStatus(resp.StatusCode, nil)
	}
	return nil
}
