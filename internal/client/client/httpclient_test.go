package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/dmitrijs2005/nearbyconnect/internal/devbackend"
	"github.com/dmitrijs2005/nearbyconnect/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func newBackend(t *testing.T) *HTTPClient {
	t.Helper()
	cfg := &devbackend.Config{}
	cfg.LoadDefaults()
	srv := httptest.NewServer(devbackend.NewHandler(cfg, logging.Discard()).Router())
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, time.Second, logging.Discard())
}

func newStub(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", 200*time.Millisecond, logging.Discard())
}

func signupAndVerify(t *testing.T, c *HTTPClient, name, email string) *models.Session {
	t.Helper()
	ctx := context.Background()
	res, err := c.Signup(ctx, models.SignupRequest{Name: name, Email: email, Phone: "555-0100"})
	require.NoError(t, err)
	s, err := c.Verify(ctx, res.UserID, res.VerificationCode)
	require.NoError(t, err)
	return s
}

// ---- TESTS ----

func TestSignup_DuplicateIsConflict(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()
	req := models.SignupRequest{Name: "Ann", Email: "ann@x.com", Phone: "555-0100"}

	res, err := c.Signup(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, res.UserID)
	assert.Len(t, res.VerificationCode, 6)

	_, err = c.Signup(ctx, req)
	require.ErrorIs(t, err, common.ErrConflict)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "User already exists", apiErr.Detail)
}

func TestSignup_ValidationDetailIsFlattened(t *testing.T) {
	c := newBackend(t)

	_, err := c.Signup(context.Background(), models.SignupRequest{Name: "X", Email: "bad", Phone: "555-0100"})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "email: Invalid email format")
}

func TestVerifyAndLogin(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()

	s := signupAndVerify(t, c, "Ann", "ann@x.com")
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, "Ann", s.User.Name)

	s2, err := c.Login(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, s2.User.ID)

	_, err = c.Login(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = c.Verify(ctx, s.User.ID, "123")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestNearbyUsers_RoundTrip(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()

	me := signupAndVerify(t, c, "Me", "me@x.com")
	other := signupAndVerify(t, c, "Other", "other@x.com")

	require.NoError(t, c.PushLocation(ctx, me.Token, 37.7749, -122.4194))
	require.NoError(t, c.PushLocation(ctx, other.Token, 37.7760, -122.4194))

	users, err := c.NearbyUsers(ctx, me.Token, 37.7749, -122.4194, 1.0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, other.User.ID, users[0].ID)
	assert.Equal(t, "Other", users[0].Name)
	assert.Greater(t, users[0].DistanceMiles, 0.0)
	assert.NotEmpty(t, users[0].LastActive)
}

func TestNearbyUsers_EmptyListIsNotNil(t *testing.T) {
	c := newBackend(t)
	me := signupAndVerify(t, c, "Me", "me@x.com")

	users, err := c.NearbyUsers(context.Background(), me.Token, 0, 0, 5)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestProfilePreferencesMessages(t *testing.T) {
	c := newBackend(t)
	ctx := context.Background()

	me := signupAndVerify(t, c, "Me", "me@x.com")
	bob := signupAndVerify(t, c, "Bob", "bob@x.com")

	name := "Me Renamed"
	require.NoError(t, c.UpdateProfile(ctx, me.Token, models.ProfileUpdate{Name: &name}))
	require.NoError(t, c.UpdatePreferences(ctx, me.Token, []string{"music"}))

	p, err := c.GetProfile(ctx, me.Token)
	require.NoError(t, err)
	assert.Equal(t, "Me Renamed", p.Name)
	assert.Equal(t, []string{"music"}, p.Preferences)

	img := "aGVsbG8="
	id, err := c.SendMessage(ctx, me.Token, models.OutgoingMessage{Content: "hi", RecipientIDs: []string{bob.User.ID}, ImageData: &img})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	msgs, err := c.ListMessages(ctx, bob.Token)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Content)
	assert.Equal(t, "Me Renamed", msgs[0].SenderName)
	require.NotNil(t, msgs[0].ImageData)
	assert.Equal(t, img, *msgs[0].ImageData)
}

func TestProtectedCall_WithoutValidTokenIsAuthRequired(t *testing.T) {
	c := newBackend(t)

	_, err := c.GetProfile(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrAuthRequired)

	_, err = c.NearbyUsers(context.Background(), "bogus", 0, 0, 1)
	assert.ErrorIs(t, err, common.ErrAuthRequired)
}

func TestDo_SendsHeaders(t *testing.T) {
	var got http.Header
	c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, "/api/location", r.URL.Path)
		var body map[string]float64
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 1.5, body["latitude"])
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.PushLocation(context.Background(), "tok", 1.5, 2.5))
	assert.Equal(t, "Bearer tok", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestMapStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"401", http.StatusUnauthorized, `{"detail":"Token expired"}`, common.ErrAuthRequired},
		{"403", http.StatusForbidden, `{"detail":"Not authenticated"}`, common.ErrAuthRequired},
		{"422", http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","phone"],"msg":"bad"}]}`, common.ErrValidation},
		{"400 exists", http.StatusBadRequest, `{"detail":"User already exists"}`, common.ErrConflict},
		{"400 not found", http.StatusBadRequest, `{"detail":"User not found"}`, common.ErrNotFound},
		{"400 other", http.StatusBadRequest, `{"detail":"User not verified"}`, common.ErrValidation},
		{"404", http.StatusNotFound, `{"detail":"User not found"}`, common.ErrNotFound},
		{"500", http.StatusInternalServerError, `oops`, common.ErrNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapStatus(tt.status, []byte(tt.body))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseDetail(t *testing.T) {
	assert.Equal(t, "User not found", parseDetail([]byte(`{"detail":"User not found"}`)))
	assert.Equal(t, "email: bad; phone: worse", parseDetail([]byte(`{"detail":[{"loc":["body","email"],"msg":"bad"},{"loc":["body","phone"],"msg":"worse"}]}`)))
	assert.Equal(t, "plain text", parseDetail([]byte("plain text\n")))
}

func TestDo_TimeoutIsNetworkError(t *testing.T) {
	c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	err := c.PushLocation(context.Background(), "tok", 0, 0)
	require.ErrorIs(t, err, common.ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDo_CancellationIsDetectable(t *testing.T) {
	c := newStub(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.NearbyUsers(ctx, "tok", 0, 0, 1)
	require.ErrorIs(t, err, common.ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPing(t *testing.T) {
	c := newBackend(t)
	assert.NoError(t, c.Ping(context.Background()), "403 still means reachable")

	down := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond, logging.Discard())
	assert.ErrorIs(t, down.Ping(context.Background()), common.ErrNetwork)
}
