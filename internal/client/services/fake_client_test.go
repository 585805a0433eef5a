package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/session"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	SignupRet *models.SignupResult
	SignupErr error
	SessRet   *models.Session
	VerifyErr error
	LoginErr  error

	ProfileRet *models.Profile
	ProfileErr error
	UpdateErr  error
	PrefsErr   error

	MessagesRet []models.Message
	MessagesErr error
	SendErr     error

	PingErr error

	LastSignup  models.SignupRequest
	LastVerify  [2]string
	LastEmail   string
	LastToken   string
	LastUpdate  models.ProfileUpdate
	LastPrefs   []string
	LastMessage models.OutgoingMessage
	Calls       int
}

func (f *fakeClient) Signup(_ context.Context, req models.SignupRequest) (*models.SignupResult, error) {
	f.Calls++
	f.LastSignup = req
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) Verify(_ context.Context, userID, code string) (*models.Session, error) {
	f.Calls++
	f.LastVerify = [2]string{userID, code}
	if f.VerifyErr != nil {
		return nil, f.VerifyErr
	}
	return f.SessRet, nil
}

func (f *fakeClient) Login(_ context.Context, email string) (*models.Session, error) {
	f.Calls++
	f.LastEmail = email
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.SessRet, nil
}

func (f *fakeClient) PushLocation(context.Context, string, float64, float64) error { return nil }

func (f *fakeClient) NearbyUsers(context.Context, string, float64, float64, float64) ([]models.User, error) {
	return nil, nil
}

func (f *fakeClient) GetProfile(_ context.Context, token string) (*models.Profile, error) {
	f.Calls++
	f.LastToken = token
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	p := *f.ProfileRet
	return &p, nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, token string, upd models.ProfileUpdate) error {
	f.Calls++
	f.LastToken = token
	f.LastUpdate = upd
	if f.UpdateErr == nil && upd.Name != nil && f.ProfileRet != nil {
		f.ProfileRet.Name = *upd.Name
	}
	return f.UpdateErr
}

func (f *fakeClient) UpdatePreferences(_ context.Context, token string, prefs []string) error {
	f.Calls++
	f.LastToken = token
	f.LastPrefs = prefs
	return f.PrefsErr
}

func (f *fakeClient) SendMessage(_ context.Context, token string, msg models.OutgoingMessage) (string, error) {
	f.Calls++
	f.LastToken = token
	f.LastMessage = msg
	if f.SendErr != nil {
		return "", f.SendErr
	}
	return "m1", nil
}

func (f *fakeClient) ListMessages(_ context.Context, token string) ([]models.Message, error) {
	f.Calls++
	f.LastToken = token
	return f.MessagesRet, f.MessagesErr
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func newStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
