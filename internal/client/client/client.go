package client

import (
	"context"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
)

type Client interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResult, error)
	Verify(ctx context.Context, userID, code string) (*models.Session, error)
	Login(ctx context.Context, email string) (*models.Session, error)
	PushLocation(ctx context.Context, token string, lat, lon float64) error
	NearbyUsers(ctx context.Context, token string, lat, lon, radiusMiles float64) ([]models.User, error)
	GetProfile(ctx context.Context, token string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, token string, upd models.ProfileUpdate) error
	UpdatePreferences(ctx context.Context, token string, prefs []string) error
	SendMessage(ctx context.Context, token string, msg models.OutgoingMessage) (string, error)
	ListMessages(ctx context.Context, token string) ([]models.Message, error)
	Ping(ctx context.Context) error
}
