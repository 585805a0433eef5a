// Package services contains the application services of the Nearby Connect
// client. They sit between the CLI and the API client, and keep the local
// session store in step with what the backend says.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/client"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
)

// SessionStore is the local persistence of the signed-in session.
type SessionStore interface {
	Save(ctx context.Context, sess *models.Session) error
	SaveProfile(ctx context.Context, user models.AccountUser) error
	Load(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
}

// AuthService covers account creation and sign-in.
//
// Verify and Login persist the returned session; Logout forgets it.
// Current returns the persisted session or common.ErrAuthRequired.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResult, error)
	Verify(ctx context.Context, userID, code string) (*models.Session, error)
	Login(ctx context.Context, email string) (*models.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.Session, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  SessionStore
}

func NewAuthService(c client.Client, store SessionStore) AuthService {
	return &authService{client: c, store: store}
}

func required(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", common.ErrValidation, field)
	}
	return nil
}

func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (*models.SignupResult, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	for _, f := range []struct{ name, value string }{
		{"name", req.Name}, {"email", req.Email}, {"phone", req.Phone},
	} {
		if err := required(f.name, f.value); err != nil {
			return nil, err
		}
	}
	return a.client.Signup(ctx, req)
}

func (a *authService) Verify(ctx context.Context, userID, code string) (*models.Session, error) {
	userID, code = strings.TrimSpace(userID), strings.TrimSpace(code)
	if err := required("user id", userID); err != nil {
		return nil, err
	}
	if err := required("verification code", code); err != nil {
		return nil, err
	}

	sess, err := a.client.Verify(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	return a.persist(ctx, sess)
}

func (a *authService) Login(ctx context.Context, email string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if err := required("email", email); err != nil {
		return nil, err
	}

	sess, err := a.client.Login(ctx, email)
	if err != nil {
		return nil, err
	}
	return a.persist(ctx, sess)
}

func (a *authService) persist(ctx context.Context, sess *models.Session) (*models.Session, error) {
	if err := a.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (*models.Session, error) {
	return a.store.Load(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
