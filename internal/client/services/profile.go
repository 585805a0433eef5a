package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/client"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
)

// ProfileService reads and edits the signed-in user's profile. Every
// successful read refreshes the stored profile snapshot.
type ProfileService interface {
	Get(ctx context.Context, sess *models.Session) (*models.Profile, error)
	Update(ctx context.Context, sess *models.Session, upd models.ProfileUpdate) (*models.Profile, error)
	UpdatePreferences(ctx context.Context, sess *models.Session, prefs []string) ([]string, error)
}

type profileService struct {
	client client.Client
	store  SessionStore
}

func NewProfileService(c client.Client, store SessionStore) ProfileService {
	return &profileService{client: c, store: store}
}

func (p *profileService) Get(ctx context.Context, sess *models.Session) (*models.Profile, error) {
	if !sess.Valid() {
		return nil, common.ErrAuthRequired
	}
	prof, err := p.client.GetProfile(ctx, sess.Token)
	if err != nil {
		return nil, err
	}

	snapshot := models.AccountUser{ID: prof.ID, Name: prof.Name, Email: prof.Email, Phone: prof.Phone}
	if err := p.store.SaveProfile(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	sess.User = snapshot
	return prof, nil
}

// Update sends the non-nil fields and returns the profile as stored by the
// backend afterwards.
func (p *profileService) Update(ctx context.Context, sess *models.Session, upd models.ProfileUpdate) (*models.Profile, error) {
	if !sess.Valid() {
		return nil, common.ErrAuthRequired
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", common.ErrValidation)
		}
		upd.Name = &name
	}
	if upd.Name == nil && upd.Phone == nil && upd.ProfileImage == nil {
		return nil, fmt.Errorf("%w: nothing to update", common.ErrValidation)
	}

	if err := p.client.UpdateProfile(ctx, sess.Token, upd); err != nil {
		return nil, err
	}
	return p.Get(ctx, sess)
}

// UpdatePreferences trims, drops blanks and duplicates, and returns the list
// that was sent.
func (p *profileService) UpdatePreferences(ctx context.Context, sess *models.Session, prefs []string) ([]string, error) {
	if !sess.Valid() {
		return nil, common.ErrAuthRequired
	}

	clean := make([]string, 0, len(prefs))
	seen := make(map[string]struct{}, len(prefs))
	for _, v := range prefs {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		clean = append(clean, v)
	}

	if err := p.client.UpdatePreferences(ctx, sess.Token, clean); err != nil {
		return nil, err
	}
	return clean, nil
}
