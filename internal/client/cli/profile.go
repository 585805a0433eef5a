package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
)

func (a *App) Profile(ctx context.Context) error {
	p, err := a.profileService.Get(ctx, a.session)
	if err != nil {
		return err
	}
	a.printf("Name:        %s\n", p.Name)
	a.printf("Email:       %s\n", p.Email)
	a.printf("Phone:       %s\n", p.Phone)
	prefs := "(none)"
	if len(p.Preferences) > 0 {
		prefs = strings.Join(p.Preferences, ", ")
	}
	a.printf("Preferences: %s\n", prefs)
	return nil
}

// EditProfile prompts for name and phone; an empty answer keeps the value.
func (a *App) EditProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		_, err := a.profileService.Get(ctx, a.session)
		return err
	}

	var upd models.ProfileUpdate
	name, err := getSimpleText(a.reader, "New name (empty to keep "+a.session.User.Name+")", a.out)
	if err != nil {
		return err
	}
	if name != "" {
		upd.Name = &name
	}
	phone, err := getSimpleText(a.reader, "New phone (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if phone != "" {
		upd.Phone = &phone
	}
	if upd.Name == nil && upd.Phone == nil {
		a.println("Nothing changed.")
		return nil
	}

	if _, err := a.profileService.Update(ctx, a.session, upd); err != nil {
		return err
	}
	a.println("Profile saved.")
	return nil
}

// Prefs replaces the preference list with the comma-separated arguments,
// prompting when none are given.
func (a *App) Prefs(ctx context.Context, args []string) error {
	raw := strings.Join(args, " ")
	if raw == "" && a.isLoggedIn() {
		var err error
		if raw, err = getSimpleText(a.reader, "Preferences, comma-separated (empty clears)", a.out); err != nil {
			return err
		}
	}

	saved, err := a.profileService.UpdatePreferences(ctx, a.session, splitList(raw))
	if err != nil {
		return err
	}
	if len(saved) == 0 {
		a.println("Preferences cleared.")
		return nil
	}
	a.printf("Preferences: %s\n", strings.Join(saved, ", "))
	return nil
}
