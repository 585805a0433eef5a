package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/nearbyconnect/internal/common"
)

func (a *App) requireRadar() error {
	if !a.isLoggedIn() || a.radar == nil {
		return common.ErrAuthRequired
	}
	return nil
}

// Radar draws the radar. Without a location it first retries location
// access; before the first completed search it runs one.
func (a *App) Radar(ctx context.Context) error {
	if err := a.requireRadar(); err != nil {
		return err
	}

	if a.radar.State().Location == nil {
		if err := a.radar.Initialize(ctx); err != nil {
			return err
		}
	}
	if a.radar.State().RefreshedAt.IsZero() {
		if err := a.radar.Refresh(ctx); err != nil {
			a.println("Showing previous results:", describe(err))
		}
	}

	fmt.Fprint(a.out, renderRadar(a.radar.State(), radarRows()))
	return nil
}

func (a *App) Radius(ctx context.Context, args []string) error {
	if err := a.requireRadar(); err != nil {
		return err
	}
	if len(args) == 0 {
		a.printf("Radius is %.1f mi. Usage: radius <miles>\n", a.radar.Radius())
		return nil
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", common.ErrValidation, args[0])
	}

	applied := a.radar.SetRadius(v)
	a.printf("Scanning %.1f mi.\n", applied)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.requireRadar(); err != nil {
		return err
	}
	if err := a.radar.Refresh(ctx); err != nil {
		return err
	}
	a.printf("%d nearby.\n", len(a.radar.State().Users))
	return nil
}

// Select accepts the 1-based number shown on the radar or a user id.
func (a *App) Select(ctx context.Context, args []string) error {
	if err := a.requireRadar(); err != nil {
		return err
	}
	if len(args) == 0 {
		a.println("Usage: select <n|id>")
		return nil
	}

	id := args[0]
	users := a.radar.State().Users
	if n, err := strconv.Atoi(id); err == nil && n >= 1 && n <= len(users) {
		id = users[n-1].ID
	}

	if err := a.radar.SelectBlip(id); err != nil {
		if errors.Is(err, common.ErrUnknownBlip) {
			return fmt.Errorf("no one matching %q on the radar", args[0])
		}
		return err
	}
	a.printf("Selected %s.\n", a.radar.State().Selected.Name)
	return nil
}
