package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
)

// getSimpleText and confirm are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var confirm = Confirm

// Signup asks for name, email and phone and creates the account. The
// backend echoes the verification code, so the user is offered to verify
// right away.
func (a *App) Signup(ctx context.Context) error {
	var req models.SignupRequest
	var err error

	if req.Name, err = getSimpleText(a.reader, "Enter name", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Enter phone", a.out); err != nil {
		return err
	}

	res, err := a.authService.Signup(ctx, req)
	if err != nil {
		return err
	}
	a.lastSignup = res
	a.printf("Account created. User id: %s, verification code: %s\n", res.UserID, res.VerificationCode)

	ok, err := confirm(a.reader, "Verify now?", a.out)
	if err != nil || !ok {
		a.println("Run 'verify' when ready.")
		return err
	}
	return a.Verify(ctx, []string{res.UserID, res.VerificationCode})
}

// Verify takes "<user id> <code>" as arguments, falls back to the last
// signup, and prompts for anything still missing.
func (a *App) Verify(ctx context.Context, args []string) error {
	var userID, code string
	switch {
	case len(args) >= 2:
		userID, code = args[0], args[1]
	case a.lastSignup != nil:
		userID = a.lastSignup.UserID
		if len(args) == 1 {
			code = args[0]
		}
	}

	var err error
	if userID == "" {
		if userID, err = getSimpleText(a.reader, "Enter user id", a.out); err != nil {
			return err
		}
	}
	if code == "" {
		if code, err = getSimpleText(a.reader, "Enter verification code", a.out); err != nil {
			return err
		}
	}

	sess, err := a.authService.Verify(ctx, userID, code)
	if err != nil {
		return err
	}
	a.lastSignup = nil
	a.startSession(ctx, sess)
	return nil
}

func (a *App) Login(ctx context.Context, args []string) error {
	email := ""
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return err
		}
	}

	sess, err := a.authService.Login(ctx, email)
	if err != nil {
		return err
	}
	a.startSession(ctx, sess)
	return nil
}

// Logout stops the radar and forgets the stored session.
func (a *App) Logout(ctx context.Context) error {
	a.stopRadar()
	a.session = nil
	if err := a.authService.Logout(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.println("Logged out.")
	return nil
}

// resume restores a stored session, if any.
func (a *App) resume(ctx context.Context) bool {
	sess, err := a.authService.Current(ctx)
	if err != nil {
		return false
	}
	a.startSession(ctx, sess)
	return true
}
