package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() {
		s = a.session.User.Name + " "
	}
	if m := a.getMode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, resumes a stored session when there is one, and
// runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	a.println("Welcome to Nearby Connect (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, onlineCheckInterval)

	if !a.resume(ctx) {
		a.println("Type 'signup' to create an account or 'login' to sign in.")
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
