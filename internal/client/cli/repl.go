package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/nearbyconnect/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	checkSession(ctx context.Context)
	expireSession(ctx context.Context)

	Signup(ctx context.Context) error
	Verify(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Radar(ctx context.Context) error
	Radius(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Select(ctx context.Context, args []string) error
	Send(ctx context.Context) error
	SendAll(ctx context.Context) error
	Messages(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Prefs(ctx context.Context, args []string) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF, on "exit"/"quit", or when ctx is done.
//
// Command errors are printed; an authentication error also ends the
// session so the next step is a fresh login.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		a.checkSession(ctx)
		printlnFn(fmt.Sprintf("nearby %s> ", statusFn()))

		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if readErr != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: radar, radius, refresh, select, send, sendall, messages, profile, editprofile, prefs, logout, exit")
			} else {
				printlnFn("Available commands: signup, verify, login, exit")
			}

		case "signup":
			err = a.Signup(ctx)
		case "verify":
			err = a.Verify(ctx, args)
		case "login":
			err = a.Login(ctx, args)
		case "logout":
			err = a.Logout(ctx)
		case "radar", "r":
			err = a.Radar(ctx)
		case "radius":
			err = a.Radius(ctx, args)
		case "refresh":
			err = a.Refresh(ctx)
		case "select":
			err = a.Select(ctx, args)
		case "send":
			err = a.Send(ctx)
		case "sendall":
			err = a.SendAll(ctx)
		case "messages", "m":
			err = a.Messages(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "editprofile":
			err = a.EditProfile(ctx)
		case "prefs":
			err = a.Prefs(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", describe(err))
			if errors.Is(err, common.ErrAuthRequired) && a.isLoggedIn() {
				a.expireSession(ctx)
			}
		}
		if readErr != nil {
			return
		}
	}
}
