package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	errs     map[string]error

	calls   []string
	args    map[string][]string
	expired int
	checks  int
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return f.errs[name]
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) checkSession(context.Context) { f.checks++ }
func (f *fakeExec) expireSession(context.Context) { f.expired++; f.loggedIn = false }

func (f *fakeExec) Signup(context.Context) error { return f.record("signup", nil) }
func (f *fakeExec) Verify(_ context.Context, args []string) error {
	return f.record("verify", args)
}
func (f *fakeExec) Login(_ context.Context, args []string) error {
	f.loggedIn = true
	return f.record("login", args)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Radar(context.Context) error { return f.record("radar", nil) }
func (f *fakeExec) Radius(_ context.Context, args []string) error {
	return f.record("radius", args)
}
func (f *fakeExec) Refresh(context.Context) error { return f.record("refresh", nil) }
func (f *fakeExec) Select(_ context.Context, args []string) error {
	return f.record("select", args)
}
func (f *fakeExec) Send(context.Context) error { return f.record("send", nil) }
func (f *fakeExec) SendAll(context.Context) error { return f.record("sendall", nil) }
func (f *fakeExec) Messages(context.Context) error { return f.record("messages", nil) }
func (f *fakeExec) Profile(context.Context) error { return f.record("profile", nil) }
func (f *fakeExec) EditProfile(context.Context) error { return f.record("editprofile", nil) }
func (f *fakeExec) Prefs(_ context.Context, args []string) error {
	return f.record("prefs", args)
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrints(t)

	input := strings.Join([]string{
		"help",
		"login ann@x.com",
		"",
		"radar",
		"radius 2.5",
		"refresh",
		"select 2",
		"send",
		"sendall",
		"messages",
		"profile",
		"editprofile",
		"prefs music, hiking",
		"verify u1 123456",
		"signup",
		"foobar",
		"logout",
		"exit",
		"radar",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login", "radar", "radius", "refresh", "select", "send", "sendall",
		"messages", "profile", "editprofile", "prefs", "verify", "signup", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"ann@x.com"}, exec.args["login"])
	assert.Equal(t, []string{"2.5"}, exec.args["radius"])
	assert.Equal(t, []string{"2"}, exec.args["select"])
	assert.Equal(t, []string{"music,", "hiking"}, exec.args["prefs"])
	assert.Equal(t, []string{"u1", "123456"}, exec.args["verify"])
	assert.Greater(t, exec.checks, 10)
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nlogin a@b.c\nhelp\nquit\n")))

	var helps []string
	for _, l := range *lines {
		if strings.HasPrefix(l, "Available commands:") {
			helps = append(helps, l)
		}
	}
	require.Len(t, helps, 2)
	assert.Contains(t, helps[0], "signup")
	assert.NotContains(t, helps[0], "radar")
	assert.Contains(t, helps[1], "radar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_AuthErrorExpiresSession(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{
		loggedIn: true,
		errs:     map[string]error{"refresh": common.ErrAuthRequired},
	}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("refresh\n")))

	assert.Equal(t, 1, exec.expired)
	assert.False(t, exec.loggedIn)
	assert.Contains(t, strings.Join(*lines, "\n"), "Error:")
}

func TestRunREPL_OtherErrorsArePrinted(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{
		loggedIn: true,
		errs:     map[string]error{"send": common.ErrNoSelection, "radius": errors.New("boom")},
	}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("send\nradius x\n")))

	out := strings.Join(*lines, "\n")
	assert.Contains(t, out, "select someone on the radar first")
	assert.Contains(t, out, "boom")
	assert.Zero(t, exec.expired)
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("radar")))
	assert.Equal(t, []string{"radar"}, exec.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrints(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("radar\n")))
	assert.Empty(t, exec.calls)
}
