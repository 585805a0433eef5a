package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/client"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/config"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/location"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/radar"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/services"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/session"
	"github.com/dmitrijs2005/nearbyconnect/internal/filex"
	"github.com/dmitrijs2005/nearbyconnect/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

const onlineCheckInterval = 30 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger

	api            client.Client
	store          *session.Store
	authService    services.AuthService
	profileService services.ProfileService
	messageService services.MessageService
	provider       location.Provider

	reader *bufio.Reader
	out    io.Writer

	session    *models.Session
	radar      *radar.Controller
	lastSignup *models.SignupResult
	authLost   atomic.Bool

	modeMu sync.Mutex
	mode   Mode
}

// NewApp opens local storage and builds the API client for cfg.
func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, err
	}
	store, err := session.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	api := client.NewHTTPClient(cfg.ServerBaseURL, cfg.RequestTimeout, logger)
	return newApp(cfg, logger, api, store, os.Stdin, os.Stdout), nil
}

func newApp(cfg *config.Config, logger logging.Logger, api client.Client, store *session.Store, in io.Reader, out io.Writer) *App {
	a := &App{
		config:         cfg,
		logger:         logger.With("module", "cli"),
		api:            api,
		store:          store,
		authService:    services.NewAuthService(api, store),
		profileService: services.NewProfileService(api, store),
		messageService: services.NewMessageService(api),
		reader:         bufio.NewReader(in),
		out:            out,
	}

	var device location.Device
	if cfg.HasDevice() {
		device = location.NewStaticDevice(cfg.DeviceLatitude, cfg.DeviceLongitude, a.askPermission)
	}
	a.provider = location.Detect(device, location.NewFixedProvider(cfg.FallbackLatitude, cfg.FallbackLongitude))
	return a
}

func (a *App) askPermission(_ context.Context, question string) (bool, error) {
	return Confirm(a.reader, question, a.out)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) isLoggedIn() bool {
	return a.session.Valid()
}

// startSession makes sess current and brings up the radar for it.
func (a *App) startSession(ctx context.Context, sess *models.Session) {
	a.stopRadar()
	a.session = sess
	a.authLost.Store(false)

	a.radar = radar.NewController(sess, a.provider, a.api, a.logger,
		radar.WithRadius(a.config.RadiusMiles),
		radar.WithRefreshInterval(a.config.RefreshInterval),
		radar.WithOnAuthRequired(func() { a.authLost.Store(true) }),
	)

	a.printf("Signed in as %s.\n", sess.User.Name)
	if err := a.radar.Initialize(ctx); err != nil {
		a.println("Location unavailable:", describe(err))
		a.println("Type 'radar' to try again.")
	}
}

func (a *App) stopRadar() {
	if a.radar != nil {
		a.radar.Close()
		a.radar = nil
	}
}

// checkSession ends the session if a background call reported it invalid.
func (a *App) checkSession(ctx context.Context) {
	if a.authLost.Swap(false) && a.isLoggedIn() {
		a.println("Your session has expired.")
		a.expireSession(ctx)
	}
}

// expireSession drops the current session and sends the user to login.
func (a *App) expireSession(ctx context.Context) {
	a.stopRadar()
	a.session = nil
	if err := a.authService.Logout(ctx); err != nil {
		a.logger.Warn(ctx, "clear session failed", "error", err)
	}
	a.println("Please 'login' again.")
}

// StartOnlineStatusWatcher pings the backend every interval and records
// whether it answered, until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		a.pingOnce(ctx)
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) pingOnce(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(pctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

func (a *App) Close() {
	a.stopRadar()
	if err := a.store.Close(); err != nil {
		a.logger.Warn(context.Background(), "close local db", "error", err)
	}
}
