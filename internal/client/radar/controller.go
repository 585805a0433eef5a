// Package radar owns the radar screen state: where the device is, the scan
// radius, who is nearby and who is selected. It drives location pushes and
// nearby searches in the background and keeps only the newest search result.
package radar

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/location"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/dmitrijs2005/nearbyconnect/internal/logging"
)

// DefaultPixels is the radar radius used for blip layout unless overridden.
const DefaultPixels = 100.0

var errNotInitialized = errors.New("radar not initialized")

// Backend is the part of the API client the radar needs.
type Backend interface {
	PushLocation(ctx context.Context, token string, lat, lon float64) error
	NearbyUsers(ctx context.Context, token string, lat, lon, radiusMiles float64) ([]models.User, error)
}

// State is a point-in-time copy of the controller state.
type State struct {
	Location    *models.Location
	RadiusMiles float64
	Users       []models.User
	Blips       []models.Blip
	Selected    *models.User
	Loading     bool
	Updating    bool
	Err         error
	RefreshedAt time.Time
}

type Controller struct {
	session  *models.Session
	provider location.Provider
	backend  Backend
	logger   logging.Logger

	pixels          float64
	refreshInterval time.Duration
	onAuthRequired  func()
	now             func() time.Time

	base   context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup
	ticker sync.Once

	mu           sync.Mutex
	closed       bool
	location     *models.Location
	radius       float64
	users        []models.User
	blips        []models.Blip
	selectedID   string
	loading      bool
	err          error
	refreshedAt  time.Time
	seq          uint64
	inflight     bool
	cancelSearch context.CancelFunc
}

type Option func(*Controller)

// WithRadius sets the initial scan radius; it is clamped like SetRadius.
func WithRadius(miles float64) Option {
	return func(c *Controller) { c.radius = clampRadius(miles) }
}

// WithPixels sets the radar radius used to lay out blips.
func WithPixels(px float64) Option {
	return func(c *Controller) { c.pixels = px }
}

// WithRefreshInterval enables a periodic nearby search after Initialize.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Controller) { c.refreshInterval = d }
}

// WithOnAuthRequired registers a hook run when a background call is rejected
// for authentication.
func WithOnAuthRequired(fn func()) Option {
	return func(c *Controller) { c.onAuthRequired = fn }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController builds a controller for one signed-in session. Call Close
// when done with it.
func NewController(sess *models.Session, provider location.Provider, backend Backend, logger logging.Logger, opts ...Option) *Controller {
	base, stop := context.WithCancel(context.Background())
	c := &Controller{
		session:  sess,
		provider: provider,
		backend:  backend,
		logger:   logger.With("module", "radar"),
		pixels:   DefaultPixels,
		now:      time.Now,
		base:     base,
		stop:     stop,
		radius:   1.0,
		loading:  true,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Initialize acquires the device location. A refused permission is kept in
// State().Err until a later call succeeds.
func (c *Controller) Initialize(ctx context.Context) error {
	if !c.session.Valid() {
		c.setErr(common.ErrAuthRequired)
		return common.ErrAuthRequired
	}

	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	loc, err := c.provider.Locate(ctx)
	if err != nil {
		c.logger.Warn(ctx, "location unavailable", "provider", c.provider.Name(), "error", err)
		c.mu.Lock()
		c.loading = false
		c.err = err
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.location = &loc
	c.loading = false
	c.err = nil
	c.mu.Unlock()

	c.logger.Info(ctx, "location acquired", "provider", c.provider.Name(), "lat", loc.Latitude, "lon", loc.Longitude)

	c.onLocationOrRadiusChanged()
	c.startTicker()
	return nil
}

func (c *Controller) setErr(err error) {
	c.mu.Lock()
	c.err = err
	c.loading = false
	c.mu.Unlock()
}

// onLocationOrRadiusChanged pushes the location and searches at the current
// radius, both in the background, once location and session are present.
func (c *Controller) onLocationOrRadiusChanged() {
	c.mu.Lock()
	if c.closed || c.location == nil || !c.session.Valid() {
		c.mu.Unlock()
		return
	}
	loc := *c.location
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		c.pushLocation(loc)
	}()
	c.startSearch()
}

func (c *Controller) pushLocation(loc models.Location) {
	err := c.backend.PushLocation(c.base, c.session.Token, loc.Latitude, loc.Longitude)
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	c.logger.Warn(c.base, "location push failed", "error", err)
	if errors.Is(err, common.ErrAuthRequired) {
		c.authRequired()
	}
}

// startSearch cancels any in-flight search and issues a new one. The
// returned channel yields the outcome of this search, or nil when a newer
// search superseded it. It returns nil when no search can run.
func (c *Controller) startSearch() <-chan error {
	c.mu.Lock()
	if c.closed || c.location == nil || !c.session.Valid() {
		c.mu.Unlock()
		return nil
	}
	if c.cancelSearch != nil {
		c.cancelSearch()
	}
	c.seq++
	seq := c.seq
	ctx, cancel := context.WithCancel(c.base)
	c.cancelSearch = cancel
	c.inflight = true
	loc, radius := *c.location, c.radius
	c.wg.Add(1)
	c.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer c.wg.Done()
		defer cancel()

		users, err := c.backend.NearbyUsers(ctx, c.session.Token, loc.Latitude, loc.Longitude, radius)
		done <- c.finishSearch(seq, radius, users, err)
	}()
	return done
}

// finishSearch applies a search result unless a newer search was issued in
// the meantime.
func (c *Controller) finishSearch(seq uint64, radius float64, users []models.User, err error) error {
	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		c.logger.Debug(c.base, "discarding stale search result", "seq", seq, "radius", radius)
		return nil
	}
	c.inflight = false
	c.cancelSearch = nil

	if err != nil {
		c.mu.Unlock()
		if !errors.Is(err, context.Canceled) {
			c.logger.Warn(c.base, "nearby search failed", "radius", radius, "error", err)
		}
		if errors.Is(err, common.ErrAuthRequired) {
			c.authRequired()
		}
		return err
	}

	c.users = slices.Clone(users)
	if c.selectedID != "" && !slices.ContainsFunc(c.users, func(u models.User) bool { return u.ID == c.selectedID }) {
		c.selectedID = ""
	}
	c.relayout()
	c.refreshedAt = c.now()
	c.mu.Unlock()

	c.logger.Debug(c.base, "nearby users updated", "count", len(users), "radius", radius)
	return nil
}

// relayout recomputes blips; c.mu must be held.
func (c *Controller) relayout() {
	c.blips = applySelection(Layout(c.users, c.radius, c.pixels), c.selectedID)
}

func (c *Controller) authRequired() {
	if c.onAuthRequired != nil {
		c.onAuthRequired()
	}
}

func clampRadius(v float64) float64 {
	// divide, not multiply: 3/10 == 0.3 but 3*0.1 != 0.3
	v = math.Round(v/common.RadiusStep) / (1 / common.RadiusStep)
	return math.Max(common.MinRadiusMiles, math.Min(common.MaxRadiusMiles, v))
}

// SetRadius stores the clamped radius and, when it changed, re-runs the
// location push and nearby search. It returns the radius now in effect.
func (c *Controller) SetRadius(v float64) float64 {
	if math.IsNaN(v) {
		return c.Radius()
	}
	v = clampRadius(v)

	c.mu.Lock()
	if v == c.radius {
		c.mu.Unlock()
		return v
	}
	c.radius = v
	c.relayout()
	c.mu.Unlock()

	c.onLocationOrRadiusChanged()
	return v
}

func (c *Controller) Radius() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.radius
}

// Refresh re-runs the nearby search only, replacing a search already in
// flight. It returns the outcome of its own search; on failure the previous
// users stay in place.
func (c *Controller) Refresh(ctx context.Context) error {
	if !c.session.Valid() {
		return common.ErrAuthRequired
	}
	done := c.startSearch()
	if done == nil {
		return errNotInitialized
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SelectBlip selects the user with id and deselects everyone else.
func (c *Controller) SelectBlip(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !slices.ContainsFunc(c.users, func(u models.User) bool { return u.ID == id }) {
		return common.ErrUnknownBlip
	}
	c.selectedID = id
	c.blips = applySelection(c.blips, id)
	return nil
}

// ComposeMessageForSelection hands off the selected user as the recipient
// list.
func (c *Controller) ComposeMessageForSelection() ([]models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.users) == 0 {
		return nil, common.ErrNoUsersAvailable
	}
	if c.selectedID == "" {
		return nil, common.ErrNoSelection
	}
	for _, u := range c.users {
		if u.ID == c.selectedID {
			return []models.User{u}, nil
		}
	}
	return nil, common.ErrNoSelection
}

// ComposeMessageForAll hands off everyone currently nearby.
func (c *Controller) ComposeMessageForAll() ([]models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.users) == 0 {
		return nil, common.ErrNoUsersAvailable
	}
	return slices.Clone(c.users), nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		RadiusMiles: c.radius,
		Users:       slices.Clone(c.users),
		Blips:       slices.Clone(c.blips),
		Loading:     c.loading,
		Updating:    c.inflight,
		Err:         c.err,
		RefreshedAt: c.refreshedAt,
	}
	if c.location != nil {
		loc := *c.location
		s.Location = &loc
	}
	for _, u := range c.users {
		if u.ID == c.selectedID {
			s.Selected = &u
			break
		}
	}
	return s
}

func (c *Controller) startTicker() {
	if c.refreshInterval <= 0 {
		return
	}
	c.ticker.Do(func() {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.wg.Add(1)
		c.mu.Unlock()

		go func() {
			defer c.wg.Done()
			t := time.NewTicker(c.refreshInterval)
			defer t.Stop()
			for {
				select {
				case <-c.base.Done():
					return
				case <-t.C:
					c.startSearch()
				}
			}
		}()
	})
}

// Wait blocks until the background work started so far has finished. With
// a refresh interval set it only returns after Close.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels background work and waits for it to stop.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.stop()
	c.wg.Wait()
}
