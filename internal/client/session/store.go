// Package session persists the signed-in session in the client's local
// SQLite database.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/migrations"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/dmitrijs2005/nearbyconnect/internal/dbx"
	_ "modernc.org/sqlite"
)

const (
	keyToken   = "token"
	keyProfile = "profile"
)

type Store struct {
	db  *sql.DB
	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the clock used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (creating if needed) the SQLite file at path and migrates it.
// ":memory:" gives a throwaway store.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open local db: %w", err)
	}
	// sqlite serialises writers anyway; one connection keeps :memory: coherent
	db.SetMaxOpenConns(1)

	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate local db: %w", err)
	}
	return New(db, opts...), nil
}

// New wraps an already migrated database.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Save stores the token and the profile snapshot atomically.
func (s *Store) Save(ctx context.Context, sess *models.Session) error {
	if !sess.Valid() {
		return fmt.Errorf("%w: empty session", common.ErrValidation)
	}
	profile, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(sess.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyProfile, profile)
	})
}

// SaveProfile replaces only the stored profile snapshot.
func (s *Store) SaveProfile(ctx context.Context, user models.AccountUser) error {
	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return metadata.NewSQLiteRepository(s.db).Set(ctx, keyProfile, profile)
}

// Load returns the stored session. A missing or expired token yields
// common.ErrAuthRequired.
func (s *Store) Load(ctx context.Context) (*models.Session, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, common.ErrAuthRequired
	}

	sess := &models.Session{Token: string(token)}
	if sess.Expired(s.now()) {
		return nil, fmt.Errorf("%w: session expired", common.ErrAuthRequired)
	}

	profile, err := repo.Get(ctx, keyProfile)
	if err != nil {
		return nil, err
	}
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &sess.User); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
	}
	return sess, nil
}

// Clear forgets the session.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyProfile)
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
