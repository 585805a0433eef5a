package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/nearbyconnect/internal/client/models"
	"github.com/dmitrijs2005/nearbyconnect/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s, err := Open(context.Background(), ":memory:", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func jwtExpiring(t *testing.T, at time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u1",
		"exp":     at.Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return tok
}

func TestLoad_EmptyIsAuthRequired(t *testing.T) {
	s := openMemory(t)

	_, err := s.Load(context.Background())
	require.ErrorIs(t, err, common.ErrAuthRequired)
}

func TestSaveLoadClear(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()
	want := &models.Session{
		Token: "opaque",
		User:  models.AccountUser{ID: "u1", Name: "Ann", Email: "ann@x.com", Phone: "555-0100"},
	}

	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, s.Clear(ctx))
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, common.ErrAuthRequired)
}

func TestSave_RejectsEmptySession(t *testing.T) {
	s := openMemory(t)
	assert.ErrorIs(t, s.Save(context.Background(), &models.Session{}), common.ErrValidation)
	assert.ErrorIs(t, s.Save(context.Background(), nil), common.ErrValidation)
}

func TestSaveProfile_KeepsToken(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &models.Session{Token: "t", User: models.AccountUser{ID: "u1", Name: "Old"}}))
	require.NoError(t, s.SaveProfile(ctx, models.AccountUser{ID: "u1", Name: "New"}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Token)
	assert.Equal(t, "New", got.User.Name)
}

func TestLoad_ExpiredJWTIsAuthRequired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := openMemory(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &models.Session{Token: jwtExpiring(t, now.Add(-time.Second))}))

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, common.ErrAuthRequired)
}

func TestLoad_LiveJWT(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := openMemory(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()
	tok := jwtExpiring(t, now.Add(time.Hour))

	require.NoError(t, s.Save(ctx, &models.Session{Token: tok}))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, tok, got.Token)
}

func TestSessionSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nearby.db")
	ctx := context.Background()

	s1, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, &models.Session{Token: "t", User: models.AccountUser{ID: "u1"}}))
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	got, err := s2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.User.ID)
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	require.Error(t, err)
}
