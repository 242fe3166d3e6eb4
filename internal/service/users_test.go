package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kartbay/kartbay/internal/hash"
)

func TestUserService_ListAndGet(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	auth := &AuthService{Repo: r, Hasher: hash.NewBcrypt(), JWTSecret: []byte("s"), TokenTTL: time.Hour}
	svc := &UserService{Repo: r}
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, _, err := auth.RegisterAdmin(ctx, RegisterAdminInput{Name: "U", Email: email, Password: "pw123456"})
		require.NoError(t, err)
	}

	users, pg, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.EqualValues(t, 3, pg.Total)
	assert.EqualValues(t, 2, pg.TotalPages)

	got, err := svc.Get(ctx, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, users[0].Email, got.Email)

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_Update(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	auth := &AuthService{Repo: r, Hasher: hash.NewBcrypt(), JWTSecret: []byte("s"), TokenTTL: time.Hour}
	svc := &UserService{Repo: r}
	ctx := context.Background()

	u1, _, err := auth.RegisterAdmin(ctx, RegisterAdminInput{Name: "One", Email: "one@example.com", Password: "pw123456"})
	require.NoError(t, err)
	_, _, err = auth.RegisterAdmin(ctx, RegisterAdminInput{Name: "Two", Email: "two@example.com", Password: "pw123456"})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(ctx, u1.ID, UpdateUserInput{Name: "Renamed", Role: "support", IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "support", updated.Role)
	assert.False(t, updated.IsActive)

	// Email must stay unique across admins.
	_, err = svc.Update(ctx, u1.ID, UpdateUserInput{Email: "two@example.com"})
	assert.ErrorIs(t, err, ErrConflict)
}
