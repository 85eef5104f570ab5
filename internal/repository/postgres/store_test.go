package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Integration(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	ctx := context.Background()
	require.NoError(t, RunMigrations(dsn, "file://../../../migrations"))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	s := NewStore(&DB{Pool: pool})
	defer s.Close()

	key := "mindcare_test_presession"
	defer s.Remove(ctx, key)

	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Set(ctx, key, []byte(`{"a":1}`)))
	require.NoError(t, s.Set(ctx, key, []byte(`{"a":2}`)))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))
}
