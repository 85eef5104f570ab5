package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Rrens/mindcare/internal/config"
	"github.com/Rrens/mindcare/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Integration(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	s, err := Open(ctx, config.MongoConfig{URI: uri, Database: "mindcare_test", Collection: "blobs"}, 5*time.Second)
	require.NoError(t, err)
	defer s.Close()

	key := "mindcare_settings"
	defer s.Remove(ctx, key)

	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Set(ctx, key, []byte(`{"model":"m"}`)))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"model":"m"}`, string(got))
}
