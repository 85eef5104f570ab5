package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Rrens/mindcare/internal/config"
	"github.com/Rrens/mindcare/internal/domain"
	"github.com/Rrens/mindcare/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKeys = NewKeys("mindcare_")

func sampleSession(id int64, content string) *domain.Session {
	return &domain.Session{
		ID:        id,
		CreatedAt: time.UnixMilli(id).UTC(),
		Messages: []domain.Message{
			{Role: domain.RoleAssistant, Content: "Hello"},
			{Role: domain.RoleUser, Content: content},
		},
		Analysis: domain.SentimentResult{Label: domain.SentimentNeutral},
	}
}

func TestSessionRepository_AppendThenLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(memory.NewStore(), testKeys)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NotNil(t, all)

	last, err := repo.LoadLast(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	first := sampleSession(1000, "first")
	second := sampleSession(2000, "second")
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	all, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, *second, all[1])

	last, err = repo.LoadLast(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, last)
}

func TestSessionRepository_DuplicateIDsLastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(memory.NewStore(), testKeys)

	require.NoError(t, repo.Append(ctx, sampleSession(42, "older")))
	require.NoError(t, repo.Append(ctx, sampleSession(42, "newer")))

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := repo.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "newer", found.Messages[1].Content)

	_, err = repo.FindByID(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepository_CorruptDataFailsSoft(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Set(ctx, testKeys.Sessions, []byte("{not json")))

	repo := NewSessionRepository(store, testKeys)

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// Appending over corrupt data starts a fresh array
	require.NoError(t, repo.Append(ctx, sampleSession(1, "hi")))
	all, err = repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSessionRepository_ClearRemovesSessionsAndSettings(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	sessions := NewSessionRepository(store, testKeys)
	settings := NewSettingsRepository(store, testKeys, SettingsDefaults{Model: "default-model"})
	handoffs := NewHandoffRepository(store, testKeys)

	require.NoError(t, sessions.Append(ctx, sampleSession(1, "hi")))
	require.NoError(t, settings.Save(ctx, domain.Settings{APIKey: "k", Model: "m", Voice: domain.VoiceMale}))
	require.NoError(t, handoffs.Put(ctx, &domain.Handoff{}))

	require.NoError(t, sessions.Clear(ctx))

	all, err := sessions.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	s, err := settings.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default-model", s.Model)

	assert.NotNil(t, handoffs.Pending(ctx))
}

// slowStore delays reads like a remote backend round trip
type slowStore struct {
	*memory.Store
	delay time.Duration
}

func (s slowStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.Store.Get(ctx, key)
	time.Sleep(s.delay)
	return data, err
}

func TestSessionRepository_ConcurrentAppendsKeepEverySession(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(slowStore{Store: memory.NewStore(), delay: 2 * time.Millisecond}, testKeys)

	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 1; i <= writers; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			errs <- repo.Append(ctx, sampleSession(id, "concurrent"))
		}(int64(i))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	all, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, writers)

	seen := make(map[int64]bool, writers)
	for _, s := range all {
		seen[s.ID] = true
	}
	for i := int64(1); i <= writers; i++ {
		assert.True(t, seen[i], "session %d missing", i)
	}
}

type failingStore struct {
	*memory.Store
}

func (f failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func TestSessionRepository_BackendErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(failingStore{memory.NewStore()}, testKeys)

	_, err := repo.LoadAll(ctx)
	assert.Error(t, err)
	assert.Error(t, repo.Append(ctx, sampleSession(1, "hi")))
}

func TestSettingsRepository_Defaults(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewSettingsRepository(store, testKeys, SettingsDefaults{
		Model: "deepseek/deepseek-chat-v3.1:free",
	})

	s, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.Settings{
		Model: "deepseek/deepseek-chat-v3.1:free",
		Voice: domain.VoiceDefault,
	}, s)

	require.NoError(t, repo.Save(ctx, domain.Settings{Model: "openrouter/auto", Voice: domain.VoiceFemale}))
	s, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.APIKey)
	assert.Equal(t, "openrouter/auto", s.Model)
	assert.Equal(t, domain.VoiceFemale, s.Voice)

	require.NoError(t, repo.Save(ctx, domain.Settings{APIKey: "user-key", Model: "m"}))
	s, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-key", s.APIKey)
	assert.Equal(t, domain.VoiceDefault, s.Voice)
}

func TestSettingsRepository_CorruptFailsSoft(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Set(ctx, testKeys.Settings, []byte("[")))

	repo := NewSettingsRepository(store, testKeys, SettingsDefaults{Model: "m"})
	s, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "m", s.Model)
}

func TestHandoffRepository(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := NewHandoffRepository(store, testKeys)

	assert.Nil(t, repo.Pending(ctx))

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := &domain.Handoff{
		Values:    domain.QuestionnaireAnswer{"mood": "Neutral"},
		Scoring:   domain.PreSessionScore{AverageWellbeing: 0.5, DepressionRisk: 0.5, ComputedAt: now},
		StartedAt: now,
	}
	require.NoError(t, repo.Put(ctx, first))

	second := *first
	second.Scoring = domain.PreSessionScore{AverageWellbeing: 0.25, DepressionRisk: 0.75, ComputedAt: now}
	require.NoError(t, repo.Put(ctx, &second))

	got := repo.Pending(ctx)
	require.NotNil(t, got)
	assert.Equal(t, 0.75, got.Scoring.DepressionRisk)

	require.NoError(t, store.Set(ctx, testKeys.Presession, []byte("garbage")))
	assert.Nil(t, repo.Pending(ctx))
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.Storage.Backend = BackendMemory
	store, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	assert.NoError(t, store.Ping(ctx))

	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.SQLite.Path = t.TempDir() + "/mindcare.db"
	store, err = Open(ctx, cfg, nil)
	require.NoError(t, err)
	assert.NoError(t, store.Ping(ctx))
	assert.NoError(t, store.Close())

	cfg.Storage.Backend = "cassandra"
	_, err = Open(ctx, cfg, nil)
	assert.Error(t, err)
}
