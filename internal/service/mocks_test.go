package service

import (
	"context"
	"sync"

	"github.com/Rrens/mindcare/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockChatCompleter mocks the ChatCompleter interface
type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) Complete(ctx context.Context, settings domain.Settings, systemPrompt string, messages []domain.Message) (string, error) {
	args := m.Called(ctx, settings, systemPrompt, messages)
	return args.String(0), args.Error(1)
}

// MockSpeechSink mocks the SpeechSink interface
type MockSpeechSink struct {
	mock.Mock
}

func (m *MockSpeechSink) Speak(text string, voice domain.Voice) {
	m.Called(text, voice)
}

// MockSessionAppender mocks the SessionAppender interface
type MockSessionAppender struct {
	mock.Mock
}

func (m *MockSessionAppender) Append(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

// MockHandoffReader mocks the HandoffReader interface
type MockHandoffReader struct {
	mock.Mock
}

func (m *MockHandoffReader) Pending(ctx context.Context) *domain.Handoff {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Handoff)
}

// MockSettingsRepository mocks the SettingsRepository interface
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockSessionRepository mocks the SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Append(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) LoadAll(ctx context.Context) ([]domain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Session), args.Error(1)
}

func (m *MockSessionRepository) LoadLast(ctx context.Context) (*domain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id int64) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockHandoffRepository mocks the HandoffRepository interface
type MockHandoffRepository struct {
	mock.Mock
}

func (m *MockHandoffRepository) Put(ctx context.Context, handoff *domain.Handoff) error {
	args := m.Called(ctx, handoff)
	return args.Error(0)
}

func (m *MockHandoffRepository) Pending(ctx context.Context) *domain.Handoff {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Handoff)
}

// MockRecommendationCache mocks the RecommendationCache interface
type MockRecommendationCache struct {
	mock.Mock
}

func (m *MockRecommendationCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockRecommendationCache) Set(ctx context.Context, key, tips string) error {
	args := m.Called(ctx, key, tips)
	return args.Error(0)
}

// recordingSink captures spoken text in order
type recordingSink struct {
	mu     sync.Mutex
	spoken []string
}

func (s *recordingSink) Speak(text string, voice domain.Voice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
}

func (s *recordingSink) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

// chanSource is a TranscriptSource backed by a channel
type chanSource chan TranscriptChunk

func (c chanSource) Chunks() <-chan TranscriptChunk {
	return c
}
