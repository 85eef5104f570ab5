package service

import (
	"context"

	"github.com/Rrens/mindcare/internal/domain"
)

// HistoryService exposes completed sessions
type HistoryService struct {
	repo domain.SessionRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(repo domain.SessionRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

func (s *HistoryService) List(ctx context.Context) ([]domain.Session, error) {
	return s.repo.LoadAll(ctx)
}

// Last returns domain.ErrNotFound when no session is stored
func (s *HistoryService) Last(ctx context.Context) (*domain.Session, error) {
	session, err := s.repo.LoadLast(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (s *HistoryService) Find(ctx context.Context, id int64) (*domain.Session, error) {
	return s.repo.FindByID(ctx, id)
}

// Clear deletes sessions and settings
func (s *HistoryService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
