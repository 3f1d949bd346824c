package snapshot

import (
	"context"
	"sync"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

var _ model.HistoryStore = (*HistoryStore)(nil)

// HistoryStore keeps every chat session in one document. Read-modify-write
// operations run under a single lock so concurrent saves do not drop
// sessions.
type HistoryStore struct {
	mu      sync.Mutex
	storage model.Storage
	key     string
	logger  *logger.Logger
}

func NewHistoryStore(storage model.Storage, key string, logger *logger.Logger) *HistoryStore {
	return &HistoryStore{
		storage: storage,
		key:     key,
		logger:  logger,
	}
}

func (s *HistoryStore) Load(ctx context.Context) model.History {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

func (s *HistoryStore) Save(ctx context.Context, history model.History) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return write(ctx, s.storage, s.key, history)
}

func (s *HistoryStore) SaveSession(ctx context.Context, name string, messages []model.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.load(ctx)
	history.Set(name, messages)
	return write(ctx, s.storage, s.key, history)
}

func (s *HistoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.load(ctx)
	if !history.Delete(name) {
		return nil
	}
	return write(ctx, s.storage, s.key, history)
}

func (s *HistoryStore) load(ctx context.Context) model.History {
	var history model.History
	if !read(ctx, s.storage, s.logger, s.key, &history) {
		return model.History{}
	}
	return history
}
