package snapshot

import (
	"context"
	"sync"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

var _ model.AccountStore = (*AccountStore)(nil)

type AccountStore struct {
	mu      sync.Mutex
	storage model.Storage
	key     string
	logger  *logger.Logger
}

func NewAccountStore(storage model.Storage, key string, logger *logger.Logger) *AccountStore {
	return &AccountStore{
		storage: storage,
		key:     key,
		logger:  logger,
	}
}

func (s *AccountStore) Load(ctx context.Context) model.Accounts {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := model.Accounts{}
	if !read(ctx, s.storage, s.logger, s.key, &accounts) || accounts == nil {
		return model.Accounts{}
	}
	return accounts
}

func (s *AccountStore) Save(ctx context.Context, accounts model.Accounts) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if accounts == nil {
		accounts = model.Accounts{}
	}
	return write(ctx, s.storage, s.key, accounts)
}
