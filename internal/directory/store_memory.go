package directory

import (
	"context"
	"sync"

	"workscope/internal/directory/models"
	id "workscope/pkg/domain"
)

// InMemoryStore keeps users in process, partitioned by workspace.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[id.WorkspaceID][]models.User
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{users: make(map[id.WorkspaceID][]models.User)}
}

// Put inserts or replaces a user in their workspace partition.
func (s *InMemoryStore) Put(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := s.users[u.WorkspaceID]
	for i := range users {
		if users[i].ID == u.ID {
			users[i] = u
			return nil
		}
	}
	s.users[u.WorkspaceID] = append(users, u)
	return nil
}

func (s *InMemoryStore) UsersByWorkspace(_ context.Context, ws id.WorkspaceID) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User{}, s.users[ws]...), nil
}
