package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pets-api/internal/domain/groups"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type groupRepo struct {
	mu    sync.RWMutex
	byID  map[string]groups.Group
	byKey map[string]string // key -> id
	now   func() time.Time
}

func NewGroupRepo() groups.Repository {
	return &groupRepo{
		byID:  make(map[string]groups.Group),
		byKey: make(map[string]string),
		now:   time.Now,
	}
}

// GetOrCreate es atómico: búsqueda y alta ocurren bajo el mismo lock.
func (r *groupRepo) GetOrCreate(ctx context.Context, scientificName string) (groups.Group, bool, error) {
	name := strings.TrimSpace(scientificName)
	key := groups.Key(name)
	if key == "" {
		return groups.Group{}, false, errors.New("scientific name required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byKey[key]; ok {
		return r.byID[id], false, nil
	}

	g := groups.Group{
		ID:             uuid.NewString(),
		ScientificName: name,
		CreatedAt:      r.now(),
	}
	r.byID[g.ID] = g
	r.byKey[key] = g.ID
	return g, true, nil
}

func (r *groupRepo) FindByName(ctx context.Context, scientificName string) (groups.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[groups.Key(scientificName)]
	if !ok {
		return groups.Group{}, groups.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *groupRepo) FindFirstContaining(ctx context.Context, fragment string) (groups.Group, error) {
	needle := groups.Key(fragment)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]groups.Group, 0)
	for key, id := range r.byKey {
		if strings.Contains(key, needle) {
			matches = append(matches, r.byID[id])
		}
	}
	if len(matches) == 0 {
		return groups.Group{}, groups.ErrNotFound
	}

	// "first" = el más antiguo, como en el storage SQL.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	return matches[0], nil
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (groups.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return groups.Group{}, groups.ErrNotFound
	}
	return g, nil
}
