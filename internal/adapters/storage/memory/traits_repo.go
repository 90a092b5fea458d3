package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"pets-api/internal/domain/traits"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

type traitRepo struct {
	mu    sync.RWMutex
	byID  map[string]traits.Trait
	byKey map[string]string
	now   func() time.Time
}

func NewTraitRepo() traits.Repository {
	return &traitRepo{
		byID:  make(map[string]traits.Trait),
		byKey: make(map[string]string),
		now:   time.Now,
	}
}

func (r *traitRepo) GetOrCreate(ctx context.Context, name string) (traits.Trait, bool, error) {
	name = strings.TrimSpace(name)
	key := traits.Key(name)
	if key == "" {
		return traits.Trait{}, false, errors.New("trait name required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byKey[key]; ok {
		return r.byID[id], false, nil
	}

	t := traits.Trait{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: r.now(),
	}
	r.byID[t.ID] = t
	r.byKey[key] = t.ID
	return t, true, nil
}

func (r *traitRepo) FindByName(ctx context.Context, name string) (traits.Trait, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[traits.Key(name)]
	if !ok {
		return traits.Trait{}, traits.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *traitRepo) FindFirstContaining(ctx context.Context, fragment string) (traits.Trait, error) {
	needle := traits.Key(fragment)

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]traits.Trait, 0)
	for key, id := range r.byKey {
		if strings.Contains(key, needle) {
			matches = append(matches, r.byID[id])
		}
	}
	if len(matches) == 0 {
		return traits.Trait{}, traits.ErrNotFound
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})
	return matches[0], nil
}

func (r *traitRepo) GetByID(ctx context.Context, id string) (traits.Trait, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return traits.Trait{}, traits.ErrNotFound
	}
	return t, nil
}
