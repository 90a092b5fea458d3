package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"pets-api/internal/domain/pets"
	"pets-api/internal/domain/traits"

	"github.com/cockroachdb/errors"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if strings.TrimSpace(p.Group.ID) == "" {
		return errors.New("pet group required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.Newf("pet %s already exists", p.ID)
	}
	r.byID[p.ID] = clonePet(p)
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.byID[p.ID] = clonePet(p)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *petRepo) List(ctx context.Context, filter pets.ListFilter) ([]pets.Pet, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if filter.Matches(p) {
			matched = append(matched, p)
		}
	}

	// Mismo orden que el storage SQL: created_at asc, id asc.
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	total := len(matched)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}

	out := make([]pets.Pet, 0, end-start)
	for _, p := range matched[start:end] {
		out = append(out, clonePet(p))
	}
	return out, total, nil
}

// clonePet evita que el caller comparta el slice de traits con el mapa interno.
func clonePet(p pets.Pet) pets.Pet {
	p.Traits = append([]traits.Trait(nil), p.Traits...)
	return p
}
