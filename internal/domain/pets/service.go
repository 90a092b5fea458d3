package pets

import (
	"context"
	"strings"
	"time"

	"pets-api/internal/platform/logger"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo       Repository
	reconciler *Reconciler
	log        logger.Logger
	now        func() time.Time
	newID      func() string
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(repo Repository, reconciler *Reconciler, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		reconciler: reconciler,
		log:        logger.Nop(),
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateInput struct {
	Name   string
	Age    int
	Weight float64
	Sex    Sex

	Group  GroupInput
	Traits []TraitInput
}

// Create resuelve group y traits (buscando o creando) y da de alta el pet con esas referencias.
func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Age < 0 || in.Weight < 0 {
		return Pet{}, ErrInvalidInput
	}
	sex := in.Sex
	if sex == "" {
		sex = SexNotInformed
	}
	if !sex.Valid() {
		return Pet{}, ErrInvalidInput
	}

	g, err := s.reconciler.ResolveGroup(ctx, in.Group, PathCreate)
	if err != nil {
		return Pet{}, err
	}
	ts, err := s.reconciler.ResolveTraits(ctx, in.Traits, PathCreate)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:        s.newID(),
		Name:      name,
		Age:       in.Age,
		Weight:    in.Weight,
		Sex:       sex,
		CreatedAt: now,
		UpdatedAt: now,
	}
	AttachToPet(&p, g, ts)

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, errors.Wrap(err, "create pet")
	}

	s.log.Info("pet created", map[string]any{
		"pet_id":   p.ID,
		"group_id": p.Group.ID,
		"traits":   len(p.Traits),
	})
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return err
	}
	s.log.Info("pet deleted", map[string]any{"pet_id": id})
	return nil
}

// UpdateInput es el PATCH tipado. Punteros: nil = no tocar.
// Traits != nil con slice vacío = dejar el pet sin traits.
type UpdateInput struct {
	Name   *string
	Age    *int
	Weight *float64
	Sex    *Sex

	Group  *GroupInput
	Traits *[]TraitInput
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.Weight != nil {
		if *in.Weight < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Weight = *in.Weight
	}
	if in.Sex != nil {
		if !in.Sex.Valid() {
			return Pet{}, ErrInvalidInput
		}
		p.Sex = *in.Sex
	}

	ts := p.Traits
	if in.Traits != nil {
		ts, err = s.reconciler.ResolveTraits(ctx, *in.Traits, PathUpdate)
		if err != nil {
			return Pet{}, err
		}
	}

	g := p.Group
	if in.Group != nil {
		g, err = s.reconciler.ResolveGroup(ctx, *in.Group, PathUpdate)
		if err != nil {
			return Pet{}, err
		}
	}

	AttachToPet(&p, g, ts)
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, errors.Wrap(err, "update pet")
	}
	return p, nil
}

// List aplica el filtro de consulta. Los parámetros se normalizan (trim + minúsculas);
// el storage compara por key, así que el casing guardado no importa.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Pet, int, error) {
	filter.ScientificName = strings.ToLower(strings.TrimSpace(filter.ScientificName))
	filter.Trait = strings.ToLower(strings.TrimSpace(filter.Trait))
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.List(ctx, filter)
}
