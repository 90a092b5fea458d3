package pets

import (
	"context"
	"strings"

	"pets-api/internal/domain/groups"
	"pets-api/internal/domain/traits"
	"pets-api/internal/platform/logger"

	"github.com/cockroachdb/errors"
)

// MatchPolicy define cómo se buscan Group/Trait existentes en el PATCH.
type MatchPolicy string

const (
	// MatchExact: igualdad case-insensitive de la key (mismo criterio que el alta).
	MatchExact MatchPolicy = "exact"
	// MatchContains: la key existente contiene la buscada; los traits nuevos se crean en minúsculas.
	// Es el comportamiento histórico del PATCH; se mantiene solo por compatibilidad.
	MatchContains MatchPolicy = "contains"
)

func ParseMatchPolicy(s string) MatchPolicy {
	if strings.EqualFold(strings.TrimSpace(s), string(MatchContains)) {
		return MatchContains
	}
	return MatchExact
}

// Path distingue el alta (POST) de la actualización parcial (PATCH).
type Path int

const (
	PathCreate Path = iota
	PathUpdate
)

type GroupInput struct {
	ScientificName string
}

type TraitInput struct {
	Name string
}

// Reconciler resuelve (busca o crea) los Group/Trait referenciados por un Pet.
// El alta de registros relacionados es un efecto buscado: el cliente nunca los crea antes.
type Reconciler struct {
	groups      groups.Repository
	traits      traits.Repository
	updateMatch MatchPolicy
	metrics     *Metrics
	log         logger.Logger
}

type ReconcilerOption func(*Reconciler)

func WithUpdateMatch(p MatchPolicy) ReconcilerOption {
	return func(r *Reconciler) { r.updateMatch = p }
}

func WithMetrics(m *Metrics) ReconcilerOption {
	return func(r *Reconciler) { r.metrics = m }
}

func WithReconcilerLogger(l logger.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		if l != nil {
			r.log = l
		}
	}
}

func NewReconciler(g groups.Repository, t traits.Repository, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		groups:      g,
		traits:      t,
		updateMatch: MatchExact,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reconciler) containsOn(path Path) bool {
	return path == PathUpdate && r.updateMatch == MatchContains
}

// ResolveGroup devuelve el Group existente que matchea el nombre o lo crea con el casing recibido.
func (r *Reconciler) ResolveGroup(ctx context.Context, in GroupInput, path Path) (groups.Group, error) {
	name := strings.TrimSpace(in.ScientificName)
	if name == "" {
		return groups.Group{}, ErrInvalidInput
	}

	if r.containsOn(path) {
		g, err := r.groups.FindFirstContaining(ctx, name)
		if err == nil {
			r.metrics.observe(kindGroup, false)
			return g, nil
		}
		if !errors.Is(err, groups.ErrNotFound) {
			return groups.Group{}, errors.Wrap(err, "find group")
		}
	}

	g, created, err := r.groups.GetOrCreate(ctx, name)
	if err != nil {
		return groups.Group{}, errors.Wrap(err, "get or create group")
	}
	r.metrics.observe(kindGroup, created)
	if created {
		r.log.Debug("group created", map[string]any{"group_id": g.ID, "scientific_name": g.ScientificName})
	}
	return g, nil
}

// ResolveTraits resuelve cada descriptor por separado y respeta el orden de entrada.
// No deduplica: si un nombre se repite, se resuelve dos veces (al mismo registro).
func (r *Reconciler) ResolveTraits(ctx context.Context, in []TraitInput, path Path) ([]traits.Trait, error) {
	out := make([]traits.Trait, 0, len(in))
	for _, ti := range in {
		t, err := r.resolveTrait(ctx, ti, path)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *Reconciler) resolveTrait(ctx context.Context, in TraitInput, path Path) (traits.Trait, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return traits.Trait{}, ErrInvalidInput
	}

	if r.containsOn(path) {
		t, err := r.traits.FindFirstContaining(ctx, name)
		if err == nil {
			r.metrics.observe(kindTrait, false)
			return t, nil
		}
		if !errors.Is(err, traits.ErrNotFound) {
			return traits.Trait{}, errors.Wrap(err, "find trait")
		}
		name = strings.ToLower(name)
	}

	t, created, err := r.traits.GetOrCreate(ctx, name)
	if err != nil {
		return traits.Trait{}, errors.Wrapf(err, "get or create trait %q", name)
	}
	r.metrics.observe(kindTrait, created)
	if created {
		r.log.Debug("trait created", map[string]any{"trait_id": t.ID, "name": t.Name})
	}
	return t, nil
}

// AttachToPet asigna el group (reemplaza el anterior) y deja el set de traits
// exactamente igual a ts: los que no vienen se desasocian. IDs repetidos se colapsan.
func AttachToPet(p *Pet, g groups.Group, ts []traits.Trait) {
	p.Group = g

	seen := make(map[string]struct{}, len(ts))
	set := make([]traits.Trait, 0, len(ts))
	for _, t := range ts {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		set = append(set, t)
	}
	p.Traits = set
}
