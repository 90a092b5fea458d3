package sqlstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"pets-api/internal/domain/groups"
	"pets-api/internal/domain/pets"
	"pets-api/internal/domain/traits"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(SQLite, filepath.Join(t.TempDir(), "pets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(context.Background(), db, SQLite, nil))
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, Migrate(context.Background(), db, SQLite, nil))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("postgres")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	_, err = ParseDialect("mysql")
	require.Error(t, err)
}

func TestSplitStatements(t *testing.T) {
	ddl, err := schema(Postgres)
	require.NoError(t, err)

	stmts := splitStatements(ddl)
	require.NotEmpty(t, stmts)
	for _, s := range stmts {
		assert.NotContains(t, s, ";")
	}
}

func TestGroupsRepo_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewGroupsRepo(openSQLite(t))

	g1, created, err := repo.GetOrCreate(ctx, "Canis lupus")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Canis lupus", g1.ScientificName)

	g2, created, err := repo.GetOrCreate(ctx, "CANIS LUPUS")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, g1.ID, g2.ID)
	assert.Equal(t, "Canis lupus", g2.ScientificName)

	byID, err := repo.GetByID(ctx, g1.ID)
	require.NoError(t, err)
	assert.Equal(t, g1.ID, byID.ID)

	_, err = repo.FindByName(ctx, "Felis catus")
	require.ErrorIs(t, err, groups.ErrNotFound)

	_, _, err = repo.GetOrCreate(ctx, "  ")
	require.Error(t, err)
}

func TestGroupsRepo_GetOrCreate_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewGroupsRepo(openSQLite(t))

	const n = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ids     = map[string]struct{}{}
		creates int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, created, err := repo.GetOrCreate(ctx, "Felis catus")
			if err != nil {
				t.Errorf("GetOrCreate: %v", err)
				return
			}
			mu.Lock()
			ids[g.ID] = struct{}{}
			if created {
				creates++
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 1)
	assert.Equal(t, 1, creates)
}

func TestGroupsRepo_FindFirstContaining(t *testing.T) {
	ctx := context.Background()
	repo := NewGroupsRepo(openSQLite(t))

	tick := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { tick = tick.Add(time.Minute); return tick }

	older, _, err := repo.GetOrCreate(ctx, "Canis lupus")
	require.NoError(t, err)
	_, _, err = repo.GetOrCreate(ctx, "Canis lupus familiaris")
	require.NoError(t, err)
	_, _, err = repo.GetOrCreate(ctx, "Felis_catus")
	require.NoError(t, err)

	got, err := repo.FindFirstContaining(ctx, "LUPUS")
	require.NoError(t, err)
	assert.Equal(t, older.ID, got.ID)

	// "_" es literal, no comodín.
	_, err = repo.FindFirstContaining(ctx, "s_l")
	require.ErrorIs(t, err, groups.ErrNotFound)

	got, err = repo.FindFirstContaining(ctx, "s_c")
	require.NoError(t, err)
	assert.Equal(t, "Felis_catus", got.ScientificName)
}

func TestTraitsRepo_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewTraitsRepo(openSQLite(t))

	a, created, err := repo.GetOrCreate(ctx, "Loyal")
	require.NoError(t, err)
	require.True(t, created)

	b, created, err := repo.GetOrCreate(ctx, " loyal ")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, a.ID, b.ID)

	c, err := repo.FindFirstContaining(ctx, "oya")
	require.NoError(t, err)
	assert.Equal(t, a.ID, c.ID)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, traits.ErrNotFound)
}

// El INSERT no devuelve filas cuando otro request ya creó la key: se lee el existente.
func TestGroupsRepo_GetOrCreate_ConflictFallsBackToSelect(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO pet_groups")).
		WithArgs(sqlmock.AnyArg(), "Canis Lupus", "canis lupus", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "scientific_name", "created_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM pet_groups")).
		WithArgs("canis lupus").
		WillReturnRows(sqlmock.NewRows([]string{"id", "scientific_name", "created_at"}).
			AddRow("g-1", "Canis lupus", created))

	g, wasCreated, err := NewGroupsRepo(db).GetOrCreate(context.Background(), "Canis Lupus")
	require.NoError(t, err)
	assert.False(t, wasCreated)
	assert.Equal(t, "g-1", g.ID)
	assert.Equal(t, "Canis lupus", g.ScientificName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_UpdateRollsBackOnTraitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE pets")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM pet_traits")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pet_traits")).WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	err = NewPetsRepo(db, Postgres).Update(context.Background(), pets.Pet{
		ID:     "p-1",
		Name:   "Rex",
		Group:  groups.Group{ID: "g-1"},
		Traits: []traits.Trait{{ID: "t-1"}},
	})
	require.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

type seeded struct {
	repo  *PetsRepo
	dog   groups.Group
	cat   groups.Group
	loyal traits.Trait
	lazy  traits.Trait
}

func seedStore(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	db := openSQLite(t)

	gr := NewGroupsRepo(db)
	tr := NewTraitsRepo(db)

	var s seeded
	var err error
	s.dog, _, err = gr.GetOrCreate(ctx, "Canis lupus")
	require.NoError(t, err)
	s.cat, _, err = gr.GetOrCreate(ctx, "Felis catus")
	require.NoError(t, err)
	s.loyal, _, err = tr.GetOrCreate(ctx, "Loyal")
	require.NoError(t, err)
	s.lazy, _, err = tr.GetOrCreate(ctx, "Lazy")
	require.NoError(t, err)

	s.repo = NewPetsRepo(db, SQLite)
	return s
}

func TestPetsRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p := pets.Pet{
		ID:        "p-1",
		Name:      "Rex",
		Age:       3,
		Weight:    12.5,
		Sex:       pets.SexMale,
		Group:     s.dog,
		Traits:    []traits.Trait{s.loyal, s.lazy},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.repo.Create(ctx, p))

	got, err := s.repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)
	assert.Equal(t, 3, got.Age)
	assert.InDelta(t, 12.5, got.Weight, 1e-9)
	assert.Equal(t, pets.SexMale, got.Sex)
	assert.Equal(t, s.dog.ID, got.Group.ID)
	assert.Equal(t, "Canis lupus", got.Group.ScientificName)
	require.Len(t, got.Traits, 2)
	assert.Equal(t, "Loyal", got.Traits[0].Name)
	assert.Equal(t, "Lazy", got.Traits[1].Name)
	assert.True(t, got.CreatedAt.Equal(now))

	p.Group = s.cat
	p.Traits = []traits.Trait{s.lazy}
	p.UpdatedAt = now.Add(time.Hour)
	require.NoError(t, s.repo.Update(ctx, p))

	got, err = s.repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, s.cat.ID, got.Group.ID)
	require.Len(t, got.Traits, 1)
	assert.Equal(t, s.lazy.ID, got.Traits[0].ID)
	assert.True(t, got.UpdatedAt.Equal(now.Add(time.Hour)))

	p.Traits = nil
	require.NoError(t, s.repo.Update(ctx, p))
	got, err = s.repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Empty(t, got.Traits)

	require.NoError(t, s.repo.Delete(ctx, "p-1"))
	_, err = s.repo.GetByID(ctx, "p-1")
	require.ErrorIs(t, err, pets.ErrNotFound)
	require.ErrorIs(t, s.repo.Delete(ctx, "p-1"), pets.ErrNotFound)
	require.ErrorIs(t, s.repo.Update(ctx, p), pets.ErrNotFound)
}

func TestPetsRepo_List(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t)

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []pets.Pet{
		{ID: "p-1", Name: "Rex", Group: s.dog, Traits: []traits.Trait{s.loyal}},
		{ID: "p-2", Name: "Tom", Group: s.cat, Traits: []traits.Trait{s.lazy}},
		{ID: "p-3", Name: "Fido", Group: s.dog, Traits: []traits.Trait{s.lazy, s.loyal}},
		{ID: "p-4", Name: "Bolt", Group: s.dog},
	}
	for i, p := range seed {
		p.Sex = pets.SexNotInformed
		p.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		p.UpdatedAt = p.CreatedAt
		require.NoError(t, s.repo.Create(ctx, p))
	}

	ids := func(items []pets.Pet) []string {
		out := make([]string, 0, len(items))
		for _, p := range items {
			out = append(out, p.ID)
		}
		return out
	}

	tests := []struct {
		name      string
		filter    pets.ListFilter
		wantIDs   []string
		wantTotal int
	}{
		{name: "all", filter: pets.ListFilter{}, wantIDs: []string{"p-1", "p-2", "p-3", "p-4"}, wantTotal: 4},
		{name: "group", filter: pets.ListFilter{ScientificName: "canis lupus"}, wantIDs: []string{"p-1", "p-3", "p-4"}, wantTotal: 3},
		{name: "trait", filter: pets.ListFilter{Trait: "LAZY"}, wantIDs: []string{"p-2", "p-3"}, wantTotal: 2},
		{name: "both", filter: pets.ListFilter{ScientificName: "Canis Lupus", Trait: "lazy"}, wantIDs: []string{"p-3"}, wantTotal: 1},
		{name: "none", filter: pets.ListFilter{ScientificName: "felis catus", Trait: "loyal"}, wantIDs: []string{}, wantTotal: 0},
		{name: "page", filter: pets.ListFilter{Limit: 2, Offset: 2}, wantIDs: []string{"p-3", "p-4"}, wantTotal: 4},
		{name: "offset only", filter: pets.ListFilter{Offset: 3}, wantIDs: []string{"p-4"}, wantTotal: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := s.repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}

	// Los traits vienen hidratados y en orden de alta.
	all, _, err := s.repo.List(ctx, pets.ListFilter{ScientificName: "canis lupus", Trait: "lazy"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Traits, 2)
	assert.Equal(t, "Lazy", all[0].Traits[0].Name)
	assert.Equal(t, "Loyal", all[0].Traits[1].Name)
}

func TestListWhere(t *testing.T) {
	where, args := listWhere(pets.ListFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = listWhere(pets.ListFilter{ScientificName: "Canis Lupus", Trait: "Loyal"})
	assert.Contains(t, where, "g.name_key = $1")
	assert.Contains(t, where, "t.name_key = $2")
	assert.Equal(t, []any{"canis lupus", "loyal"}, args)
}
