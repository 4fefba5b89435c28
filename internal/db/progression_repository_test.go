package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wolfkin/internal/data"
	"github.com/udisondev/wolfkin/internal/game/transform"
	"github.com/udisondev/wolfkin/internal/model"
)

func TestProgressionRepository_SaveLoad(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewProgressionRepository(pool, "digest-a")

	in := transform.Progression{
		Lineage:           model.LineagePack,
		Blooded:           true,
		FuryToggled:       true,
		CooldownRemaining: 1200,
		Levels:            map[string]int{"crinos": 3, "hispo": 1, "glabro": 0},
	}
	require.NoError(t, repo.Save(ctx, 42, in))

	out, err := repo.Load(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, in.Equal(*out), "got %+v", *out)
}

func TestProgressionRepository_SaveOverwrites(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewProgressionRepository(pool, "digest-a")

	require.NoError(t, repo.Save(ctx, 7, transform.Progression{
		Lineage: model.LineageGeneral,
		Levels:  map[string]int{"crinos": 1, "lupus": 2},
	}))
	require.NoError(t, repo.Save(ctx, 7, transform.Progression{
		Lineage:   model.LineageNone,
		Forbidden: true,
	}))

	out, err := repo.Load(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, model.LineageNone, out.Lineage)
	assert.True(t, out.Forbidden)
	assert.Empty(t, out.Levels, "stale form levels are removed")
}

func TestProgressionRepository_LoadMissing(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewProgressionRepository(pool, "digest-a")

	out, err := repo.Load(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProgressionRepository_Delete(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewProgressionRepository(pool, "digest-a")

	require.NoError(t, repo.Save(ctx, 5, transform.Progression{
		Lineage: model.LineageGeneral,
		Levels:  map[string]int{"crinos": 2},
	}))
	require.NoError(t, repo.Delete(ctx, 5))

	out, err := repo.Load(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, out)

	var levels int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM werewolf_form_levels`).Scan(&levels))
	assert.Zero(t, levels, "form levels cascade")
}

func TestProgressionRepository_SavePackAndLoadInto(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	cat, err := data.DefaultCatalog()
	require.NoError(t, err)
	repo := NewProgressionRepository(pool, cat.Digest())

	newController := func(id uint32) *transform.Controller {
		cr := model.NewCreature(id, "wolf", true, cat.Package)
		return transform.NewController(cat, transform.Deps{
			Pawn: cr,
			Sink: cr.Modifiers(),
			Mind: cr.Mind(),
		}, transform.DefaultOptions())
	}

	a, b := newController(1), newController(2)
	require.True(t, a.Grant(model.LineageGeneral))
	require.True(t, a.SetLevel("crinos", 4))
	require.True(t, b.Grant(model.LineageRestricted))

	n, err := repo.SavePack(ctx, []*transform.Controller{a, b, transform.NewController(cat, transform.Deps{}, transform.DefaultOptions())})
	require.NoError(t, err)
	assert.Equal(t, 2, n, "controllers without a pawn are skipped")

	fresh := newController(1)
	ok, err := repo.LoadInto(ctx, fresh)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, a.Progression().Equal(fresh.Progression()))
	assert.Equal(t, 4, fresh.State().Form("crinos").Level())

	stranger := newController(3)
	ok, err = repo.LoadInto(ctx, stranger)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, stranger.State().Eligible())
}
