package data

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGameDB creates a SQLite game database populated by seed statements.
func newTestGameDB(t *testing.T, seed ...string) string {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "game.sqlite3")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, CreateGameSchema(ctx, db))
	for _, stmt := range seed {
		_, err := db.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}
	return path
}

func TestOpenReagentTable(t *testing.T) {
	path := newTestGameDB(t,
		`INSERT INTO open_portal_inland_reagents VALUES (1, 10, 8000, 1, 2), (2, 10, 8001, 3, 1), (3, 10, 8002, 1, 1)`,
		`INSERT INTO open_portal_outland_reagents VALUES (7, 11, 8100, 2, 0)`,
	)

	table, err := OpenReagentTable(context.Background(), path)
	require.NoError(t, err)

	inland := table.Costs(ReagentInland)
	require.Len(t, inland, 3)
	// priority ASC, then id ASC
	assert.Equal(t, []uint32{2, 3, 1}, []uint32{inland[0].ID, inland[1].ID, inland[2].ID})
	assert.Equal(t, ReagentCost{ID: 2, EffectID: 10, ItemID: 8001, Amount: 3, Priority: 1}, inland[0])

	outland := table.Costs(ReagentOutland)
	require.Len(t, outland, 1)
	assert.Equal(t, uint32(8100), outland[0].ItemID)
}

func TestOpenReagentTable_Fatal(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenReagentTable(ctx, filepath.Join(t.TempDir(), "nope.sqlite3"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrReagentSource))
	})

	t.Run("missing table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.sqlite3")
		db, err := sql.Open("sqlite", path)
		require.NoError(t, err)
		_, err = db.Exec(`CREATE TABLE unrelated (id INTEGER)`)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		_, err = OpenReagentTable(ctx, path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrReagentSource))
	})

	t.Run("non positive amount", func(t *testing.T) {
		path := newTestGameDB(t, `INSERT INTO open_portal_inland_reagents VALUES (1, 10, 8000, 0, 0)`)
		_, err := OpenReagentTable(ctx, path)
		assert.Error(t, err)
	})
}

func TestReagentTable_TryAfford_FirstSatisfiable(t *testing.T) {
	table, err := NewReagentTable([]ReagentCost{
		{ID: 1, ItemID: 1, Amount: 5, Priority: 0},
		{ID: 2, ItemID: 2, Amount: 3, Priority: 1},
		{ID: 3, ItemID: 3, Amount: 1, Priority: 2},
	}, nil)
	require.NoError(t, err)

	var attempts []uint32
	cost, ok := table.TryAfford(ReagentInland, func(itemID uint32, amount int32) bool {
		attempts = append(attempts, itemID)
		return itemID == 2
	})

	require.True(t, ok)
	assert.Equal(t, uint32(2), cost.ID)
	assert.Equal(t, []uint32{1, 2}, attempts, "entries after the paid one must not be attempted")
}

func TestReagentTable_TryAfford_NothingAffordable(t *testing.T) {
	table, err := NewReagentTable([]ReagentCost{
		{ID: 1, ItemID: 1, Amount: 5},
		{ID: 2, ItemID: 2, Amount: 3},
	}, nil)
	require.NoError(t, err)

	have := map[uint32]int32{1: 2, 2: 1}
	removed := 0
	_, ok := table.TryAfford(ReagentInland, func(itemID uint32, amount int32) bool {
		if have[itemID] < amount {
			return false
		}
		have[itemID] -= amount
		removed++
		return true
	})

	assert.False(t, ok)
	assert.Zero(t, removed)
	assert.Equal(t, map[uint32]int32{1: 2, 2: 1}, have)
}

func TestReagentTable_TryAfford_ClassSelection(t *testing.T) {
	table, err := NewReagentTable(
		[]ReagentCost{{ID: 1, ItemID: 100, Amount: 1}},
		[]ReagentCost{{ID: 1, ItemID: 200, Amount: 1}},
	)
	require.NoError(t, err)

	var seen []uint32
	pay := func(itemID uint32, _ int32) bool {
		seen = append(seen, itemID)
		return false
	}
	table.TryAfford(ReagentInland, pay)
	table.TryAfford(ReagentOutland, pay)

	assert.Equal(t, []uint32{100, 200}, seen)
}

func TestNewReagentTable_Duplicate(t *testing.T) {
	_, err := NewReagentTable([]ReagentCost{{ID: 1, Amount: 1}, {ID: 1, Amount: 2}}, nil)
	assert.Error(t, err)
}

func TestReagentClass_String(t *testing.T) {
	assert.Equal(t, "inland", ReagentInland.String())
	assert.Equal(t, "outland", ReagentOutland.String())
	assert.Equal(t, "unknown", ReagentClass(9).String())
}

func TestLoadFakeUseDefs(t *testing.T) {
	path := newTestGameDB(t,
		`INSERT INTO doodad_func_fake_uses VALUES (2, 0, 20580, 0), (1, 11245, 0, 1)`,
	)
	db, err := OpenGameDB(path)
	require.NoError(t, err)
	defer db.Close()

	defs, err := LoadFakeUseDefs(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, FakeUseDef{ID: 1, SkillID: 11245, TargetParent: true}, defs[0])
	assert.Equal(t, FakeUseDef{ID: 2, FakeSkillID: 20580}, defs[1])
}

func TestLoadDoodadFuncs(t *testing.T) {
	path := newTestGameDB(t,
		`INSERT INTO doodad_funcs VALUES (4120, 2), (4120, 1), (5000, 3)`,
	)
	db, err := OpenGameDB(path)
	require.NoError(t, err)
	defer db.Close()

	funcs, err := LoadDoodadFuncs(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, map[uint32][]uint32{4120: {1, 2}, 5000: {3}}, funcs)
}

func TestInitGameDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.sqlite3")
	require.NoError(t, InitGameDB(context.Background(), path))
	// idempotent
	require.NoError(t, InitGameDB(context.Background(), path))

	table, err := OpenReagentTable(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, table.Costs(ReagentInland))
}
