package partstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflyair/cargofit/internal/feasibility"
)

func setupTestStore(t *testing.T, path, owner string) *SQLiteStore {
	t.Helper()
	s, err := Open(path, owner)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.Close())
	})
	return s
}

func TestStore_SaveGetRoundTrip(t *testing.T) {
	s := setupTestStore(t, filepath.Join(t.TempDir(), "parts.db"), "pat")
	ctx := context.Background()

	item := feasibility.NewCargoItem("Fuel Pump", 12.5, 8, 6, 14.2)
	require.NoError(t, s.Save(ctx, item))

	got, err := s.Get(ctx, "fuel pump")
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestStore_UnknownDimensionsStayUnknown(t *testing.T) {
	s := setupTestStore(t, filepath.Join(t.TempDir(), "parts.db"), "pat")
	ctx := context.Background()

	item := feasibility.CargoItem{Name: "Crate", Length: feasibility.Known(30), Weight: feasibility.Known(0)}
	require.NoError(t, s.Save(ctx, item))

	got, err := s.Get(ctx, "Crate")
	require.NoError(t, err)
	assert.Equal(t, feasibility.Known(30), got.Length)
	assert.False(t, got.Width.IsKnown())
	assert.False(t, got.Height.IsKnown())
	assert.Equal(t, feasibility.Known(0), got.Weight, "zero is a value, not unknown")
}

func TestStore_SaveReplaces(t *testing.T) {
	s := setupTestStore(t, filepath.Join(t.TempDir(), "parts.db"), "pat")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, feasibility.NewCargoItem("Box", 1, 1, 1, 1)))
	require.NoError(t, s.Save(ctx, feasibility.NewCargoItem("box", 2, 2, 2, 2)))

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "box", items[0].Name)
	assert.Equal(t, feasibility.Known(2), items[0].Weight)
}

func TestStore_ListOrderedAndScoped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.db")
	pat := setupTestStore(t, path, "pat")
	sam := setupTestStore(t, path, "sam")
	ctx := context.Background()

	require.NoError(t, pat.Save(ctx, feasibility.NewCargoItem("Wheel", 20, 20, 10, 30)))
	require.NoError(t, pat.Save(ctx, feasibility.NewCargoItem("Actuator", 10, 5, 5, 8)))
	require.NoError(t, sam.Save(ctx, feasibility.NewCargoItem("Seat", 20, 20, 40, 25)))

	items, err := pat.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Actuator", items[0].Name)
	assert.Equal(t, "Wheel", items[1].Name)

	_, err = sam.Get(ctx, "Wheel")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	s := setupTestStore(t, filepath.Join(t.TempDir(), "parts.db"), "pat")
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, feasibility.NewCargoItem("Box", 1, 1, 1, 1)))
	require.NoError(t, s.Delete(ctx, "BOX"))

	_, err := s.Get(ctx, "Box")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "Box"), ErrNotFound)
}

func TestStore_Validation(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "parts.db"), "")
	assert.Error(t, err)

	s := setupTestStore(t, filepath.Join(t.TempDir(), "nested", "dir", "parts.db"), "pat")
	assert.Error(t, s.Save(context.Background(), feasibility.CargoItem{Name: "  "}))
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.db")
	ctx := context.Background()

	s, err := Open(path, "pat")
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, feasibility.NewCargoItem("Radio", 8, 6, 4, 5)))
	require.NoError(t, s.Close())

	reopened := setupTestStore(t, path, "pat")
	got, err := reopened.Get(ctx, "Radio")
	require.NoError(t, err)
	assert.Equal(t, feasibility.Known(5), got.Weight)
}
