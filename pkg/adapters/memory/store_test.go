package memory_test

import (
	"context"
	"testing"

	"github.com/parleykit/parley/pkg/adapters/memory"
	"github.com/parleykit/parley/pkg/domain"
	"github.com/parleykit/parley/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, memory.NewStore())
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	session := domain.NewSession("intro")
	session.Vars["coins"] = 5
	require.NoError(t, store.Save(ctx, "s1", session))

	// Mutating the original after Save must not leak into the store.
	session.Vars["coins"] = 99
	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Vars["coins"])

	// Mutating a loaded copy must not leak either.
	loaded.Vars["coins"] = 42
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.Vars["coins"])
}

func TestMemoryStore_List(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "b", domain.NewSession("x")))
	require.NoError(t, store.Save(ctx, "a", domain.NewSession("y")))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)
}
