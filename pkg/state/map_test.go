package state_test

import (
	"context"
	"testing"

	"github.com/parleykit/parley/pkg/ports"
	"github.com/parleykit/parley/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.StateProvider = (*state.Map)(nil)

func TestMap_Properties(t *testing.T) {
	m := state.NewMap(map[string]any{"coins": 5})

	assert.True(t, m.HasProperty("coins"))
	assert.False(t, m.HasProperty("gems"))

	v, err := m.GetProperty("coins")
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	_, err = m.GetProperty("gems")
	assert.Error(t, err)

	require.NoError(t, m.SetProperty("gems", 2))
	v, err = m.GetProperty("gems")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestMap_Methods(t *testing.T) {
	m := state.NewMap(nil)

	assert.False(t, m.HasMethod("greet"))
	_, err := m.CallMethod(context.Background(), "greet", nil)
	assert.Error(t, err)

	m.Bind("greet", func(ctx context.Context, args []any) (any, error) {
		return "hello " + args[0].(string), nil
	})

	assert.True(t, m.HasMethod("greet"))
	out, err := m.CallMethod(context.Background(), "greet", []any{"world"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", out)
}

func TestMap_Snapshot(t *testing.T) {
	m := state.NewMap(map[string]any{"a": 1})
	snap := m.Snapshot()
	snap["a"] = 99

	v, err := m.GetProperty("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v, "snapshot must be a copy")
}
