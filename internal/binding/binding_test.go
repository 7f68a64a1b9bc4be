package binding_test

import (
	"context"
	"testing"

	"github.com/parleykit/parley/internal/binding"
	"github.com/parleykit/parley/pkg/domain"
	"github.com/parleykit/parley/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Classification(t *testing.T) {
	b := binding.New(true)

	cases := []struct {
		name  string
		token any
		want  any
	}{
		{"passthrough int", 7, 7},
		{"passthrough float", 2.5, 2.5},
		{"passthrough bool", true, true},
		{"quoted literal", `"hello"`, "hello"},
		{"quoted number stays string", `"42"`, "42"},
		{"true word", "true", true},
		{"yes word", "YES", true},
		{"false word", "false", false},
		{"no word", "No", false},
		{"integer", "42", 42},
		{"negative integer", "-3", -3},
		{"float", "2.5", 2.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := b.Value(tc.token, binding.HintNone)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValue_ProviderOrder(t *testing.T) {
	first := state.NewMap(map[string]any{"score": 1})
	second := state.NewMap(map[string]any{"score": 2, "lives": 3})
	b := binding.New(true, first, second)

	got, err := b.Value("score", binding.HintNumber)
	require.NoError(t, err)
	assert.Equal(t, 1, got, "first provider wins")

	got, err = b.Value("lives", binding.HintNumber)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestValue_StrictUnknown(t *testing.T) {
	b := binding.New(true, state.NewMap(nil))

	_, err := b.Value("missing", binding.HintNumber)
	var unknown *domain.UnknownPropertyError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Property)
}

func TestValue_LenientDefaults(t *testing.T) {
	b := binding.New(false)

	got, err := b.Value("count", binding.HintNumber)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = b.Value("ratio.x", binding.HintNumber)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got, "fractional-looking token defaults to 0.0")

	got, err = b.Value("label", binding.HintString)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = b.Value("flag", binding.HintNone)
	require.NoError(t, err)
	assert.Equal(t, false, got)
}

func TestSetValue_ShadowAccumulates(t *testing.T) {
	b := binding.New(false)

	require.NoError(t, b.SetValue("coins", 5))

	got, err := b.Value("coins", binding.HintNumber)
	require.NoError(t, err)
	assert.Equal(t, 5, got, "shadow value survives subsequent reads")
}

func TestSetValue_DelegatesToOwner(t *testing.T) {
	owner := state.NewMap(map[string]any{"coins": 1})
	b := binding.New(true, owner)

	require.NoError(t, b.SetValue("coins", 9))

	v, err := owner.GetProperty("coins")
	require.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestSetValue_StrictUnknown(t *testing.T) {
	b := binding.New(true, state.NewMap(nil))

	err := b.SetValue("missing", 1)
	var unknown *domain.UnknownPropertyError
	assert.ErrorAs(t, err, &unknown)
}

func TestCall(t *testing.T) {
	m := state.NewMap(map[string]any{"bonus": 10})
	m.Bind("add", func(ctx context.Context, args []any) (any, error) {
		return args[0].(int) + args[1].(int), nil
	})
	b := binding.New(true, m)

	// Raw tokens: a literal and a variable name, both resolved before dispatch.
	got, err := b.Call(context.Background(), "add", []any{"2", "bonus"})
	require.NoError(t, err)
	assert.Equal(t, 12, got)
}

func TestCall_StrictUnknown(t *testing.T) {
	b := binding.New(true, state.NewMap(nil))

	_, err := b.Call(context.Background(), "vanish", nil)
	var unknown *domain.UnknownMethodError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "vanish", unknown.Method)
}

func TestCall_LenientUnknownReturnsFalse(t *testing.T) {
	b := binding.New(false)

	got, err := b.Call(context.Background(), "vanish", nil)
	require.NoError(t, err)
	assert.Equal(t, false, got)
}
