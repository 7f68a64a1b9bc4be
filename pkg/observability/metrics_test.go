package observability_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleykit/parley/pkg/domain"
	"github.com/parleykit/parley/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	hooks := m.Hooks()

	ctx := context.Background()
	hooks.OnLine(ctx, &domain.LineEvent{Key: "a", Type: domain.TypeDialogue})
	hooks.OnLine(ctx, &domain.LineEvent{Key: "b", Type: domain.TypeDialogue})
	hooks.OnLine(ctx, &domain.LineEvent{Key: "c", Type: domain.TypeResponse})
	hooks.OnMutation(ctx, &domain.MutationEvent{Key: "m"})
	hooks.OnTraversal(ctx, &domain.TraversalEvent{Key: "a", Duration: 5 * time.Millisecond})

	expected := `
# HELP parley_lines_total Printable lines emitted, by line type.
# TYPE parley_lines_total counter
parley_lines_total{type="dialogue"} 2
parley_lines_total{type="response"} 1
# HELP parley_mutations_total Mutation side effects executed.
# TYPE parley_mutations_total counter
parley_mutations_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"parley_lines_total", "parley_mutations_total"))

	count, err := testutil.GatherAndCount(reg, "parley_traversal_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_ActiveGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	started, finished := m.Listeners()
	started()
	started()
	finished()

	expected := `
# HELP parley_active_dialogues Dialogues currently in flight.
# TYPE parley_active_dialogues gauge
parley_active_dialogues 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"parley_active_dialogues"))
}
