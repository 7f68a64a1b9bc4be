package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleykit/parley/pkg/adapters/memory"
	"github.com/parleykit/parley/pkg/domain"
)

func testResource() *domain.Resource {
	return &domain.Resource{
		Titles: map[string]string{"start": "hello"},
		Lines: map[string]domain.Line{
			"hello": {Type: domain.TypeDialogue, Text: "Hi there.", NextID: "bye"},
			"bye":   {Type: domain.TypeDialogue, Text: "Goodbye.", NextID: ""},
		},
	}
}

func TestHandleNextLine(t *testing.T) {
	s := NewServer(testResource(), memory.NewStore(), "test")
	ctx := context.Background()

	result, err := s.handleNextLine(ctx, mcp.CallToolRequest{}, map[string]any{
		"session_id": "s1",
		"key":        "start",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Line)
	assert.Equal(t, "Hi there.", result.Line.Dialogue)
	assert.False(t, result.Finished)

	// Resume from the stored cursor.
	result, err = s.handleNextLine(ctx, mcp.CallToolRequest{}, map[string]any{
		"session_id": "s1",
	})
	require.NoError(t, err)
	require.NotNil(t, result.Line)
	assert.Equal(t, "Goodbye.", result.Line.Dialogue)

	result, err = s.handleNextLine(ctx, mcp.CallToolRequest{}, map[string]any{
		"session_id": "s1",
	})
	require.NoError(t, err)
	assert.Nil(t, result.Line)
	assert.True(t, result.Finished)
}

func TestHandleNextLine_MissingSessionID(t *testing.T) {
	s := NewServer(testResource(), memory.NewStore(), "test")

	_, err := s.handleNextLine(context.Background(), mcp.CallToolRequest{}, map[string]any{})
	assert.Error(t, err)
}

func TestHandleListTitles(t *testing.T) {
	s := NewServer(testResource(), memory.NewStore(), "test")

	result, err := s.handleListTitles(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"start"}, result.Titles)
}
