package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerDoc = `
titles:
  start: greet
lines:
  greet:
    type: dialogue
    character: Guard
    text: "State your business."
    next_id: choices
  choices:
    type: response
    responses: [trade, fight]
  trade:
    type: dialogue
    text: "I come to trade."
    next_id: welcome
  fight:
    type: dialogue
    text: "Draw your sword!"
    next_id: ""
  welcome:
    type: dialogue
    character: Guard
    text: "Then enter."
    next_id: ""
`

func writePlayerDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(playerDoc), 0644))
	return path
}

func TestRunPlayer_WalksToEnd(t *testing.T) {
	out := new(bytes.Buffer)
	opts := PlayerOptions{
		ResourcePath: writePlayerDoc(t),
		Strict:       true,
	}

	err := RunPlayer(context.Background(), opts, strings.NewReader("1\n"), out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Guard: State your business.")
	assert.Contains(t, text, "1) I come to trade.")
	assert.Contains(t, text, "2) Draw your sword!")
	assert.Contains(t, text, "Guard: Then enter.")
	assert.Contains(t, text, "End of dialogue.")
}

func TestRunPlayer_RetriesBadChoice(t *testing.T) {
	out := new(bytes.Buffer)
	opts := PlayerOptions{ResourcePath: writePlayerDoc(t), Strict: true}

	err := RunPlayer(context.Background(), opts, strings.NewReader("nope\n7\n2\n"), out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "enter a number between 1 and 2")
	assert.Contains(t, out.String(), "Draw your sword!")
}

func TestRunPlayer_SingleSurvivorContinuesWithoutMenu(t *testing.T) {
	// "fight" is gated on angry, which the initial state sets false; the one
	// surviving option collapses into a continuation, so the player never
	// prompts even though the input stream is empty.
	const doc = `
titles:
  start: greet
lines:
  greet:
    type: dialogue
    character: Guard
    text: "State your business."
    next_id: choices
  choices:
    type: response
    responses: [trade, fight]
  trade:
    type: dialogue
    text: "I come to trade."
    next_id: welcome
  fight:
    type: dialogue
    text: "Draw your sword!"
    next_id: ""
    condition:
      lhs:
        kind: scalar
        tokens:
          - kind: value
            text: angry
  welcome:
    type: dialogue
    character: Guard
    text: "Then enter."
    next_id: ""
`
	path := filepath.Join(t.TempDir(), "gated.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	out := new(bytes.Buffer)
	opts := PlayerOptions{
		ResourcePath: path,
		StateJSON:    `{"angry": false}`,
		Strict:       true,
	}
	err := RunPlayer(context.Background(), opts, strings.NewReader(""), out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Guard: Then enter.")
	assert.Contains(t, text, "End of dialogue.")
	assert.NotContains(t, text, "> ", "no menu for a single collapsed option")
	assert.NotContains(t, text, "1)")
}

func TestRunPlayer_EOFOnMenu(t *testing.T) {
	opts := PlayerOptions{ResourcePath: writePlayerDoc(t), Strict: true}

	err := RunPlayer(context.Background(), opts, strings.NewReader(""), new(bytes.Buffer))
	assert.Error(t, err)
}

func TestRunPlayer_InitialState(t *testing.T) {
	const doc = `
lines:
  start:
    type: dialogue
    text: "Hello, {{name}}."
    replacements:
      - value_in_text: "{{name}}"
        value:
          kind: scalar
          tokens:
            - kind: value
              text: name
    next_id: ""
`
	path := filepath.Join(t.TempDir(), "named.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	out := new(bytes.Buffer)
	opts := PlayerOptions{
		ResourcePath: path,
		StateJSON:    `{"name": "Ada"}`,
		Strict:       true,
	}
	err := RunPlayer(context.Background(), opts, strings.NewReader(""), out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Hello, Ada.")
}

func TestRunPlayer_BadStateJSON(t *testing.T) {
	opts := PlayerOptions{ResourcePath: writePlayerDoc(t), StateJSON: "{broken"}
	err := RunPlayer(context.Background(), opts, strings.NewReader(""), new(bytes.Buffer))
	assert.Error(t, err)
}

func TestRunPlayer_ValidationFailure(t *testing.T) {
	const doc = `
lines:
  start:
    type: dialogue
    text: hi
    next_id: ghost
`
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	opts := PlayerOptions{ResourcePath: path, Validate: true}
	err := RunPlayer(context.Background(), opts, strings.NewReader(""), new(bytes.Buffer))
	assert.Error(t, err)
}
