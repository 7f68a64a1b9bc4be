package file_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleykit/parley/pkg/adapters/file"
	"github.com/parleykit/parley/pkg/domain"
)

const yamlDoc = `
titles:
  start: welcome
lines:
  welcome:
    type: dialogue
    character: Guard
    text: "You have {{coins}} coins."
    replacements:
      - value_in_text: "{{coins}}"
        value:
          kind: scalar
          tokens:
            - kind: value
              text: coins
    next_id: gate
  gate:
    type: condition
    condition:
      lhs:
        kind: scalar
        tokens:
          - kind: value
            text: coins
      operator: ">"
      rhs:
        kind: scalar
        tokens:
          - kind: value
            text: "0"
    next_id: rich
    next_conditional_id: poor
  rich:
    type: dialogue
    text: Splendid.
    next_id: ""
  poor:
    type: dialogue
    text: Move along.
    next_id: ""
`

const jsonDoc = `{
  "titles": {"start": "hello"},
  "lines": {
    "hello": {"type": "dialogue", "text": "Hi.", "next_id": ""}
  }
}`

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_YAML(t *testing.T) {
	loader := file.NewLoader(writeDoc(t, "intro.yaml", yamlDoc))

	res, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "welcome", res.Titles["start"])
	require.Len(t, res.Lines, 4)

	welcome := res.Lines["welcome"]
	assert.Equal(t, domain.TypeDialogue, welcome.Type)
	assert.Equal(t, "Guard", welcome.Character)
	require.Len(t, welcome.Replacements, 1)
	assert.Equal(t, "{{coins}}", welcome.Replacements[0].ValueInText)
	assert.Equal(t, domain.SideScalar, welcome.Replacements[0].Value.Kind)

	gate := res.Lines["gate"]
	assert.Equal(t, domain.TypeCondition, gate.Type)
	require.NotNil(t, gate.Condition)
	assert.Equal(t, ">", gate.Condition.Operator)
	assert.Equal(t, "poor", gate.NextConditionalID)
	require.Len(t, gate.Condition.LHS.Tokens, 1)
	assert.Equal(t, domain.TokenValue, gate.Condition.LHS.Tokens[0].Kind)
	assert.Equal(t, "coins", gate.Condition.LHS.Tokens[0].Text)
}

func TestLoader_JSON(t *testing.T) {
	loader := file.NewLoader(writeDoc(t, "intro.json", jsonDoc))

	res, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "hello", res.Titles["start"])
	assert.Equal(t, "Hi.", res.Lines["hello"].Text)
}

func TestLoader_MissingFile(t *testing.T) {
	loader := file.NewLoader(filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := loader.Load()
	assert.Error(t, err)
}

func TestLoader_Malformed(t *testing.T) {
	loader := file.NewLoader(writeDoc(t, "bad.yaml", "lines: [not, a, map"))
	_, err := loader.Load()
	assert.Error(t, err)
}

func TestLoader_Validation(t *testing.T) {
	const dangling = `
lines:
  a:
    type: dialogue
    text: hi
    next_id: ghost
`
	path := writeDoc(t, "dangling.yaml", dangling)

	// Without validation the document loads.
	_, err := file.NewLoader(path).Load()
	require.NoError(t, err)

	// With validation the dangling reference fails the load.
	_, err = file.NewLoader(path, file.WithValidation()).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}
