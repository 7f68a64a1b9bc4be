// Package validator checks the structural integrity of a compiled dialogue
// resource before it is handed to the traversal engine.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/parleykit/parley/pkg/domain"
)

// Validate inspects every line and title of the resource and collects the
// broken references: next ids and condition else-arms pointing at missing
// keys, response entries naming missing lines, titles resolving nowhere,
// and titles landing directly on a response line. An empty next id is a
// legal terminator, never an error.
func Validate(res *domain.Resource) error {
	if res == nil {
		return fmt.Errorf("no resource to validate")
	}

	var problems []string

	titles := make([]string, 0, len(res.Titles))
	for title := range res.Titles {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	for _, title := range titles {
		target := res.Titles[title]
		line, ok := res.Lines[target]
		if !ok {
			problems = append(problems, fmt.Sprintf("title %q resolves to missing line %q", title, target))
			continue
		}
		if line.Type == domain.TypeResponse {
			problems = append(problems, fmt.Sprintf("title %q resolves to response line %q; responses are only reachable as successors", title, target))
		}
	}

	keys := make([]string, 0, len(res.Lines))
	for key := range res.Lines {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		line := res.Lines[key]

		check := func(field, target string) {
			if target == "" {
				return
			}
			if _, ok := res.Lines[target]; !ok {
				problems = append(problems, fmt.Sprintf("line %q: %s references missing line %q", key, field, target))
			}
		}

		check("next_id", line.NextID)
		if line.Type == domain.TypeCondition {
			check("next_conditional_id", line.NextConditionalID)
		}
		if line.Type == domain.TypeResponse && len(line.Responses) == 0 {
			problems = append(problems, fmt.Sprintf("line %q: response line with no options", key))
		}
		for _, option := range line.Responses {
			check("responses", option)
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("found %d problems:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return nil
}
