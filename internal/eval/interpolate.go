package eval

import (
	"context"
	"strings"

	"github.com/parleykit/parley/internal/binding"
	"github.com/parleykit/parley/pkg/domain"
)

// Interpolate applies a dialogue line's replacements to its literal text,
// in document order. Each replacement substitutes only the first literal
// occurrence of its marker; a repeated marker needs a repeated entry.
func (e *Evaluator) Interpolate(ctx context.Context, text string, replacements []domain.Replacement) (string, error) {
	for i := range replacements {
		r := &replacements[i]
		v, err := e.sideValue(ctx, &r.Value, binding.HintNone)
		if err != nil {
			return "", err
		}
		text = strings.Replace(text, r.ValueInText, display(v), 1)
	}
	return text, nil
}
