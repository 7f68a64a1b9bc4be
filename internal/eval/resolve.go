package eval

import (
	"fmt"
	"strconv"

	"github.com/parleykit/parley/internal/binding"
	"github.com/parleykit/parley/pkg/domain"
)

// Resolve reduces a flat token sequence to a single value. Reduction runs
// in three passes: nested groups first, then multiplication and division,
// then addition and subtraction, each left to right. The surviving token's
// text is resolved through the binder with the given hint.
func (e *Evaluator) Resolve(tokens domain.TokenList, hint string) (any, error) {
	tok, err := e.reduce(tokens, hint)
	if err != nil {
		return nil, err
	}
	return e.binder.Value(tok.Text, hint)
}

// reduce collapses a token sequence to a single value token without the
// final binder resolution, so callers that need the raw text (function
// arguments, string requoting) can keep it.
func (e *Evaluator) reduce(tokens domain.TokenList, hint string) (domain.Token, error) {
	if len(tokens) == 0 {
		return domain.Token{}, fmt.Errorf("empty expression")
	}

	// Pass 1: resolve nested groups in place.
	flat := make(domain.TokenList, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind != domain.TokenGroup {
			flat = append(flat, t)
			continue
		}
		inner, err := e.Resolve(t.Group, hint)
		if err != nil {
			return domain.Token{}, err
		}
		flat = append(flat, valueToken(inner))
	}

	// Pass 2 and 3: operator precedence as two left-to-right folds.
	flat, err := e.fold(flat, hint, "*", "/")
	if err != nil {
		return domain.Token{}, err
	}
	flat, err = e.fold(flat, hint, "+", "-")
	if err != nil {
		return domain.Token{}, err
	}

	if len(flat) != 1 {
		return domain.Token{}, fmt.Errorf("malformed expression: %d tokens remain after reduction", len(flat))
	}
	return flat[0], nil
}

// fold scans left to right, replacing every <value op value> triple whose
// operator matches with a single combined value token. Producing a new
// sequence per pass avoids the index surgery of splicing in place while
// keeping left-to-right chaining within the same precedence level.
func (e *Evaluator) fold(tokens domain.TokenList, hint string, ops ...string) (domain.TokenList, error) {
	out := make(domain.TokenList, 0, len(tokens))
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if t.Kind == domain.TokenOperator && matches(t.Text, ops) {
			if len(out) == 0 || i+1 >= len(tokens) {
				return nil, fmt.Errorf("operator %q is missing an operand", t.Text)
			}
			combined, err := e.combine(out[len(out)-1], t.Text, tokens[i+1], hint)
			if err != nil {
				return nil, err
			}
			out[len(out)-1] = combined
			i += 2
			continue
		}
		out = append(out, t)
		i++
	}
	return out, nil
}

// combine applies one arithmetic operator to two value tokens, resolving
// each operand through the binder first. String addition concatenates and
// re-wraps the result in quotes so a later resolution step still sees a
// string literal rather than a bare name.
func (e *Evaluator) combine(left domain.Token, op string, right domain.Token, hint string) (domain.Token, error) {
	lhs, err := e.binder.Value(left.Text, hint)
	if err != nil {
		return domain.Token{}, err
	}
	rhs, err := e.binder.Value(right.Text, hint)
	if err != nil {
		return domain.Token{}, err
	}

	if op == "+" && (isString(lhs) || isString(rhs) || binding.Quoted(left.Text) || binding.Quoted(right.Text)) {
		return valueToken(display(lhs) + display(rhs)), nil
	}

	lf, lok := toFloat(lhs)
	rf, rok := toFloat(rhs)
	if !lok || !rok {
		return domain.Token{}, fmt.Errorf("cannot apply %s to %T and %T", op, lhs, rhs)
	}

	li, lInt := lhs.(int)
	ri, rInt := rhs.(int)
	bothInt := lInt && rInt

	var result any
	switch op {
	case "*":
		if bothInt {
			result = li * ri
		} else {
			result = lf * rf
		}
	case "/":
		if rf == 0 {
			return domain.Token{}, fmt.Errorf("division by zero")
		}
		if bothInt {
			result = li / ri
		} else {
			result = lf / rf
		}
	case "+":
		if bothInt {
			result = li + ri
		} else {
			result = lf + rf
		}
	case "-":
		if bothInt {
			result = li - ri
		} else {
			result = lf - rf
		}
	default:
		return domain.Token{}, fmt.Errorf("unknown arithmetic operator: %s", op)
	}

	return valueToken(result), nil
}

// valueToken re-wraps a computed value as a token text the classifier will
// round-trip: strings are quoted, numbers and booleans print as literals.
// The quotes are plain wrappers, mirroring the classifier's strip; escaping
// would leave backslashes behind in values with embedded quotes.
func valueToken(v any) domain.Token {
	text := display(v)
	if isString(v) {
		text = `"` + text + `"`
	}
	return domain.Token{Kind: domain.TokenValue, Text: text}
}

// display renders a value for interpolation and token texts. Whole floats
// print without a decimal point.
func display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	}
	return fmt.Sprintf("%v", v)
}

func matches(op string, ops []string) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}
