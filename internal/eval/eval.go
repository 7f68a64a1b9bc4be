// Package eval implements the expression side of the dialogue runtime:
// condition checks, mutation side effects, the token reducer, and text
// interpolation. All name resolution goes through the binding layer.
package eval

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/parleykit/parley/internal/binding"
	"github.com/parleykit/parley/pkg/domain"
)

// Reserved mutation function names handled by the evaluator itself rather
// than dispatched to a state provider.
const (
	funcWait  = "wait"
	funcDebug = "debug"
)

// Evaluator evaluates clauses and token expressions against a binder.
type Evaluator struct {
	binder *binding.Binder
	logger *slog.Logger
}

// New creates an evaluator. A nil logger is replaced with a discarding one.
func New(b *binding.Binder, logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Evaluator{binder: b, logger: logger}
}

// Check evaluates a condition clause to a boolean. A nil clause (or one
// with no left side) always passes; that is how "else" arms are encoded.
// Without an operator the truthiness of the left side decides.
func (e *Evaluator) Check(ctx context.Context, c *domain.Clause) (bool, error) {
	if c == nil || c.LHS == nil {
		return true, nil
	}

	lhs, err := e.sideValue(ctx, c.LHS, binding.HintNone)
	if err != nil {
		return false, err
	}

	if c.Operator == "" {
		return truthy(lhs), nil
	}

	rhs, err := e.sideValue(ctx, c.RHS, hintFor(lhs))
	if err != nil {
		return false, err
	}

	return compare(c.Operator, lhs, rhs), nil
}

// Mutate executes a mutation clause as a side effect. A nil clause is a
// no-op. A function-typed left side is invoked for its effect alone (wait
// and debug are handled in-process, anything else dispatches through the
// binder); a scalar left side names a property to assign or update.
func (e *Evaluator) Mutate(ctx context.Context, c *domain.Clause) error {
	if c == nil || c.LHS == nil {
		return nil
	}
	if c.LHS.Kind == domain.SideError {
		return &domain.ExportError{}
	}

	if c.LHS.Kind == domain.SideFunction {
		return e.mutateCall(ctx, c.LHS)
	}

	property, err := propertyName(c.LHS.Tokens)
	if err != nil {
		return err
	}
	if c.Operator == "" {
		return nil
	}

	value, err := e.sideValue(ctx, c.RHS, binding.HintNone)
	if err != nil {
		return err
	}

	if c.Operator == domain.OpAssign {
		return e.binder.SetValue(property, value)
	}

	// Read-modify-write: the rhs runtime type hints the coercion of the
	// current value (a lenient first read of an unknown numeric property
	// must default to a number, not false).
	current, err := e.binder.Value(property, hintFor(value))
	if err != nil {
		return err
	}
	updated, err := applyCompound(c.Operator, current, value)
	if err != nil {
		return err
	}
	return e.binder.SetValue(property, updated)
}

func (e *Evaluator) mutateCall(ctx context.Context, side *domain.ClauseSide) error {
	switch side.Name {
	case funcWait:
		return e.wait(ctx, side.Args)
	case funcDebug:
		return e.debug(side.Args)
	}

	args, err := e.rawArgs(side.Args)
	if err != nil {
		return err
	}
	_, err = e.binder.Call(ctx, side.Name, args)
	return err
}

// wait suspends mutation execution for the given number of seconds. It is
// cooperative: cancellation of ctx ends the wait early with ctx.Err().
func (e *Evaluator) wait(ctx context.Context, args []domain.TokenList) error {
	if len(args) == 0 {
		return nil
	}
	raw, err := e.rawArg(args[0])
	if err != nil {
		return err
	}
	v, err := e.binder.Value(raw, binding.HintNumber)
	if err != nil {
		return err
	}
	seconds, ok := toFloat(v)
	if !ok || seconds <= 0 {
		return nil
	}

	timer := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// debug logs a label -> value dump of its arguments and returns without
// suspending.
func (e *Evaluator) debug(args []domain.TokenList) error {
	attrs := make([]any, 0, len(args))
	for _, arg := range args {
		raw, err := e.rawArg(arg)
		if err != nil {
			return err
		}
		v, err := e.binder.Value(raw, binding.HintNone)
		if err != nil {
			return err
		}
		attrs = append(attrs, slog.Any(raw, v))
	}
	e.logger.Info("dialogue debug", attrs...)
	return nil
}

// sideValue evaluates one half of a clause: a function call result, or a
// scalar token expression resolved through the binder.
func (e *Evaluator) sideValue(ctx context.Context, side *domain.ClauseSide, hint string) (any, error) {
	if side == nil {
		return nil, nil
	}
	switch side.Kind {
	case domain.SideError:
		return nil, &domain.ExportError{}
	case domain.SideFunction:
		args, err := e.rawArgs(side.Args)
		if err != nil {
			return nil, err
		}
		return e.binder.Call(ctx, side.Name, args)
	default:
		return e.Resolve(side.Tokens, hint)
	}
}

// rawArgs reduces each argument expression to its raw token text. The
// binder resolves the texts at dispatch time, so argument resolution
// follows the same classification rules as any other token.
func (e *Evaluator) rawArgs(args []domain.TokenList) ([]any, error) {
	out := make([]any, len(args))
	for i, arg := range args {
		raw, err := e.rawArg(arg)
		if err != nil {
			return nil, err
		}
		out[i] = raw
	}
	return out, nil
}

func (e *Evaluator) rawArg(arg domain.TokenList) (string, error) {
	tok, err := e.reduce(arg, binding.HintNone)
	if err != nil {
		return "", err
	}
	return tok.Text, nil
}

// propertyName extracts the state-property name a scalar mutation side
// denotes.
func propertyName(tokens domain.TokenList) (string, error) {
	for _, t := range tokens {
		if t.Kind == domain.TokenValue {
			return t.Text, nil
		}
	}
	return "", fmt.Errorf("mutation has no assignable property")
}

// applyCompound combines the current property value with the resolved rhs
// for +=, -=, *= and /=.
func applyCompound(op string, current, value any) (any, error) {
	if op == domain.OpAddAssign {
		if isString(current) || isString(value) {
			return display(current) + display(value), nil
		}
	}

	cf, cok := toFloat(current)
	vf, vok := toFloat(value)
	if !cok || !vok {
		return nil, fmt.Errorf("cannot apply %s to %T and %T", op, current, value)
	}

	ci, cInt := current.(int)
	vi, vInt := value.(int)
	bothInt := cInt && vInt

	switch op {
	case domain.OpAddAssign:
		if bothInt {
			return ci + vi, nil
		}
		return cf + vf, nil
	case domain.OpSubtractAssign:
		if bothInt {
			return ci - vi, nil
		}
		return cf - vf, nil
	case domain.OpMultiplyAssign:
		if bothInt {
			return ci * vi, nil
		}
		return cf * vf, nil
	case domain.OpDivideAssign:
		if vf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		if bothInt {
			return ci / vi, nil
		}
		return cf / vf, nil
	}
	return nil, fmt.Errorf("unknown mutation operator: %s", op)
}

// compare applies a condition operator using native ordering semantics.
// Unknown operators evaluate to false.
func compare(op string, lhs, rhs any) bool {
	switch op {
	case domain.OpEqual, domain.OpAssign:
		return equal(lhs, rhs)
	case domain.OpNotEqual, "<>":
		return !equal(lhs, rhs)
	case domain.OpGreater:
		cmp, ok := order(lhs, rhs)
		return ok && cmp > 0
	case domain.OpGreaterEqual:
		cmp, ok := order(lhs, rhs)
		return ok && cmp >= 0
	case domain.OpLess:
		cmp, ok := order(lhs, rhs)
		return ok && cmp < 0
	case domain.OpLessEqual:
		cmp, ok := order(lhs, rhs)
		return ok && cmp <= 0
	case domain.OpIn:
		return member(lhs, rhs)
	}
	return false
}

func equal(lhs, rhs any) bool {
	lf, lok := toFloat(lhs)
	rf, rok := toFloat(rhs)
	if lok && rok {
		return lf == rf
	}
	return reflect.DeepEqual(lhs, rhs)
}

// order compares two values: numerically when both are numbers, lexically
// when both are strings. Anything else has no order.
func order(lhs, rhs any) (int, bool) {
	lf, lok := toFloat(lhs)
	rf, rok := toFloat(rhs)
	if lok && rok {
		switch {
		case lf < rf:
			return -1, true
		case lf > rf:
			return 1, true
		}
		return 0, true
	}

	ls, lok := lhs.(string)
	rs, rok := rhs.(string)
	if lok && rok {
		return strings.Compare(ls, rs), true
	}
	return 0, false
}

// member implements the "in" operator: element of a slice, key of a map,
// or substring of a string. Any other container kind is false.
func member(lhs, rhs any) bool {
	switch container := rhs.(type) {
	case string:
		return strings.Contains(container, display(lhs))
	case map[string]any:
		_, ok := container[display(lhs)]
		return ok
	case []any:
		for _, v := range container {
			if equal(lhs, v) {
				return true
			}
		}
		return false
	}

	rv := reflect.ValueOf(rhs)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if equal(lhs, rv.Index(i).Interface()) {
				return true
			}
		}
	case reflect.Map:
		for _, k := range rv.MapKeys() {
			if equal(lhs, k.Interface()) {
				return true
			}
		}
	}
	return false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	default:
		if f, ok := toFloat(v); ok {
			return f != 0
		}
		return true
	}
}

func hintFor(v any) string {
	switch v.(type) {
	case string:
		return binding.HintString
	case bool:
		return binding.HintBool
	case int, int64, float64:
		return binding.HintNumber
	}
	return binding.HintNone
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case float32:
		return float64(t), true
	}
	return 0, false
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}
