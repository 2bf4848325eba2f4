package driver

import (
	"fmt"
	"sort"

	"github.com/san-kum/inspector/internal/props"
)

// Func is a target function. It reads named arguments from a and returns a
// primitive result.
type Func func(a *Args) (props.Value, error)

// Args is the keyword-argument view passed to a Func. Accessors never fail;
// the first problem is recorded and reported by Err.
type Args struct {
	values map[string]props.Value
	err    error
}

func NewArgs(values map[string]props.Value) *Args {
	return &Args{values: values}
}

func (a *Args) fail(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (a *Args) Err() error { return a.err }

func (a *Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

func (a *Args) Names() []string {
	names := make([]string, 0, len(a.values))
	for k := range a.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (a *Args) Value(name string) props.Value {
	v, ok := a.values[name]
	if !ok {
		a.fail(fmt.Errorf("%w: %q", ErrMissingArgument, name))
		return props.None()
	}
	return v
}

// Float accepts int and float arguments.
func (a *Args) Float(name string) float64 {
	v := a.Value(name)
	if !a.Has(name) {
		return 0
	}
	f, ok := v.Numeric()
	if !ok {
		a.fail(fmt.Errorf("%w: %q is %v", ErrWrongKind, name, v.Kind()))
	}
	return f
}

func (a *Args) Int(name string) int64 {
	v := a.Value(name)
	if !a.Has(name) {
		return 0
	}
	n, ok := v.AsInt()
	if !ok {
		a.fail(fmt.Errorf("%w: %q is %v", ErrWrongKind, name, v.Kind()))
	}
	return n
}

func (a *Args) Text(name string) string {
	v := a.Value(name)
	if !a.Has(name) {
		return ""
	}
	s, ok := v.AsString()
	if !ok {
		a.fail(fmt.Errorf("%w: %q is %v", ErrWrongKind, name, v.Kind()))
	}
	return s
}

func (a *Args) Bool(name string) bool {
	v := a.Value(name)
	if !a.Has(name) {
		return false
	}
	b, ok := v.AsBool()
	if !ok {
		a.fail(fmt.Errorf("%w: %q is %v", ErrWrongKind, name, v.Kind()))
	}
	return b
}

// Div returns num/den, recording ErrDivisionByZero and returning 0 when den
// is zero.
func (a *Args) Div(num, den float64) float64 {
	if den == 0 {
		a.fail(ErrDivisionByZero)
		return 0
	}
	return num / den
}
