package driver

import (
	"fmt"

	"github.com/san-kum/inspector/internal/props"
)

// Bound is a sweep limit: a literal number or the name of a property read
// at calculation time.
type Bound struct {
	ref string
	lit float64
}

func Literal(v float64) Bound { return Bound{lit: v} }

func Ref(name string) Bound { return Bound{ref: name} }

func (b Bound) IsRef() bool { return b.ref != "" }

func (b Bound) Name() string { return b.ref }

func (b Bound) Resolve(st *props.Store) (float64, error) {
	if !b.IsRef() {
		return b.lit, nil
	}
	v, err := st.Get(b.ref)
	if err != nil {
		return 0, fmt.Errorf("driver: bound: %w", err)
	}
	f, ok := v.Numeric()
	if !ok {
		return 0, fmt.Errorf("%w: bound %q is %v", ErrNonNumeric, b.ref, v.Kind())
	}
	return f, nil
}

func (b Bound) String() string {
	if b.IsRef() {
		return b.ref
	}
	return props.FormatFloat(b.lit)
}
