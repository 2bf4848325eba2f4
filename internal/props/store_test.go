package props

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStore_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		kind  Kind
	}{
		{"int", Int(42), KindInt},
		{"float", Float(710.0), KindFloat},
		{"string", String("metres"), KindString},
		{"bool", Bool(true), KindBool},
		{"none", None(), KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewStore()
			st.Add("p", tt.value)

			got, err := st.Get("p")
			if err != nil {
				t.Fatalf("get failed: %v", err)
			}
			if got != tt.value {
				t.Errorf("Get() = %v, want %v", got, tt.value)
			}
			if st.Kind("p") != tt.kind {
				t.Errorf("Kind() = %v, want %v", st.Kind("p"), tt.kind)
			}
		})
	}
}

func TestStore_SetRetags(t *testing.T) {
	st := NewStore()
	st.Add("velocity", Float(710.0))

	if err := st.Set("velocity", Int(3)); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if st.Kind("velocity") != KindInt {
		t.Errorf("expected kind int after int write, got %v", st.Kind("velocity"))
	}
	v, _ := st.Get("velocity")
	if n, ok := v.AsInt(); !ok || n != 3 {
		t.Errorf("expected 3, got %v", v)
	}

	if err := st.Set("velocity", String("fast")); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if st.Kind("velocity") != KindString {
		t.Errorf("expected kind string, got %v", st.Kind("velocity"))
	}
}

func TestStore_SetMissing(t *testing.T) {
	st := NewStore()
	if err := st.Set("nope", Int(1)); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestStore_Remove(t *testing.T) {
	st, err := FromPairs("a", 1, "b", 2.0, "c", "x")
	if err != nil {
		t.Fatalf("from pairs: %v", err)
	}

	if err := st.Remove("b"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, st.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := st.Get("c"); v != String("x") {
		t.Errorf("index not rebuilt after remove, got %v", v)
	}

	if err := st.Remove("b"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestStore_AddKeepsOrder(t *testing.T) {
	st := NewStore()
	st.Add("velocity", Float(710))
	st.Add("distance", Float(100))
	st.Add("velocity", Float(350))

	if diff := cmp.Diff([]string{"velocity", "distance"}, st.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := st.Get("velocity"); v != Float(350) {
		t.Errorf("overwrite lost, got %v", v)
	}
}

func TestStore_CloneIsIndependent(t *testing.T) {
	st, _ := FromPairs("x", 1.0)
	c := st.Clone()
	_ = c.Set("x", Float(2))

	if v, _ := st.Get("x"); v != Float(1) {
		t.Errorf("clone shares state: %v", v)
	}
}

func TestFromMap(t *testing.T) {
	m := map[string]Value{"b": Int(2), "a": Int(1)}
	st := FromMap([]string{"a", "b", "missing"}, m)
	if diff := cmp.Diff([]string{"a", "b"}, st.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestFromPairs_Errors(t *testing.T) {
	if _, err := FromPairs("a"); err == nil {
		t.Error("expected error for odd pairs")
	}
	if _, err := FromPairs(1, 2); err == nil {
		t.Error("expected error for non-string name")
	}
	if _, err := FromPairs("a", []int{1}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Float(710), "710.0"},
		{Float(-0.5), "-0.5"},
		{Float(1e20), "1e+20"},
		{Float(math.Inf(1)), "inf"},
		{Int(-3), "-3"},
		{Bool(false), "False"},
		{String("hi"), "hi"},
		{None(), "None"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("String(%#v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestValue_Numeric(t *testing.T) {
	if f, ok := Int(4).Numeric(); !ok || f != 4 {
		t.Errorf("int numeric = %v, %v", f, ok)
	}
	if _, ok := String("4").Numeric(); ok {
		t.Error("string should not be numeric")
	}
}

func TestZero(t *testing.T) {
	for _, k := range []Kind{KindInt, KindFloat, KindString, KindBool, KindNone} {
		if Zero(k).Kind() != k {
			t.Errorf("Zero(%v).Kind() = %v", k, Zero(k).Kind())
		}
	}
}

func TestOf_Unsigned(t *testing.T) {
	v, err := Of(uint(42))
	if err != nil || v != Int(42) {
		t.Errorf("Of(uint(42)) = %v, %v", v, err)
	}
	v, err = Of(uint64(math.MaxInt64))
	if err != nil || v != Int(math.MaxInt64) {
		t.Errorf("Of(max int64 as uint64) = %v, %v", v, err)
	}
	if _, err := Of(uint64(math.MaxUint64)); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected overflow to be rejected, got %v", err)
	}
}
