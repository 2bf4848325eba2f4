package main

import (
	"testing"

	"github.com/san-kum/inspector/internal/config"
	"github.com/san-kum/inspector/internal/props"
)

func TestParseBound(t *testing.T) {
	tests := []struct {
		in   string
		want config.Bound
	}{
		{"100", config.Bound{Value: 100}},
		{"-2.5", config.Bound{Value: -2.5}},
		{"distance", config.Bound{Ref: "distance"}},
	}
	for _, tt := range tests {
		if got := parseBound(tt.in); got != tt.want {
			t.Errorf("parseBound(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDescribeParams(t *testing.T) {
	st, err := props.FromPairs("velocity", 710.0, "n", 3, "kilo", true)
	if err != nil {
		t.Fatal(err)
	}
	want := "velocity=710.0 n=3 kilo=True"
	if got := describeParams(st); got != want {
		t.Errorf("describeParams = %q, want %q", got, want)
	}
}
