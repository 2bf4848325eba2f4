package driver

import (
	"testing"

	"github.com/san-kum/inspector/internal/props"
	"github.com/stretchr/testify/assert"
)

func TestArgs_Accessors(t *testing.T) {
	a := NewArgs(map[string]props.Value{
		"n":    props.Int(3),
		"x":    props.Float(1.5),
		"name": props.String("rifle"),
		"on":   props.Bool(true),
	})

	assert.Equal(t, 3.0, a.Float("n"))
	assert.Equal(t, int64(3), a.Int("n"))
	assert.Equal(t, "rifle", a.Text("name"))
	assert.True(t, a.Bool("on"))
	assert.NoError(t, a.Err())
	assert.Equal(t, []string{"n", "name", "on", "x"}, a.Names())
}

func TestArgs_FirstErrorWins(t *testing.T) {
	a := NewArgs(map[string]props.Value{"x": props.Float(1.5)})

	a.Int("x")
	a.Float("missing")
	assert.ErrorIs(t, a.Err(), ErrWrongKind)
}

func TestArgs_Div(t *testing.T) {
	a := NewArgs(nil)
	assert.Equal(t, 2.0, a.Div(4, 2))
	assert.NoError(t, a.Err())

	assert.Zero(t, a.Div(1, 0))
	assert.ErrorIs(t, a.Err(), ErrDivisionByZero)
}
