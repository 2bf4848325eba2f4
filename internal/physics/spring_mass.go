package physics

import (
	"math"

	"github.com/san-kum/inspector/internal/driver"
	"github.com/san-kum/inspector/internal/props"
)

const (
	DefaultMass      = 1.0
	DefaultStiffness = 10.0
	DefaultDamping   = 0.5
)

// SpringEnergy is the mechanical energy left in a damped oscillator released
// from pos after plot_x seconds, using the underdamped envelope e^(-ct/m).
func SpringEnergy(a *driver.Args) (props.Value, error) {
	m := a.Float("mass")
	k := a.Float("stiffness")
	c := a.Float("damping")
	x := a.Float("pos")
	t := a.Float("plot_x")

	e0 := 0.5 * k * x * x
	decay := math.Exp(-a.Div(c, m) * t)
	return props.Float(e0 * decay), a.Err()
}
