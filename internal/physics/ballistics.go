package physics

import (
	"github.com/san-kum/inspector/internal/driver"
	"github.com/san-kum/inspector/internal/props"
)

// Gravity is standard gravity in m/s².
const Gravity = 9.80665

// Trajectory returns the vertical drop, in metres, of a projectile fired
// horizontally at velocity once it has covered plot_x metres.
func Trajectory(a *driver.Args) (props.Value, error) {
	t := a.Div(a.Float("plot_x"), a.Float("velocity"))
	y := -Gravity * (t * t) / 2
	return props.Float(y), a.Err()
}

// KineticEnergy is ½mv², in kJ when kilo is set.
func KineticEnergy(a *driver.Args) (props.Value, error) {
	m := a.Float("mass")
	v := a.Float("velocity")
	e := 0.5 * m * v * v
	if a.Bool("kilo") {
		e /= 1000
	}
	return props.Float(e), a.Err()
}

func Ratio(a *driver.Args) (props.Value, error) {
	x := a.Float("x")
	return props.Float(a.Div(x, x)), a.Err()
}
