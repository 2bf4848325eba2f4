package physics

import (
	"errors"
	"math"

	"github.com/san-kum/inspector/internal/driver"
	"github.com/san-kum/inspector/internal/props"
)

// PendulumPeriod is the small-angle period 2π√(L/g).
func PendulumPeriod(a *driver.Args) (props.Value, error) {
	ratio := a.Div(a.Float("length"), a.Float("gravity"))
	if ratio < 0 {
		return props.None(), errors.New("physics: length and gravity must share a sign")
	}
	return props.Float(2 * math.Pi * math.Sqrt(ratio)), a.Err()
}

// PendulumEnergy is the total energy of a point-mass pendulum at angle
// theta with angular velocity omega.
func PendulumEnergy(a *driver.Args) (props.Value, error) {
	m := a.Float("mass")
	l := a.Float("length")
	g := a.Float("gravity")
	theta := a.Float("theta")
	omega := a.Float("omega")

	// KE = 0.5 * m * (L*omega)^2
	// PE = m * g * L * (1 - cos(theta))
	v := l * omega
	ke := 0.5 * m * v * v
	pe := m * g * l * (1 - math.Cos(theta))
	return props.Float(ke + pe), a.Err()
}
