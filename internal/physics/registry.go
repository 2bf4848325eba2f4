package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/inspector/internal/driver"
	"github.com/san-kum/inspector/internal/props"
)

type Target struct {
	Name        string
	Description string
	Func        driver.Func
	// Defaults builds a fresh store of default arguments in display order.
	Defaults func() *props.Store
	Template string
	Plot     driver.PlotOptions
}

type Registry struct {
	targets map[string]Target
}

func NewRegistry() *Registry {
	r := &Registry{targets: make(map[string]Target)}

	r.Register(Target{
		Name:        "trajectory",
		Description: "projectile drop",
		Func:        Trajectory,
		Defaults:    pairs("velocity", 710.0, "distance", 100.0),
		Template:    "Drop is $result meters",
		Plot:        sweep(driver.Literal(0), driver.Ref("distance")),
	})
	r.Register(Target{
		Name:        "pendulum_period",
		Description: "small-angle period",
		Func:        PendulumPeriod,
		Defaults:    pairs("length", 1.0, "gravity", Gravity),
		Template:    "Period is $result s",
		Plot:        still(),
	})
	r.Register(Target{
		Name:        "pendulum_energy",
		Description: "pendulum energy",
		Func:        PendulumEnergy,
		Defaults:    pairs("mass", 1.0, "length", 1.0, "gravity", Gravity, "theta", 0.5, "omega", 0.0),
		Template:    "Energy is $result J",
		Plot:        still(),
	})
	r.Register(Target{
		Name:        "spring_energy",
		Description: "damped oscillator",
		Func:        SpringEnergy,
		Defaults:    pairs("mass", DefaultMass, "stiffness", DefaultStiffness, "damping", DefaultDamping, "pos", 1.0, "duration", 10.0),
		Template:    "Energy left is $result J",
		Plot:        sweep(driver.Literal(0), driver.Ref("duration")),
	})
	r.Register(Target{
		Name:        "kinetic_energy",
		Description: "½mv²",
		Func:        KineticEnergy,
		Defaults:    pairs("mass", 0.01, "velocity", 710.0, "kilo", false),
		Template:    "Energy is $result",
		Plot:        still(),
	})
	r.Register(Target{
		Name:        "ratio",
		Description: "x / x",
		Func:        Ratio,
		Defaults:    pairs("x", 1.0),
		Template:    "x / x = $result",
		Plot:        still(),
	})

	return r
}

func (r *Registry) Register(t Target) {
	r.targets[t.Name] = t
}

func (r *Registry) Get(name string) (Target, error) {
	t, ok := r.targets[name]
	if !ok {
		return Target{}, fmt.Errorf("unknown function: %s", name)
	}
	return t, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func pairs(kv ...any) func() *props.Store {
	return func() *props.Store {
		st, err := props.FromPairs(kv...)
		if err != nil {
			panic(err)
		}
		return st
	}
}

func sweep(lo, hi driver.Bound) driver.PlotOptions {
	return driver.PlotOptions{
		Enabled:    true,
		Variable:   driver.DefaultVariable,
		Min:        lo,
		Max:        hi,
		Samples:    driver.DefaultSamples,
		Resolution: driver.DefaultResolution,
	}
}

func still() driver.PlotOptions {
	p := sweep(driver.Literal(0), driver.Literal(5))
	p.Enabled = false
	return p
}
