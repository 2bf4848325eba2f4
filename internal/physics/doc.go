// Package physics provides example target functions for the inspector.
//
// Each function reads its arguments through [driver.Args] and is listed in a
// [Registry] together with its default arguments and result template:
//
//   - trajectory: projectile drop over a horizontal distance (sweep mode)
//   - pendulum_period: small-angle period of a simple pendulum
//   - pendulum_energy: kinetic plus potential energy of a swinging pendulum
//   - spring_energy: energy stored in a damped spring-mass oscillator
//   - kinetic_energy: translational kinetic energy, optionally in kJ
//   - ratio: x / x, which fails for x = 0
//
// Look a function up by name and hand it to the driver:
//
//	target, _ := physics.NewRegistry().Get("trajectory")
//	in, _ := driver.New(target.Func, target.Defaults(), opts)
package physics
