// Package driver wires a target function to an editable property form.
//
// An [Inspector] owns the property store, the rendered form and the validity
// flag for one function. Calculations follow a fixed cycle:
//
//	Idle → Validating → Invalid            (message: Error: Invalid inputs)
//	                  → Computing → Displaying → Idle
//
// In single mode the function is called once with the store as arguments and
// every "$result" in the template is replaced by the stringified result. In
// sweep mode one variable is stepped over [min, max) and the (x, y) pairs are
// plotted.
//
// Target functions read their arguments through [Args]:
//
//	func drop(a *driver.Args) (props.Value, error) {
//	    t := a.Div(a.Float("plot_x"), a.Float("velocity"))
//	    return props.Float(-9.80665 * t * t / 2), a.Err()
//	}
package driver
