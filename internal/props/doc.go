// Package props holds the typed, ordered property store that backs the
// inspector form.
//
// A [Store] maps parameter names to [Property] values in insertion order.
// Every [Value] is a tagged union over the primitive kinds a target function
// may declare as a default:
//
//   - [KindInt]: signed integers
//   - [KindFloat]: 64-bit floats
//   - [KindString]: free text
//   - [KindBool]: flags
//   - [KindNone]: an absent or unsupported value
//
// Writes through [Store.Set] re-derive the kind from the new value, so a
// float-typed property set to an integer becomes int-typed:
//
//	st := props.NewStore()
//	st.Add("velocity", props.Float(710))
//	st.Set("velocity", props.Int(3)) // st.Kind("velocity") == props.KindInt
package props
