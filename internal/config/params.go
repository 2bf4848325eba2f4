package config

import (
	"fmt"
	"strconv"

	"github.com/san-kum/inspector/internal/props"
	"gopkg.in/yaml.v3"
)

// Params is an ordered yaml mapping of parameter names to primitive values.
// The yaml tag of each scalar decides the property kind, so 710.0 is a float
// and 710 an int.
type Params struct {
	store *props.Store
}

func NewParams(st *props.Store) Params {
	return Params{store: st}
}

// MustParams builds Params from alternating name/value pairs.
func MustParams(kv ...any) Params {
	st, err := props.FromPairs(kv...)
	if err != nil {
		panic(err)
	}
	return Params{store: st}
}

func (p Params) Store() *props.Store {
	if p.store == nil {
		return props.NewStore()
	}
	return p.store.Clone()
}

func (p Params) Len() int {
	if p.store == nil {
		return 0
	}
	return p.store.Len()
}

// IsZero lets omitempty drop an empty mapping.
func (p Params) IsZero() bool { return p.Len() == 0 }

func (p Params) mergeInto(dst *props.Store) {
	if p.store == nil {
		return
	}
	for _, prop := range p.store.Properties() {
		dst.Add(prop.Name, prop.Value)
	}
}

func (p *Params) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: params must be a mapping", node.Line)
	}
	st := props.NewStore()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		v, err := scalarValue(val)
		if err != nil {
			return fmt.Errorf("line %d: param %q: %w", val.Line, key.Value, err)
		}
		st.Add(key.Value, v)
	}
	p.store = st
	return nil
}

func scalarValue(node *yaml.Node) (props.Value, error) {
	if node.Kind != yaml.ScalarNode {
		return props.None(), fmt.Errorf("%w: non-scalar value", props.ErrUnsupportedType)
	}
	switch node.ShortTag() {
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return props.None(), err
		}
		return props.Int(n), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return props.None(), err
		}
		return props.Float(f), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return props.None(), err
		}
		return props.Bool(b), nil
	case "!!null":
		return props.None(), nil
	case "!!str":
		return props.String(node.Value), nil
	}
	return props.None(), fmt.Errorf("%w: %s", props.ErrUnsupportedType, node.ShortTag())
}

func (p Params) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if p.store == nil {
		return node, nil
	}
	for _, prop := range p.store.Properties() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: prop.Name},
			scalarNode(prop.Value))
	}
	return node, nil
}

func scalarNode(v props.Value) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode}
	switch v.Kind() {
	case props.KindInt:
		n.Tag, n.Value = "!!int", v.String()
	case props.KindFloat:
		f, _ := v.AsFloat()
		n.Tag, n.Value = "!!float", floatText(f)
	case props.KindBool:
		b, _ := v.AsBool()
		n.Tag, n.Value = "!!bool", strconv.FormatBool(b)
	case props.KindString:
		n.Tag, n.Value = "!!str", v.String()
	default:
		n.Tag, n.Value = "!!null", "null"
	}
	return n
}

func floatText(f float64) string {
	switch s := props.FormatFloat(f); s {
	case "inf":
		return ".inf"
	case "-inf":
		return "-.inf"
	case "nan":
		return ".nan"
	default:
		return s
	}
}
