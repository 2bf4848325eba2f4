package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/inspector/internal/props"
	"go.uber.org/zap"
)

// DefaultReserved is the sweep variable key skipped by the renderer.
const DefaultReserved = "plot_x"

var ErrNoField = errors.New("form: no field bound to key")

var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Width(labelWidth)
	focusLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Width(labelWidth)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	inputStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("#FFB6C1"))
)

// Binding pairs a rendered field with the property key it edits. Bindings
// live for one render cycle.
type Binding struct {
	Key   string
	Field *Field
}

// Form renders a property store as labelled input rows and writes edits back.
type Form struct {
	// Reserved is never rendered; it holds the sweep variable.
	Reserved string

	slots  []*Binding
	byKey  map[string]*Binding
	rows   []*Binding
	cursor int
	logger *zap.Logger
}

func New(logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Form{
		Reserved: DefaultReserved,
		byKey:    make(map[string]*Binding),
		logger:   logger,
	}
}

// Load discards every previous binding and renders one row per property of
// st in insertion order. The reserved key and values of unknown kind get an
// empty slot and no row.
func (f *Form) Load(st *props.Store) {
	for _, b := range f.rows {
		b.Field.blur()
	}
	f.slots = make([]*Binding, 0, st.Len())
	f.rows = make([]*Binding, 0, st.Len())
	f.byKey = make(map[string]*Binding, st.Len())
	f.cursor = 0

	for _, p := range st.Properties() {
		if p.Name == f.Reserved {
			f.slots = append(f.slots, nil)
			continue
		}

		var field *Field
		switch p.Kind() {
		case props.KindInt, props.KindFloat, props.KindString:
			field = newTextField(p.Value)
		case props.KindBool:
			b, _ := p.Value.AsBool()
			field = newCheckbox(b)
		default:
			f.logger.Warn("unknown value", zap.String("key", p.Name), zap.Stringer("value", p.Value))
			f.slots = append(f.slots, nil)
			continue
		}

		b := &Binding{Key: p.Name, Field: field}
		f.slots = append(f.slots, b)
		f.rows = append(f.rows, b)
		f.byKey[p.Name] = b
	}

	if len(f.rows) > 0 {
		f.rows[0].Field.focus()
	}
}

// Slots returns one entry per store property at the last Load, nil where no
// field was rendered.
func (f *Form) Slots() []*Binding { return f.slots }

// Rows returns the rendered bindings in display order.
func (f *Form) Rows() []*Binding { return f.rows }

func (f *Form) Field(key string) (*Field, bool) {
	b, ok := f.byKey[key]
	if !ok {
		return nil, false
	}
	return b.Field, true
}

// Apply reads every bound field, converts it to the kind the field was
// rendered for and writes it into st. Unparsable input flags the field,
// stores the zero of that kind and makes the result false; the remaining
// fields are still visited.
func (f *Form) Apply(st *props.Store) bool {
	valid := true
	for _, p := range st.Properties() {
		b, ok := f.byKey[p.Name]
		if !ok {
			continue
		}
		field := b.Field
		f.logger.Debug("saving property", zap.String("key", p.Name), zap.Stringer("kind", field.kind))

		v, err := convert(field)
		if err != nil {
			field.invalid = true
			v = props.Zero(field.kind)
			valid = false
			f.logger.Info("invalid input", zap.String("key", p.Name), zap.String("text", field.Text()), zap.Error(err))
		} else {
			field.invalid = false
		}
		if err := st.Set(p.Name, v); err != nil {
			f.logger.Error("write back failed", zap.String("key", p.Name), zap.Error(err))
		}
	}
	return valid
}

func convert(field *Field) (props.Value, error) {
	text := field.Text()
	switch field.kind {
	case props.KindString:
		return props.String(text), nil
	case props.KindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return props.None(), err
		}
		return props.Int(n), nil
	case props.KindFloat:
		x, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return props.None(), err
		}
		return props.Float(x), nil
	case props.KindBool:
		return props.Bool(field.checked), nil
	}
	return props.None(), fmt.Errorf("form: unknown field kind %v", field.kind)
}

// SetText replaces the text of the field bound to key.
func (f *Form) SetText(key, text string) error {
	field, ok := f.Field(key)
	if !ok || field.IsCheckbox() {
		return fmt.Errorf("%w: %q", ErrNoField, key)
	}
	field.input.SetValue(text)
	return nil
}

func (f *Form) SetChecked(key string, checked bool) error {
	field, ok := f.Field(key)
	if !ok || !field.IsCheckbox() {
		return fmt.Errorf("%w: %q", ErrNoField, key)
	}
	field.checked = checked
	return nil
}

// Set routes a textual edit to the field bound to key; checkboxes accept
// strconv.ParseBool input.
func (f *Form) Set(key, text string) error {
	field, ok := f.Field(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoField, key)
	}
	if field.IsCheckbox() {
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return fmt.Errorf("form: %q: %w", key, err)
		}
		return f.SetChecked(key, b)
	}
	return f.SetText(key, text)
}

func (f *Form) Cursor() int { return f.cursor }

func (f *Form) Focused() (*Binding, bool) {
	if len(f.rows) == 0 {
		return nil, false
	}
	return f.rows[f.cursor], true
}

func (f *Form) Next() tea.Cmd { return f.move(1) }

func (f *Form) Prev() tea.Cmd { return f.move(-1) }

func (f *Form) move(delta int) tea.Cmd {
	if len(f.rows) == 0 {
		return nil
	}
	f.rows[f.cursor].Field.blur()
	f.cursor = (f.cursor + delta + len(f.rows)) % len(f.rows)
	return f.rows[f.cursor].Field.focus()
}

// Update forwards msg to the focused field. changed is true when the
// field's text or checked state differs afterwards.
func (f *Form) Update(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	b, ok := f.Focused()
	if !ok {
		return false, nil
	}
	return b.Field.update(msg)
}

func (f *Form) View() string {
	var sb strings.Builder
	for i, b := range f.rows {
		label := labelStyle.Render(b.Key)
		marker := "  "
		if i == f.cursor {
			label = focusLabel.Render(b.Key)
			marker = cursorStyle.Render("▸ ")
		}

		var control string
		if b.Field.IsCheckbox() {
			box := "[ ]"
			if b.Field.checked {
				box = "[x]"
			}
			control = inputStyle.Render(box)
		} else {
			switch {
			case b.Field.invalid && b.Field.focused():
				control = invalidStyle.Render(b.Field.input.View())
			case b.Field.invalid:
				control = invalidStyle.Render(b.Field.Text())
			default:
				control = b.Field.input.View()
			}
		}
		sb.WriteString(marker + label + control + "\n")
	}
	return sb.String()
}
