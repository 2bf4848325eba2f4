package form

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/inspector/internal/props"
)

const (
	labelWidth = 14
	inputWidth = 16
)

// Field is one rendered input control. Text fields back int, float and
// string properties; checkboxes back bool properties.
type Field struct {
	kind    props.Kind
	input   textinput.Model
	checked bool
	invalid bool
}

func newTextField(v props.Value) *Field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Width = inputWidth
	ti.CharLimit = 0
	ti.SetValue(v.String())
	ti.Blur()
	return &Field{kind: v.Kind(), input: ti}
}

func newCheckbox(checked bool) *Field {
	return &Field{kind: props.KindBool, checked: checked}
}

// Kind is the property kind the field was rendered for. It does not follow
// later retagging of the stored value.
func (f *Field) Kind() props.Kind { return f.kind }

func (f *Field) IsCheckbox() bool { return f.kind == props.KindBool }

func (f *Field) Text() string { return f.input.Value() }

func (f *Field) Checked() bool { return f.checked }

// Invalid reports whether the last apply flagged this field.
func (f *Field) Invalid() bool { return f.invalid }

func (f *Field) focus() tea.Cmd {
	if f.IsCheckbox() {
		return nil
	}
	return f.input.Focus()
}

func (f *Field) blur() {
	if !f.IsCheckbox() {
		f.input.Blur()
	}
}

func (f *Field) focused() bool {
	return !f.IsCheckbox() && f.input.Focused()
}

func (f *Field) update(msg tea.Msg) (bool, tea.Cmd) {
	if f.IsCheckbox() {
		if k, ok := msg.(tea.KeyMsg); ok && (k.String() == " " || k.String() == "x") {
			f.checked = !f.checked
			return true, nil
		}
		return false, nil
	}
	prev := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f.input.Value() != prev, cmd
}
