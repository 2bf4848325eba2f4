package form_test

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/inspector/internal/form"
	"github.com/san-kum/inspector/internal/props"
)

func keys(bindings []*form.Binding) []string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, b.Key)
	}
	return out
}

func typeRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var _ = Describe("Form", func() {
	var (
		st *props.Store
		f  *form.Form
	)

	BeforeEach(func() {
		var err error
		st, err = props.FromPairs(
			"velocity", 710.0,
			"shots", 3,
			"label", "rifle",
			"metric", true,
		)
		Expect(err).NotTo(HaveOccurred())
		f = form.New(nil)
		f.Load(st)
	})

	Describe("Load", func() {
		It("renders one row per property in insertion order", func() {
			Expect(keys(f.Rows())).To(Equal([]string{"velocity", "shots", "label", "metric"}))
			Expect(f.Slots()).To(HaveLen(4))
		})

		It("pre-fills long strings in full and applies them unchanged", func() {
			long := strings.Repeat("abcdefghij", 10)
			st.Add("notes", props.String(long))
			f.Load(st)

			notes, ok := f.Field("notes")
			Expect(ok).To(BeTrue())
			Expect(notes.Text()).To(Equal(long))

			Expect(f.Apply(st)).To(BeTrue())
			v, err := st.Get("notes")
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(props.String(long)))
		})

		It("picks the control by value kind", func() {
			velocity, _ := f.Field("velocity")
			Expect(velocity.IsCheckbox()).To(BeFalse())
			Expect(velocity.Text()).To(Equal("710.0"))

			label, _ := f.Field("label")
			Expect(label.Text()).To(Equal("rifle"))

			metric, _ := f.Field("metric")
			Expect(metric.IsCheckbox()).To(BeTrue())
			Expect(metric.Checked()).To(BeTrue())
		})

		It("skips the reserved sweep variable", func() {
			st.Add(form.DefaultReserved, props.Float(0))
			f.Load(st)

			Expect(f.Rows()).To(HaveLen(4))
			Expect(f.Slots()).To(HaveLen(5))
			Expect(f.Slots()[4]).To(BeNil())
			_, ok := f.Field(form.DefaultReserved)
			Expect(ok).To(BeFalse())
		})

		It("leaves values of unknown kind without a row", func() {
			st.Add("note", props.None())
			f.Load(st)

			Expect(keys(f.Rows())).NotTo(ContainElement("note"))
			Expect(f.Slots()[4]).To(BeNil())
		})

		It("rebuilds from scratch on every load", func() {
			next, _ := props.FromPairs("x", 1.0)
			old, _ := f.Field("velocity")
			f.Load(next)

			Expect(keys(f.Rows())).To(Equal([]string{"x"}))
			_, ok := f.Field("velocity")
			Expect(ok).To(BeFalse())
			Expect(old.Text()).To(Equal("710.0"))
		})
	})

	Describe("Apply", func() {
		It("flags unparsable float input and stores zero", func() {
			Expect(f.SetText("velocity", "abc")).To(Succeed())

			Expect(f.Apply(st)).To(BeFalse())

			field, _ := f.Field("velocity")
			Expect(field.Invalid()).To(BeTrue())
			v, _ := st.Get("velocity")
			n, ok := v.Numeric()
			Expect(ok).To(BeTrue())
			Expect(n).To(BeZero())
		})

		It("keeps visiting fields after a failure", func() {
			Expect(f.SetText("velocity", "abc")).To(Succeed())
			Expect(f.SetText("shots", "7")).To(Succeed())
			Expect(f.SetText("label", "pistol")).To(Succeed())

			Expect(f.Apply(st)).To(BeFalse())

			Expect(st.Get("shots")).To(Equal(props.Int(7)))
			Expect(st.Get("label")).To(Equal(props.String("pistol")))
		})

		It("rejects fractional text in an int field", func() {
			Expect(f.SetText("shots", "1.5")).To(Succeed())
			Expect(f.Apply(st)).To(BeFalse())
			Expect(st.Get("shots")).To(Equal(props.Int(0)))
		})

		It("clears flags once every field parses again", func() {
			Expect(f.SetText("velocity", "abc")).To(Succeed())
			Expect(f.Apply(st)).To(BeFalse())

			Expect(f.SetText("velocity", " 350.5 ")).To(Succeed())
			Expect(f.Apply(st)).To(BeTrue())

			field, _ := f.Field("velocity")
			Expect(field.Invalid()).To(BeFalse())
			Expect(st.Get("velocity")).To(Equal(props.Float(350.5)))
		})

		It("reads checkbox state for bool properties", func() {
			Expect(f.SetChecked("metric", false)).To(Succeed())
			Expect(f.Apply(st)).To(BeTrue())
			Expect(st.Get("metric")).To(Equal(props.Bool(false)))
		})

		It("parses with the kind the field was rendered for", func() {
			Expect(st.Set("velocity", props.Int(1))).To(Succeed())
			Expect(f.SetText("velocity", "2.5")).To(Succeed())

			Expect(f.Apply(st)).To(BeTrue())
			Expect(st.Get("velocity")).To(Equal(props.Float(2.5)))
		})

		It("ignores properties without a field", func() {
			st.Add(form.DefaultReserved, props.Float(12))
			Expect(f.Apply(st)).To(BeTrue())
			Expect(st.Get(form.DefaultReserved)).To(Equal(props.Float(12)))
		})
	})

	Describe("editing", func() {
		It("reports changes typed into the focused field", func() {
			changed, _ := f.Update(typeRunes("5"))
			Expect(changed).To(BeTrue())

			field, _ := f.Field("velocity")
			Expect(field.Text()).To(Equal("710.05"))
		})

		It("toggles a focused checkbox with space", func() {
			f.Next()
			f.Next()
			f.Next()
			b, ok := f.Focused()
			Expect(ok).To(BeTrue())
			Expect(b.Key).To(Equal("metric"))

			changed, _ := f.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			Expect(changed).To(BeTrue())
			Expect(b.Field.Checked()).To(BeFalse())
		})

		It("wraps focus in both directions", func() {
			f.Prev()
			Expect(f.Cursor()).To(Equal(3))
			f.Next()
			Expect(f.Cursor()).To(Equal(0))
		})

		It("routes textual edits by field kind", func() {
			Expect(f.Set("metric", "false")).To(Succeed())
			Expect(f.Set("shots", "9")).To(Succeed())
			Expect(f.Set("missing", "1")).To(MatchError(form.ErrNoField))
			Expect(f.Set("metric", "maybe")).NotTo(Succeed())
		})

		It("renders every row", func() {
			Expect(f.View()).To(ContainSubstring("velocity"))
			Expect(f.View()).To(ContainSubstring("[x]"))
		})
	})
})
