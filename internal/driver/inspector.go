package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/san-kum/inspector/internal/form"
	"github.com/san-kum/inspector/internal/plot"
	"github.com/san-kum/inspector/internal/props"
	"go.uber.org/zap"
)

const (
	ResultToken       = "$result"
	DefaultVariable   = form.DefaultReserved
	DefaultSamples    = 20
	DefaultResolution = 100
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseInvalid
	PhaseComputing
	PhaseDisplaying
)

func (p Phase) String() string {
	switch p {
	case PhaseValidating:
		return "validating"
	case PhaseInvalid:
		return "invalid"
	case PhaseComputing:
		return "computing"
	case PhaseDisplaying:
		return "displaying"
	default:
		return "idle"
	}
}

type PlotOptions struct {
	Enabled  bool
	Variable string
	Min      Bound
	Max      Bound
	// Samples is the number of sweep points.
	Samples int
	// Resolution is shown to the user but does not drive the sweep loop,
	// which always takes Samples points.
	Resolution int
}

type Options struct {
	Template string
	Autosave bool
	Plot     PlotOptions
	// PlotPath is where sweeps write their image. Callers should not rely on
	// the file outliving the next sweep.
	PlotPath string
	Logger   *zap.Logger
	// OnPhase, when set, observes every phase transition.
	OnPhase func(Phase)
}

func DefaultPlotPath() string {
	return filepath.Join(os.TempDir(), "inspector", "figure.png")
}

func DefaultOptions() Options {
	return Options{
		Template: ResultToken,
		Autosave: true,
		Plot: PlotOptions{
			Variable:   DefaultVariable,
			Min:        Literal(0),
			Max:        Literal(5),
			Samples:    DefaultSamples,
			Resolution: DefaultResolution,
		},
		PlotPath: DefaultPlotPath(),
	}
}

// Outcome is what one Calculate call displays.
type Outcome struct {
	Message  string
	Result   props.Value
	Points   []plot.Point
	PlotPath string
	Err      error
}

// Inspector is the application state for one function and one form. It is
// driven from a single goroutine.
type Inspector struct {
	fn     Func
	opts   Options
	store  *props.Store
	form   *form.Form
	valid  bool
	phase  Phase
	last   Outcome
	closed bool
	logger *zap.Logger
}

// New registers fn with its default arguments and renders the form.
func New(fn Func, defaults *props.Store, opts Options) (*Inspector, error) {
	if fn == nil {
		return nil, errors.New("driver: nil function")
	}
	if defaults == nil {
		defaults = props.NewStore()
	}
	if opts.Template == "" {
		opts.Template = ResultToken
	}
	if opts.Plot.Variable == "" {
		opts.Plot.Variable = DefaultVariable
	}
	if opts.Plot.Samples <= 0 {
		if opts.Plot.Enabled {
			return nil, fmt.Errorf("driver: sample count must be positive, got %d", opts.Plot.Samples)
		}
		opts.Plot.Samples = DefaultSamples
	}
	if opts.Plot.Resolution <= 0 {
		opts.Plot.Resolution = DefaultResolution
	}
	if opts.PlotPath == "" {
		opts.PlotPath = DefaultPlotPath()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	in := &Inspector{
		fn:     fn,
		opts:   opts,
		form:   form.New(logger),
		valid:  true,
		logger: logger,
	}
	if opts.Plot.Enabled {
		in.form.Reserved = opts.Plot.Variable
	}
	in.LoadParams(defaults)
	return in, nil
}

// LoadParams replaces the whole store with a copy of st and rebuilds the
// form. In sweep mode the sweep variable is added when st lacks it.
func (in *Inspector) LoadParams(st *props.Store) {
	next := st.Clone()
	if in.opts.Plot.Enabled && !next.Has(in.opts.Plot.Variable) {
		x, err := in.opts.Plot.Min.Resolve(next)
		if err != nil {
			x = 0
		}
		next.Add(in.opts.Plot.Variable, props.Float(x))
	}
	in.store = next
	in.form.Load(next)
	in.valid = true
	in.logger.Debug("parameters loaded", zap.Strings("keys", next.Keys()))
}

func (in *Inspector) Store() *props.Store { return in.store }

func (in *Inspector) Form() *form.Form { return in.form }

func (in *Inspector) Options() Options { return in.opts }

func (in *Inspector) Valid() bool { return in.valid }

func (in *Inspector) Phase() Phase { return in.phase }

func (in *Inspector) Last() Outcome { return in.last }

// Apply writes every field back into the store and updates the validity
// flag.
func (in *Inspector) Apply() bool {
	in.valid = in.form.Apply(in.store)
	return in.valid
}

// Edited is called after a field changes. It applies when autosave is on
// and reports whether it did.
func (in *Inspector) Edited() bool {
	if !in.opts.Autosave {
		return false
	}
	in.Apply()
	return true
}

func (in *Inspector) setPhase(p Phase) {
	in.phase = p
	in.logger.Debug("phase", zap.Stringer("phase", p))
	if in.opts.OnPhase != nil {
		in.opts.OnPhase(p)
	}
}

// Calculate runs the function in single or sweep mode and returns what
// should be displayed. It never returns with a phase other than Idle.
func (in *Inspector) Calculate() Outcome {
	if in.closed {
		return Outcome{Message: "Error: inspector closed", Err: errors.New("driver: closed")}
	}

	in.setPhase(PhaseValidating)
	if !in.valid {
		in.setPhase(PhaseInvalid)
		in.last = Outcome{Message: MsgInvalidInputs, Err: ErrInvalidInputs}
		in.setPhase(PhaseIdle)
		return in.last
	}

	in.setPhase(PhaseComputing)
	var out Outcome
	if in.opts.Plot.Enabled {
		out = in.sweep()
	} else {
		out = in.single()
	}

	in.setPhase(PhaseDisplaying)
	in.last = out
	in.setPhase(PhaseIdle)
	return out
}

func (in *Inspector) single() Outcome {
	result, err := call(in.fn, NewArgs(in.store.Map()))
	if err != nil {
		return in.failed(err)
	}
	in.logger.Info("calculated", zap.Stringer("result", result))
	return Outcome{Message: Render(in.opts.Template, result), Result: result}
}

func (in *Inspector) sweep() Outcome {
	p := in.opts.Plot
	lo, err := p.Min.Resolve(in.store)
	if err != nil {
		return in.failed(err)
	}
	hi, err := p.Max.Resolve(in.store)
	if err != nil {
		return in.failed(err)
	}

	points, last, err := Sweep(in.fn, in.store.Map(), p.Variable, lo, hi, p.Samples)
	if err != nil {
		return in.failed(err)
	}

	out := Outcome{
		Message: Render(in.opts.Template, last),
		Result:  last,
		Points:  points,
	}
	if err := plot.WriteChart(in.opts.PlotPath, points, plot.Options{XName: p.Variable}); err != nil {
		in.logger.Warn("plot not written", zap.String("path", in.opts.PlotPath), zap.Error(err))
	} else {
		out.PlotPath = in.opts.PlotPath
	}
	in.logger.Info("swept",
		zap.String("variable", p.Variable),
		zap.Float64("min", lo),
		zap.Float64("max", hi),
		zap.Int("samples", p.Samples),
		zap.Stringer("last", last))
	return out
}

func (in *Inspector) failed(err error) Outcome {
	if errors.Is(err, ErrDivisionByZero) {
		return Outcome{Message: MsgDivisionByZero, Err: err}
	}
	in.logger.Warn("calculation failed", zap.Error(err))
	return Outcome{Message: "Error: " + err.Error(), Err: err}
}

// Close tears the inspector down. It is safe to call more than once.
func (in *Inspector) Close() error {
	if in.closed {
		return nil
	}
	in.closed = true
	in.form.Load(props.NewStore())
	_ = in.logger.Sync()
	return nil
}

// Sweep calls fn samples times with variable mapped linearly from
// [0, samples) onto [lo, hi). It returns the points and the last result.
func Sweep(fn Func, args map[string]props.Value, variable string, lo, hi float64, samples int) ([]plot.Point, props.Value, error) {
	if samples <= 0 {
		return nil, props.None(), fmt.Errorf("driver: sample count must be positive, got %d", samples)
	}
	params := make(map[string]props.Value, len(args)+1)
	for k, v := range args {
		params[k] = v
	}

	points := make([]plot.Point, 0, samples)
	var last props.Value
	for i := 0; i < samples; i++ {
		x := MapRange(float64(i), 0, float64(samples), lo, hi)
		params[variable] = props.Float(x)

		y, err := call(fn, NewArgs(params))
		if err != nil {
			return nil, props.None(), err
		}
		yf, ok := y.Numeric()
		if !ok {
			return nil, props.None(), fmt.Errorf("%w: result at %s=%s is %v", ErrNonNumeric, variable, props.FormatFloat(x), y.Kind())
		}
		points = append(points, plot.Point{X: x, Y: yf})
		last = y
	}
	return points, last, nil
}

// MapRange maps value from [a, b] onto [x, y].
func MapRange(value, a, b, x, y float64) float64 {
	return (value-a)/(b-a)*(y-x) + x
}

// Render substitutes every result token in template.
func Render(template string, result props.Value) string {
	return strings.ReplaceAll(template, ResultToken, result.String())
}

func call(fn Func, a *Args) (v props.Value, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if re, ok := r.(runtime.Error); ok && strings.Contains(re.Error(), "divide by zero") {
			v, err = props.None(), ErrDivisionByZero
			return
		}
		panic(r)
	}()

	v, err = fn(a)
	if err == nil {
		err = a.Err()
	}
	return v, err
}
