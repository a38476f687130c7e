package surface

import (
	"fmt"
	"math"
	"regexp"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/geodesic-lab/geotrace/internal/geometry"
)

// Formula is a surface defined by three textual coordinate expressions
// in u and v plus named parameter bindings. The expressions are compiled
// once to bytecode programs at construction; evaluation never executes
// user-supplied code paths beyond the compiled AST.
//
// The input dialect prefixes variables with '%' (e.g. "%r * cos(%u)")
// and uses '^' for exponentiation. The prefix is stripped before
// compilation; '^' is the expression engine's native power operator.
type Formula struct {
	exprX, exprY, exprZ string
	progX, progY, progZ *vm.Program
	base                map[string]any
	URange, VRange      [2]float64
}

var varPrefix = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)`)

// NewFormula compiles the three coordinate expressions against the given
// parameter bindings. Unknown identifiers and syntax errors are compile
// errors; evaluation failures at a point surface as the NaN sentinel.
func NewFormula(xExpr, yExpr, zExpr string, params map[string]float64) (*Formula, error) {
	f := &Formula{
		exprX:  xExpr,
		exprY:  yExpr,
		exprZ:  zExpr,
		base:   newEnv(params),
		URange: [2]float64{-1, 1},
		VRange: [2]float64{-1, 1},
	}

	var err error
	if f.progX, err = compile(xExpr, f.base); err != nil {
		return nil, fmt.Errorf("x expression: %w", err)
	}
	if f.progY, err = compile(yExpr, f.base); err != nil {
		return nil, fmt.Errorf("y expression: %w", err)
	}
	if f.progZ, err = compile(zExpr, f.base); err != nil {
		return nil, fmt.Errorf("z expression: %w", err)
	}
	return f, nil
}

// WithRanges sets the display-only parameter domain.
func (f *Formula) WithRanges(u0, u1, v0, v1 float64) *Formula {
	f.URange = [2]float64{u0, u1}
	f.VRange = [2]float64{v0, v1}
	return f
}

// At evaluates the three programs. Any evaluation failure yields the
// all-NaN sentinel position; it is never reported as an error.
func (f *Formula) At(u, v float64) geometry.Vec3 {
	env := make(map[string]any, len(f.base)+2)
	for k, val := range f.base {
		env[k] = val
	}
	env["u"] = u
	env["v"] = v

	x, okX := run(f.progX, env)
	y, okY := run(f.progY, env)
	z, okZ := run(f.progZ, env)
	if !okX || !okY || !okZ {
		return geometry.Invalid()
	}
	return geometry.Vec3{X: x, Y: y, Z: z}
}

func compile(src string, env map[string]any) (*vm.Program, error) {
	normalized := varPrefix.ReplaceAllString(src, "$1")
	return expr.Compile(normalized, expr.Env(env))
}

func run(p *vm.Program, env map[string]any) (float64, bool) {
	out, err := expr.Run(p, env)
	if err != nil {
		return 0, false
	}
	switch n := out.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// newEnv seeds the evaluation environment with the standard math names
// and the caller's parameter bindings. u and v are placeholders so the
// compiler sees them as floats.
func newEnv(params map[string]float64) map[string]any {
	env := map[string]any{
		"u":     0.0,
		"v":     0.0,
		"pi":    math.Pi,
		"e":     math.E,
		"sin":   math.Sin,
		"cos":   math.Cos,
		"tan":   math.Tan,
		"asin":  math.Asin,
		"acos":  math.Acos,
		"atan":  math.Atan,
		"atan2": math.Atan2,
		"sinh":  math.Sinh,
		"cosh":  math.Cosh,
		"tanh":  math.Tanh,
		"sqrt":  math.Sqrt,
		"exp":   math.Exp,
		"log":   math.Log,
		"abs":   math.Abs,
		"pow":   math.Pow,
	}
	for name, val := range params {
		env[name] = val
	}
	return env
}
