package corelang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lumenlang/lumenc/internal/compiler/options"
)

// Artifacts is the output of a successful compilation: the generated
// JavaScript and the externs descriptor.
type Artifacts struct {
	Code    string
	Externs string
}

// Compile validates the parsed modules and generates JavaScript plus the
// externs descriptor. It is a pure function of its arguments: identical
// inputs produce byte-identical artifacts.
func Compile(opts options.Options, modules []*Module, prefixLines []string) (Artifacts, error) {
	byName := make(map[string]*Module, len(modules))
	for _, m := range modules {
		if _, dup := byName[m.Name]; dup {
			return Artifacts{}, fmt.Errorf("%w: %s", ErrDuplicateModule, m.Name)
		}
		byName[m.Name] = m
	}

	for _, m := range modules {
		if err := validateModule(m, byName); err != nil {
			return Artifacts{}, err
		}
	}

	sorted, err := sortModules(modules)
	if err != nil {
		return Artifacts{}, err
	}

	emitted := sorted
	if len(opts.Codegen.DCERoots) > 0 {
		retained := dceClosure(modules, opts.Codegen.DCERoots)
		emitted = filterModules(emitted, retained)
	}
	if len(opts.Codegen.CodegenModules) > 0 {
		restrict := map[string]bool{}
		for _, name := range opts.Codegen.CodegenModules {
			restrict[name] = true
		}
		emitted = filterModules(emitted, restrict)
	}

	// The entry module must survive the filtering above: an entry-point
	// call into a module eliminated by dead-code elimination or excluded
	// from codegen would throw at load time.
	if opts.EntryModule != "" {
		entry := findModule(emitted, opts.EntryModule)
		if entry == nil {
			return Artifacts{}, fmt.Errorf("%w: %s", ErrEntryModule, opts.EntryModule)
		}
		if _, ok := entry.Decl("main"); !ok {
			return Artifacts{}, fmt.Errorf("%w: %s", ErrEntryPointMissing, opts.EntryModule)
		}
	}

	if !opts.NoOpts {
		optimized := make([]*Module, len(emitted))
		for i, m := range emitted {
			optimized[i] = inlineLiterals(m)
		}
		emitted = optimized
	}

	g := &generator{ns: opts.Codegen.BrowserNamespace, opts: opts}
	code := g.program(emitted, prefixLines)

	return Artifacts{Code: code, Externs: externs(emitted)}, nil
}

// validateModule checks every reference in m: qualified references must
// name a known module and declaration, plain references a declaration of m
// or a lambda parameter in scope.
func validateModule(m *Module, byName map[string]*Module) error {
	local := map[string]bool{}
	for _, d := range m.Decls {
		local[d.Name] = true
	}

	var walk func(e Expr, params map[string]bool) error
	walk = func(e Expr, params map[string]bool) error {
		switch e := e.(type) {
		case *Ref:
			if !local[e.Name] && !params[e.Name] {
				return fmt.Errorf("%w: %s in module %s", ErrUnknownIdent, e.Name, m.Name)
			}
		case *QualRef:
			target, ok := byName[e.Module]
			if !ok {
				return fmt.Errorf("%w: %s (referenced from %s)", ErrUnknownModule, e.Module, m.Name)
			}
			if _, ok := target.Decl(e.Name); !ok {
				return fmt.Errorf("%w: %s.%s (referenced from %s)", ErrUnknownIdent, e.Module, e.Name, m.Name)
			}
		case *Lambda:
			inner := map[string]bool{e.Param: true}
			for k := range params {
				inner[k] = true
			}
			return walk(e.Body, inner)
		case *Apply:
			if err := walk(e.Fn, params); err != nil {
				return err
			}
			return walk(e.Arg, params)
		case *Do:
			for _, step := range e.Steps {
				if err := walk(step, params); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, d := range m.Decls {
		if err := walk(d.Body, map[string]bool{}); err != nil {
			return err
		}
	}
	return nil
}

func findModule(modules []*Module, name string) *Module {
	for _, m := range modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

func filterModules(modules []*Module, keep map[string]bool) []*Module {
	out := make([]*Module, 0, len(modules))
	for _, m := range modules {
		if keep[m.Name] {
			out = append(out, m)
		}
	}
	return out
}

type generator struct {
	ns       string
	opts     options.Options
	usesBind bool
}

// program assembles the full output file: prefix comments, the namespace
// preamble, the bind helper when needed, module bodies in dependency
// order, and the entry-point invocation.
func (g *generator) program(modules []*Module, prefixLines []string) string {
	bodies := make([]string, len(modules))
	for i, m := range modules {
		bodies[i] = g.module(m)
	}

	var sb strings.Builder
	for _, line := range prefixLines {
		sb.WriteString("// ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "var %s = %s || {};\n", g.ns, g.ns)
	if g.usesBind {
		sb.WriteString("var __bind = function (eff, next) { return function () { eff(); return next()(); }; };\n")
	}
	for _, body := range bodies {
		sb.WriteString(body)
	}
	if g.opts.EntryModule != "" {
		fmt.Fprintf(&sb, "%s[%q].main();\n", g.ns, g.opts.EntryModule)
	}
	return sb.String()
}

func (g *generator) module(m *Module) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s[%q] = (function () {\n", g.ns, m.Name)
	for _, d := range m.Decls {
		sb.WriteString(g.decl(m, d))
	}
	sb.WriteString("  return {")
	for i, d := range m.Decls {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q: %s", d.Name, d.Name)
	}
	sb.WriteString("};\n")
	sb.WriteString("})();\n")
	return sb.String()
}

// decl emits one declaration, applying tail-call optimization to directly
// self-recursive single-parameter bindings unless disabled.
func (g *generator) decl(m *Module, d Decl) string {
	if !g.opts.NoTCO {
		if lam, ok := d.Body.(*Lambda); ok {
			if arg, ok := selfTailCall(d.Name, lam); ok {
				return fmt.Sprintf("  var %s = function (%s) { while (true) { %s = %s; } };\n",
					d.Name, lam.Param, lam.Param, g.expr(arg))
			}
		}
	}
	return fmt.Sprintf("  var %s = %s;\n", d.Name, g.expr(d.Body))
}

// selfTailCall reports whether the lambda body is exactly a saturated
// recursive call to the enclosing declaration, returning the argument.
func selfTailCall(name string, lam *Lambda) (Expr, bool) {
	app, ok := lam.Body.(*Apply)
	if !ok {
		return nil, false
	}
	ref, ok := app.Fn.(*Ref)
	if !ok || ref.Name != name {
		return nil, false
	}
	return app.Arg, true
}

func (g *generator) expr(e Expr) string {
	switch e := e.(type) {
	case *IntLit:
		return strconv.FormatInt(e.Value, 10)
	case *StrLit:
		return strconv.Quote(e.Value)
	case *Ref:
		return e.Name
	case *QualRef:
		return fmt.Sprintf("%s[%q].%s", g.ns, e.Module, e.Name)
	case *Lambda:
		return fmt.Sprintf("function (%s) { return %s; }", e.Param, g.expr(e.Body))
	case *Apply:
		fn := g.expr(e.Fn)
		if _, isLambda := e.Fn.(*Lambda); isLambda {
			fn = "(" + fn + ")"
		}
		return fmt.Sprintf("%s(%s)", fn, g.expr(e.Arg))
	case *Do:
		return g.doBlock(e)
	default:
		return ""
	}
}

// doBlock compiles an effect block. The specialized form flattens the
// steps into one function body; with it disabled the steps become an
// explicit __bind chain over thunks.
func (g *generator) doBlock(d *Do) string {
	steps := make([]string, len(d.Steps))
	for i, step := range d.Steps {
		steps[i] = g.expr(step)
	}

	if !g.opts.NoMagicDo {
		var sb strings.Builder
		sb.WriteString("function () { ")
		for _, s := range steps[:len(steps)-1] {
			sb.WriteString(s)
			sb.WriteString("(); ")
		}
		fmt.Fprintf(&sb, "return %s(); }", steps[len(steps)-1])
		return sb.String()
	}

	out := steps[len(steps)-1]
	for i := len(steps) - 2; i >= 0; i-- {
		g.usesBind = true
		out = fmt.Sprintf("__bind(%s, function () { return %s; })", steps[i], out)
	}
	return out
}
