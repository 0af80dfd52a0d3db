package corelang

// inlineLiterals is the optimization phase: references to same-module
// declarations whose body is a literal are replaced by the literal itself.
// Lambda parameters shadow module declarations and are never inlined.
func inlineLiterals(m *Module) *Module {
	literals := map[string]Expr{}
	for _, d := range m.Decls {
		switch d.Body.(type) {
		case *IntLit, *StrLit:
			literals[d.Name] = d.Body
		}
	}
	if len(literals) == 0 {
		return m
	}

	out := &Module{Name: m.Name, Origin: m.Origin, Decls: make([]Decl, len(m.Decls))}
	for i, d := range m.Decls {
		out.Decls[i] = Decl{Name: d.Name, Body: rewrite(d.Body, literals, map[string]bool{})}
	}
	return out
}

func rewrite(e Expr, literals map[string]Expr, shadowed map[string]bool) Expr {
	switch e := e.(type) {
	case *Ref:
		if lit, ok := literals[e.Name]; ok && !shadowed[e.Name] {
			return lit
		}
		return e
	case *Lambda:
		inner := shadowed
		if !shadowed[e.Param] {
			inner = make(map[string]bool, len(shadowed)+1)
			for k := range shadowed {
				inner[k] = true
			}
			inner[e.Param] = true
		}
		return &Lambda{Param: e.Param, Body: rewrite(e.Body, literals, inner)}
	case *Apply:
		return &Apply{
			Fn:  rewrite(e.Fn, literals, shadowed),
			Arg: rewrite(e.Arg, literals, shadowed),
		}
	case *Do:
		steps := make([]Expr, len(e.Steps))
		for i, step := range e.Steps {
			steps[i] = rewrite(step, literals, shadowed)
		}
		return &Do{Steps: steps}
	default:
		return e
	}
}
