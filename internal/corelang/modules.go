package corelang

import "fmt"

// moduleDeps returns the module names m references through qualified
// references, in first-use order, without duplicates.
func moduleDeps(m *Module) []string {
	seen := map[string]bool{}
	var deps []string
	var walk func(e Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case *QualRef:
			if e.Module != m.Name && !seen[e.Module] {
				seen[e.Module] = true
				deps = append(deps, e.Module)
			}
		case *Lambda:
			walk(e.Body)
		case *Apply:
			walk(e.Fn)
			walk(e.Arg)
		case *Do:
			for _, step := range e.Steps {
				walk(step)
			}
		}
	}
	for _, d := range m.Decls {
		walk(d.Body)
	}
	return deps
}

// sortModules orders modules so dependencies precede dependents. Input
// order breaks ties, keeping output deterministic.
func sortModules(modules []*Module) ([]*Module, error) {
	byName := make(map[string]*Module, len(modules))
	for _, m := range modules {
		byName[m.Name] = m
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(modules))
	sorted := make([]*Module, 0, len(modules))

	var visit func(m *Module) error
	visit = func(m *Module) error {
		switch state[m.Name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%w: involving module %s", ErrModuleCycle, m.Name)
		}
		state[m.Name] = visiting
		for _, dep := range moduleDeps(m) {
			target, ok := byName[dep]
			if !ok {
				// unknown modules are reported during validation
				continue
			}
			if err := visit(target); err != nil {
				return err
			}
		}
		state[m.Name] = done
		sorted = append(sorted, m)
		return nil
	}

	for _, m := range modules {
		if err := visit(m); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}

// dceClosure computes the transitive dependency closure of the given root
// module names. Root names that match no module are ignored.
func dceClosure(modules []*Module, roots []string) map[string]bool {
	byName := make(map[string]*Module, len(modules))
	for _, m := range modules {
		byName[m.Name] = m
	}

	retained := map[string]bool{}
	var mark func(name string)
	mark = func(name string) {
		m, ok := byName[name]
		if !ok || retained[name] {
			return
		}
		retained[name] = true
		for _, dep := range moduleDeps(m) {
			mark(dep)
		}
	}
	for _, root := range roots {
		mark(root)
	}
	return retained
}
