package corelang

// Expr is a Lumen expression.
type Expr interface {
	exprNode()
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// StrLit is a string literal.
type StrLit struct {
	Value string
}

// Ref references a declaration in the current module or a lambda parameter
// in scope.
type Ref struct {
	Name string
}

// QualRef references a declaration in another module.
type QualRef struct {
	Module string
	Name   string
}

// Lambda is a single-parameter function literal.
type Lambda struct {
	Param string
	Body  Expr
}

// Apply is function application.
type Apply struct {
	Fn  Expr
	Arg Expr
}

// Do is an effect block: an ordered sequence of effectful steps.
type Do struct {
	Steps []Expr
}

func (*IntLit) exprNode()  {}
func (*StrLit) exprNode()  {}
func (*Ref) exprNode()     {}
func (*QualRef) exprNode() {}
func (*Lambda) exprNode()  {}
func (*Apply) exprNode()   {}
func (*Do) exprNode()      {}

// Decl is one top-level declaration. All declarations are externally
// visible and appear in the externs descriptor.
type Decl struct {
	Name string
	Body Expr
}

// Module is one parsed Lumen module.
type Module struct {
	Name   string
	Origin string
	Decls  []Decl
}

// Decl returns the named declaration, if present.
func (m *Module) Decl(name string) (Decl, bool) {
	for _, d := range m.Decls {
		if d.Name == name {
			return d, true
		}
	}
	return Decl{}, false
}
