package codegen

import (
	"fmt"
	"strings"
)

// StatementKind classifies a Statement.
type StatementKind string

const (
	// KindDeclare is a global declaration, optionally initialized.
	KindDeclare StatementKind = "declare"
	// KindNew assigns a freshly allocated object to a global pointer.
	KindNew StatementKind = "new"
	// KindLocal declares and initializes a setup-scoped variable.
	KindLocal StatementKind = "local"
	// KindExpr is a bare expression statement.
	KindExpr StatementKind = "expr"
)

// Statement is one line of generated C++.
type Statement struct {
	Kind    StatementKind `json:"kind"`
	Type    string        `json:"type,omitempty"`
	Name    string        `json:"name,omitempty"`
	Pointer bool          `json:"pointer,omitempty"`
	Value   Expr          `json:"value,omitempty"`
}

// Code renders the statement, terminated by a semicolon.
func (s Statement) Code() string {
	switch s.Kind {
	case KindDeclare, KindLocal:
		decl := s.Type + " " + s.Name
		if s.Pointer {
			decl = s.Type + " *" + s.Name
		}
		if s.Value != "" {
			return decl + " = " + string(s.Value) + ";"
		}
		return decl + ";"
	case KindNew:
		return fmt.Sprintf("%s = new %s();", s.Name, s.Type)
	default:
		return string(s.Value) + ";"
	}
}

func (s Statement) String() string { return s.Code() }

// Program is the output of a generation pass: global declarations, the
// ordered setup body and the accumulated build configuration.
type Program struct {
	Globals []Statement  `json:"globals"`
	Setup   []Statement  `json:"setup"`
	Build   *BuildConfig `json:"build"`
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{Build: NewBuildConfig()}
}

// NewPVariable declares a global pointer of the given type and allocates it
// at the start of setup. The returned expression references the variable.
func (p *Program) NewPVariable(id, typ string) Expr {
	p.Globals = append(p.Globals, Statement{Kind: KindDeclare, Type: typ, Name: id, Pointer: true})
	p.Setup = append(p.Setup, Statement{Kind: KindNew, Type: typ, Name: id})
	return Ref(id)
}

// Global declares a global value, with an optional initializer.
func (p *Program) Global(typ, name string, value Expr) Expr {
	p.Globals = append(p.Globals, Statement{Kind: KindDeclare, Type: typ, Name: name, Value: value})
	return Ref(name)
}

// Local declares a pointer inside setup initialized from value.
func (p *Program) Local(typ, name string, value Expr) Expr {
	p.Setup = append(p.Setup, Statement{Kind: KindLocal, Type: typ, Name: name, Pointer: true, Value: value})
	return Ref(name)
}

// Add appends an expression statement to setup.
func (p *Program) Add(expr Expr) {
	p.Setup = append(p.Setup, Statement{Kind: KindExpr, Value: expr})
}

// RegisterComponent registers obj with the host application.
func (p *Program) RegisterComponent(obj Expr) {
	p.Add(Call("App.register_component", obj))
}

// GlobalLines renders every global declaration.
func (p *Program) GlobalLines() []string { return lines(p.Globals) }

// SetupLines renders the setup body.
func (p *Program) SetupLines() []string { return lines(p.Setup) }

// String renders globals followed by setup, one statement per line.
func (p *Program) String() string {
	var b strings.Builder
	for _, line := range p.GlobalLines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, line := range p.SetupLines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func lines(stmts []Statement) []string {
	out := make([]string, len(stmts))
	for i, stmt := range stmts {
		out[i] = stmt.Code()
	}
	return out
}
