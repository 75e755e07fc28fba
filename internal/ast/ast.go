// Package ast defines the Mosaic abstract syntax tree: one struct per
// expression and statement variant, plus the Node interface shared by all
// of them.
package ast

import (
	"fmt"
	"strings"

	"github.com/mosaic-lang/mosaic/pkg/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Expr is any node that produces a Value when evaluated.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node that performs an action.
type Stmt interface {
	Node
	stmtNode()
}

// Visibility distinguishes public and private function definitions.
type Visibility int

const (
	Private Visibility = iota
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "private"
}

// --- Expressions --------------------------------------------------------

// NumberLiteral holds either an integer or a double, per the lexeme's shape.
type NumberLiteral struct {
	Token    token.Token
	IsFloat  bool
	IntValue int64
	DblValue float64
}

func (n *NumberLiteral) exprNode()          {}
func (n *NumberLiteral) Pos() token.Position { return n.Token.Pos }
func (n *NumberLiteral) String() string {
	if n.IsFloat {
		return fmt.Sprintf("%g", n.DblValue)
	}
	return fmt.Sprintf("%d", n.IntValue)
}

// StringLiteral is a quoted string with no escape processing applied.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) exprNode()          {}
func (s *StringLiteral) Pos() token.Position { return s.Token.Pos }
func (s *StringLiteral) String() string      { return fmt.Sprintf("%q", s.Value) }

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) exprNode()          {}
func (b *BooleanLiteral) Pos() token.Position { return b.Token.Pos }
func (b *BooleanLiteral) String() string      { return fmt.Sprintf("%t", b.Value) }

// Variable is a bare-name reference, resolved against the Environment.
type Variable struct {
	Token token.Token
	Name  string
}

func (v *Variable) exprNode()          {}
func (v *Variable) Pos() token.Position { return v.Token.Pos }
func (v *Variable) String() string      { return v.Name }

// Unary is a prefix operator applied to one operand: `!`, `-`, `+`.
type Unary struct {
	Token    token.Token
	Operator string
	Operand  Expr
}

func (u *Unary) exprNode()          {}
func (u *Unary) Pos() token.Position { return u.Token.Pos }
func (u *Unary) String() string      { return "(" + u.Operator + u.Operand.String() + ")" }

// Binary is an infix operator applied to two operands.
type Binary struct {
	Token    token.Token
	Operator string
	Left     Expr
	Right    Expr
}

func (b *Binary) exprNode()          {}
func (b *Binary) Pos() token.Position { return b.Token.Pos }
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// FunctionCall applies Callee (usually a Variable) to Args.
type FunctionCall struct {
	Token  token.Token
	Callee Expr
	Args   []Expr
}

func (f *FunctionCall) exprNode()          {}
func (f *FunctionCall) Pos() token.Position { return f.Token.Pos }
func (f *FunctionCall) String() string {
	var args []string
	for _, a := range f.Args {
		args = append(args, a.String())
	}
	return f.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expr
}

func (a *ArrayLiteral) exprNode()          {}
func (a *ArrayLiteral) Pos() token.Position { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	var elems []string
	for _, e := range a.Elements {
		elems = append(elems, e.String())
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// DictEntry is one key-value pair inside a DictionaryLiteral.
type DictEntry struct {
	Key   Expr
	Value Expr
}

// DictionaryLiteral is `{k1: v1, k2: v2}`.
type DictionaryLiteral struct {
	Token   token.Token
	Entries []DictEntry
}

func (d *DictionaryLiteral) exprNode()          {}
func (d *DictionaryLiteral) Pos() token.Position { return d.Token.Pos }
func (d *DictionaryLiteral) String() string {
	var pairs []string
	for _, e := range d.Entries {
		pairs = append(pairs, e.Key.String()+": "+e.Value.String())
	}
	return "{" + strings.Join(pairs, ", ") + "}"
}

// StructLiteral is `{field1, field2}`, a template defining a struct shape.
type StructLiteral struct {
	Token  token.Token
	Fields []string
}

func (s *StructLiteral) exprNode()          {}
func (s *StructLiteral) Pos() token.Position { return s.Token.Pos }
func (s *StructLiteral) String() string {
	return "{" + strings.Join(s.Fields, ", ") + "}"
}

// Index is `container[key]`.
type Index struct {
	Token     token.Token
	Container Expr
	Key       Expr
}

func (i *Index) exprNode()          {}
func (i *Index) Pos() token.Position { return i.Token.Pos }
func (i *Index) String() string      { return i.Container.String() + "[" + i.Key.String() + "]" }

// MemberAccess is `object.field`.
type MemberAccess struct {
	Token  token.Token
	Object Expr
	Field  string
}

func (m *MemberAccess) exprNode()          {}
func (m *MemberAccess) Pos() token.Position { return m.Token.Pos }
func (m *MemberAccess) String() string      { return m.Object.String() + "." + m.Field }

// --- Statements ----------------------------------------------------------

// Assignment is `let name = value` (IsLet) or `name = value`.
type Assignment struct {
	Token token.Token
	IsLet bool
	Name  string
	Value Expr
}

func (a *Assignment) stmtNode()          {}
func (a *Assignment) Pos() token.Position { return a.Token.Pos }
func (a *Assignment) String() string {
	prefix := ""
	if a.IsLet {
		prefix = "let "
	}
	return prefix + a.Name + " = " + a.Value.String() + ";"
}

// AssignmentStatement wraps an Assignment as a top-level statement.
type AssignmentStatement struct {
	Assign *Assignment
}

func (a *AssignmentStatement) stmtNode()          {}
func (a *AssignmentStatement) Pos() token.Position { return a.Assign.Pos() }
func (a *AssignmentStatement) String() string      { return a.Assign.String() }

// ExpressionStatement evaluates Expr and discards the result.
type ExpressionStatement struct {
	Token token.Token
	Expr  Expr
}

func (e *ExpressionStatement) stmtNode()          {}
func (e *ExpressionStatement) Pos() token.Position { return e.Token.Pos }
func (e *ExpressionStatement) String() string      { return e.Expr.String() + ";" }

// If is `if (Cond) Then [else Else]`.
type If struct {
	Token token.Token
	Cond  Expr
	Then  Stmt
	Else  Stmt
}

func (i *If) stmtNode()          {}
func (i *If) Pos() token.Position { return i.Token.Pos }
func (i *If) String() string {
	s := "if (" + i.Cond.String() + ") " + i.Then.String()
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

// While is `while (Cond) Body`.
type While struct {
	Token token.Token
	Cond  Expr
	Body  Stmt
}

func (w *While) stmtNode()          {}
func (w *While) Pos() token.Position { return w.Token.Pos }
func (w *While) String() string      { return "while (" + w.Cond.String() + ") " + w.Body.String() }

// Repeat is `repeat (Count) Body`.
type Repeat struct {
	Token token.Token
	Count Expr
	Body  Stmt
}

func (r *Repeat) stmtNode()          {}
func (r *Repeat) Pos() token.Position { return r.Token.Pos }
func (r *Repeat) String() string      { return "repeat (" + r.Count.String() + ") " + r.Body.String() }

// For is `for (Init; Cond; Step) Body`. Init and Step may be nil.
type For struct {
	Token token.Token
	Init  Stmt
	Cond  Expr
	Step  Stmt
	Body  Stmt
}

func (f *For) stmtNode()          {}
func (f *For) Pos() token.Position { return f.Token.Pos }
func (f *For) String() string {
	init, cond, step := "", "", ""
	if f.Init != nil {
		init = f.Init.String()
	}
	if f.Cond != nil {
		cond = f.Cond.String()
	}
	if f.Step != nil {
		step = f.Step.String()
	}
	return "for (" + init + "; " + cond + "; " + step + ") " + f.Body.String()
}

// Foreach is `foreach (Var in Iterable) Body`.
type Foreach struct {
	Token    token.Token
	Var      string
	Iterable Expr
	Body     Stmt
}

func (f *Foreach) stmtNode()          {}
func (f *Foreach) Pos() token.Position { return f.Token.Pos }
func (f *Foreach) String() string {
	return "foreach (" + f.Var + " in " + f.Iterable.String() + ") " + f.Body.String()
}

// Block is `{ Statements... }`, introducing a new lexical scope.
type Block struct {
	Token      token.Token
	Statements []Stmt
}

func (b *Block) stmtNode()          {}
func (b *Block) Pos() token.Position { return b.Token.Pos }
func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, s := range b.Statements {
		sb.WriteString(s.String())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

// Function is a top-level `public|private function name(params) body` definition.
type Function struct {
	Token      token.Token
	Visibility Visibility
	Name       string
	Params     []string
	Body       *Block
}

func (f *Function) stmtNode()          {}
func (f *Function) Pos() token.Position { return f.Token.Pos }
func (f *Function) String() string {
	return f.Visibility.String() + " function " + f.Name + "(" + strings.Join(f.Params, ", ") + ") " + f.Body.String()
}

// Return is `return [Value];`.
type Return struct {
	Token token.Token
	Value Expr
}

func (r *Return) stmtNode()          {}
func (r *Return) Pos() token.Position { return r.Token.Pos }
func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return "return " + r.Value.String() + ";"
}

// IndexAssignment is `base[i][j].field = value;` — Chain holds each
// index/member step from innermost to outermost.
type IndexAssignment struct {
	Token token.Token
	Base  string
	Chain []ChainStep
	Value Expr
}

// ChainStep is one link in an IndexAssignment's access chain: either an
// index expression (IsMember false) or a field name (IsMember true).
type ChainStep struct {
	IsMember bool
	Index    Expr
	Member   string
}

func (ia *IndexAssignment) stmtNode()          {}
func (ia *IndexAssignment) Pos() token.Position { return ia.Token.Pos }
func (ia *IndexAssignment) String() string {
	var sb strings.Builder
	sb.WriteString(ia.Base)
	for _, step := range ia.Chain {
		if step.IsMember {
			sb.WriteString("." + step.Member)
		} else {
			sb.WriteString("[" + step.Index.String() + "]")
		}
	}
	sb.WriteString(" = " + ia.Value.String() + ";")
	return sb.String()
}

// EnumMember is one `Name [= Value]` entry in an Enum statement.
type EnumMember struct {
	Name  string
	Value int64
}

// Enum is `enum Name { m1 [= n], m2, ... }`.
type Enum struct {
	Token   token.Token
	Name    string
	Members []EnumMember
}

func (e *Enum) stmtNode()          {}
func (e *Enum) Pos() token.Position { return e.Token.Pos }
func (e *Enum) String() string {
	var parts []string
	for _, m := range e.Members {
		parts = append(parts, fmt.Sprintf("%s = %d", m.Name, m.Value))
	}
	return "enum " + e.Name + " { " + strings.Join(parts, ", ") + " }"
}

// Macros is `#macros Name = Value;` — a write-once global binding.
type Macros struct {
	Token token.Token
	Name  string
	Value Expr
}

func (m *Macros) stmtNode()          {}
func (m *Macros) Pos() token.Position { return m.Token.Pos }
func (m *Macros) String() string      { return "#macros " + m.Name + " = " + m.Value.String() + ";" }

// Break is a `break;` statement.
type Break struct {
	Token token.Token
}

func (b *Break) stmtNode()          {}
func (b *Break) Pos() token.Position { return b.Token.Pos }
func (b *Break) String() string      { return "break;" }

// Continue is a `continue;` statement.
type Continue struct {
	Token token.Token
}

func (c *Continue) stmtNode()          {}
func (c *Continue) Pos() token.Position { return c.Token.Pos }
func (c *Continue) String() string      { return "continue;" }

// SwitchCase is one `case Pattern: Body...` arm.
type SwitchCase struct {
	Pattern Expr
	Body    []Stmt
}

// Switch is `switch (Scrutinee) { case ...: ... default: ... }`.
type Switch struct {
	Token      token.Token
	Scrutinee  Expr
	Cases      []SwitchCase
	Default    []Stmt
}

func (s *Switch) stmtNode()          {}
func (s *Switch) Pos() token.Position { return s.Token.Pos }
func (s *Switch) String() string {
	var sb strings.Builder
	sb.WriteString("switch (" + s.Scrutinee.String() + ") { ")
	for _, c := range s.Cases {
		sb.WriteString("case " + c.Pattern.String() + ": ")
		for _, st := range c.Body {
			sb.WriteString(st.String() + " ")
		}
	}
	if s.Default != nil {
		sb.WriteString("default: ")
		for _, st := range s.Default {
			sb.WriteString(st.String() + " ")
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// Program is the root node: a file's top-level statement sequence.
type Program struct {
	Statements []Stmt
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
