package evaluator

import (
	"github.com/mosaic-lang/mosaic/internal/ast"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// evalExpr dispatches on the concrete Expr variant. Every
// branch always returns a Value; failures are reported to the diagnostics
// sink and substitute None rather than propagating as a Go error.
func (e *Evaluator) evalExpr(expr ast.Expr) values.Value {
	switch node := expr.(type) {
	case *ast.NumberLiteral:
		if node.IsFloat {
			return values.Double(node.DblValue)
		}
		return values.Integer(node.IntValue)
	case *ast.StringLiteral:
		return values.String(node.Value)
	case *ast.BooleanLiteral:
		return values.Boolean(node.Value)
	case *ast.Variable:
		return e.evalVariable(node)
	case *ast.Unary:
		return e.evalUnary(node)
	case *ast.Binary:
		return e.evalBinary(node)
	case *ast.FunctionCall:
		return e.evalFunctionCall(node)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(node)
	case *ast.DictionaryLiteral:
		return e.evalDictionaryLiteral(node)
	case *ast.StructLiteral:
		return values.NewStructInstance(&values.StructDef{Fields: node.Fields})
	case *ast.Index:
		return e.evalIndex(node)
	case *ast.MemberAccess:
		return e.evalMemberAccess(node)
	default:
		e.diag.Error(e.currentFile(), expr.Pos().Line, "unsupported expression %T", expr)
		return values.None{}
	}
}

func (e *Evaluator) evalVariable(v *ast.Variable) values.Value {
	if val, ok := e.env.Get(v.Name); ok {
		return val
	}
	e.diag.Error(e.currentFile(), v.Pos().Line, "undefined variable %q", v.Name)
	return values.None{}
}

func (e *Evaluator) evalUnary(u *ast.Unary) values.Value {
	operand := e.evalExpr(u.Operand)
	switch u.Operator {
	case "!":
		return values.Boolean(!operand.Truthy())
	case "+":
		switch v := operand.(type) {
		case values.Integer:
			return v
		case values.Double:
			return v
		}
	case "-":
		switch v := operand.(type) {
		case values.Integer:
			return -v
		case values.Double:
			return -v
		}
	}
	e.diag.Error(e.currentFile(), u.Pos().Line, "unary %q not defined for %s", u.Operator, operand.Type())
	return values.None{}
}

func (e *Evaluator) evalBinary(b *ast.Binary) values.Value {
	left := e.evalExpr(b.Left)
	right := e.evalExpr(b.Right)
	op := b.Operator

	if op == "+" {
		_, lStr := left.(values.String)
		_, rStr := right.(values.String)
		if lStr || rStr {
			return values.String(values.ToDisplayString(left) + values.ToDisplayString(right))
		}
	}

	if values.IsNumeric(left) && values.IsNumeric(right) {
		lf, rf := values.AsFloat64(left), values.AsFloat64(right)
		switch op {
		case "+":
			return values.Double(lf + rf)
		case "-":
			return values.Double(lf - rf)
		case "*":
			return values.Double(lf * rf)
		case "/":
			if rf == 0 {
				return values.Double(0)
			}
			return values.Double(lf / rf)
		case "==":
			return values.Boolean(lf == rf)
		case "!=":
			return values.Boolean(lf != rf)
		case "<":
			return values.Boolean(lf < rf)
		case "<=":
			return values.Boolean(lf <= rf)
		case ">":
			return values.Boolean(lf > rf)
		case ">=":
			return values.Boolean(lf >= rf)
		}
	}

	if lb, lok := left.(values.Boolean); lok {
		if rb, rok := right.(values.Boolean); rok {
			switch op {
			case "==":
				return values.Boolean(lb == rb)
			case "!=":
				return values.Boolean(lb != rb)
			case "and", "&&":
				return values.Boolean(bool(lb) && bool(rb))
			case "or", "||":
				return values.Boolean(bool(lb) || bool(rb))
			}
		}
	}

	if ls, lok := left.(values.String); lok {
		if rs, rok := right.(values.String); rok {
			switch op {
			case "==":
				return values.Boolean(ls == rs)
			case "!=":
				return values.Boolean(ls != rs)
			}
		}
	}

	e.diag.Error(e.currentFile(), b.Pos().Line, "binary %q not defined for %s and %s", op, left.Type(), right.Type())
	return values.None{}
}

// valuesEqual implements the "== semantics from the binary operator" that
// Switch uses to compare each case pattern against the scrutinee.
func (e *Evaluator) valuesEqual(a, b values.Value) bool {
	if values.IsNumeric(a) && values.IsNumeric(b) {
		return values.AsFloat64(a) == values.AsFloat64(b)
	}
	if ab, ok := a.(values.Boolean); ok {
		if bb, ok := b.(values.Boolean); ok {
			return ab == bb
		}
	}
	if as, ok := a.(values.String); ok {
		if bs, ok := b.(values.String); ok {
			return as == bs
		}
	}
	return false
}

func (e *Evaluator) evalArgs(exprs []ast.Expr) []values.Value {
	args := make([]values.Value, len(exprs))
	for i, a := range exprs {
		args[i] = e.evalExpr(a)
	}
	return args
}

func (e *Evaluator) evalArrayLiteral(a *ast.ArrayLiteral) values.Value {
	elems := make([]values.Value, len(a.Elements))
	for i, el := range a.Elements {
		elems[i] = e.evalExpr(el)
	}
	return values.NewArray(elems...)
}

func (e *Evaluator) evalDictionaryLiteral(d *ast.DictionaryLiteral) values.Value {
	dict := values.NewDictionary()
	for _, entry := range d.Entries {
		key := values.ToDisplayString(e.evalExpr(entry.Key))
		dict.Set(key, e.evalExpr(entry.Value))
	}
	return dict
}

func (e *Evaluator) evalIndex(ix *ast.Index) values.Value {
	container := e.evalExpr(ix.Container)
	switch c := container.(type) {
	case *values.Array:
		key := e.evalExpr(ix.Key)
		if !values.IsNumeric(key) {
			e.diag.Error(e.currentFile(), ix.Pos().Line, "array index must be numeric, got %s", key.Type())
			return values.None{}
		}
		idx := int(values.AsFloat64(key))
		if idx < 0 || idx >= len(c.Elements) {
			e.diag.Error(e.currentFile(), ix.Pos().Line, "array index %d out of bounds (length %d)", idx, len(c.Elements))
			return values.None{}
		}
		return c.Elements[idx]
	case *values.Dictionary:
		key := values.ToDisplayString(e.evalExpr(ix.Key))
		if v, ok := c.Get(key); ok {
			return v
		}
		e.diag.Error(e.currentFile(), ix.Pos().Line, "dictionary has no key %q", key)
		return values.None{}
	default:
		e.diag.Error(e.currentFile(), ix.Pos().Line, "value of type %s is not indexable", container.Type())
		return values.None{}
	}
}

func (e *Evaluator) evalMemberAccess(m *ast.MemberAccess) values.Value {
	obj := e.evalExpr(m.Object)
	if s, ok := obj.(*values.Struct); ok {
		if v, found := s.Values[m.Field]; found {
			return v
		}
		e.diag.Error(e.currentFile(), m.Pos().Line, "struct has no field %q", m.Field)
		return values.None{}
	}
	if v, ok := m.Object.(*ast.Variable); ok {
		flat := v.Name + "." + m.Field
		if val, exists := e.env.Get(flat); exists {
			return val
		}
	}
	e.diag.Error(e.currentFile(), m.Pos().Line, "unknown member %q", m.Field)
	return values.None{}
}

func (e *Evaluator) evalFunctionCall(fc *ast.FunctionCall) values.Value {
	if v, ok := fc.Callee.(*ast.Variable); ok {
		name := v.Name
		if b, found := e.builtins.Lookup(name); found {
			args := e.evalArgs(fc.Args)
			return b.Invoke(args, e.diag, e.currentFile(), fc.Pos().Line)
		}
		if def, definingFile, found := e.funcs.Find(name, e.currentFile()); found {
			args := e.evalArgs(fc.Args)
			return e.callUserFunction(def, definingFile, args, fc.Pos().Line)
		}
		if val, exists := e.env.Get(name); exists {
			if tmpl, ok := val.(*values.Struct); ok {
				args := e.evalArgs(fc.Args)
				return e.constructStruct(tmpl, args)
			}
		}
		e.diag.Error(e.currentFile(), fc.Pos().Line, "%q is neither a function nor a struct template", name)
		return values.None{}
	}

	callee := e.evalExpr(fc.Callee)
	if tmpl, ok := callee.(*values.Struct); ok {
		args := e.evalArgs(fc.Args)
		return e.constructStruct(tmpl, args)
	}
	e.diag.Error(e.currentFile(), fc.Pos().Line, "value of type %s is not callable", callee.Type())
	return values.None{}
}

func (e *Evaluator) constructStruct(tmpl *values.Struct, args []values.Value) values.Value {
	inst := values.NewStructInstance(tmpl.Def)
	for i, field := range tmpl.Def.Fields {
		if i < len(args) {
			inst.Values[field] = args[i]
		}
	}
	return inst
}

func (e *Evaluator) callUserFunction(def *ast.Function, definingFile string, args []values.Value, line int) values.Value {
	if len(args) != len(def.Params) {
		e.diag.Error(e.currentFile(), line, "function %q expects %d argument(s), got %d", def.Name, len(def.Params), len(args))
		return values.None{}
	}

	e.callDepth++
	defer func() { e.callDepth-- }()
	if e.callDepth > maxCallDepth {
		e.diag.Error(e.currentFile(), line, "call depth exceeded calling %q (possible infinite recursion)", def.Name)
		return values.None{}
	}

	pushedFile := definingFile != e.currentFile()
	if pushedFile {
		e.pushFile(definingFile)
	}

	savedEnv := e.env
	e.env = e.env.PushScope()
	for i, param := range def.Params {
		e.env.Define(param, args[i])
	}

	out := e.evalStmt(def.Body)

	e.env = savedEnv
	if pushedFile {
		e.popFile()
	}
	return out.value
}
