package evaluator

import (
	"github.com/mosaic-lang/mosaic/internal/ast"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// evalStmt dispatches on the concrete Stmt variant,
// returning an outcome that callers owning a loop/switch/function boundary
// inspect to decide whether to consume or propagate its signal.
func (e *Evaluator) evalStmt(stmt ast.Stmt) outcome {
	switch node := stmt.(type) {
	case *ast.Assignment:
		return e.evalAssignment(node)
	case *ast.AssignmentStatement:
		return e.evalAssignment(node.Assign)
	case *ast.ExpressionStatement:
		return plain(e.evalExpr(node.Expr))
	case *ast.If:
		return e.evalIf(node)
	case *ast.While:
		return e.evalWhile(node)
	case *ast.Repeat:
		return e.evalRepeat(node)
	case *ast.For:
		return e.evalFor(node)
	case *ast.Foreach:
		return e.evalForeach(node)
	case *ast.Block:
		return e.evalBlock(node)
	case *ast.Function:
		return plain(values.None{}) // already indexed; no-op at execution time.
	case *ast.Return:
		return e.evalReturn(node)
	case *ast.IndexAssignment:
		return e.evalIndexAssignment(node)
	case *ast.Enum:
		return e.evalEnum(node)
	case *ast.Macros:
		return e.evalMacros(node)
	case *ast.Break:
		return outcome{value: values.None{}, signal: signalBreak}
	case *ast.Continue:
		return outcome{value: values.None{}, signal: signalContinue}
	case *ast.Switch:
		return e.evalSwitch(node)
	default:
		e.diag.Error(e.currentFile(), stmt.Pos().Line, "unsupported statement %T", stmt)
		return plain(values.None{})
	}
}

func (e *Evaluator) evalAssignment(a *ast.Assignment) outcome {
	val := e.evalExpr(a.Value)
	if a.IsLet {
		e.env.Define(a.Name, val)
	} else {
		e.env.Assign(a.Name, val)
	}
	return plain(val)
}

func (e *Evaluator) evalIf(n *ast.If) outcome {
	if e.evalExpr(n.Cond).Truthy() {
		return e.evalStmt(n.Then)
	}
	if n.Else != nil {
		return e.evalStmt(n.Else)
	}
	return plain(values.None{})
}

func (e *Evaluator) evalWhile(n *ast.While) outcome {
	result := plain(values.None{})
	for e.evalExpr(n.Cond).Truthy() {
		out := e.evalStmt(n.Body)
		if out.isReturn() {
			return out
		}
		if out.isBreak() {
			return plain(out.value)
		}
		result = plain(out.value)
	}
	return result
}

func (e *Evaluator) evalRepeat(n *ast.Repeat) outcome {
	countVal := e.evalExpr(n.Count)
	var count int
	switch v := countVal.(type) {
	case values.Integer:
		count = int(v)
	case values.Double:
		count = int(v)
	default:
		e.diag.Error(e.currentFile(), n.Pos().Line, "repeat count must be numeric, got %s", countVal.Type())
		return plain(values.None{})
	}

	result := plain(values.None{})
	for i := 0; i < count; i++ {
		out := e.evalStmt(n.Body)
		if out.isReturn() {
			return out
		}
		if out.isBreak() {
			return plain(out.value)
		}
		result = plain(out.value)
	}
	return result
}

func (e *Evaluator) evalFor(n *ast.For) outcome {
	saved := e.env
	e.env = e.env.PushScope()
	defer func() { e.env = saved }()

	if n.Init != nil {
		e.evalStmt(n.Init)
	}

	result := plain(values.None{})
	for {
		if n.Cond != nil && !e.evalExpr(n.Cond).Truthy() {
			break
		}
		out := e.evalStmt(n.Body)
		if out.isReturn() {
			return out
		}
		if out.isBreak() {
			return plain(out.value)
		}
		result = plain(out.value)
		if n.Step != nil {
			e.evalStmt(n.Step)
		}
	}
	return result
}

func (e *Evaluator) evalForeach(n *ast.Foreach) outcome {
	iterable := e.evalExpr(n.Iterable)
	arr, ok := iterable.(*values.Array)
	if !ok {
		e.diag.Error(e.currentFile(), n.Pos().Line, "foreach requires an Array, got %s", iterable.Type())
		return plain(values.None{})
	}

	result := plain(values.None{})
	for _, elem := range arr.Elements {
		saved := e.env
		e.env = e.env.PushScope()
		e.env.Define(n.Var, elem)
		out := e.evalStmt(n.Body)
		e.env = saved

		if out.isReturn() {
			return out
		}
		if out.isBreak() {
			return plain(out.value)
		}
		result = plain(out.value)
	}
	return result
}

func (e *Evaluator) evalBlock(b *ast.Block) outcome {
	saved := e.env
	e.env = e.env.PushScope()
	out := e.evalStatements(b.Statements)
	e.env = saved
	return out
}

func (e *Evaluator) evalReturn(r *ast.Return) outcome {
	var val values.Value = values.None{}
	if r.Value != nil {
		val = e.evalExpr(r.Value)
	}
	return outcome{value: val, signal: signalReturn}
}

func (e *Evaluator) evalEnum(n *ast.Enum) outcome {
	e.env.DefineGlobal(n.Name, values.None{})
	for _, m := range n.Members {
		e.env.DefineGlobal(n.Name+"."+m.Name, values.Integer(m.Value))
	}
	return plain(values.None{})
}

func (e *Evaluator) evalMacros(n *ast.Macros) outcome {
	val := e.evalExpr(n.Value)
	if e.env.Exists(n.Name) {
		e.diag.Error(e.currentFile(), n.Pos().Line, "macros %q is already defined", n.Name)
		return plain(values.None{})
	}
	e.env.DefineGlobal(n.Name, val)
	return plain(val)
}

func (e *Evaluator) evalSwitch(sw *ast.Switch) outcome {
	scrutinee := e.evalExpr(sw.Scrutinee)

	for i, c := range sw.Cases {
		pattern := e.evalExpr(c.Pattern)
		if !e.valuesEqual(scrutinee, pattern) {
			continue
		}
		result := plain(values.None{})
		for j := i; j < len(sw.Cases); j++ {
			out := e.evalStatements(sw.Cases[j].Body)
			if out.isReturn() || out.isContinue() {
				return out
			}
			if out.isBreak() {
				return plain(out.value)
			}
			result = plain(out.value)
		}
		return result
	}

	if sw.Default != nil {
		out := e.evalStatements(sw.Default)
		if out.isBreak() {
			return plain(out.value)
		}
		return out
	}
	return plain(values.None{})
}

// evalIndexAssignment walks ia.Chain from the base variable's current value
// down to the leaf, auto-widening Array containers for numeric indices, then
// re-assigns the mutated top-level container back to the base name.
func (e *Evaluator) evalIndexAssignment(ia *ast.IndexAssignment) outcome {
	base, ok := e.env.Get(ia.Base)
	if !ok {
		e.diag.Error(e.currentFile(), ia.Pos().Line, "undefined variable %q", ia.Base)
		return plain(values.None{})
	}

	newValue := e.evalExpr(ia.Value)
	updated, ok := e.applyChain(base, ia.Chain, newValue, ia.Pos().Line)
	if !ok {
		return plain(values.None{})
	}
	e.env.Assign(ia.Base, updated)
	return plain(newValue)
}

func (e *Evaluator) applyChain(container values.Value, chain []ast.ChainStep, newValue values.Value, line int) (values.Value, bool) {
	step := chain[0]
	rest := chain[1:]

	if step.IsMember {
		s, ok := container.(*values.Struct)
		if !ok {
			e.diag.Error(e.currentFile(), line, "cannot assign field %q on a value of type %s", step.Member, container.Type())
			return nil, false
		}
		if len(rest) == 0 {
			s.Values[step.Member] = newValue
			return s, true
		}
		child, exists := s.Values[step.Member]
		if !exists {
			child = values.None{}
		}
		updatedChild, ok := e.applyChain(child, rest, newValue, line)
		if !ok {
			return nil, false
		}
		s.Values[step.Member] = updatedChild
		return s, true
	}

	arr, ok := container.(*values.Array)
	if !ok {
		if _, isNone := container.(values.None); isNone {
			arr = values.NewArray()
		} else {
			e.diag.Error(e.currentFile(), line, "cannot index into a value of type %s", container.Type())
			return nil, false
		}
	}

	key := e.evalExpr(step.Index)
	if !values.IsNumeric(key) {
		e.diag.Error(e.currentFile(), line, "index must be numeric, got %s", key.Type())
		return nil, false
	}
	idx := int(values.AsFloat64(key))
	if idx < 0 {
		e.diag.Error(e.currentFile(), line, "negative index %d", idx)
		return nil, false
	}
	for len(arr.Elements) <= idx {
		arr.Elements = append(arr.Elements, values.None{})
	}

	if len(rest) == 0 {
		arr.Elements[idx] = newValue
		return arr, true
	}
	updatedChild, ok := e.applyChain(arr.Elements[idx], rest, newValue, line)
	if !ok {
		return nil, false
	}
	arr.Elements[idx] = updatedChild
	return arr, true
}
