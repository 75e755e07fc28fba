package parser

import (
	"github.com/mosaic-lang/mosaic/internal/ast"
	"github.com/mosaic-lang/mosaic/pkg/token"
)

// parseStatement dispatches on the leading token, per the statement grammar.
// A nil return means the statement failed to parse; the caller (ParseProgram
// or a block) simply omits it and parsing continues from wherever
// synchronize left the cursor.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Kind {
	case token.LET:
		return p.parseLetStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.REPEAT:
		return p.parseRepeatStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.FOREACH:
		return p.parseForeachStatement()
	case token.LEFT_BRACE:
		return p.parseBlockStatement()
	case token.PUBLIC, token.PRIVATE, token.FUNCTION:
		return p.parseFunctionStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.ENUM:
		return p.parseEnumStatement()
	case token.MACROS:
		return p.parseMacrosStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	default:
		stmt := p.parseAssignmentOrExpressionStatement(true)
		if stmt == nil {
			p.synchronize()
		}
		return stmt
	}
}

func (p *Parser) parseLetStatement() ast.Stmt {
	tok := p.cur
	p.advance() // let
	if !p.curIs(token.IDENT) {
		p.errorf("expected identifier after 'let', got %s", p.cur.Kind)
		p.synchronize()
		return nil
	}
	name := p.cur.Lexeme
	p.advance()
	if !p.expect(token.EQUALS, "after let-bound name") {
		p.synchronize()
		return nil
	}
	value := p.parseExpression(lowest)
	if value == nil {
		p.synchronize()
		return nil
	}
	if !p.expect(token.SEMICOLON, "to terminate let statement") {
		p.synchronize()
		return nil
	}
	return &ast.Assignment{Token: tok, IsLet: true, Name: name, Value: value}
}

// parseAssignmentOrExpressionStatement parses an expression starting at cur;
// if it is immediately followed by '=' the expression is reinterpreted as an
// assignment target (a bare name or an index/member chain), otherwise it
// stands alone as an ExpressionStatement. requireSemicolon is false only
// when called from a for-loop's init/step clause, which is terminated by
// ';' or ')' supplied by the caller instead.
func (p *Parser) parseAssignmentOrExpressionStatement(requireSemicolon bool) ast.Stmt {
	tok := p.cur
	expr := p.parseExpression(lowest)
	if expr == nil {
		return nil
	}

	if !p.curIs(token.EQUALS) {
		if requireSemicolon && !p.expect(token.SEMICOLON, "to terminate expression statement") {
			return nil
		}
		return &ast.ExpressionStatement{Token: tok, Expr: expr}
	}

	p.advance() // =
	value := p.parseExpression(lowest)
	if value == nil {
		return nil
	}
	if requireSemicolon && !p.expect(token.SEMICOLON, "to terminate assignment") {
		return nil
	}

	if v, ok := expr.(*ast.Variable); ok {
		assign := &ast.Assignment{Token: tok, IsLet: false, Name: v.Name, Value: value}
		return &ast.AssignmentStatement{Assign: assign}
	}

	base, chain, ok := decomposeChain(expr)
	if !ok {
		p.diag.Error(p.file, tok.Pos.Line, "left-hand side of assignment must be a variable, index, or member access")
		return nil
	}
	return &ast.IndexAssignment{Token: tok, Base: base, Chain: chain, Value: value}
}

// decomposeChain unwinds a postfix Index/MemberAccess chain back to its root
// Variable, producing the innermost-to-outermost ChainStep list an
// IndexAssignment needs.
func decomposeChain(expr ast.Expr) (base string, chain []ast.ChainStep, ok bool) {
	var steps []ast.ChainStep
	cur := expr
	for {
		switch v := cur.(type) {
		case *ast.Variable:
			for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
				steps[i], steps[j] = steps[j], steps[i]
			}
			return v.Name, steps, true
		case *ast.Index:
			steps = append(steps, ast.ChainStep{IsMember: false, Index: v.Key})
			cur = v.Container
		case *ast.MemberAccess:
			steps = append(steps, ast.ChainStep{IsMember: true, Member: v.Field})
			cur = v.Object
		default:
			return "", nil, false
		}
	}
}

func (p *Parser) parseIfStatement() ast.Stmt {
	tok := p.cur
	p.advance() // if
	if !p.expect(token.LEFT_PAREN, "after 'if'") {
		p.synchronize()
		return nil
	}
	cond := p.parseExpression(lowest)
	if cond == nil {
		p.synchronize()
		return nil
	}
	if !p.expect(token.RIGHT_PAREN, "to close if condition") {
		p.synchronize()
		return nil
	}
	then := p.parseStatement()
	if then == nil {
		return nil
	}
	var elseStmt ast.Stmt
	if p.curIs(token.ELSE) {
		p.advance()
		elseStmt = p.parseStatement()
	}
	return &ast.If{Token: tok, Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseWhileStatement() ast.Stmt {
	tok := p.cur
	p.advance() // while
	if !p.expect(token.LEFT_PAREN, "after 'while'") {
		p.synchronize()
		return nil
	}
	cond := p.parseExpression(lowest)
	if cond == nil {
		p.synchronize()
		return nil
	}
	if !p.expect(token.RIGHT_PAREN, "to close while condition") {
		p.synchronize()
		return nil
	}
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.While{Token: tok, Cond: cond, Body: body}
}

func (p *Parser) parseRepeatStatement() ast.Stmt {
	tok := p.cur
	p.advance() // repeat
	if !p.expect(token.LEFT_PAREN, "after 'repeat'") {
		p.synchronize()
		return nil
	}
	count := p.parseExpression(lowest)
	if count == nil {
		p.synchronize()
		return nil
	}
	if !p.expect(token.RIGHT_PAREN, "to close repeat count") {
		p.synchronize()
		return nil
	}
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.Repeat{Token: tok, Count: count, Body: body}
}

func (p *Parser) parseForStatement() ast.Stmt {
	tok := p.cur
	p.advance() // for
	if !p.expect(token.LEFT_PAREN, "after 'for'") {
		p.synchronize()
		return nil
	}

	var init ast.Stmt
	if p.curIs(token.SEMICOLON) {
		p.advance()
	} else {
		init = p.parseForClause(true) // consumes its own terminating ';'
		if init == nil {
			p.synchronize()
			return nil
		}
	}

	var cond ast.Expr
	if !p.curIs(token.SEMICOLON) {
		cond = p.parseExpression(lowest)
		if cond == nil {
			p.synchronize()
			return nil
		}
	}
	if !p.expect(token.SEMICOLON, "between for-loop condition and step") {
		p.synchronize()
		return nil
	}

	var step ast.Stmt
	if !p.curIs(token.RIGHT_PAREN) {
		step = p.parseForClause(false) // terminated by ')', not ';'
		if step == nil {
			p.synchronize()
			return nil
		}
	}
	if !p.expect(token.RIGHT_PAREN, "to close for-loop header") {
		p.synchronize()
		return nil
	}

	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.For{Token: tok, Init: init, Cond: cond, Step: step, Body: body}
}

// parseForClause parses the assignment-or-expression statements allowed in a
// for-loop's init/step position.
func (p *Parser) parseForClause(requireSemicolon bool) ast.Stmt {
	if p.curIs(token.LET) {
		return p.parseLetStatement()
	}
	return p.parseAssignmentOrExpressionStatement(requireSemicolon)
}

func (p *Parser) parseForeachStatement() ast.Stmt {
	tok := p.cur
	p.advance() // foreach
	if !p.expect(token.LEFT_PAREN, "after 'foreach'") {
		p.synchronize()
		return nil
	}
	if !p.curIs(token.IDENT) {
		p.errorf("expected loop variable name in foreach, got %s", p.cur.Kind)
		p.synchronize()
		return nil
	}
	varName := p.cur.Lexeme
	p.advance()
	if !p.expect(token.IN, "after foreach loop variable") {
		p.synchronize()
		return nil
	}
	iterable := p.parseExpression(lowest)
	if iterable == nil {
		p.synchronize()
		return nil
	}
	if !p.expect(token.RIGHT_PAREN, "to close foreach header") {
		p.synchronize()
		return nil
	}
	body := p.parseStatement()
	if body == nil {
		return nil
	}
	return &ast.Foreach{Token: tok, Var: varName, Iterable: iterable, Body: body}
}

func (p *Parser) parseBlockStatement() ast.Stmt {
	tok := p.cur
	p.advance() // {
	var stmts []ast.Stmt
	for !p.curIs(token.RIGHT_BRACE) && !p.curIs(token.END_OF_FILE) {
		if p.curIs(token.PUBLIC) || p.curIs(token.PRIVATE) || p.curIs(token.FUNCTION) {
			p.errorf("nested function definitions are not allowed")
			p.parseFunctionStatement() // consume it so parsing can continue
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if !p.expect(token.RIGHT_BRACE, "to close block") {
		return nil
	}
	return &ast.Block{Token: tok, Statements: stmts}
}

func (p *Parser) parseFunctionStatement() ast.Stmt {
	tok := p.cur
	visibility := ast.Private
	if p.curIs(token.PUBLIC) {
		visibility = ast.Public
		p.advance()
	} else if p.curIs(token.PRIVATE) {
		visibility = ast.Private
		p.advance()
	}
	if !p.expect(token.FUNCTION, "to introduce a function definition") {
		p.synchronize()
		return nil
	}
	if !p.curIs(token.IDENT) {
		p.errorf("expected function name, got %s", p.cur.Kind)
		p.synchronize()
		return nil
	}
	name := p.cur.Lexeme
	p.advance()
	if !p.expect(token.LEFT_PAREN, "after function name") {
		p.synchronize()
		return nil
	}
	var params []string
	for !p.curIs(token.RIGHT_PAREN) && !p.curIs(token.END_OF_FILE) {
		if !p.curIs(token.IDENT) {
			p.errorf("expected parameter name, got %s", p.cur.Kind)
			p.synchronize()
			return nil
		}
		params = append(params, p.cur.Lexeme)
		p.advance()
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(token.RIGHT_PAREN, "to close parameter list") {
		p.synchronize()
		return nil
	}
	if !p.curIs(token.LEFT_BRACE) {
		p.errorf("expected '{' to start function body, got %s", p.cur.Kind)
		p.synchronize()
		return nil
	}
	bodyStmt := p.parseBlockStatement()
	body, ok := bodyStmt.(*ast.Block)
	if !ok {
		return nil
	}
	return &ast.Function{Token: tok, Visibility: visibility, Name: name, Params: params, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Stmt {
	tok := p.cur
	p.advance() // return
	var value ast.Expr
	if !p.curIs(token.SEMICOLON) {
		value = p.parseExpression(lowest)
		if value == nil {
			p.synchronize()
			return nil
		}
	}
	if !p.expect(token.SEMICOLON, "to terminate return statement") {
		p.synchronize()
		return nil
	}
	return &ast.Return{Token: tok, Value: value}
}

func (p *Parser) parseEnumStatement() ast.Stmt {
	tok := p.cur
	p.advance() // enum
	if !p.curIs(token.IDENT) {
		p.errorf("expected enum name, got %s", p.cur.Kind)
		p.synchronize()
		return nil
	}
	name := p.cur.Lexeme
	p.advance()
	if !p.expect(token.LEFT_BRACE, "to open enum body") {
		p.synchronize()
		return nil
	}

	var members []ast.EnumMember
	next := int64(0)
	for !p.curIs(token.RIGHT_BRACE) && !p.curIs(token.END_OF_FILE) {
		if !p.curIs(token.IDENT) {
			p.errorf("expected enum member name, got %s", p.cur.Kind)
			p.synchronize()
			return nil
		}
		memberName := p.cur.Lexeme
		p.advance()
		value := next
		if p.curIs(token.EQUALS) {
			p.advance()
			if !p.curIs(token.NUMBER) {
				p.errorf("expected integer after '=' in enum member, got %s", p.cur.Kind)
				p.synchronize()
				return nil
			}
			value = parseIntOrZero(p.cur.Lexeme)
			p.advance()
		}
		members = append(members, ast.EnumMember{Name: memberName, Value: value})
		next = value + 1
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(token.RIGHT_BRACE, "to close enum body") {
		p.synchronize()
		return nil
	}
	return &ast.Enum{Token: tok, Name: name, Members: members}
}

func (p *Parser) parseMacrosStatement() ast.Stmt {
	tok := p.cur
	p.advance() // #macros
	if !p.curIs(token.IDENT) {
		p.errorf("expected name after '#macros', got %s", p.cur.Kind)
		p.synchronize()
		return nil
	}
	name := p.cur.Lexeme
	p.advance()
	if !p.expect(token.EQUALS, "after macros name") {
		p.synchronize()
		return nil
	}
	value := p.parseExpression(lowest)
	if value == nil {
		p.synchronize()
		return nil
	}
	if !p.expect(token.SEMICOLON, "to terminate macros statement") {
		p.synchronize()
		return nil
	}
	return &ast.Macros{Token: tok, Name: name, Value: value}
}

func (p *Parser) parseBreakStatement() ast.Stmt {
	tok := p.cur
	p.advance() // break
	if !p.expect(token.SEMICOLON, "to terminate break statement") {
		p.synchronize()
		return nil
	}
	return &ast.Break{Token: tok}
}

func (p *Parser) parseContinueStatement() ast.Stmt {
	tok := p.cur
	p.advance() // continue
	if !p.expect(token.SEMICOLON, "to terminate continue statement") {
		p.synchronize()
		return nil
	}
	return &ast.Continue{Token: tok}
}

func (p *Parser) parseSwitchStatement() ast.Stmt {
	tok := p.cur
	p.advance() // switch
	if !p.expect(token.LEFT_PAREN, "after 'switch'") {
		p.synchronize()
		return nil
	}
	scrutinee := p.parseExpression(lowest)
	if scrutinee == nil {
		p.synchronize()
		return nil
	}
	if !p.expect(token.RIGHT_PAREN, "to close switch scrutinee") {
		p.synchronize()
		return nil
	}
	if !p.expect(token.LEFT_BRACE, "to open switch body") {
		p.synchronize()
		return nil
	}

	var cases []ast.SwitchCase
	var defaultBody []ast.Stmt
	for !p.curIs(token.RIGHT_BRACE) && !p.curIs(token.END_OF_FILE) {
		switch {
		case p.curIs(token.CASE):
			p.advance()
			pattern := p.parseExpression(lowest)
			if pattern == nil {
				p.synchronize()
				return nil
			}
			if !p.expect(token.COLON, "after case pattern") {
				p.synchronize()
				return nil
			}
			body := p.parseCaseBody()
			cases = append(cases, ast.SwitchCase{Pattern: pattern, Body: body})
		case p.curIs(token.DEFAULT):
			p.advance()
			if !p.expect(token.COLON, "after 'default'") {
				p.synchronize()
				return nil
			}
			defaultBody = p.parseCaseBody()
		default:
			p.errorf("expected 'case' or 'default' in switch body, got %s", p.cur.Kind)
			p.synchronize()
			return nil
		}
	}
	if !p.expect(token.RIGHT_BRACE, "to close switch body") {
		p.synchronize()
		return nil
	}
	return &ast.Switch{Token: tok, Scrutinee: scrutinee, Cases: cases, Default: defaultBody}
}

// parseCaseBody collects statements until the next case/default label or the
// end of the switch body.
func (p *Parser) parseCaseBody() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.curIs(token.CASE) && !p.curIs(token.DEFAULT) && !p.curIs(token.RIGHT_BRACE) && !p.curIs(token.END_OF_FILE) {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
