// Package parser implements the Mosaic parser: recursive-descent for
// statements, delegating to a Pratt/precedence-climbing parser for
// expressions. Both halves share one mutable token cursor and one
// diagnostics sink, using prefixParseFns/infixParseFns maps keyed by token
// kind, and accumulate diagnostics rather than aborting on the first bad
// token.
package parser

import (
	"strconv"
	"strings"

	"github.com/mosaic-lang/mosaic/internal/ast"
	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/pkg/token"
)

// precedence orders binary operators from loosest- to tightest-binding.
type precedence int

const (
	lowest precedence = iota
	logical            // and, or, &&, ||
	equality           // == !=
	comparison         // < <= > >=
	additive           // + -
	multiplicative     // * /
	unary              // prefix !, -, + (as a precedence operand parses are driven by)
	call               // (), [], . postfix chains
)

var precedences = map[token.Kind]precedence{
	token.AND:           logical,
	token.OR:             logical,
	token.AMP_AMP:        logical,
	token.PIPE_PIPE:      logical,
	token.EQUAL_EQUAL:    equality,
	token.BANG_EQUAL:     equality,
	token.LESS:           comparison,
	token.LESS_EQUAL:     comparison,
	token.GREATER:        comparison,
	token.GREATER_EQUAL:  comparison,
	token.PLUS:           additive,
	token.MINUS:          additive,
	token.STAR:           multiplicative,
	token.SLASH:          multiplicative,
	token.LEFT_PAREN:     call,
	token.LEFT_BRACKET:   call,
	token.DOT:            call,
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser turns a token stream into a *ast.Program. It never panics on
// malformed input: a syntax error is reported to the diagnostics sink, the
// offending statement resolves to nil, and parsing resumes at the next
// probable statement boundary.
type Parser struct {
	tokens []token.Token
	pos    int
	cur    token.Token
	peek   token.Token
	file   string
	diag   *diagnostics.Sink

	prefixParseFns map[token.Kind]prefixParseFn
	infixParseFns  map[token.Kind]infixParseFn
}

// New creates a Parser over tokens (as produced by lexer.Tokenize), reporting
// syntax errors against file into diag.
func New(tokens []token.Token, file string, diag *diagnostics.Sink) *Parser {
	p := &Parser{tokens: tokens, file: file, diag: diag}

	p.prefixParseFns = map[token.Kind]prefixParseFn{
		token.NUMBER:       p.parseNumberLiteral,
		token.STRING:       p.parseStringLiteral,
		token.TRUE:         p.parseBooleanLiteral,
		token.FALSE:        p.parseBooleanLiteral,
		token.IDENT:        p.parseVariable,
		token.LEFT_PAREN:   p.parseGroupedExpression,
		token.LEFT_BRACKET: p.parseArrayLiteral,
		token.LEFT_BRACE:   p.parseBraceLiteral,
		token.BANG:         p.parseUnaryExpression,
		token.MINUS:        p.parseUnaryExpression,
		token.PLUS:         p.parseUnaryExpression,
	}

	p.infixParseFns = map[token.Kind]infixParseFn{
		token.AND:           p.parseBinaryExpression,
		token.OR:             p.parseBinaryExpression,
		token.AMP_AMP:        p.parseBinaryExpression,
		token.PIPE_PIPE:      p.parseBinaryExpression,
		token.EQUAL_EQUAL:    p.parseBinaryExpression,
		token.BANG_EQUAL:     p.parseBinaryExpression,
		token.LESS:           p.parseBinaryExpression,
		token.LESS_EQUAL:     p.parseBinaryExpression,
		token.GREATER:        p.parseBinaryExpression,
		token.GREATER_EQUAL:  p.parseBinaryExpression,
		token.PLUS:           p.parseBinaryExpression,
		token.MINUS:          p.parseBinaryExpression,
		token.STAR:           p.parseBinaryExpression,
		token.SLASH:          p.parseBinaryExpression,
		token.LEFT_PAREN:     p.parseCallExpression,
		token.LEFT_BRACKET:   p.parseIndexExpression,
		token.DOT:            p.parseMemberExpression,
	}

	// Prime cur/peek.
	p.advance()
	p.advance()
	return p
}

// ParseProgram consumes the whole token stream and returns the resulting
// Program. Statements that failed to parse are omitted, per the
// accumulate-and-continue error model.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.cur.Kind != token.END_OF_FILE {
		before := p.cur
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		// synchronize stops on a stray top-level '}' without consuming it;
		// skip it so the loop always makes progress.
		if stmt == nil && p.cur == before {
			p.advance()
		}
	}
	return prog
}

func (p *Parser) advance() {
	p.cur = p.peek
	if p.pos < len(p.tokens) {
		p.peek = p.tokens[p.pos]
		p.pos++
	} else {
		p.peek = token.Token{Kind: token.END_OF_FILE}
	}
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

// expect reports a Parse diagnostic and returns false if cur is not k;
// otherwise it advances past it.
func (p *Parser) expect(k token.Kind, context string) bool {
	if p.cur.Kind == k {
		p.advance()
		return true
	}
	p.errorf("expected %s %s, got %s", k, context, p.cur.Kind)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.diag.Error(p.file, p.cur.Pos.Line, format, args...)
}

// synchronize skips tokens until a likely statement boundary: a consumed
// ';' or an unconsumed token that plausibly starts the next statement. This
// keeps one bad statement from cascading into spurious errors for the rest
// of the file.
func (p *Parser) synchronize() {
	for p.cur.Kind != token.END_OF_FILE {
		if p.cur.Kind == token.SEMICOLON {
			p.advance()
			return
		}
		if isStatementStart(p.cur.Kind) {
			return
		}
		p.advance()
	}
}

func isStatementStart(k token.Kind) bool {
	switch k {
	case token.LET, token.IF, token.WHILE, token.REPEAT, token.FOR, token.FOREACH,
		token.PUBLIC, token.PRIVATE, token.FUNCTION, token.RETURN, token.ENUM,
		token.MACROS, token.BREAK, token.CONTINUE, token.SWITCH, token.LEFT_BRACE,
		token.RIGHT_BRACE:
		return true
	default:
		return false
	}
}

// currentPrecedence is the binding power of the operator now sitting in cur
// (every prefix/infix parse function leaves cur on the token that follows
// what it consumed, so by the time parseExpression loops, an operator is
// exactly what's in cur).
func (p *Parser) currentPrecedence() precedence {
	if pr, ok := precedences[p.cur.Kind]; ok {
		return pr
	}
	return lowest
}

// parseExpression is the Pratt engine's entry point: run the prefix parser
// for cur, then repeatedly fold in infix/postfix operators while they bind
// tighter than minPrec.
func (p *Parser) parseExpression(minPrec precedence) ast.Expr {
	prefix := p.prefixParseFns[p.cur.Kind]
	if prefix == nil {
		p.errorf("unexpected token %s in expression", p.cur.Kind)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for minPrec < p.currentPrecedence() {
		infix := p.infixParseFns[p.cur.Kind]
		if infix == nil {
			return left
		}
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *Parser) parseNumberLiteral() ast.Expr {
	tok := p.cur
	n := &ast.NumberLiteral{Token: tok}
	if containsDot(tok.Lexeme) {
		n.IsFloat = true
		n.DblValue = parseFloatOrZero(tok.Lexeme)
	} else {
		n.IntValue = parseIntOrZero(tok.Lexeme)
	}
	p.advance()
	return n
}

func (p *Parser) parseStringLiteral() ast.Expr {
	n := &ast.StringLiteral{Token: p.cur, Value: p.cur.Lexeme}
	p.advance()
	return n
}

func (p *Parser) parseBooleanLiteral() ast.Expr {
	n := &ast.BooleanLiteral{Token: p.cur, Value: p.cur.Kind == token.TRUE}
	p.advance()
	return n
}

func (p *Parser) parseVariable() ast.Expr {
	n := &ast.Variable{Token: p.cur, Name: p.cur.Lexeme}
	p.advance()
	return n
}

func (p *Parser) parseGroupedExpression() ast.Expr {
	p.advance() // (
	expr := p.parseExpression(lowest)
	if !p.expect(token.RIGHT_PAREN, "after grouped expression") {
		return nil
	}
	return expr
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	tok := p.cur
	p.advance() // [
	elems := []ast.Expr{}
	for !p.curIs(token.RIGHT_BRACKET) && !p.curIs(token.END_OF_FILE) {
		e := p.parseExpression(lowest)
		if e == nil {
			return nil
		}
		elems = append(elems, e)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(token.RIGHT_BRACKET, "to close array literal") {
		return nil
	}
	return &ast.ArrayLiteral{Token: tok, Elements: elems}
}

// parseBraceLiteral handles both StructLiteral (`{field1, field2}`) and
// DictionaryLiteral (`{k1: v1, k2: v2}`): the first entry is parsed as an
// expression and a following `:` decides which node results.
func (p *Parser) parseBraceLiteral() ast.Expr {
	tok := p.cur
	p.advance() // {

	if p.curIs(token.RIGHT_BRACE) {
		p.advance()
		return &ast.StructLiteral{Token: tok}
	}

	firstKey := p.parseExpression(lowest)
	if firstKey == nil {
		return nil
	}

	if p.curIs(token.COLON) {
		return p.finishDictionaryLiteral(tok, firstKey)
	}
	return p.finishStructLiteral(tok, firstKey)
}

func (p *Parser) finishDictionaryLiteral(tok token.Token, firstKey ast.Expr) ast.Expr {
	p.advance() // :
	firstVal := p.parseExpression(lowest)
	if firstVal == nil {
		return nil
	}
	entries := []ast.DictEntry{{Key: firstKey, Value: firstVal}}

	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RIGHT_BRACE) {
			break
		}
		key := p.parseExpression(lowest)
		if key == nil {
			return nil
		}
		if !p.expect(token.COLON, "between dictionary key and value") {
			return nil
		}
		val := p.parseExpression(lowest)
		if val == nil {
			return nil
		}
		entries = append(entries, ast.DictEntry{Key: key, Value: val})
	}
	if !p.expect(token.RIGHT_BRACE, "to close dictionary literal") {
		return nil
	}
	return &ast.DictionaryLiteral{Token: tok, Entries: entries}
}

func (p *Parser) finishStructLiteral(tok token.Token, firstKey ast.Expr) ast.Expr {
	firstName, ok := firstKey.(*ast.Variable)
	if !ok {
		p.errorf("struct literal field names must be bare identifiers")
		return nil
	}
	fields := []string{firstName.Name}

	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RIGHT_BRACE) {
			break
		}
		if !p.curIs(token.IDENT) {
			p.errorf("expected field name in struct literal, got %s", p.cur.Kind)
			return nil
		}
		fields = append(fields, p.cur.Lexeme)
		p.advance()
	}
	if !p.expect(token.RIGHT_BRACE, "to close struct literal") {
		return nil
	}
	return &ast.StructLiteral{Token: tok, Fields: fields}
}

func (p *Parser) parseUnaryExpression() ast.Expr {
	tok := p.cur
	op := tok.Lexeme
	p.advance()
	operand := p.parseExpression(unary)
	if operand == nil {
		return nil
	}
	return &ast.Unary{Token: tok, Operator: op, Operand: operand}
}

func (p *Parser) parseBinaryExpression(left ast.Expr) ast.Expr {
	tok := p.cur
	op := tok.Lexeme
	prec := p.currentPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ast.Binary{Token: tok, Operator: op, Left: left, Right: right}
}

func (p *Parser) parseCallExpression(callee ast.Expr) ast.Expr {
	tok := p.cur
	p.advance() // (
	args := []ast.Expr{}
	for !p.curIs(token.RIGHT_PAREN) && !p.curIs(token.END_OF_FILE) {
		a := p.parseExpression(lowest)
		if a == nil {
			return nil
		}
		args = append(args, a)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(token.RIGHT_PAREN, "to close call arguments") {
		return nil
	}
	return &ast.FunctionCall{Token: tok, Callee: callee, Args: args}
}

func (p *Parser) parseIndexExpression(container ast.Expr) ast.Expr {
	tok := p.cur
	p.advance() // [
	key := p.parseExpression(lowest)
	if key == nil {
		return nil
	}
	if !p.expect(token.RIGHT_BRACKET, "to close index expression") {
		return nil
	}
	return &ast.Index{Token: tok, Container: container, Key: key}
}

func (p *Parser) parseMemberExpression(object ast.Expr) ast.Expr {
	tok := p.cur
	p.advance() // .
	if !p.curIs(token.IDENT) {
		p.errorf("expected field name after '.', got %s", p.cur.Kind)
		return nil
	}
	field := p.cur.Lexeme
	p.advance()
	return &ast.MemberAccess{Token: tok, Object: object, Field: field}
}

func containsDot(lexeme string) bool {
	return strings.Contains(lexeme, ".")
}

func parseIntOrZero(lexeme string) int64 {
	n, _ := strconv.ParseInt(lexeme, 10, 64)
	return n
}

func parseFloatOrZero(lexeme string) float64 {
	f, _ := strconv.ParseFloat(lexeme, 64)
	return f
}
