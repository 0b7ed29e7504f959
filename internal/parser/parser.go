// Package parser implements the recursive-descent parser for the P
// language using Pratt parsing for expressions.
package parser

import (
	"fmt"
	"strconv"

	"github.com/plang-dev/go-plang/internal/ast"
	"github.com/plang-dev/go-plang/internal/lexer"
	"github.com/plang-dev/go-plang/internal/types"
	"github.com/plang-dev/go-plang/pkg/token"
)

// Precedence levels for operators (lowest to highest).
const (
	_ int = iota
	LOWEST
	OR          // or
	AND         // and
	LESSGREATER // < <= = <> >= >
	SUM         // + -
	PRODUCT     // * / mod
	PREFIX      // -x, not x
)

// precedences maps token types to their precedence levels.
var precedences = map[token.TokenType]int{
	token.OR:         OR,
	token.AND:        AND,
	token.LESS:       LESSGREATER,
	token.LESS_EQ:    LESSGREATER,
	token.EQ:         LESSGREATER,
	token.NOT_EQ:     LESSGREATER,
	token.GREATER_EQ: LESSGREATER,
	token.GREATER:    LESSGREATER,
	token.PLUS:       SUM,
	token.MINUS:      SUM,
	token.ASTERISK:   PRODUCT,
	token.SLASH:      PRODUCT,
	token.MOD:        PRODUCT,
}

// prefixParseFn parses prefix expressions (literals, unary ops, grouping).
type prefixParseFn func() ast.Expression

// infixParseFn parses infix expressions (binary operators).
type infixParseFn func(ast.Expression) ast.Expression

// Parser parses P source code into an AST.
type Parser struct {
	l              *lexer.Lexer
	curToken       token.Token
	peekToken      token.Token
	errors         []string
	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:  p.parseIdentifierExpression,
		token.INT:    p.parseIntegerLiteral,
		token.REAL:   p.parseRealLiteral,
		token.STRING: p.parseStringLiteral,
		token.TRUE:   p.parseBooleanLiteral,
		token.FALSE:  p.parseBooleanLiteral,
		token.MINUS:  p.parseUnaryExpression,
		token.NOT:    p.parseUnaryExpression,
		token.LPAREN: p.parseGroupedExpression,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{}
	for tt := range precedences {
		p.infixParseFns[tt] = p.parseBinaryExpression
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the parse errors collected so far.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) addError(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances when the next token has the expected type, and
// records an error otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError("%s: expected next token to be %s, got %s (%q)",
		p.peekToken.Pos, t, p.peekToken.Type, p.peekToken.Literal)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses a complete P program:
//
//	name; {var-decl} {function} compound
//
// It returns nil when the program header is malformed; otherwise it
// returns the (possibly partial) program and records errors.
func (p *Parser) ParseProgram() *ast.Program {
	if !p.curTokenIs(token.IDENT) {
		p.addError("%s: expected program name, got %q", p.curToken.Pos, p.curToken.Literal)
		return nil
	}

	program := &ast.Program{
		Token: p.curToken,
		Name:  p.curToken.Literal,
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	p.nextToken()

	for p.curTokenIs(token.VAR) {
		if decl := p.parseDecl(); decl != nil {
			program.Decls = append(program.Decls, decl)
		}
		p.nextToken()
	}

	for p.curTokenIs(token.FUNCTION) {
		if fn := p.parseFunction(); fn != nil {
			program.Functions = append(program.Functions, fn)
		}
		p.nextToken()
	}

	if !p.curTokenIs(token.BEGIN) {
		p.addError("%s: expected program body, got %q", p.curToken.Pos, p.curToken.Literal)
		return program
	}
	program.Body = p.parseCompoundStatement()

	if !p.peekTokenIs(token.EOF) {
		p.addError("%s: unexpected trailing token %q after program body",
			p.peekToken.Pos, p.peekToken.Literal)
	}
	return program
}

// parseDecl parses one `var` declaration, leaving curToken on the
// closing semicolon:
//
//	var a, b: integer;
//	var m: array [2] of array [3] of real;
//	var PI = 3.14;
func (p *Parser) parseDecl() *ast.DeclNode {
	decl := &ast.DeclNode{Token: p.curToken}

	var names []token.Token
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		names = append(names, p.curToken)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	switch p.peekToken.Type {
	case token.COLON:
		p.nextToken()
		p.nextToken()
		typ := p.parseTypeSpec()
		if typ == nil {
			return nil
		}
		for _, nameTok := range names {
			decl.Variables = append(decl.Variables, &ast.VariableNode{
				Token:        nameTok,
				Name:         nameTok.Literal,
				DeclaredType: typ,
			})
		}
	case token.EQ:
		p.nextToken()
		p.nextToken()
		lit := p.parseLiteral()
		if lit == nil {
			return nil
		}
		for _, nameTok := range names {
			decl.Variables = append(decl.Variables, &ast.VariableNode{
				Token:        nameTok,
				Name:         nameTok.Literal,
				DeclaredType: lit.ValueType,
				Initializer:  lit,
			})
		}
	default:
		p.addError("%s: expected ':' or '=' in declaration, got %q",
			p.peekToken.Pos, p.peekToken.Literal)
		return nil
	}

	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return decl
}

// parseTypeSpec parses a scalar type name or an array type, leaving
// curToken on the last token of the type.
func (p *Parser) parseTypeSpec() types.Type {
	switch p.curToken.Type {
	case token.INTEGER:
		return types.INTEGER
	case token.REALTYPE:
		return types.REAL
	case token.BOOLEAN:
		return types.BOOLEAN
	case token.STRTYPE:
		return types.STRING
	case token.ARRAY:
		return p.parseArrayType()
	}
	p.addError("%s: expected type, got %q", p.curToken.Pos, p.curToken.Literal)
	return nil
}

// parseArrayType parses `array [n] of <type>`, folding nested arrays
// into a single ArrayType with ordered dimensions. Dimension sizes may
// be negative or zero; the analyzer diagnoses them and still inserts
// the declaration.
func (p *Parser) parseArrayType() types.Type {
	var dims []int
	for p.curTokenIs(token.ARRAY) {
		if !p.expectPeek(token.LBRACK) {
			return nil
		}
		p.nextToken()
		sign := 1
		if p.curTokenIs(token.MINUS) {
			sign = -1
			p.nextToken()
		}
		if !p.curTokenIs(token.INT) {
			p.addError("%s: expected array dimension, got %q", p.curToken.Pos, p.curToken.Literal)
			return nil
		}
		n, err := strconv.Atoi(p.curToken.Literal)
		if err != nil {
			p.addError("%s: invalid array dimension %q", p.curToken.Pos, p.curToken.Literal)
			return nil
		}
		dims = append(dims, sign*n)
		if !p.expectPeek(token.RBRACK) {
			return nil
		}
		if !p.expectPeek(token.OF) {
			return nil
		}
		p.nextToken()
	}

	elem := p.parseTypeSpec()
	if elem == nil {
		return nil
	}
	basic, ok := elem.(*types.BasicType)
	if !ok {
		p.addError("%s: array element must be a scalar type", p.curToken.Pos)
		return nil
	}
	return types.NewArrayType(basic, dims)
}

// parseLiteral parses one constant literal, leaving curToken on it.
func (p *Parser) parseLiteral() *ast.ConstantValue {
	switch p.curToken.Type {
	case token.INT:
		return &ast.ConstantValue{Token: p.curToken, ValueType: types.INTEGER}
	case token.REAL:
		return &ast.ConstantValue{Token: p.curToken, ValueType: types.REAL}
	case token.STRING:
		return &ast.ConstantValue{Token: p.curToken, ValueType: types.STRING}
	case token.TRUE, token.FALSE:
		return &ast.ConstantValue{Token: p.curToken, ValueType: types.BOOLEAN}
	}
	p.addError("%s: expected literal, got %q", p.curToken.Pos, p.curToken.Literal)
	return nil
}

// parseFunction parses a function definition, leaving curToken on the
// closing `end` of the body:
//
//	function f(x: real; n: integer): integer begin ... end
func (p *Parser) parseFunction() *ast.FunctionNode {
	fn := &ast.FunctionNode{Token: p.curToken, ReturnType: types.VOID}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	fn.Name = p.curToken.Literal
	fn.NameToken = p.curToken

	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	for !p.peekTokenIs(token.RPAREN) {
		group := p.parseParameterGroup()
		if group == nil {
			return nil
		}
		fn.Parameters = append(fn.Parameters, group)
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		} else {
			break
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		ret := p.parseTypeSpec()
		if ret == nil {
			return nil
		}
		fn.ReturnType = ret
	}

	if !p.expectPeek(token.BEGIN) {
		return nil
	}
	fn.Body = p.parseCompoundStatement()
	return fn
}

// parseParameterGroup parses `a, b: <type>` inside a parameter list,
// leaving curToken on the last token of the type.
func (p *Parser) parseParameterGroup() *ast.Parameter {
	var names []token.Token
	for {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		names = append(names, p.curToken)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	group := &ast.Parameter{Token: names[0]}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	typ := p.parseTypeSpec()
	if typ == nil {
		return nil
	}
	for _, nameTok := range names {
		group.Variables = append(group.Variables, &ast.VariableNode{
			Token:        nameTok,
			Name:         nameTok.Literal,
			DeclaredType: typ,
		})
	}
	return group
}

// parseCompoundStatement parses `begin {decl} {statement} end`, leaving
// curToken on the closing `end`.
func (p *Parser) parseCompoundStatement() *ast.CompoundStatement {
	block := &ast.CompoundStatement{Token: p.curToken}
	p.nextToken()

	for p.curTokenIs(token.VAR) {
		if decl := p.parseDecl(); decl != nil {
			block.Decls = append(block.Decls, decl)
		}
		p.nextToken()
	}

	for !p.curTokenIs(token.END) && !p.curTokenIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	if p.curTokenIs(token.EOF) {
		p.addError("%s: unexpected end of input, expected 'end'", p.curToken.Pos)
	}
	return block
}

// parseStatement parses one statement, leaving curToken on its last
// token (usually the closing semicolon).
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.BEGIN:
		return p.parseCompoundStatement()
	case token.PRINT:
		return p.parsePrintStatement()
	case token.READ:
		return p.parseReadStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IDENT:
		if p.peekTokenIs(token.LPAREN) {
			return p.parseCallStatement()
		}
		return p.parseAssignment()
	}
	p.addError("%s: unexpected token %q at start of statement", p.curToken.Pos, p.curToken.Literal)
	p.skipToSemicolon()
	return nil
}

// skipToSemicolon is the panic-mode recovery point: drop tokens until a
// statement boundary.
func (p *Parser) skipToSemicolon() {
	for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.END) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}

func (p *Parser) parseAssignment() ast.Statement {
	lvalue := p.parseVariableReference()
	if !p.expectPeek(token.ASSIGN) {
		p.skipToSemicolon()
		return nil
	}
	stmt := &ast.AssignmentNode{Token: p.curToken, Lvalue: lvalue}
	p.nextToken()
	stmt.Expr = p.parseExpression(LOWEST)
	if stmt.Expr == nil {
		p.skipToSemicolon()
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		p.skipToSemicolon()
	}
	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintNode{Token: p.curToken}
	p.nextToken()
	stmt.Expr = p.parseExpression(LOWEST)
	if stmt.Expr == nil {
		p.skipToSemicolon()
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		p.skipToSemicolon()
	}
	return stmt
}

func (p *Parser) parseReadStatement() ast.Statement {
	stmt := &ast.ReadNode{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		p.skipToSemicolon()
		return nil
	}
	stmt.Target = p.parseVariableReference()
	if !p.expectPeek(token.SEMICOLON) {
		p.skipToSemicolon()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnNode{Token: p.curToken}
	p.nextToken()
	stmt.Expr = p.parseExpression(LOWEST)
	if stmt.Expr == nil {
		p.skipToSemicolon()
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		p.skipToSemicolon()
	}
	return stmt
}

func (p *Parser) parseCallStatement() ast.Statement {
	callTok := p.curToken
	call := p.parseIdentifierExpression()
	invocation, ok := call.(*ast.FunctionInvocation)
	if !ok {
		p.addError("%s: expected call statement", callTok.Pos)
		p.skipToSemicolon()
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		p.skipToSemicolon()
	}
	return &ast.CallStatement{Token: callTok, Call: invocation}
}

// parseIfStatement parses `if <expr> then <compound> [else <compound>]`.
func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfNode{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.THEN) {
		return nil
	}
	if !p.expectPeek(token.BEGIN) {
		return nil
	}
	stmt.Then = p.parseCompoundStatement()
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.BEGIN) {
			return nil
		}
		stmt.Else = p.parseCompoundStatement()
	}
	return stmt
}

// parseWhileStatement parses `while <expr> do <compound>`.
func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileNode{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.DO) {
		return nil
	}
	if !p.expectPeek(token.BEGIN) {
		return nil
	}
	stmt.Body = p.parseCompoundStatement()
	return stmt
}

// parseForStatement parses `for i := <int> to <int> do <compound>`,
// desugaring the header into the loop variable's declaration, the
// lower-bound assignment, and the upper-bound literal.
func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForNode{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	loopVar := p.curToken
	stmt.Decl = &ast.DeclNode{
		Token: loopVar,
		Variables: []*ast.VariableNode{{
			Token:        loopVar,
			Name:         loopVar.Literal,
			DeclaredType: types.INTEGER,
		}},
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	assignTok := p.curToken
	if !p.expectPeek(token.INT) {
		return nil
	}
	stmt.Init = &ast.AssignmentNode{
		Token:  assignTok,
		Lvalue: &ast.VariableReference{Token: loopVar, Name: loopVar.Literal},
		Expr:   &ast.ConstantValue{Token: p.curToken, ValueType: types.INTEGER},
	}

	if !p.expectPeek(token.TO) {
		return nil
	}
	if !p.expectPeek(token.INT) {
		return nil
	}
	stmt.Upper = &ast.ConstantValue{Token: p.curToken, ValueType: types.INTEGER}

	if !p.expectPeek(token.DO) {
		return nil
	}
	if !p.expectPeek(token.BEGIN) {
		return nil
	}
	stmt.Body = p.parseCompoundStatement()
	return stmt
}

// ============================================================================
// Expressions
// ============================================================================

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.curToken.Type]
	if !ok {
		p.addError("%s: unexpected token %q in expression", p.curToken.Pos, p.curToken.Literal)
		return nil
	}
	left := prefix()

	for left != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		p.nextToken()
		left = infix(left)
	}
	return left
}

// parseIdentifierExpression parses a variable reference with optional
// subscripts, or a function invocation when the name is followed by an
// argument list.
func (p *Parser) parseIdentifierExpression() ast.Expression {
	if p.peekTokenIs(token.LPAREN) {
		return p.parseFunctionInvocation()
	}
	return p.parseVariableReference()
}

// parseVariableReference parses `name` or `name[e1][e2]...`, leaving
// curToken on the last token consumed.
func (p *Parser) parseVariableReference() *ast.VariableReference {
	ref := &ast.VariableReference{Token: p.curToken, Name: p.curToken.Literal}
	for p.peekTokenIs(token.LBRACK) {
		p.nextToken()
		p.nextToken()
		idx := p.parseExpression(LOWEST)
		if idx == nil {
			return ref
		}
		ref.Indices = append(ref.Indices, idx)
		if !p.expectPeek(token.RBRACK) {
			return ref
		}
	}
	return ref
}

func (p *Parser) parseFunctionInvocation() ast.Expression {
	call := &ast.FunctionInvocation{Token: p.curToken, Name: p.curToken.Literal}
	p.nextToken() // onto '('

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call
	}

	p.nextToken()
	arg := p.parseExpression(LOWEST)
	if arg == nil {
		return nil
	}
	call.Arguments = append(call.Arguments, arg)
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		arg = p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return call
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	return &ast.ConstantValue{Token: p.curToken, ValueType: types.INTEGER}
}

func (p *Parser) parseRealLiteral() ast.Expression {
	return &ast.ConstantValue{Token: p.curToken, ValueType: types.REAL}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.ConstantValue{Token: p.curToken, ValueType: types.STRING}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.ConstantValue{Token: p.curToken, ValueType: types.BOOLEAN}
}

// parseUnaryExpression parses `-x` (mnemonic "neg") and `not x`.
func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpression{Token: p.curToken}
	if p.curTokenIs(token.MINUS) {
		expr.Op = "neg"
	} else {
		expr.Op = "not"
	}
	p.nextToken()
	expr.Operand = p.parseExpression(PREFIX)
	if expr.Operand == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{
		Token: p.curToken,
		Op:    p.curToken.Literal,
		Left:  left,
	}
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}
	return expr
}
