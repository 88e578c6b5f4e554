// ==============================================================================================
// FILE: parser/parser.go
// ==============================================================================================
// PACKAGE: parser
// PURPOSE: Recursive-descent, operator-precedence parser for ICE (spec
//          §4.2). Converts the lexer's token stream into an *ast.Program.
// ==============================================================================================

package parser

import (
	"strings"

	"github.com/icedev2/ice-go/ast"
	iceerrors "github.com/icedev2/ice-go/errors"
	"github.com/icedev2/ice-go/lexer"
	"github.com/icedev2/ice-go/token"
)

// Precedence levels, low to high (spec §4.2). Assignment is
// right-associative; everything else is left-associative.
const (
	_ int = iota
	LOWEST
	ASSIGNMENT // =
	OR         // atau
	AND        // dan
	EQUALITY   // == !=
	COMPARISON // < <= > >=
	TERM       // + -
	FACTOR     // * / %
	UNARY      // - bukan !
	CALL       // f(...), obj.name
)

var precedences = map[token.TokenType]int{
	token.EQUAL:         ASSIGNMENT,
	token.ATAU:          OR,
	token.DAN:           AND,
	token.EQUAL_EQUAL:   EQUALITY,
	token.NOT_EQUAL:     EQUALITY,
	token.LESS:          COMPARISON,
	token.LESS_EQUAL:    COMPARISON,
	token.GREATER:       COMPARISON,
	token.GREATER_EQUAL: COMPARISON,
	token.PLUS:          TERM,
	token.MINUS:         TERM,
	token.STAR:          FACTOR,
	token.SLASH:         FACTOR,
	token.PERCENT:       FACTOR,
	token.LPAREN:        CALL,
	token.DOT:           CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser holds all state needed to turn a token stream into an AST. It
// accumulates *errors.SyntaxError values (rather than the teacher's bare
// strings) so the caller can render source-context diagnostics.
type Parser struct {
	l         *lexer.Lexer
	curToken  token.Token
	peekToken token.Token
	errs      []*iceerrors.SyntaxError

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// New constructs a Parser over the given lexer and primes curToken/peekToken.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.NUMBER, p.parseNumberLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.BENAR, p.parseBooleanLiteral)
	p.registerPrefix(token.SALAH, p.parseBooleanLiteral)
	p.registerPrefix(token.KOSONG, p.parseNilLiteral)
	p.registerPrefix(token.INI, p.parseThisExpression)
	p.registerPrefix(token.MINUS, p.parseUnaryExpression)
	p.registerPrefix(token.BANG, p.parseUnaryExpression)
	p.registerPrefix(token.BUKAN, p.parseUnaryExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupingExpression)
	p.registerPrefix(token.BARU, p.parseNewExpression)
	p.registerPrefix(token.SUPER, p.parseSuperGetExpression)
	// Selected keyword-lexemes double as identifiers in expression
	// position (spec §4.2): `tampilkan`/`cetak`/`rentang` name builtins.
	p.registerPrefix(token.TAMPILKAN, p.parseKeywordAsIdentifier)
	p.registerPrefix(token.CETAK, p.parseKeywordAsIdentifier)
	p.registerPrefix(token.RENTANG, p.parseKeywordAsIdentifier)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	p.registerInfix(token.PLUS, p.parseBinaryExpression)
	p.registerInfix(token.MINUS, p.parseBinaryExpression)
	p.registerInfix(token.STAR, p.parseBinaryExpression)
	p.registerInfix(token.SLASH, p.parseBinaryExpression)
	p.registerInfix(token.PERCENT, p.parseBinaryExpression)
	p.registerInfix(token.EQUAL_EQUAL, p.parseBinaryExpression)
	p.registerInfix(token.NOT_EQUAL, p.parseBinaryExpression)
	p.registerInfix(token.LESS, p.parseBinaryExpression)
	p.registerInfix(token.LESS_EQUAL, p.parseBinaryExpression)
	p.registerInfix(token.GREATER, p.parseBinaryExpression)
	p.registerInfix(token.GREATER_EQUAL, p.parseBinaryExpression)
	p.registerInfix(token.DAN, p.parseLogicalExpression)
	p.registerInfix(token.ATAU, p.parseLogicalExpression)
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.DOT, p.parseGetExpression)
	p.registerInfix(token.EQUAL, p.parseAssignExpression)

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(t token.TokenType, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.TokenType, fn infixParseFn)   { p.infixParseFns[t] = fn }

// Errors returns every syntax error accumulated while parsing.
func (p *Parser) Errors() []*iceerrors.SyntaxError { return p.errs }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	tok, err := p.l.NextToken()
	if err != nil {
		if se, ok := err.(*iceerrors.SyntaxError); ok {
			p.errs = append(p.errs, se)
		} else {
			p.errs = append(p.errs, iceerrors.NewSyntaxError(err.Error(), p.curToken.Line, p.curToken.Column))
		}
		tok = token.Token{Type: token.EOF, Line: p.curToken.Line, Column: p.curToken.Column}
	}
	p.peekToken = tok
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.addSyntaxError(p.peekToken, "diharapkan token berikutnya "+string(t)+", dapat "+string(p.peekToken.Type))
}

func (p *Parser) addSyntaxError(tok token.Token, msg string) {
	p.errs = append(p.errs, iceerrors.NewSyntaxError(msg, tok.Line, tok.Column))
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram is the parser's entry point.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}

// ------------------------------------------------------------------------
// STATEMENTS
// ------------------------------------------------------------------------

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.BILANGAN, token.DESIMAL, token.TEKS, token.BOOLEAN:
		return p.parseVarDecl()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.JIKA:
		return p.parseIfStatement()
	case token.SELAGI:
		return p.parseWhileStatement()
	case token.UNTUK:
		return p.parseForRangeStatement()
	case token.KEMBALIKAN:
		return p.parseReturnStatement()
	case token.TUGAS, token.FUNGSI:
		return p.parseFunctionDecl()
	case token.KELAS:
		return p.parseClassDecl()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVarDecl() ast.Statement {
	typeTok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	var value ast.Expression
	if p.peekTokenIs(token.EQUAL) {
		p.nextToken()
		p.nextToken()
		value = p.parseExpression(LOWEST)
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.VarDecl{
		Token:       typeTok,
		TypeKeyword: strings.ToLower(typeTok.Lexeme),
		Name:        name,
		Value:       value,
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}
}

// parseBlockStatement assumes curToken is the opening '{'; on return
// curToken is the matching '}'.
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	branch, ok := p.parseIfBranch()
	if !ok {
		return nil
	}
	stmt.Branches = append(stmt.Branches, branch)

	for p.peekTokenIs(token.JIKALAU) {
		p.nextToken()
		branch, ok := p.parseIfBranch()
		if !ok {
			return nil
		}
		stmt.Branches = append(stmt.Branches, branch)
	}
	if p.peekTokenIs(token.KALAU) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return nil
		}
		stmt.Else = p.parseBlockStatement()
	}
	return stmt
}

// parseIfBranch assumes curToken is 'jika' or 'jikalau'.
func (p *Parser) parseIfBranch() (ast.IfBranch, bool) {
	if !p.expectPeek(token.LPAREN) {
		return ast.IfBranch{}, false
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return ast.IfBranch{}, false
	}
	if !p.expectPeek(token.LBRACE) {
		return ast.IfBranch{}, false
	}
	body := p.parseBlockStatement()
	return ast.IfBranch{Condition: cond, Body: body}, true
}

func (p *Parser) parseWhileStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	cond := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.WhileStatement{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseForRangeStatement() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	variable := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.DALAM) {
		return nil
	}
	if !p.expectPeek(token.RENTANG) {
		return nil
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args := p.parseExpressionList(token.RPAREN)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.ForRangeStatement{Token: tok, Variable: variable, RangeArgs: args, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Statement {
	tok := p.curToken
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return &ast.ReturnStatement{Token: tok}
	}
	p.nextToken()
	val := p.parseExpression(LOWEST)
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return &ast.ReturnStatement{Token: tok, ReturnValue: val}
}

func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	name := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseFunctionParameters()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockStatement()
	return &ast.FunctionDecl{Token: tok, Name: name, Parameters: params, Body: body}
}

func (p *Parser) parseFunctionParameters() []*ast.Identifier {
	var params []*ast.Identifier
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

// parseClassDecl parses `kelas Name [: Super]? { member* }` (spec §4.2).
// Members are `tugas`/`fungsi` methods or `properti` declarations;
// anything else inside the body is a syntax error.
func (p *Parser) parseClassDecl() ast.Statement {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl := &ast.ClassDecl{Token: tok, Name: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		decl.Superclass = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.TUGAS, token.FUNGSI:
			if fn := p.parseFunctionDecl(); fn != nil {
				decl.Methods = append(decl.Methods, fn)
			}
		case token.PROPERTI:
			if prop := p.parseProperty(); prop != nil {
				decl.Properties = append(decl.Properties, prop)
			}
		default:
			p.addSyntaxError(p.curToken, "anggota kelas tidak valid: "+string(p.curToken.Type))
			return nil
		}
		p.nextToken()
	}
	return decl
}

// parseProperty parses `properti name { get {...} | set(param) {...} }`;
// either or both accessors may be present (spec §4.2, §4.5).
func (p *Parser) parseProperty() *ast.PropertyDecl {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	prop := &ast.PropertyDecl{Token: tok, Name: p.curToken.Lexeme}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.GET:
			if !p.expectPeek(token.LBRACE) {
				return nil
			}
			prop.Getter = p.parseBlockStatement()
		case token.SET:
			if !p.expectPeek(token.LPAREN) {
				return nil
			}
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			prop.SetterParam = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
			if !p.expectPeek(token.RPAREN) {
				return nil
			}
			if !p.expectPeek(token.LBRACE) {
				return nil
			}
			prop.Setter = p.parseBlockStatement()
		default:
			p.addSyntaxError(p.curToken, "diharapkan get atau set dalam properti")
			return nil
		}
		p.nextToken()
	}
	return prop
}

// ------------------------------------------------------------------------
// EXPRESSIONS
// ------------------------------------------------------------------------

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addSyntaxError(p.curToken, "tidak ada ekspresi yang valid dimulai dengan "+string(p.curToken.Type))
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

// parseExpressionList parses a comma-separated argument list terminated
// by `end`; on return curToken is `end`.
func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	var list []ast.Expression
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return nil
	}
	return list
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

// parseKeywordAsIdentifier lets `tampilkan`/`cetak`/`rentang` act as plain
// identifiers in expression position, naming the matching builtin.
func (p *Parser) parseKeywordAsIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: strings.ToLower(p.curToken.Lexeme)}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.curToken
	switch v := tok.Value.(type) {
	case int64:
		return &ast.IntegerLiteral{Token: tok, Value: v}
	case float64:
		return &ast.FloatLiteral{Token: tok, Value: v}
	default:
		p.addSyntaxError(tok, "literal angka tidak valid")
		return nil
	}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Value.(string)}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.Type == token.BENAR}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	return &ast.NilLiteral{Token: p.curToken}
}

func (p *Parser) parseThisExpression() ast.Expression {
	return &ast.ThisExpression{Token: p.curToken}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.curToken
	op := tok.Lexeme
	if tok.Type == token.BANG {
		op = "bukan"
	}
	p.nextToken()
	right := p.parseExpression(UNARY)
	return &ast.UnaryExpression{Token: tok, Operator: op, Right: right}
}

func (p *Parser) parseGroupingExpression() ast.Expression {
	tok := p.curToken
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return &ast.GroupingExpression{Token: tok, Expression: expr}
}

// parseNewExpression parses `baru IDENT(args?)` (spec §4.2).
func (p *Parser) parseNewExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	className := p.curToken.Lexeme
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args := p.parseExpressionList(token.RPAREN)
	return &ast.NewExpression{Token: tok, ClassName: className, Arguments: args}
}

func (p *Parser) parseSuperGetExpression() ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.DOT) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.SuperGetExpression{Token: tok, Name: p.curToken.Lexeme}
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Lexeme
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseLogicalExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := tok.Lexeme
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &ast.LogicalExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	tok := p.curToken
	args := p.parseExpressionList(token.RPAREN)
	return &ast.CallExpression{Token: tok, Callee: callee, Arguments: args}
}

func (p *Parser) parseGetExpression(object ast.Expression) ast.Expression {
	tok := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.GetExpression{Token: tok, Object: object, Name: p.curToken.Lexeme}
}

// parseAssignExpression enforces assignment-target validity (spec §4.2):
// the left side must be a variable reference or a property get. Right
// side recurses at LOWEST so that `a = b = c` parses right-associatively.
func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	switch left.(type) {
	case *ast.Identifier, *ast.GetExpression:
	default:
		p.addSyntaxError(tok, "target penugasan tidak valid")
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return &ast.AssignExpression{Token: tok, Target: left, Value: value}
}
