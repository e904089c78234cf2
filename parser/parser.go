// Package parser provides a recursive descent parser for the query language.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/freeeve/sql2awk/ast"
	"github.com/freeeve/sql2awk/dialect"
	"github.com/freeeve/sql2awk/lexer"
	"github.com/freeeve/sql2awk/token"
	"github.com/freeeve/sql2awk/visitor"
)

// Semantic error kinds raised during parsing.
var (
	// ErrBadLimit is returned when a LIMIT value is absent, non-integer
	// or not positive.
	ErrBadLimit = errors.NewKind("LIMIT must be a positive integer, got %q")
	// ErrAggregateInWhere is returned when a WHERE expression contains an
	// aggregate function.
	ErrAggregateInWhere = errors.NewKind("aggregate function not allowed in WHERE")
	// ErrNestedAggregate is returned when an aggregate appears inside the
	// argument of another aggregate.
	ErrNestedAggregate = errors.NewKind("aggregate function %q nested inside another aggregate")
	// ErrReservedWord is returned when a keyword or function name is used
	// as an identifier.
	ErrReservedWord = errors.NewKind("%q is a reserved word")
)

// Parser is a recursive descent parser for a single query statement.
type Parser struct {
	lexer   *lexer.Lexer
	dialect dialect.Dialect
	errs    []error
	cur     token.Item // current token
	aggSeq  int        // monotonic counter minting aggregate state ids
}

// ParseError represents a syntax error with position.
type ParseError struct {
	Pos     token.Pos
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d (offset %d): %s",
		e.Pos.Line, e.Pos.Column, e.Pos.Offset, e.Message)
}

// New creates a new parser for the given input and dialect.
func New(input string, d dialect.Dialect) *Parser {
	p := &Parser{
		lexer:   lexer.New(normalize(input)),
		dialect: d,
	}
	p.advance()
	return p
}

var parserPool = sync.Pool{
	New: func() any { return &Parser{} },
}

// Get returns a parser from the pool for the given input.
// Call Put(p) when done to return it to the pool.
func Get(input string, d dialect.Dialect) *Parser {
	p := parserPool.Get().(*Parser)
	p.lexer = lexer.Get(normalize(input))
	p.dialect = d
	p.errs = p.errs[:0]
	p.cur = token.Item{}
	p.aggSeq = 0
	p.advance()
	return p
}

// Put returns the parser and its lexer to the pool.
func Put(p *Parser) {
	if p.lexer != nil {
		lexer.Put(p.lexer)
		p.lexer = nil
	}
	parserPool.Put(p)
}

// normalize prepends "* " when the input starts with WHERE or LIMIT, so a
// bare filter or limit query projects all columns.
func normalize(input string) string {
	trimmed := strings.TrimLeft(input, " \t\r\n")
	for _, kw := range []string{"where", "limit"} {
		if len(trimmed) >= len(kw) && strings.EqualFold(trimmed[:len(kw)], kw) {
			if len(trimmed) == len(kw) || !isWordChar(trimmed[len(kw)]) {
				return "* " + input
			}
		}
	}
	return input
}

func isWordChar(ch byte) bool {
	return ch == '_' || (ch >= '0' && ch <= '9') ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// Parse parses a single query statement.
func (p *Parser) Parse() (*ast.SelectStmt, error) {
	stmt := p.parseSelect()
	if len(p.errs) > 0 {
		return nil, p.errs[0]
	}
	if !p.curIs(token.EOF) {
		p.errorf("unexpected token %v after statement", p.cur.Type)
		return nil, p.errs[0]
	}
	return stmt, nil
}

// parseSelect parses: [SELECT] [DISTINCT] projections [WHERE expr] [LIMIT n]
func (p *Parser) parseSelect() *ast.SelectStmt {
	stmt := ast.GetSelectStmt()
	stmt.StartPos = p.cur.Pos

	if p.curIs(token.SELECT) {
		p.advance()
	}
	if p.curIs(token.DISTINCT) {
		stmt.Distinct = true
		p.advance()
	}

	stmt.Projections = p.parseProjections(stmt.Projections)

	if p.curIs(token.WHERE) {
		p.advance()
		expr := p.parseExpr()
		if expr == nil {
			return stmt
		}
		if visitor.HasAggregate(expr) {
			p.kindErr(ErrAggregateInWhere.New())
			return stmt
		}
		stmt.Where = expr
	}

	if p.curIs(token.LIMIT) {
		p.advance()
		stmt.Limit = p.parseLimit()
	}

	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseProjections parses the comma-separated select list.
func (p *Parser) parseProjections(dst []ast.SelectExpr) []ast.SelectExpr {
	for {
		proj := p.parseProjection()
		if proj == nil {
			return dst
		}
		dst = append(dst, proj)
		if !p.curIs(token.COMMA) {
			return dst
		}
		p.advance()
	}
}

// parseProjection parses "*" or expr [AS identifier].
func (p *Parser) parseProjection() ast.SelectExpr {
	if p.curIs(token.ASTERISK) {
		star := &ast.StarExpr{StartPos: p.cur.Pos}
		p.advance()
		return star
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	proj := ast.GetAliasedExpr()
	proj.Expr = expr

	if p.curIs(token.AS) {
		p.advance()
		proj.Alias = p.parseIdentifier("alias")
		proj.EndPos = p.cur.Pos
	}
	return proj
}

// parseIdentifier expects a non-reserved identifier and returns its text.
func (p *Parser) parseIdentifier(what string) string {
	if !p.curIs(token.IDENT) {
		if p.cur.Type.IsKeyword() {
			p.kindErr(ErrReservedWord.New(p.cur.Value))
		} else {
			p.errorf("expected %s identifier, got %v", what, p.cur.Type)
		}
		return ""
	}
	name := p.cur.Value
	if p.dialect.IsFunction(name) {
		p.kindErr(ErrReservedWord.New(name))
		return ""
	}
	p.advance()
	return name
}

// parseLimit parses the LIMIT operand. Zero means the limit was rejected.
func (p *Parser) parseLimit() int64 {
	if !p.curIs(token.INT) {
		p.kindErr(ErrBadLimit.New(p.cur.Value))
		return 0
	}
	n, err := strconv.ParseInt(p.cur.Value, 10, 64)
	if err != nil || n <= 0 {
		p.kindErr(ErrBadLimit.New(p.cur.Value))
		return 0
	}
	p.advance()
	return n
}

// Token navigation and error helpers

func (p *Parser) advance() {
	p.cur = p.lexer.Next()
}

func (p *Parser) peek() token.Item {
	return p.lexer.Peek()
}

func (p *Parser) curIs(t token.Token) bool {
	return p.cur.Type == t
}

func (p *Parser) expect(t token.Token) bool {
	if !p.curIs(t) {
		p.errorf("expected %v, got %v", t, p.cur.Type)
		return false
	}
	p.advance()
	return true
}

func (p *Parser) errorf(format string, args ...any) {
	p.errs = append(p.errs, ParseError{
		Pos:     p.cur.Pos,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) kindErr(err error) {
	p.errs = append(p.errs, err)
}
