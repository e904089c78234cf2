package parser

import (
	"fmt"
	"strings"

	"github.com/freeeve/sql2awk/ast"
	"github.com/freeeve/sql2awk/dialect"
	"github.com/freeeve/sql2awk/token"
	"github.com/freeeve/sql2awk/visitor"
)

// Operator precedence levels, lowest to highest binding. All binary
// operators are left-associative; the unary prefix group is right-binding
// and sits between concatenation and exponentiation.
const (
	precLowest  = 0
	precOr      = 1  // OR
	precAnd     = 2  // AND
	precLike    = 3  // LIKE
	precNotLike = 4  // NOT LIKE
	precMatch   = 5  // ~, !~
	precEq      = 6  // =, ==, !=
	precRel     = 7  // <, <=, >, >=
	precAdd     = 8  // +, - (binary)
	precMul     = 9  // *, /, %
	precConcat  = 10 // ||
	precUnary   = 11 // prefix +, -, !
	precPower   = 12 // ^
)

// precedence returns the precedence of a binary operator token, or
// precLowest for non-operators. NOT LIKE is two tokens and is handled
// separately in the climbing loop.
func precedence(t token.Token) int {
	switch t {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.LIKE:
		return precLike
	case token.MATCH, token.NOTMATCH:
		return precMatch
	case token.EQ, token.NEQ:
		return precEq
	case token.LT, token.LTE, token.GT, token.GTE:
		return precRel
	case token.PLUS, token.MINUS:
		return precAdd
	case token.ASTERISK, token.SLASH, token.PERCENT:
		return precMul
	case token.CONCAT:
		return precConcat
	case token.CARET:
		return precPower
	default:
		return precLowest
	}
}

// parseExpr parses an expression using precedence climbing.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrec(precOr)
}

// parseExprPrec implements precedence climbing.
func (p *Parser) parseExprPrec(minPrec int) ast.Expr {
	left := p.parsePrimaryExpr()
	if left == nil {
		return nil
	}

	for {
		// NOT LIKE is the only two-token operator.
		if p.curIs(token.NOT) && p.peek().Type == token.LIKE {
			if precNotLike < minPrec {
				break
			}
			p.advance() // NOT
			p.advance() // LIKE
			right := p.parseExprPrec(precNotLike + 1)
			if right == nil {
				return nil
			}
			left = p.newBinary(left, token.NOTMATCH, p.likeCall(right))
			continue
		}
		if p.curIs(token.LIKE) {
			if precLike < minPrec {
				break
			}
			p.advance()
			right := p.parseExprPrec(precLike + 1)
			if right == nil {
				return nil
			}
			left = p.newBinary(left, token.MATCH, p.likeCall(right))
			continue
		}

		prec := precedence(p.cur.Type)
		if prec == precLowest || prec < minPrec {
			break
		}
		op := p.cur.Type
		p.advance()
		right := p.parseExprPrec(prec + 1)
		if right == nil {
			return nil
		}
		left = p.newBinary(left, op, right)
	}
	return left
}

func (p *Parser) newBinary(left ast.Expr, op token.Token, right ast.Expr) ast.Expr {
	b := ast.GetBinaryExpr()
	b.Left = left
	b.Op = op
	b.Right = right
	return b
}

// likeCall wraps a LIKE pattern in a like2regex call so the match happens
// against the translated pattern at runtime.
func (p *Parser) likeCall(pattern ast.Expr) ast.Expr {
	f := ast.GetFuncExpr()
	f.StartPos = pattern.Pos()
	f.EndPos = pattern.End()
	f.Name = "like2regex"
	f.Args = append(f.Args, pattern)
	return f
}

// parsePrimaryExpr parses a prefix expression, literal, column reference,
// function call or parenthesized expression.
func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch p.cur.Type {
	case token.PLUS, token.MINUS, token.BANG:
		u := ast.GetUnaryExpr()
		u.StartPos = p.cur.Pos
		u.Op = p.cur.Type
		p.advance()
		u.Expr = p.parseExprPrec(precUnary)
		if u.Expr == nil {
			return nil
		}
		return u

	case token.INT:
		return p.literal(ast.LiteralInt)
	case token.FLOAT:
		return p.literal(ast.LiteralFloat)
	case token.STRING:
		return p.literal(ast.LiteralString)
	case token.REGEX:
		return p.literal(ast.LiteralRegex)

	case token.LPAREN:
		paren := ast.GetParenExpr()
		paren.StartPos = p.cur.Pos
		p.advance()
		paren.Expr = p.parseExpr()
		if paren.Expr == nil {
			return nil
		}
		paren.EndPos = p.cur.Pos
		if !p.expect(token.RPAREN) {
			return nil
		}
		return paren

	case token.IDENT:
		if p.peek().Type == token.LPAREN {
			return p.parseCallExpr()
		}
		name := p.cur.Value
		if p.dialect.IsFunction(name) {
			p.kindErr(ErrReservedWord.New(name))
			return nil
		}
		col := ast.GetColName()
		col.StartPos = p.cur.Pos
		col.EndPos = token.Pos{
			Offset: p.cur.Pos.Offset + len(name),
			Line:   p.cur.Pos.Line,
			Column: p.cur.Pos.Column + len(name),
		}
		col.Name = name
		p.advance()
		return col
	}

	p.errorf("unexpected token %v in expression", p.cur.Type)
	return nil
}

// literal builds a literal node from the current token and consumes it.
func (p *Parser) literal(typ ast.LiteralType) ast.Expr {
	l := ast.GetLiteral()
	l.StartPos = p.cur.Pos
	l.EndPos = token.Pos{
		Offset: p.cur.Pos.Offset + len(p.cur.Value),
		Line:   p.cur.Pos.Line,
		Column: p.cur.Pos.Column + len(p.cur.Value),
	}
	l.Type = typ
	l.Value = p.cur.Value
	p.advance()
	return l
}

// parseCallExpr parses a scalar or aggregate function call. The current
// token is the function name; the next is "(".
func (p *Parser) parseCallExpr() ast.Expr {
	nameItem := p.cur
	name := strings.ToLower(nameItem.Value)
	p.advance() // name
	p.advance() // (

	isAggName := p.dialect.IsAggregate(name)

	distinct := false
	if p.curIs(token.DISTINCT) {
		if !isAggName {
			p.errorf("DISTINCT is not allowed in a call to %s", name)
			return nil
		}
		distinct = true
		p.advance()
	}

	// count(*) and count(DISTINCT *)
	if name == "count" && p.curIs(token.ASTERISK) {
		star := &ast.StarExpr{StartPos: p.cur.Pos}
		p.advance()
		end := p.cur.Pos
		if !p.expect(token.RPAREN) {
			return nil
		}
		return p.newAggExpr(nameItem.Pos, end, name, distinct, star)
	}

	var args []ast.Expr
	if !p.curIs(token.RPAREN) {
		for {
			arg := p.parseExpr()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
			if !p.curIs(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	end := p.cur.Pos
	if !p.expect(token.RPAREN) {
		return nil
	}

	if isAggName {
		// min and max double as scalar functions: a single-argument call
		// (or any DISTINCT call) aggregates, two or more arguments do not.
		if (name == "min" || name == "max") && !distinct && len(args) != 1 {
			if len(args) < 2 {
				p.errorf("%s takes at least one argument", name)
				return nil
			}
			return p.newFuncExpr(nameItem.Pos, end, name, args)
		}
		if len(args) != 1 {
			p.errorf("%s takes exactly one argument", name)
			return nil
		}
		return p.newAggExpr(nameItem.Pos, end, name, distinct, args[0])
	}

	if _, ok := p.dialect.Scalar(name); !ok {
		p.kindErr(dialect.ErrUnknownFunction.New(nameItem.Value))
		return nil
	}
	return p.newFuncExpr(nameItem.Pos, end, name, args)
}

func (p *Parser) newFuncExpr(start, end token.Pos, name string, args []ast.Expr) ast.Expr {
	f := ast.GetFuncExpr()
	f.StartPos = start
	f.EndPos = end
	f.Name = name
	f.Args = append(f.Args, args...)
	return f
}

// newAggExpr builds an aggregate node, rejecting aggregate-over-aggregate
// and minting the state id that names the awk state array.
func (p *Parser) newAggExpr(start, end token.Pos, name string, distinct bool, arg ast.Expr) ast.Expr {
	if arg != nil && visitor.HasAggregate(arg) {
		p.kindErr(ErrNestedAggregate.New(name))
		return nil
	}
	a := ast.GetAggExpr()
	a.StartPos = start
	a.EndPos = end
	a.Name = name
	a.Distinct = distinct
	a.Arg = arg
	a.ID = fmt.Sprintf("agg_%d", p.aggSeq)
	p.aggSeq++
	return a
}
