package ast

import "github.com/freeeve/sql2awk/token"

// ColName represents a column reference.
type ColName struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
}

func (*ColName) exprNode()        {}
func (c *ColName) Pos() token.Pos { return c.StartPos }
func (c *ColName) End() token.Pos { return c.EndPos }

// StarExpr represents "*": the whole record as a projection, or the sole
// argument of count(*).
type StarExpr struct {
	StartPos token.Pos
}

func (*StarExpr) exprNode()        {}
func (*StarExpr) selectExprNode()  {}
func (s *StarExpr) Pos() token.Pos { return s.StartPos }
func (s *StarExpr) End() token.Pos {
	p := s.StartPos
	p.Offset++
	p.Column++
	return p
}

// LiteralType indicates the type of literal.
type LiteralType int

const (
	LiteralInt LiteralType = iota
	LiteralFloat
	LiteralString
	LiteralRegex
)

// Literal represents a literal value. Value holds the payload without
// quoting: numeric text verbatim, string text unquoted, regex text without
// the surrounding slashes.
type Literal struct {
	StartPos token.Pos
	EndPos   token.Pos
	Type     LiteralType
	Value    string
}

func (*Literal) exprNode()        {}
func (l *Literal) Pos() token.Pos { return l.StartPos }
func (l *Literal) End() token.Pos { return l.EndPos }

// UnaryExpr represents a prefix operator application: +x, -x, !x.
type UnaryExpr struct {
	StartPos token.Pos
	Op       token.Token
	Expr     Expr
}

func (*UnaryExpr) exprNode()        {}
func (u *UnaryExpr) Pos() token.Pos { return u.StartPos }
func (u *UnaryExpr) End() token.Pos { return u.Expr.End() }

// BinaryExpr represents a binary operator application. LIKE and NOT LIKE
// are desugared during parsing into MATCH/NOTMATCH against like2regex, so
// they never appear here.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (*BinaryExpr) exprNode()        {}
func (b *BinaryExpr) Pos() token.Pos { return b.Left.Pos() }
func (b *BinaryExpr) End() token.Pos { return b.Right.End() }

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Expr     Expr
}

func (*ParenExpr) exprNode()        {}
func (p *ParenExpr) Pos() token.Pos { return p.StartPos }
func (p *ParenExpr) End() token.Pos { return p.EndPos }

// FuncExpr represents a scalar function call. Name is normalized lowercase.
type FuncExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
	Args     []Expr
}

func (*FuncExpr) exprNode()        {}
func (f *FuncExpr) Pos() token.Pos { return f.StartPos }
func (f *FuncExpr) End() token.Pos { return f.EndPos }

// AggExpr represents an aggregate function call. Arg is a *StarExpr for
// count(*). ID is unique within the query and names the awk state array,
// so two textually identical aggregates keep independent state.
type AggExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
	Distinct bool
	Arg      Expr
	ID       string
}

func (*AggExpr) exprNode()        {}
func (a *AggExpr) Pos() token.Pos { return a.StartPos }
func (a *AggExpr) End() token.Pos { return a.EndPos }
