package ast

import "github.com/freeeve/sql2awk/token"

// AliasedExpr is a projection expression with an optional alias.
type AliasedExpr struct {
	Expr   Expr
	Alias  string
	EndPos token.Pos
}

func (*AliasedExpr) selectExprNode()  {}
func (a *AliasedExpr) Pos() token.Pos { return a.Expr.Pos() }
func (a *AliasedExpr) End() token.Pos {
	if a.EndPos.IsValid() {
		return a.EndPos
	}
	return a.Expr.End()
}

// Name returns the output column name: the alias if present, the column
// name for a bare column, the function name for a function call, and
// "expr" for anything else.
func (a *AliasedExpr) Name() string {
	if a.Alias != "" {
		return a.Alias
	}
	switch e := a.Expr.(type) {
	case *ColName:
		return e.Name
	case *FuncExpr:
		return e.Name
	case *AggExpr:
		return e.Name
	}
	return "expr"
}

// SelectStmt is a parsed query. Limit is 0 when absent; a present LIMIT is
// always positive.
type SelectStmt struct {
	StartPos    token.Pos
	EndPos      token.Pos
	Distinct    bool
	Projections []SelectExpr
	Where       Expr
	Limit       int64
}

func (s *SelectStmt) Pos() token.Pos { return s.StartPos }
func (s *SelectStmt) End() token.Pos { return s.EndPos }
