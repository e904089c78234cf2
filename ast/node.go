// Package ast defines the abstract syntax tree for query statements.
package ast

import "github.com/freeeve/sql2awk/token"

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// Expr represents an expression.
type Expr interface {
	Node
	exprNode()
}

// SelectExpr represents a projection in the select list.
type SelectExpr interface {
	Node
	selectExprNode()
}
