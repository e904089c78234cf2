// Package visitor provides AST traversal utilities.
package visitor

import "github.com/freeeve/sql2awk/ast"

// Visitor is the interface for AST traversal.
type Visitor interface {
	Visit(node ast.Node) Visitor
}

// Walk traverses an AST in depth-first order.
func Walk(v Visitor, node ast.Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}
	walkChildren(v, node)
}

func walkChildren(v Visitor, node ast.Node) {
	switch n := node.(type) {
	case *ast.SelectStmt:
		for _, p := range n.Projections {
			Walk(v, p)
		}
		if n.Where != nil {
			Walk(v, n.Where)
		}

	case *ast.AliasedExpr:
		Walk(v, n.Expr)

	case *ast.UnaryExpr:
		Walk(v, n.Expr)

	case *ast.BinaryExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *ast.ParenExpr:
		Walk(v, n.Expr)

	case *ast.FuncExpr:
		for _, a := range n.Args {
			Walk(v, a)
		}

	case *ast.AggExpr:
		if n.Arg != nil {
			Walk(v, n.Arg)
		}

	case *ast.ColName, *ast.StarExpr, *ast.Literal:
		// leaves
	}
}

// funcVisitor adapts a function to the Visitor interface.
type funcVisitor func(ast.Node) bool

func (f funcVisitor) Visit(node ast.Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// WalkFunc traverses the AST calling fn for each node.
// If fn returns false, children are not visited.
func WalkFunc(node ast.Node, fn func(ast.Node) bool) {
	Walk(funcVisitor(fn), node)
}

// Inspect calls f for each node in the AST.
// If f returns false, children are not visited.
func Inspect(node ast.Node, f func(ast.Node) bool) {
	WalkFunc(node, f)
}

// HasAggregate reports whether the subtree contains an aggregate call.
func HasAggregate(node ast.Node) bool {
	found := false
	Inspect(node, func(n ast.Node) bool {
		if _, ok := n.(*ast.AggExpr); ok {
			found = true
		}
		return !found
	})
	return found
}

// Aggregates returns every aggregate call under node in source order.
func Aggregates(node ast.Node) []*ast.AggExpr {
	var out []*ast.AggExpr
	Inspect(node, func(n ast.Node) bool {
		if a, ok := n.(*ast.AggExpr); ok {
			out = append(out, a)
			// Nested aggregates are rejected at parse time, so there is
			// nothing to find below one.
			return false
		}
		return true
	})
	return out
}
