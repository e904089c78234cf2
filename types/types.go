// Package types resolves the datatype an expression produces over a given
// schema. Resolution is structural: an exhaustive switch over the AST
// variants rather than a method on each node.
package types

import (
	"gopkg.in/src-d/go-errors.v1"

	"github.com/freeeve/sql2awk/ast"
	"github.com/freeeve/sql2awk/dialect"
	"github.com/freeeve/sql2awk/schema"
	"github.com/freeeve/sql2awk/token"
)

// ErrUntypedStar is returned when "*" is used where a single typed value
// is required. The whole record is only legal as a projection or as the
// argument of count(*).
var ErrUntypedStar = errors.NewKind("* has no datatype outside a projection or count(*)")

// Of resolves the datatype of an expression against the schema. It visits
// every subexpression, so unknown columns and functions surface here even
// when they do not affect the resulting type.
func Of(e ast.Expr, s *schema.Schema, d dialect.Dialect) (schema.Type, error) {
	switch n := e.(type) {
	case *ast.Literal:
		switch n.Type {
		case ast.LiteralInt:
			return schema.Int, nil
		case ast.LiteralFloat:
			return schema.Real, nil
		}
		return schema.Str, nil

	case *ast.ColName:
		col, ok := s.Column(n.Name)
		if !ok {
			return 0, schema.ErrUnknownColumn.New(n.Name)
		}
		return col.Type, nil

	case *ast.StarExpr:
		return 0, ErrUntypedStar.New()

	case *ast.UnaryExpr:
		t, err := Of(n.Expr, s, d)
		if err != nil {
			return 0, err
		}
		if n.Op == token.BANG {
			return schema.Int, nil
		}
		return t, nil

	case *ast.BinaryExpr:
		return ofBinary(n, s, d)

	case *ast.ParenExpr:
		return Of(n.Expr, s, d)

	case *ast.FuncExpr:
		return ofFunc(n, s, d)

	case *ast.AggExpr:
		return ofAggregate(n, s, d)
	}
	return schema.Str, nil
}

func ofBinary(n *ast.BinaryExpr, s *schema.Schema, d dialect.Dialect) (schema.Type, error) {
	lt, err := Of(n.Left, s, d)
	if err != nil {
		return 0, err
	}
	rt, err := Of(n.Right, s, d)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case token.OR, token.AND, token.MATCH, token.NOTMATCH,
		token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE:
		// awk has no boolean; comparisons and logical ops yield int.
		return schema.Int, nil
	case token.SLASH, token.PERCENT:
		return schema.Real, nil
	case token.CONCAT:
		return schema.Str, nil
	}
	// +, -, *, ^: real wins, otherwise int.
	if lt == schema.Real || rt == schema.Real {
		return schema.Real, nil
	}
	return schema.Int, nil
}

func ofFunc(n *ast.FuncExpr, s *schema.Schema, d dialect.Dialect) (schema.Type, error) {
	argTypes := make([]schema.Type, len(n.Args))
	for i, a := range n.Args {
		t, err := Of(a, s, d)
		if err != nil {
			return 0, err
		}
		argTypes[i] = t
	}
	if n.Name == "like2regex" {
		// Internal desugaring of LIKE; not part of any dialect table.
		return schema.Str, nil
	}
	fn, ok := d.Scalar(n.Name)
	if !ok {
		return 0, dialect.ErrUnknownFunction.New(n.Name)
	}
	return fn.Result.Type(argTypes), nil
}

func ofAggregate(n *ast.AggExpr, s *schema.Schema, d dialect.Dialect) (schema.Type, error) {
	if n.Name == "count" {
		// count is int regardless of its argument; still resolve a non-star
		// argument so unknown columns are caught.
		if _, ok := n.Arg.(*ast.StarExpr); !ok && n.Arg != nil {
			if _, err := Of(n.Arg, s, d); err != nil {
				return 0, err
			}
		}
		return schema.Int, nil
	}
	t, err := Of(n.Arg, s, d)
	if err != nil {
		return 0, err
	}
	return dialect.AggregateType(n.Name, t), nil
}
