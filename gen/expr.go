package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/freeeve/sql2awk/ast"
	"github.com/freeeve/sql2awk/token"
)

// exprString emits the awk text for an expression. Columns become 1-based
// field references, binary expressions are parenthesized so awk sees the
// parsed grouping, and aggregate calls emit their final form (they can only
// reach here inside the END block).
func (g *Generator) exprString(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Literal:
		switch n.Type {
		case ast.LiteralString:
			return `"` + escapeString(n.Value) + `"`
		case ast.LiteralRegex:
			return "/" + n.Value + "/"
		}
		return n.Value

	case *ast.ColName:
		col, _ := g.schema.Column(n.Name)
		return "$" + strconv.Itoa(col.Index+1)

	case *ast.StarExpr:
		return "$0"

	case *ast.UnaryExpr:
		return n.Op.String() + "(" + g.exprString(n.Expr) + ")"

	case *ast.ParenExpr:
		return "(" + g.exprString(n.Expr) + ")"

	case *ast.BinaryExpr:
		l := g.exprString(n.Left)
		r := g.exprString(n.Right)
		switch n.Op {
		case token.CONCAT:
			// awk concatenates by juxtaposition.
			return "(" + l + " " + r + ")"
		case token.AND:
			return "(" + l + " && " + r + ")"
		case token.OR:
			return "(" + l + " || " + r + ")"
		case token.EQ:
			return "(" + l + " == " + r + ")"
		}
		return "(" + l + " " + n.Op.String() + " " + r + ")"

	case *ast.FuncExpr:
		return g.funcString(n)

	case *ast.AggExpr:
		return g.finalString(n)
	}
	return ""
}

func (g *Generator) funcString(n *ast.FuncExpr) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.exprString(a)
	}

	name := n.Name
	if fn, ok := g.dialect.Scalar(n.Name); ok {
		name = fn.AwkName
	}

	// The runtime min/max take two arguments; n-ary calls nest.
	if (name == "min" || name == "max") && len(args) > 2 {
		out := name + "(" + args[0] + ", " + args[1] + ")"
		for _, a := range args[2:] {
			out = name + "(" + out + ", " + a + ")"
		}
		return out
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

// finalString emits the END-block evaluation of an aggregate's state array.
func (g *Generator) finalString(a *ast.AggExpr) string {
	arr := a.ID
	switch a.Name {
	case "count":
		return fmt.Sprintf(`((part, "count") in %s ? %s[part, "count"] : 0)`, arr, arr)
	case "sum", "total":
		return fmt.Sprintf(`%s[part, "sum"]`, arr)
	case "avg":
		return fmt.Sprintf(`(%s[part, "sum"] / %s[part, "count"])`, arr, arr)
	case "min":
		return fmt.Sprintf(`%s[part, "min"]`, arr)
	case "max":
		return fmt.Sprintf(`%s[part, "max"]`, arr)
	}
	return ""
}

// recordExpr joins the projections' scalar forms with tab separators into
// a single awk concatenation.
func (g *Generator) recordExpr(projs []projection) string {
	parts := make([]string, len(projs))
	for i, p := range projs {
		parts[i] = g.exprString(p.expr)
	}
	return strings.Join(parts, ` "\t" `)
}

// escapeString makes a string literal safe inside awk double quotes.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
