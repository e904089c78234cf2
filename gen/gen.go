// Package gen generates awk programs from parsed query statements.
//
// The generator walks the AST once per emission mode: scalar evaluation in
// the main block, incremental aggregate updates per input record, and final
// aggregate evaluation in the END block. Every emitted program carries the
// embedded runtime library, so the output is self-contained.
package gen

import (
	"bytes"
	"fmt"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/freeeve/sql2awk/ast"
	"github.com/freeeve/sql2awk/dialect"
	"github.com/freeeve/sql2awk/schema"
	"github.com/freeeve/sql2awk/types"
	"github.com/freeeve/sql2awk/visitor"
)

// ErrDuplicateProjection is returned when two output columns would share a
// name after alias resolution and * expansion.
var ErrDuplicateProjection = errors.NewKind("duplicate projection name %q")

// projection is one resolved output column.
type projection struct {
	expr ast.Expr
	name string
	typ  schema.Type
	agg  bool
}

// Generator emits an awk program for one statement.
type Generator struct {
	buf     bytes.Buffer
	stmt    *ast.SelectStmt
	schema  *schema.Schema
	dialect dialect.Dialect
	projs   []projection
}

// Generate compiles the statement into a complete awk program and the
// schema of the projected output.
func Generate(stmt *ast.SelectStmt, s *schema.Schema, d dialect.Dialect) (string, *schema.Schema, error) {
	g := &Generator{stmt: stmt, schema: s, dialect: d}
	out, err := g.resolve()
	if err != nil {
		return "", nil, err
	}
	g.emit()
	return g.buf.String(), out, nil
}

// resolve expands * projections, resolves display names and types, checks
// for duplicate output names and validates the filter expression.
func (g *Generator) resolve() (*schema.Schema, error) {
	for _, p := range g.stmt.Projections {
		switch n := p.(type) {
		case *ast.StarExpr:
			for _, col := range g.schema.Columns() {
				expr := &ast.ColName{Name: col.Name}
				g.projs = append(g.projs, projection{expr: expr, name: col.Name, typ: col.Type})
			}
		case *ast.AliasedExpr:
			t, err := types.Of(n.Expr, g.schema, g.dialect)
			if err != nil {
				return nil, err
			}
			g.projs = append(g.projs, projection{
				expr: n.Expr,
				name: n.Name(),
				typ:  t,
				agg:  visitor.HasAggregate(n.Expr),
			})
		}
	}
	if g.stmt.Where != nil {
		if _, err := types.Of(g.stmt.Where, g.schema, g.dialect); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]bool, len(g.projs))
	cols := make([]schema.Column, 0, len(g.projs))
	for _, p := range g.projs {
		if seen[p.name] {
			return nil, ErrDuplicateProjection.New(p.name)
		}
		seen[p.name] = true
		cols = append(cols, schema.Column{Name: p.name, Type: p.typ})
	}
	return schema.New(cols...)
}

func (g *Generator) emit() {
	g.line(0, `BEGIN { FS = "\t"; records = 0; }`)
	g.buf.WriteString(runtimeLib)
	if g.dialect == dialect.Gawk {
		g.buf.WriteString(runtimeGawk)
	}
	if g.hasAggregate() {
		g.emitAggregateMain()
		g.emitEpilogue()
	} else {
		g.emitScalarMain()
	}
}

func (g *Generator) hasAggregate() bool {
	for _, p := range g.projs {
		if p.agg {
			return true
		}
	}
	return false
}

// emitScalarMain emits the per-record block for a query without aggregates:
// filter, build the output record, gate on DISTINCT, print, honor LIMIT.
func (g *Generator) emitScalarMain() {
	g.line(0, "{")
	depth := 1
	if g.stmt.Where != nil {
		g.line(depth, "if (%s) {", g.exprString(g.stmt.Where))
		depth++
	}
	g.line(depth, "record = %s;", g.recordExpr(g.projs))
	if g.stmt.Distinct {
		g.line(depth, "if (!(record in distinct)) {")
		depth++
		g.line(depth, "distinct[record] = 1;")
	}
	g.line(depth, "print record;")
	g.emitLimit(depth)
	if g.stmt.Distinct {
		depth--
		g.line(depth, "}")
	}
	if g.stmt.Where != nil {
		depth--
		g.line(depth, "}")
	}
	g.line(0, "}")
}

// emitAggregateMain emits the per-record block for an aggregate query:
// filter, register the partition key, run every aggregate's update snippet.
func (g *Generator) emitAggregateMain() {
	g.line(0, "{")
	depth := 1
	if g.stmt.Where != nil {
		g.line(depth, "if (%s) {", g.exprString(g.stmt.Where))
		depth++
	}
	nonAgg := g.nonAggregates()
	if len(nonAgg) == 0 {
		g.line(depth, `part = "";`)
	} else {
		g.line(depth, "part = %s;", g.recordExpr(nonAgg))
	}
	g.line(depth, "partitions[part] = 1;")
	for _, p := range g.projs {
		if !p.agg {
			continue
		}
		for _, a := range visitor.Aggregates(p.expr) {
			g.emitUpdate(depth, a)
		}
	}
	if g.stmt.Where != nil {
		depth--
		g.line(depth, "}")
	}
	g.line(0, "}")
}

// emitUpdate emits the incremental state mutation for one aggregate
// instance. DISTINCT wraps the update in a set-membership guard keyed by
// (part, "set", value).
func (g *Generator) emitUpdate(depth int, a *ast.AggExpr) {
	arr := a.ID
	value := g.aggValue(a)

	if a.Distinct {
		g.line(depth, `if (!((part, "set", %s) in %s)) {`, value, arr)
		depth++
		g.line(depth, `%s[part, "set", %s] = 1;`, arr, value)
	}

	switch a.Name {
	case "count":
		g.line(depth, `%s[part, "count"]++;`, arr)
	case "sum", "total":
		g.line(depth, `%s[part, "sum"] += %s;`, arr, value)
	case "avg":
		g.line(depth, `%s[part, "count"]++;`, arr)
		g.line(depth, `%s[part, "sum"] += %s;`, arr, value)
	case "min":
		g.line(depth, `if (%s[part, "min"] == "" || %s < %s[part, "min"]) { %s[part, "min"] = %s; }`,
			arr, value, arr, arr, value)
	case "max":
		g.line(depth, `if (%s[part, "max"] == "" || %s > %s[part, "max"]) { %s[part, "max"] = %s; }`,
			arr, value, arr, arr, value)
	}

	if a.Distinct {
		depth--
		g.line(depth, "}")
	}
}

// emitEpilogue emits the END block: synthesize the empty partition when no
// row matched, then re-emit each partition's row in projection order.
func (g *Generator) emitEpilogue() {
	g.line(0, "END {")
	g.line(1, "nparts = 0;")
	g.line(1, "for (part in partitions) { nparts++; }")
	g.line(1, `if (nparts == 0) { partitions[""] = 1; }`)
	g.line(1, "for (part in partitions) {")
	depth := 2
	if len(g.nonAggregates()) > 0 {
		g.line(depth, `split(part, row, "\t");`)
	}
	col := 0
	for i, p := range g.projs {
		if i == 0 && len(g.projs) > 1 {
			g.line(depth, `ORS = "\t";`)
		}
		if i == len(g.projs)-1 {
			g.line(depth, `ORS = "\n";`)
		}
		if p.agg {
			g.line(depth, "print %s;", g.exprString(p.expr))
		} else {
			col++
			g.line(depth, "print row[%d];", col)
		}
	}
	g.emitLimit(depth)
	g.line(1, "}")
	g.line(0, "}")
}

func (g *Generator) emitLimit(depth int) {
	if g.stmt.Limit > 0 {
		g.line(depth, "records++;")
		g.line(depth, "if (records >= %d) { exit; }", g.stmt.Limit)
	}
}

func (g *Generator) nonAggregates() []projection {
	out := make([]projection, 0, len(g.projs))
	for _, p := range g.projs {
		if !p.agg {
			out = append(out, p)
		}
	}
	return out
}

// aggValue is the scalar form of an aggregate's argument; count(*) and
// count(DISTINCT *) read the whole record.
func (g *Generator) aggValue(a *ast.AggExpr) string {
	if a.Arg == nil {
		return "$0"
	}
	if _, ok := a.Arg.(*ast.StarExpr); ok {
		return "$0"
	}
	return g.exprString(a.Arg)
}

func (g *Generator) line(depth int, format string, args ...any) {
	for i := 0; i < depth; i++ {
		g.buf.WriteByte('\t')
	}
	fmt.Fprintf(&g.buf, format, args...)
	g.buf.WriteByte('\n')
}
