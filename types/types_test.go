package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freeeve/sql2awk/ast"
	"github.com/freeeve/sql2awk/dialect"
	"github.com/freeeve/sql2awk/parser"
	"github.com/freeeve/sql2awk/schema"
)

func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.New(
		schema.Column{Name: "src", Type: schema.Str},
		schema.Column{Name: "dst", Type: schema.Str},
		schema.Column{Name: "bytes", Type: schema.Int},
		schema.Column{Name: "dur", Type: schema.Real},
	)
	require.NoError(t, err)
	return s
}

// parseExpr parses "SELECT <expr>" and returns the projection expression.
func parseExpr(t *testing.T, expr string, d dialect.Dialect) ast.Expr {
	t.Helper()
	stmt, err := parser.New("SELECT "+expr, d).Parse()
	require.NoError(t, err, expr)
	return stmt.Projections[0].(*ast.AliasedExpr).Expr
}

func TestOf(t *testing.T) {
	s := testSchema(t)

	tests := []struct {
		expr string
		want schema.Type
	}{
		{"42", schema.Int},
		{"4.2", schema.Real},
		{"'x'", schema.Str},
		{"src", schema.Str},
		{"bytes", schema.Int},
		{"dur", schema.Real},
		{"bytes + 1", schema.Int},
		{"bytes + dur", schema.Real},
		{"bytes / 2", schema.Real},
		{"bytes % 2", schema.Real},
		{"bytes > 100", schema.Int},
		{"src == dst", schema.Int},
		{"src ~ /a/", schema.Int},
		{"src || dst", schema.Str},
		{"!bytes", schema.Int},
		{"-dur", schema.Real},
		{"-bytes", schema.Int},
		{"bytes ^ 2", schema.Int},
		{"dur ^ 2", schema.Real},
		{"lower(src)", schema.Str},
		{"length(src)", schema.Int},
		{"abs(bytes)", schema.Int},
		{"abs(dur)", schema.Real},
		{"max(bytes, dur)", schema.Real},
		{"ip_in_cidr(src, '10.0.0.0/8')", schema.Int},
		{"count(*)", schema.Int},
		{"count(src)", schema.Int},
		{"sum(bytes)", schema.Int},
		{"sum(dur)", schema.Real},
		{"min(src)", schema.Str},
		{"avg(bytes)", schema.Int},
		{"(bytes + dur)", schema.Real},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Of(parseExpr(t, tt.expr, dialect.Portable), s, dialect.Portable)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOfErrors(t *testing.T) {
	s := testSchema(t)

	_, err := Of(parseExpr(t, "nosuchcol", dialect.Portable), s, dialect.Portable)
	assert.True(t, schema.ErrUnknownColumn.Is(err), "got %v", err)

	// Unknown columns surface even when they cannot affect the type.
	_, err = Of(parseExpr(t, "count(nosuchcol)", dialect.Portable), s, dialect.Portable)
	assert.True(t, schema.ErrUnknownColumn.Is(err), "got %v", err)
}

func TestGawkReturnTypes(t *testing.T) {
	s := testSchema(t)
	got, err := Of(parseExpr(t, "sqrt(bytes)", dialect.Gawk), s, dialect.Gawk)
	require.NoError(t, err)
	assert.Equal(t, schema.Real, got)
}
