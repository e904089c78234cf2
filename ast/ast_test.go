package ast

import (
	"testing"

	"github.com/freeeve/sql2awk/token"
)

func col(name string) *ColName {
	return &ColName{Name: name}
}

func TestAliasedExprName(t *testing.T) {
	tests := []struct {
		name string
		expr *AliasedExpr
		want string
	}{
		{"alias wins", &AliasedExpr{Expr: col("src"), Alias: "host"}, "host"},
		{"bare column", &AliasedExpr{Expr: col("src")}, "src"},
		{"function", &AliasedExpr{Expr: &FuncExpr{Name: "lower", Args: []Expr{col("src")}}}, "lower"},
		{"aggregate", &AliasedExpr{Expr: &AggExpr{Name: "count", Arg: &StarExpr{}, ID: "agg_0"}}, "count"},
		{"expression", &AliasedExpr{Expr: &BinaryExpr{Left: col("a"), Op: token.PLUS, Right: col("b")}}, "expr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.Name(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReleaseASTReuse(t *testing.T) {
	stmt := GetSelectStmt()
	stmt.Projections = append(stmt.Projections, &AliasedExpr{Expr: col("src")})
	ReleaseAST(stmt)

	next := GetSelectStmt()
	if len(next.Projections) != 0 {
		t.Errorf("pooled statement not reset: %d projections", len(next.Projections))
	}
	if next.Where != nil || next.Distinct || next.Limit != 0 {
		t.Error("pooled statement carries stale fields")
	}
}
