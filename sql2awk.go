// Package sql2awk translates a restricted SQL SELECT statement into a
// self-contained awk program over a tab-separated stream.
//
// Basic usage:
//
//	s, _ := schema.New(
//	    schema.Column{Name: "src", Type: schema.Str},
//	    schema.Column{Name: "bytes", Type: schema.Int},
//	)
//	prog, err := sql2awk.Translate("SELECT src, bytes WHERE bytes > 100", s, dialect.Portable)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.Text)
//
// The generated program reads stdin and writes stdout, with TAB as field
// separator on both sides. Translation is a pure function: concurrent calls
// need no coordination.
package sql2awk

import (
	"github.com/freeeve/sql2awk/ast"
	"github.com/freeeve/sql2awk/dialect"
	"github.com/freeeve/sql2awk/gen"
	"github.com/freeeve/sql2awk/parser"
	"github.com/freeeve/sql2awk/schema"
	"github.com/freeeve/sql2awk/visitor"
)

// Program is the result of a translation.
type Program struct {
	Text   string         // complete awk program text
	Output *schema.Schema // projected columns in order, with resolved types
}

// Translate compiles a query against a schema for the given dialect.
func Translate(query string, s *schema.Schema, d dialect.Dialect) (*Program, error) {
	stmt, err := Parse(query, d)
	if err != nil {
		return nil, err
	}
	defer Repool(stmt)
	text, out, err := gen.Generate(stmt, s, d)
	if err != nil {
		return nil, err
	}
	return &Program{Text: text, Output: out}, nil
}

// Parse parses a query statement without generating code.
// The parser uses internal pooling for efficiency; call Repool(stmt) when
// done with the statement (optional, see Repool).
func Parse(query string, d dialect.Dialect) (*ast.SelectStmt, error) {
	p := parser.Get(query, d)
	stmt, err := p.Parse()
	parser.Put(p)
	return stmt, err
}

// Repool returns AST nodes to internal pools for reuse.
// This is optional - if not called, nodes are garbage collected normally.
func Repool(stmt *ast.SelectStmt) {
	ast.ReleaseAST(stmt)
}

// Walk traverses the AST calling the function for each node.
// If the function returns false, children are not visited.
func Walk(node ast.Node, fn func(ast.Node) bool) {
	visitor.WalkFunc(node, fn)
}

// Inspect calls fn for each node in the AST.
// If fn returns false, children are not visited.
func Inspect(node ast.Node, fn func(ast.Node) bool) {
	visitor.Inspect(node, fn)
}

// Dialects.
const (
	Portable = dialect.Portable
	Gawk     = dialect.Gawk
)

// Common type aliases for convenience.
type (
	Dialect     = dialect.Dialect
	Schema      = schema.Schema
	Column      = schema.Column
	SelectStmt  = ast.SelectStmt
	Expr        = ast.Expr
	Node        = ast.Node
	ColName     = ast.ColName
	StarExpr    = ast.StarExpr
	Literal     = ast.Literal
	UnaryExpr   = ast.UnaryExpr
	BinaryExpr  = ast.BinaryExpr
	ParenExpr   = ast.ParenExpr
	FuncExpr    = ast.FuncExpr
	AggExpr     = ast.AggExpr
	AliasedExpr = ast.AliasedExpr
)
