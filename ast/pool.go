package ast

import (
	"reflect"
	"sync"
)

// isNil checks if a Node interface contains nil.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Node pools for reducing allocations during parsing.
// Use Get* functions to obtain nodes and ReleaseAST to return a whole tree.

var (
	selectExprSlicePool = sync.Pool{
		New: func() any {
			s := make([]SelectExpr, 0, 8)
			return &s
		},
	}
	exprSlicePool = sync.Pool{
		New: func() any {
			s := make([]Expr, 0, 4)
			return &s
		},
	}

	colNamePool     = sync.Pool{New: func() any { return &ColName{} }}
	literalPool     = sync.Pool{New: func() any { return &Literal{} }}
	unaryExprPool   = sync.Pool{New: func() any { return &UnaryExpr{} }}
	binaryExprPool  = sync.Pool{New: func() any { return &BinaryExpr{} }}
	parenExprPool   = sync.Pool{New: func() any { return &ParenExpr{} }}
	funcExprPool    = sync.Pool{New: func() any { return &FuncExpr{} }}
	aggExprPool     = sync.Pool{New: func() any { return &AggExpr{} }}
	aliasedExprPool = sync.Pool{New: func() any { return &AliasedExpr{} }}
	selectStmtPool  = sync.Pool{New: func() any { return &SelectStmt{} }}
)

// GetSelectExprSlice returns a []SelectExpr from the pool.
func GetSelectExprSlice() *[]SelectExpr {
	return selectExprSlicePool.Get().(*[]SelectExpr)
}

// GetExprSlice returns a []Expr from the pool.
func GetExprSlice() *[]Expr {
	return exprSlicePool.Get().(*[]Expr)
}

// GetColName returns a zeroed *ColName from the pool.
func GetColName() *ColName {
	c := colNamePool.Get().(*ColName)
	*c = ColName{}
	return c
}

// GetLiteral returns a zeroed *Literal from the pool.
func GetLiteral() *Literal {
	l := literalPool.Get().(*Literal)
	*l = Literal{}
	return l
}

// GetUnaryExpr returns a zeroed *UnaryExpr from the pool.
func GetUnaryExpr() *UnaryExpr {
	u := unaryExprPool.Get().(*UnaryExpr)
	*u = UnaryExpr{}
	return u
}

// GetBinaryExpr returns a zeroed *BinaryExpr from the pool.
func GetBinaryExpr() *BinaryExpr {
	b := binaryExprPool.Get().(*BinaryExpr)
	*b = BinaryExpr{}
	return b
}

// GetParenExpr returns a zeroed *ParenExpr from the pool.
func GetParenExpr() *ParenExpr {
	p := parenExprPool.Get().(*ParenExpr)
	*p = ParenExpr{}
	return p
}

// GetFuncExpr returns a zeroed *FuncExpr from the pool.
func GetFuncExpr() *FuncExpr {
	f := funcExprPool.Get().(*FuncExpr)
	*f = FuncExpr{Args: f.Args[:0]}
	return f
}

// GetAggExpr returns a zeroed *AggExpr from the pool.
func GetAggExpr() *AggExpr {
	a := aggExprPool.Get().(*AggExpr)
	*a = AggExpr{}
	return a
}

// GetAliasedExpr returns a zeroed *AliasedExpr from the pool.
func GetAliasedExpr() *AliasedExpr {
	a := aliasedExprPool.Get().(*AliasedExpr)
	*a = AliasedExpr{}
	return a
}

// GetSelectStmt returns a zeroed *SelectStmt from the pool.
func GetSelectStmt() *SelectStmt {
	s := selectStmtPool.Get().(*SelectStmt)
	*s = SelectStmt{Projections: s.Projections[:0]}
	return s
}

// ReleaseAST returns a statement and all of its nodes to the pools.
// Optional: trees that are not released are garbage collected normally.
func ReleaseAST(s *SelectStmt) {
	if s == nil {
		return
	}
	for _, p := range s.Projections {
		releaseSelectExpr(p)
	}
	releaseExpr(s.Where)
	selectStmtPool.Put(s)
}

func releaseSelectExpr(se SelectExpr) {
	switch n := se.(type) {
	case *AliasedExpr:
		releaseExpr(n.Expr)
		aliasedExprPool.Put(n)
	case *StarExpr:
		// not pooled; zero-field nodes are cheap
	}
}

func releaseExpr(e Expr) {
	if isNil(e) {
		return
	}
	switch n := e.(type) {
	case *ColName:
		colNamePool.Put(n)
	case *Literal:
		literalPool.Put(n)
	case *UnaryExpr:
		releaseExpr(n.Expr)
		unaryExprPool.Put(n)
	case *BinaryExpr:
		releaseExpr(n.Left)
		releaseExpr(n.Right)
		binaryExprPool.Put(n)
	case *ParenExpr:
		releaseExpr(n.Expr)
		parenExprPool.Put(n)
	case *FuncExpr:
		for _, a := range n.Args {
			releaseExpr(a)
		}
		funcExprPool.Put(n)
	case *AggExpr:
		releaseExpr(n.Arg)
		aggExprPool.Put(n)
	}
}
