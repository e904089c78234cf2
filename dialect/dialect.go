// Package dialect defines the scalar and aggregate function sets recognized
// by the parser, distinguishing portable awk from gawk.
package dialect

import (
	"strings"

	"gopkg.in/src-d/go-errors.v1"

	"github.com/freeeve/sql2awk/schema"
)

// ErrUnknownFunction is returned when a function name is not in the active
// dialect's scalar or aggregate set.
var ErrUnknownFunction = errors.NewKind("unknown function %q")

// Dialect selects the function set available to queries.
type Dialect int

const (
	Portable Dialect = iota
	Gawk
)

// String returns the dialect name.
func (d Dialect) String() string {
	if d == Gawk {
		return "gawk"
	}
	return "portable"
}

// Result describes how a scalar function's return type is derived.
type Result int

const (
	ResultStr Result = iota
	ResultInt
	ResultReal
	ResultPromote // arithmetic promotion over the argument types
)

// Type resolves the result against already-resolved argument types.
func (r Result) Type(args []schema.Type) schema.Type {
	switch r {
	case ResultStr:
		return schema.Str
	case ResultInt:
		return schema.Int
	case ResultReal:
		return schema.Real
	}
	t := schema.Int
	for _, a := range args {
		t = schema.Promote(t, a)
	}
	return t
}

// ScalarFunc describes one scalar function.
type ScalarFunc struct {
	Name     string // normalized lowercase name
	AwkName  string // name emitted into the generated program
	Result   Result
	GawkOnly bool
}

// scalars is the full scalar function table; GawkOnly entries are hidden
// under the portable dialect.
var scalars = map[string]ScalarFunc{
	"lower":      {Name: "lower", AwkName: "tolower", Result: ResultStr},
	"upper":      {Name: "upper", AwkName: "toupper", Result: ResultStr},
	"trim":       {Name: "trim", AwkName: "trim", Result: ResultStr},
	"ltrim":      {Name: "ltrim", AwkName: "ltrim", Result: ResultStr},
	"rtrim":      {Name: "rtrim", AwkName: "rtrim", Result: ResultStr},
	"replace":    {Name: "replace", AwkName: "replace", Result: ResultStr},
	"substr":     {Name: "substr", AwkName: "substr", Result: ResultStr},
	"mask_ip":    {Name: "mask_ip", AwkName: "mask_ip", Result: ResultStr},
	"length":     {Name: "length", AwkName: "length", Result: ResultInt},
	"int":        {Name: "int", AwkName: "int", Result: ResultInt},
	"ip_in_cidr": {Name: "ip_in_cidr", AwkName: "ip_in_cidr", Result: ResultInt},
	"abs":        {Name: "abs", AwkName: "abs", Result: ResultPromote},
	"max":        {Name: "max", AwkName: "max", Result: ResultPromote},
	"min":        {Name: "min", AwkName: "min", Result: ResultPromote},

	"strftime": {Name: "strftime", AwkName: "strftime", Result: ResultStr, GawkOnly: true},
	"submatch": {Name: "submatch", AwkName: "submatch", Result: ResultStr, GawkOnly: true},
	"atan2":    {Name: "atan2", AwkName: "atan2", Result: ResultReal, GawkOnly: true},
	"cos":      {Name: "cos", AwkName: "cos", Result: ResultReal, GawkOnly: true},
	"exp":      {Name: "exp", AwkName: "exp", Result: ResultReal, GawkOnly: true},
	"log":      {Name: "log", AwkName: "log", Result: ResultReal, GawkOnly: true},
	"rand":     {Name: "rand", AwkName: "rand", Result: ResultReal, GawkOnly: true},
	"sin":      {Name: "sin", AwkName: "sin", Result: ResultReal, GawkOnly: true},
	"sqrt":     {Name: "sqrt", AwkName: "sqrt", Result: ResultReal, GawkOnly: true},
}

// aggregates is the aggregate function set. min and max double as scalar
// functions; the parser treats a single-argument call as an aggregate.
var aggregates = map[string]bool{
	"count": true,
	"avg":   true,
	"max":   true,
	"min":   true,
	"sum":   true,
	"total": true,
}

// Scalar looks up a scalar function by (case-insensitive) name.
func (d Dialect) Scalar(name string) (ScalarFunc, bool) {
	fn, ok := scalars[strings.ToLower(name)]
	if !ok || (fn.GawkOnly && d != Gawk) {
		return ScalarFunc{}, false
	}
	return fn, true
}

// IsAggregate reports whether name is an aggregate function name.
func (d Dialect) IsAggregate(name string) bool {
	return aggregates[strings.ToLower(name)]
}

// IsFunction reports whether name is any function name in the active
// dialect. Function names are reserved and cannot be used as identifiers.
func (d Dialect) IsFunction(name string) bool {
	if d.IsAggregate(name) {
		return true
	}
	_, ok := d.Scalar(name)
	return ok
}

// AggregateType resolves an aggregate's result type: count is int, the
// rest inherit their argument's type.
func AggregateType(name string, arg schema.Type) schema.Type {
	if strings.ToLower(name) == "count" {
		return schema.Int
	}
	return arg
}
