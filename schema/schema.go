// Package schema describes the shape of the tab-separated input stream:
// an ordered set of named, typed columns.
package schema

import (
	"fmt"
	"strings"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrUnknownColumn is returned when a column name is not in the schema.
var ErrUnknownColumn = errors.NewKind("unknown column %q")

// ErrDuplicateColumn is returned when a column name is declared twice.
var ErrDuplicateColumn = errors.NewKind("duplicate column %q")

// ErrBadType is returned when a datatype name is not int, real or str.
var ErrBadType = errors.NewKind("unknown datatype %q")

// Type is a column datatype.
type Type int

const (
	Int Type = iota
	Real
	Str
)

// String returns the datatype name.
func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Real:
		return "real"
	case Str:
		return "str"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType parses a datatype name.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(s) {
	case "int":
		return Int, nil
	case "real", "float":
		return Real, nil
	case "str", "string":
		return Str, nil
	}
	return 0, ErrBadType.New(s)
}

// Promote applies the arithmetic promotion rule: real wins over int,
// int over str.
func Promote(a, b Type) Type {
	if a == Real || b == Real {
		return Real
	}
	if a == Int || b == Int {
		return Int
	}
	return Str
}

// Column is one input column.
type Column struct {
	Name  string
	Index int // 0-based field position
	Type  Type
}

// Schema is an ordered mapping of column names to positions and types.
// It is read-only during translation.
type Schema struct {
	cols   []Column
	byName map[string]int
}

// New builds a schema from columns in stream order. Indexes are assigned
// 0-based from position.
func New(cols ...Column) (*Schema, error) {
	s := &Schema{
		cols:   make([]Column, len(cols)),
		byName: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if _, ok := s.byName[c.Name]; ok {
			return nil, ErrDuplicateColumn.New(c.Name)
		}
		c.Index = i
		s.cols[i] = c
		s.byName[c.Name] = i
	}
	return s, nil
}

// Column looks up a column by name.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Column{}, false
	}
	return s.cols[i], true
}

// Columns returns the columns in stream order.
func (s *Schema) Columns() []Column {
	return s.cols
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.cols)
}

// String renders the schema as name:type pairs, for diagnostics.
func (s *Schema) String() string {
	var b strings.Builder
	for i, c := range s.cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.Name)
		b.WriteByte(':')
		b.WriteString(c.Type.String())
	}
	return b.String()
}
