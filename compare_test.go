//go:build compare_vitess

// Cross-checks the surface grammar against vitess-sqlparser: every query we
// accept should, once given a FROM clause, still be standard SQL.
// Run with: go test -tags=compare_vitess -run Vitess

package sql2awk

import (
	"testing"

	vitess "github.com/blastrain/vitess-sqlparser/sqlparser"
)

func TestVitessCompatibility(t *testing.T) {
	// Pairs of (our query, the standard SQL equivalent with FROM).
	tests := []struct {
		name string
		ours string
		sql  string
	}{
		{"star", "SELECT *", "SELECT * FROM t"},
		{"columns", "SELECT src, dst", "SELECT src, dst FROM t"},
		{"distinct", "SELECT DISTINCT src", "SELECT DISTINCT src FROM t"},
		{"filter", "SELECT src WHERE bytes > 100", "SELECT src FROM t WHERE bytes > 100"},
		{"alias", "SELECT bytes * 8 AS bits", "SELECT bytes * 8 AS bits FROM t"},
		{"like", "SELECT src WHERE src LIKE 'a%'", "SELECT src FROM t WHERE src LIKE 'a%'"},
		{"not like", "SELECT src WHERE src NOT LIKE 'a%'", "SELECT src FROM t WHERE src NOT LIKE 'a%'"},
		{"count star", "SELECT count(*)", "SELECT count(*) FROM t"},
		{"count distinct", "SELECT src, count(DISTINCT dst)", "SELECT src, count(DISTINCT dst) FROM t"},
		{"aggregates", "SELECT sum(bytes), avg(dur), min(bytes), max(bytes)", "SELECT sum(bytes), avg(dur), min(bytes), max(bytes) FROM t"},
		{"limit", "SELECT src LIMIT 2", "SELECT src FROM t LIMIT 2"},
		{"logic", "SELECT src WHERE bytes > 1 AND dur < 2 OR dst = 'x'", "SELECT src FROM t WHERE bytes > 1 AND dur < 2 OR dst = 'x'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.ours, Portable); err != nil {
				t.Fatalf("sql2awk rejected %q: %v", tt.ours, err)
			}
			if _, err := vitess.Parse(tt.sql); err != nil {
				t.Fatalf("vitess rejected %q: %v", tt.sql, err)
			}
		})
	}
}
