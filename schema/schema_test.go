package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New(
		Column{Name: "src", Type: Str},
		Column{Name: "bytes", Type: Int},
		Column{Name: "dur", Type: Real},
	)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	col, ok := s.Column("bytes")
	require.True(t, ok)
	assert.Equal(t, 1, col.Index)
	assert.Equal(t, Int, col.Type)

	_, ok = s.Column("nope")
	assert.False(t, ok)

	// Indexes follow declaration order regardless of input values.
	for i, c := range s.Columns() {
		assert.Equal(t, i, c.Index)
	}
}

func TestNewDuplicate(t *testing.T) {
	_, err := New(
		Column{Name: "a", Type: Int},
		Column{Name: "a", Type: Str},
	)
	require.Error(t, err)
	assert.True(t, ErrDuplicateColumn.Is(err))
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"int", Int},
		{"INT", Int},
		{"real", Real},
		{"float", Real},
		{"str", Str},
		{"string", Str},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseType("varchar")
	assert.True(t, ErrBadType.Is(err))
}

func TestPromote(t *testing.T) {
	assert.Equal(t, Real, Promote(Int, Real))
	assert.Equal(t, Real, Promote(Real, Str))
	assert.Equal(t, Int, Promote(Int, Int))
	assert.Equal(t, Int, Promote(Int, Str))
	assert.Equal(t, Str, Promote(Str, Str))
}

func TestString(t *testing.T) {
	s, err := New(
		Column{Name: "src", Type: Str},
		Column{Name: "bytes", Type: Int},
	)
	require.NoError(t, err)
	assert.Equal(t, "src:str,bytes:int", s.String())
}
