package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileNilCondition(t *testing.T) {
	clause, args, err := Compile(nil)

	require.NoError(t, err)
	assert.Empty(t, clause)
	assert.Nil(t, args)
}

func TestCompileEq(t *testing.T) {
	clause, args, err := Compile(Eq{Field: "semester", Value: "SS"})

	require.NoError(t, err)
	assert.Equal(t, "metadata->>'semester' = ?", clause)
	assert.Equal(t, []interface{}{"SS"}, args)
}

func TestCompileIn(t *testing.T) {
	clause, args, err := Compile(In{Field: "tag", Values: []string{"Mo.", "Mi."}})

	require.NoError(t, err)
	assert.Equal(t, "metadata->>'tag' IN (?,?)", clause)
	assert.Equal(t, []interface{}{"Mo.", "Mi."}, args)
}

func TestCompileNumericComparisons(t *testing.T) {
	clause, args, err := Compile(LtOrEq{Field: "ects", Value: 6})
	require.NoError(t, err)
	assert.Equal(t, "(metadata->>'ects')::float <= ?", clause)
	assert.Equal(t, []interface{}{6.0}, args)

	clause, args, err = Compile(GtOrEq{Field: "ects", Value: 3})
	require.NoError(t, err)
	assert.Equal(t, "(metadata->>'ects')::float >= ?", clause)
	assert.Equal(t, []interface{}{3.0}, args)
}

func TestCompileNestedCondition(t *testing.T) {
	cond := And{
		Or{
			Eq{Field: "semester", Value: "SS"},
			Eq{Field: "semester", Value: "SS+"},
		},
		In{Field: "tag", Values: []string{"Mo."}},
		LtOrEq{Field: "ects", Value: 15},
	}

	clause, args, err := Compile(cond)

	require.NoError(t, err)
	assert.Equal(t,
		"((metadata->>'semester' = ? OR metadata->>'semester' = ?) AND metadata->>'tag' IN (?) AND (metadata->>'ects')::float <= ?)",
		clause)
	assert.Equal(t, []interface{}{"SS", "SS+", "Mo.", 15.0}, args)
}

func TestCompileSkipsNilSubconditions(t *testing.T) {
	cond := And{
		Eq{Field: "semester", Value: "WS"},
		nil,
	}

	clause, args, err := Compile(cond)

	require.NoError(t, err)
	assert.Equal(t, "(metadata->>'semester' = ?)", clause)
	assert.Equal(t, []interface{}{"WS"}, args)
}

func TestPredicateNilForEmptyCondition(t *testing.T) {
	assert.Nil(t, Predicate(nil))
	assert.NotNil(t, Predicate(Eq{Field: "semester", Value: "SS"}))
}
