package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilterEmptyQuery(t *testing.T) {
	assert.Nil(t, BuildFilter(ParsedQuery{}))
}

func TestBuildFilterSemesterIncludesYearRound(t *testing.T) {
	cond := BuildFilter(ParsedQuery{Semester: "SS"})

	clause, args, err := Compile(cond)
	require.NoError(t, err)
	assert.Equal(t, "(metadata->>'semester' = ? OR metadata->>'semester' = ?)", clause)
	assert.Equal(t, []interface{}{"SS", "SS+"}, args)
}

func TestBuildFilterSingleConstraintIsBare(t *testing.T) {
	cond := BuildFilter(ParsedQuery{PreferredDays: []string{"Mo.", "Mi."}})

	clause, args, err := Compile(cond)
	require.NoError(t, err)
	assert.Equal(t, "metadata->>'tag' IN (?,?)", clause)
	assert.Equal(t, []interface{}{"Mo.", "Mi."}, args)
}

func TestBuildFilterCombinesConstraintsWithAnd(t *testing.T) {
	cond := BuildFilter(ParsedQuery{
		Semester:      "WS",
		PreferredDays: []string{"Di."},
		ECTSTarget:    12,
	})

	clause, args, err := Compile(cond)
	require.NoError(t, err)
	assert.Equal(t,
		"((metadata->>'semester' = ? OR metadata->>'semester' = ?) AND metadata->>'tag' IN (?) AND (metadata->>'ects')::float <= ?)",
		clause)
	assert.Equal(t, []interface{}{"WS", "WS+", "Di.", 12.0}, args)
}

func TestBuildFilterZeroECTSMeansUnbounded(t *testing.T) {
	assert.Nil(t, BuildFilter(ParsedQuery{ECTSTarget: 0}))
}
