// Package retrieval holds the request-scoped, side-effect-free parts of the
// hybrid retrieval pipeline: query parsing, metadata filter construction and
// compilation of filter expressions into SQL predicates.
package retrieval

import (
	"fmt"

	"github.com/Masterminds/squirrel"
)

// Condition is a boolean filter expression over named metadata fields of a
// catalog chunk. Leaves compare one field, And/Or combine arbitrarily nested
// sub-conditions. A nil Condition matches everything.
type Condition interface {
	sqlizer() squirrel.Sqlizer
}

// Eq matches chunks whose metadata field equals the given string value.
type Eq struct {
	Field string
	Value string
}

// In matches chunks whose metadata field equals any of the given values.
type In struct {
	Field  string
	Values []string
}

// LtOrEq matches chunks whose metadata field, coerced to a number, is at
// most the given value.
type LtOrEq struct {
	Field string
	Value float64
}

// GtOrEq matches chunks whose metadata field, coerced to a number, is at
// least the given value.
type GtOrEq struct {
	Field string
	Value float64
}

// And matches chunks satisfying every sub-condition.
type And []Condition

// Or matches chunks satisfying at least one sub-condition.
type Or []Condition

// metadataField addresses a key of the semi-structured metadata column.
// Field names come from the filter builder, never from user input; values
// are always bound as parameters.
func metadataField(field string) string {
	return fmt.Sprintf("metadata->>'%s'", field)
}

func numericField(field string) string {
	return fmt.Sprintf("(metadata->>'%s')::float", field)
}

func (c Eq) sqlizer() squirrel.Sqlizer {
	return squirrel.Eq{metadataField(c.Field): c.Value}
}

func (c In) sqlizer() squirrel.Sqlizer {
	return squirrel.Eq{metadataField(c.Field): c.Values}
}

func (c LtOrEq) sqlizer() squirrel.Sqlizer {
	return squirrel.LtOrEq{numericField(c.Field): c.Value}
}

func (c GtOrEq) sqlizer() squirrel.Sqlizer {
	return squirrel.GtOrEq{numericField(c.Field): c.Value}
}

func (c And) sqlizer() squirrel.Sqlizer {
	conj := make(squirrel.And, 0, len(c))
	for _, sub := range c {
		if sub != nil {
			conj = append(conj, sub.sqlizer())
		}
	}
	return conj
}

func (c Or) sqlizer() squirrel.Sqlizer {
	conj := make(squirrel.Or, 0, len(c))
	for _, sub := range c {
		if sub != nil {
			conj = append(conj, sub.sqlizer())
		}
	}
	return conj
}

// Predicate exposes the condition as a squirrel fragment so repositories can
// attach it to a larger statement with consistent placeholder numbering.
// Returns nil for the empty condition.
func Predicate(c Condition) squirrel.Sqlizer {
	if c == nil {
		return nil
	}
	return c.sqlizer()
}

// Compile turns a condition into a WHERE fragment with an ordered parameter
// list. The empty condition compiles to ("", nil): no clause at all.
func Compile(c Condition) (string, []interface{}, error) {
	if c == nil {
		return "", nil, nil
	}
	clause, args, err := c.sqlizer().ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("compile filter condition: %w", err)
	}
	return clause, args, nil
}
