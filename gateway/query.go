// Package gateway mediates every read and write against the backing store.
// Queries are filtered, ordered, limited scans over named collections;
// inserts are constrained appends. Failures propagate verbatim, no retries.
package gateway

import "encoding/json"

// Record is a raw document as stored in a collection. Callers decode it into
// their own row types.
type Record = json.RawMessage

type Op string

const (
	OpEq Op = "eq"
	OpIn Op = "in"
)

// Filter is an equality or set-membership predicate on a document field.
// Values are plain JSON scalars (string, bool, number).
type Filter struct {
	Field  string
	Op     Op
	Value  any
	Values []any
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: OpEq, Value: value}
}

func In(field string, values ...any) Filter {
	return Filter{Field: field, Op: OpIn, Values: values}
}

type Order struct {
	Field string
	Desc  bool
}

func Asc(field string) Order  { return Order{Field: field} }
func Desc(field string) Order { return Order{Field: field, Desc: true} }

// Query identifies one filtered, ordered, limited read of a collection.
// Limit 0 means no truncation.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    []Order
	Limit      int
}
