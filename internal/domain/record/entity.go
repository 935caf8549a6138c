package record

import (
	"fmt"
	"strconv"
)

// Data is a schemaless document as held by the record store.
type Data map[string]interface{}

// Record is a stored document together with its id.
type Record struct {
	ID   string
	Data Data
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Condition is an equality filter on a single top-level field.
type Condition struct {
	Field string
	Value interface{}
}

func Eq(field string, value interface{}) Condition {
	return Condition{Field: field, Value: value}
}

// Query filters a collection. Conditions are AND-ed. Limit <= 0 means no limit.
type Query struct {
	Conditions []Condition
	OrderBy    string
	Direction  Direction
	Limit      int
}

// Matches reports whether d satisfies every condition in q.
func (q Query) Matches(d Data) bool {
	for _, c := range q.Conditions {
		v, ok := d[c.Field]
		if !ok || !ValuesEqual(v, c.Value) {
			return false
		}
	}
	return true
}

// ValuesEqual compares two document values. Numbers compare by value regardless of
// their Go representation, so an int condition matches a float64 decoded from JSON.
func ValuesEqual(a, b interface{}) bool {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		return fa == fb
	}
	if aNum != bNum {
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// Compare orders two document values: numbers numerically, everything else by string form.
func Compare(a, b interface{}) int {
	fa, aNum := toFloat(a)
	fb, bNum := toFloat(b)
	if aNum && bNum {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case interface{ Float64() (float64, error) }: // json.Number
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Int reads an integer field, accepting numeric and numeric-string values.
func (d Data) Int(field string) (int, bool) {
	switch v := d[field].(type) {
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	default:
		f, ok := toFloat(v)
		return int(f), ok
	}
}

// Float reads a numeric field, accepting numeric and numeric-string values.
func (d Data) Float(field string) (float64, bool) {
	switch v := d[field].(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return toFloat(v)
	}
}

// String reads a string field.
func (d Data) String(field string) (string, bool) {
	s, ok := d[field].(string)
	return s, ok
}

// Clone returns a shallow copy of d.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
