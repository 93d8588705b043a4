package gateway

import (
	"reflect"
	"time"
)

func matchesAll(doc map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if !matches(doc, f) {
			return false
		}
	}
	return true
}

func matches(doc map[string]any, f Filter) bool {
	value := doc[f.Field]
	switch f.Op {
	case OpEq:
		return equalValues(value, f.Value)
	case OpIn:
		for _, candidate := range f.Values {
			if equalValues(value, candidate) {
				return true
			}
		}
		return false
	}
	return false
}

func equalValues(docValue, filterValue any) bool {
	return compareValues(docValue, filterValue) == 0
}

// compareValues orders two document values. Decoded JSON yields nil, bool,
// float64 or string; filter values may additionally be typed strings or ints,
// normalized first. Timestamp strings compare as instants so fractional
// second precision does not skew the order.
func compareValues(a, b any) int {
	a, b = normalize(a), normalize(b)

	switch av := a.(type) {
	case nil:
		if b == nil {
			return 0
		}
		return -1
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return -1
		}
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return -1
		}
		switch {
		case av == bv:
			return 0
		case av < bv:
			return -1
		}
		return 1
	case string:
		bv, ok := b.(string)
		if !ok {
			return 1
		}
		if at, aerr := time.Parse(time.RFC3339Nano, av); aerr == nil {
			if bt, berr := time.Parse(time.RFC3339Nano, bv); berr == nil {
				switch {
				case at.Equal(bt):
					return 0
				case at.Before(bt):
					return -1
				}
				return 1
			}
		}
		switch {
		case av == bv:
			return 0
		case av < bv:
			return -1
		}
		return 1
	}
	if reflect.DeepEqual(a, b) {
		return 0
	}
	return -1
}

func normalize(v any) any {
	switch t := v.(type) {
	case nil, bool, string, float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	}
	return v
}
