package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// Object is a decoded JSON object as returned by the API. The provider does
// not publish a schema for networks, plans, banks or transaction receipts, so
// results stay untyped.
type Object map[string]any

// String returns the value at key rendered as a string. Numbers are
// formatted without exponent; missing keys and nulls yield "".
func (o Object) String(key string) string {
	switch v := o[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Object returns the nested object at key, or nil.
func (o Object) Object(key string) Object {
	switch v := o[key].(type) {
	case map[string]any:
		return Object(v)
	case Object:
		return v
	default:
		return nil
	}
}
