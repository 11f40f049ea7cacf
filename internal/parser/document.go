package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Accessors over decoded JSON documents. The upstream payload arrives as
// map[string]any and nothing about its shape can be trusted, so every
// navigation step type-checks and reports failure through the ok result.

func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}

func asList(v any) ([]any, bool) {
	list, ok := v.([]any)
	return list, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asNumber accepts the representations a decoded fare amount shows up as:
// plain JSON numbers, json.Number, and numeric strings.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// coerceString renders scalar values as text. Flight numbers and search ids
// are occasionally emitted as bare numbers upstream.
func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprint(s)
	}
}

const excerptLen = 200

// excerpt renders a truncated JSON snapshot of v for debug diagnostics.
func excerpt(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%.200v", v)
	}
	if len(b) > excerptLen {
		return string(b[:excerptLen]) + "..."
	}
	return string(b)
}
