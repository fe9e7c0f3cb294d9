package payload

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Truthy applies JavaScript truthiness: nil, false, 0, NaN and "" are falsy.
// Empty lists and maps are truthy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int:
		return t != 0
	case int64:
		return t != 0
	case *Map:
		return t != nil
	default:
		return true
	}
}

// IsScalar reports whether v is nil, a bool, a number or a string.
func IsScalar(v any) bool {
	switch v.(type) {
	case nil, bool, string, float64, float32, int, int64:
		return true
	default:
		return false
	}
}

// String stringifies v the way a JavaScript template literal would, except
// maps which render as compact JSON.
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return FormatNumber(t)
	case float32:
		return FormatNumber(float64(t))
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = String(item)
		}
		return strings.Join(parts, ",")
	case *Map:
		return t.String()
	default:
		return JSON(v)
	}
}

// FormatNumber renders f using the shortest round-trip form, without a
// trailing ".0" for integral values.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		out := strconv.FormatFloat(f, 'e', -1, 64)
		// 1e-07 -> 1e-7
		if idx := strings.IndexAny(out, "+-"); idx > 0 && out[idx-1] == 'e' {
			exp := strings.TrimLeft(out[idx+1:], "0")
			out = out[:idx+1] + exp
		}
		return out
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// JSON renders v as compact JSON, or "" when it cannot be encoded.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// PrettyJSON renders v as indented JSON.
func PrettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// AsNumber reports the finite number v represents. Only numbers and
// strings holding a plain decimal literal qualify.
func AsNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// IsNumber reports whether v holds a Go numeric value.
func IsNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64:
		return true
	default:
		return false
	}
}
