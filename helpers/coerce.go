package helpers

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-report/payload"
)

var (
	nonNumericChars = regexp.MustCompile(`[^\d.-]`)
	nonDigitChars   = regexp.MustCompile(`\D`)
	numericPrefix   = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// ToNumber strips every character other than digits, '.' and '-', then reads
// the longest numeric prefix. Anything unreadable becomes 0.
func ToNumber(v any) float64 {
	if !payload.IsScalar(v) {
		return 0
	}
	if f, ok := v.(float64); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	cleaned := nonNumericChars.ReplaceAllString(payload.String(v), "")
	prefix := numericPrefix.FindString(cleaned)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return f
}

// Digits keeps only the decimal digits of v. Falsy values yield "".
func Digits(v any) string {
	return nonDigitChars.ReplaceAllString(truthyString(v), "")
}

func truthyString(v any) string {
	if !payload.Truthy(v) {
		return ""
	}
	return payload.String(v)
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func intArg(args []any, i int, def int) int {
	if i >= len(args) || args[i] == nil {
		return def
	}
	switch t := args[i].(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return def
}

func stringArg(args []any, i int) string {
	if i >= len(args) || args[i] == nil {
		return ""
	}
	return payload.String(args[i])
}

// JSNumber converts like JavaScript's Number(): nil is 0, booleans are 0/1,
// blank strings are 0 and unreadable strings are NaN.
func JSNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return 0
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		if f, ok := payload.AsNumber(v); ok {
			return f
		}
		return math.NaN()
	}
}

func strictEqual(a, b any) bool {
	if payload.IsNumber(a) && payload.IsNumber(b) {
		return JSNumber(a) == JSNumber(b)
	}
	switch at := a.(type) {
	case nil:
		return b == nil
	case bool:
		bt, ok := b.(bool)
		return ok && at == bt
	case string:
		bt, ok := b.(string)
		return ok && at == bt
	case *payload.Map:
		bt, ok := b.(*payload.Map)
		return ok && at == bt
	default:
		return false
	}
}

func looseEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if strictEqual(a, b) {
		return true
	}
	if payload.IsScalar(a) && payload.IsScalar(b) {
		return JSNumber(a) == JSNumber(b)
	}
	return false
}

func jsLess(a, b any) (less bool, comparable bool) {
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs, true
	}
	x, y := JSNumber(a), JSNumber(b)
	if math.IsNaN(x) || math.IsNaN(y) {
		return false, false
	}
	return x < y, true
}
