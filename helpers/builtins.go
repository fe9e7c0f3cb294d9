package helpers

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-report/payload"
	"github.com/goliatone/go-report/report"
)

// Date format names accepted by the date helper.
const (
	DateShort    = "dd/MM/yyyy"
	DateTimeHHmm = "dd/MM/yyyy HH:mm"
	DateLong     = "long"
)

const (
	defaultPercentageDecimals = 2
	defaultTruncateLength     = 50
)

func builtins(locale Locale, logger report.Logger) map[string]Func {
	return map[string]Func{
		"currency": func(args ...any) any {
			return locale.Currency(ToNumber(arg(args, 0)))
		},
		"number": func(args ...any) any {
			return locale.Number(ToNumber(arg(args, 0)))
		},
		"date": func(args ...any) any {
			return FormatDate(locale, arg(args, 0), stringArg(args, 1))
		},
		"percentage": func(args ...any) any {
			return Percentage(arg(args, 0), intArg(args, 1, defaultPercentageDecimals))
		},
		"upper": func(args ...any) any {
			return strings.ToUpper(truthyString(arg(args, 0)))
		},
		"lower": func(args ...any) any {
			return strings.ToLower(truthyString(arg(args, 0)))
		},
		"capitalize": func(args ...any) any {
			return Capitalize(truthyString(arg(args, 0)))
		},
		"truncate": func(args ...any) any {
			return Truncate(truthyString(arg(args, 0)), intArg(args, 1, defaultTruncateLength))
		},
		"math": func(args ...any) any {
			return Math(arg(args, 0), stringArg(args, 1), arg(args, 2))
		},
		"compare": func(args ...any) any {
			return Compare(arg(args, 0), stringArg(args, 1), arg(args, 2))
		},
		"eachWithIndex": func(args ...any) any {
			return EachWithIndex(arg(args, 0))
		},
		"phone": func(args ...any) any {
			return FormatPhone(arg(args, 0))
		},
		"cpf": func(args ...any) any {
			return FormatCPF(arg(args, 0))
		},
		"cnpj": func(args ...any) any {
			return FormatCNPJ(arg(args, 0))
		},
		"cep": func(args ...any) any {
			return FormatCEP(arg(args, 0))
		},
		"sum": func(args ...any) any {
			return Sum(arg(args, 0), stringArg(args, 1))
		},
		"average": func(args ...any) any {
			return Average(arg(args, 0), stringArg(args, 1))
		},
		"count": func(args ...any) any {
			return float64(Count(arg(args, 0)))
		},
		"debug": func(args ...any) any {
			logger.Debugf("template debug: %s", payload.JSON(arg(args, 0)))
			return ""
		},
	}
}

// FormatDate renders v using one of the named date formats. Falsy values
// render empty; values that are not dates come back unchanged.
func FormatDate(locale Locale, v any, format string) any {
	if !payload.Truthy(v) {
		return ""
	}
	var t time.Time
	switch value := v.(type) {
	case time.Time:
		t = value
	case string:
		parsed, ok := locale.ParseDate(value)
		if !ok {
			return v
		}
		t = parsed
	default:
		return v
	}

	switch format {
	case DateTimeHHmm:
		return locale.DateTime(t)
	case DateLong:
		return locale.LongDate(t)
	default:
		return locale.ShortDate(t)
	}
}

// Percentage multiplies by 100 and renders fixed decimals with a trailing '%'.
func Percentage(v any, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	if decimals > 20 {
		decimals = 20
	}
	return strconv.FormatFloat(ToNumber(v)*100, 'f', decimals, 64) + "%"
}

// Capitalize upper-cases the first letter and lower-cases the rest of the string.
func Capitalize(s string) string {
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(first)) + strings.ToLower(s[size:])
}

// Truncate cuts s to length runes and appends "..." when it was longer.
func Truncate(s string, length int) string {
	if length < 0 {
		length = 0
	}
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}

// Math applies op to both operands after numeric coercion. Division and
// modulo by zero yield 0.
func Math(a any, op string, b any) float64 {
	left, right := ToNumber(a), ToNumber(b)
	switch op {
	case "+":
		return left + right
	case "-":
		return left - right
	case "*":
		return left * right
	case "/":
		if right == 0 {
			return 0
		}
		return left / right
	case "%":
		if right == 0 {
			return 0
		}
		return math.Mod(left, right)
	default:
		return 0
	}
}

// Compare evaluates a op b with loose JavaScript semantics.
func Compare(a any, op string, b any) bool {
	switch op {
	case "==":
		return looseEqual(a, b)
	case "===":
		return strictEqual(a, b)
	case "!=":
		return !looseEqual(a, b)
	case "!==":
		return !strictEqual(a, b)
	case "<":
		less, _ := jsLess(a, b)
		return less
	case ">":
		less, _ := jsLess(b, a)
		return less
	case "<=":
		greater, ok := jsLess(b, a)
		return ok && !greater
	case ">=":
		less, ok := jsLess(a, b)
		return ok && !less
	default:
		return false
	}
}

// EachWithIndex returns one scope per element: the element's own fields plus
// index, first, last, even and odd. Scalar elements are exposed as "this".
// Non-list input yields nil.
func EachWithIndex(v any) []*payload.Map {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	scopes := make([]*payload.Map, 0, len(list))
	for i, item := range list {
		var scope *payload.Map
		if m, ok := item.(*payload.Map); ok {
			scope = m.Clone()
		} else {
			scope = payload.NewMap()
			scope.Set("this", item)
		}
		scope.Set("index", float64(i))
		scope.Set("first", i == 0)
		scope.Set("last", i == len(list)-1)
		scope.Set("even", i%2 == 0)
		scope.Set("odd", i%2 == 1)
		scopes = append(scopes, scope)
	}
	return scopes
}

// FormatPhone renders 11 digits as (xx) xxxxx-xxxx and 10 digits as (xx) xxxx-xxxx.
func FormatPhone(v any) string {
	digits := Digits(v)
	switch len(digits) {
	case 11:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	case 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	default:
		return digits
	}
}

// FormatCPF renders 11 digits as xxx.xxx.xxx-xx.
func FormatCPF(v any) string {
	digits := Digits(v)
	if len(digits) != 11 {
		return digits
	}
	return digits[:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:]
}

// FormatCNPJ renders 14 digits as xx.xxx.xxx/xxxx-xx.
func FormatCNPJ(v any) string {
	digits := Digits(v)
	if len(digits) != 14 {
		return digits
	}
	return digits[:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:]
}

// FormatCEP renders 8 digits as xxxxx-xxx.
func FormatCEP(v any) string {
	digits := Digits(v)
	if len(digits) != 8 {
		return digits
	}
	return digits[:5] + "-" + digits[5:]
}

// Sum adds the coerced elements of a list, or the named property of each element.
func Sum(v any, property string) float64 {
	list, ok := v.([]any)
	if !ok {
		return 0
	}
	total := 0.0
	for _, item := range list {
		total += ToNumber(pluck(item, property))
	}
	return total
}

// Average is Sum divided by the element count. Empty lists yield 0.
func Average(v any, property string) float64 {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return 0
	}
	return Sum(list, property) / float64(len(list))
}

// Count returns the list length, or 0 for anything else.
func Count(v any) int {
	list, ok := v.([]any)
	if !ok {
		return 0
	}
	return len(list)
}

func pluck(item any, property string) any {
	if property == "" {
		return item
	}
	m, ok := item.(*payload.Map)
	if !ok {
		return nil
	}
	value, _ := m.Get(property)
	return value
}
