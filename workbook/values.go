package workbook

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-report/helpers"
	"github.com/goliatone/go-report/labels"
	"github.com/goliatone/go-report/payload"
)

// Type labels reported in the summary sheet.
const (
	TypeNull        = "Null"
	TypeBoolean     = "Boolean"
	TypeNumber      = "Number"
	TypeDate        = "Date"
	TypeNumericText = "Numeric Text"
	TypeEmail       = "Email"
	TypeLongText    = "Long Text"
	TypeText        = "Text"
	TypeObject      = "Object"
)

var typeKeys = map[string]string{
	TypeNull:        labels.TypeNull,
	TypeBoolean:     labels.TypeBoolean,
	TypeNumber:      labels.TypeNumber,
	TypeDate:        labels.TypeDate,
	TypeNumericText: labels.TypeNumericText,
	TypeEmail:       labels.TypeEmail,
	TypeLongText:    labels.TypeLongText,
	TypeText:        labels.TypeText,
	TypeObject:      labels.TypeObject,
}

var (
	datePrefixPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	numericTextPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
	upperPattern       = regexp.MustCompile(`([A-Z])`)
	separatorPattern   = regexp.MustCompile(`[_-]`)
)

// TypeLabel infers a display type for a value.
func TypeLabel(v any) string {
	switch t := v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBoolean
	case float64, float32, int, int64:
		return TypeNumber
	case string:
		switch {
		case datePrefixPattern.MatchString(t):
			return TypeDate
		case numericTextPattern.MatchString(t):
			return TypeNumericText
		case strings.Contains(t, "@"):
			return TypeEmail
		case utf8.RuneCountInString(t) > 100:
			return TypeLongText
		default:
			return TypeText
		}
	case []any:
		return fmt.Sprintf("List (%d items)", len(t))
	default:
		return TypeObject
	}
}

// Humanize turns field keys into labels: camelCase is split, underscores and
// dashes become spaces, and each word is capitalized.
func Humanize(name string) string {
	spaced := upperPattern.ReplaceAllString(name, " $1")
	spaced = separatorPattern.ReplaceAllString(spaced, " ")

	words := strings.Split(spaced, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(word)
		words[i] = strings.ToUpper(string(r)) + strings.ToLower(word[size:])
	}
	return strings.TrimSpace(strings.Join(words, " "))
}

// FormatValue renders a cell value. Numbers with a fraction or above 1000
// get two decimals.
func FormatValue(locale helpers.Locale, v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case string:
		return t
	case *payload.Map, []any:
		return payload.JSON(t)
	}
	if f, ok := numberValue(v); ok {
		if math.Mod(f, 1) != 0 || f > 1000 {
			return locale.Fixed(f, 2)
		}
		return locale.Number(f)
	}
	return payload.String(v)
}

func numberValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sample describes a list by its first element: joined keys for maps, the
// stringified value otherwise.
func sample(list []any) string {
	if len(list) == 0 {
		return "Empty"
	}
	if m, ok := list[0].(*payload.Map); ok {
		return strings.Join(m.Keys(), ", ")
	}
	if list[0] == nil {
		return "null"
	}
	return payload.String(list[0])
}

// numericColumns reports which keys hold a number in at least one element.
func numericColumns(list []any, keys []string) map[string]bool {
	out := map[string]bool{}
	for _, item := range list {
		m, ok := item.(*payload.Map)
		if !ok {
			continue
		}
		for _, key := range keys {
			if v, ok := m.Get(key); ok {
				if _, isNum := numberValue(v); isNum {
					out[key] = true
				}
			}
		}
	}
	return out
}

func columnSum(list []any, key string) float64 {
	var sum float64
	for _, item := range list {
		m, ok := item.(*payload.Map)
		if !ok {
			continue
		}
		v, _ := m.Get(key)
		sum += helpers.ToNumber(v)
	}
	return sum
}
