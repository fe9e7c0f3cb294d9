package helpers

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLanguage       = "pt-BR"
	DefaultCurrencySymbol = "R$"
	DefaultTimezone       = "America/Sao_Paulo"
)

const (
	shortDateLayout = "02/01/2006"
	dateTimeLayout  = "02/01/2006 15:04"
)

var longDateLayouts = map[monday.Locale]string{
	monday.LocalePtBR: "Monday, 2 de January de 2006",
	monday.LocalePtPT: "Monday, 2 de January de 2006",
	monday.LocaleEsES: "Monday, 2 de January de 2006",
	monday.LocaleEnUS: "Monday, January 2, 2006",
	monday.LocaleEnGB: "Monday, 2 January 2006",
	monday.LocaleFrFR: "Monday 2 January 2006",
	monday.LocaleDeDE: "Monday, 2. January 2006",
}

// Locale carries number, currency and calendar conventions.
type Locale struct {
	Tag            language.Tag
	CurrencySymbol string
	Location       *time.Location
	DateLocale     monday.Locale

	printer *message.Printer
}

// DefaultLocale returns Brazilian Portuguese with the Real symbol in São Paulo time.
func DefaultLocale() Locale {
	locale, err := NewLocale(DefaultLanguage, DefaultCurrencySymbol, DefaultTimezone)
	if err != nil {
		return Locale{
			Tag:            language.BrazilianPortuguese,
			CurrencySymbol: DefaultCurrencySymbol,
			Location:       time.FixedZone("BRT", -3*60*60),
			DateLocale:     monday.LocalePtBR,
			printer:        message.NewPrinter(language.BrazilianPortuguese),
		}
	}
	return locale
}

// NewLocale builds a locale from a BCP 47 tag, currency symbol and IANA zone.
func NewLocale(tag, currencySymbol, timezone string) (Locale, error) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return Locale{}, err
	}
	loc := time.UTC
	if strings.TrimSpace(timezone) != "" {
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return Locale{}, err
		}
	}
	return Locale{
		Tag:            parsed,
		CurrencySymbol: currencySymbol,
		Location:       loc,
		DateLocale:     mondayLocale(parsed),
		printer:        message.NewPrinter(parsed),
	}, nil
}

func mondayLocale(tag language.Tag) monday.Locale {
	candidate := monday.Locale(strings.ReplaceAll(tag.String(), "-", "_"))
	for _, supported := range monday.ListLocales() {
		if supported == candidate {
			return candidate
		}
	}
	base, _ := tag.Base()
	switch base.String() {
	case "pt":
		return monday.LocalePtBR
	case "es":
		return monday.LocaleEsES
	case "fr":
		return monday.LocaleFrFR
	case "de":
		return monday.LocaleDeDE
	default:
		return monday.LocaleEnUS
	}
}

func (l Locale) messagePrinter() *message.Printer {
	if l.printer != nil {
		return l.printer
	}
	return message.NewPrinter(l.Tag)
}

func (l Locale) location() *time.Location {
	if l.Location == nil {
		return time.UTC
	}
	return l.Location
}

// Number formats with grouping and at most three fraction digits.
func (l Locale) Number(value float64) string {
	return l.messagePrinter().Sprint(number.Decimal(value))
}

// Fixed formats with grouping and exactly the given fraction digits.
func (l Locale) Fixed(value float64, decimals int) string {
	return l.messagePrinter().Sprint(number.Decimal(value, number.Scale(decimals)))
}

// Currency prefixes the currency symbol to a two-decimal grouped amount.
func (l Locale) Currency(value float64) string {
	amount := l.Fixed(value, 2)
	if l.CurrencySymbol == "" {
		return amount
	}
	return l.CurrencySymbol + " " + amount
}

// ShortDate renders dd/MM/yyyy in the locale's zone.
func (l Locale) ShortDate(t time.Time) string {
	return t.In(l.location()).Format(shortDateLayout)
}

// DateTime renders dd/MM/yyyy HH:mm in the locale's zone.
func (l Locale) DateTime(t time.Time) string {
	return t.In(l.location()).Format(dateTimeLayout)
}

// LongDate renders the weekday, day, month name and year in the locale's language.
func (l Locale) LongDate(t time.Time) string {
	layout, ok := longDateLayouts[l.DateLocale]
	if !ok {
		layout = longDateLayouts[monday.LocaleEnUS]
	}
	return monday.Format(t.In(l.location()), layout, l.DateLocale)
}

// ParseDate accepts ISO-8601 timestamps and dates. Values without a zone are
// read in the locale's zone.
func (l Locale) ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if parsed, err := time.ParseInLocation(layout, value, l.location()); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
