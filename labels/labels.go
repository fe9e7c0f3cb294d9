package labels

import (
	"fmt"
	"strings"

	i18n "github.com/goliatone/go-i18n"
)

// Translator resolves a message key for a locale. *i18n.SimpleTranslator
// satisfies it.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// Labels renders report labels in one locale. The zero value and a nil
// *Labels render English.
type Labels struct {
	Translator Translator
	Locale     string
}

// NewTranslator builds a translator over the built-in catalogs with English
// as the fallback locale.
func NewTranslator() (*i18n.SimpleTranslator, error) {
	store := i18n.NewStaticStore(Translations())
	return i18n.NewSimpleTranslator(store, i18n.WithTranslatorDefaultLocale(DefaultLocale))
}

// New returns labels for locale, e.g. "pt-BR". Locales without a catalog fall
// back to English.
func New(locale string) (*Labels, error) {
	translator, err := NewTranslator()
	if err != nil {
		return nil, fmt.Errorf("labels translator: %w", err)
	}
	return &Labels{Translator: translator, Locale: strings.TrimSpace(locale)}, nil
}

// Text returns the label for key. Missing translations fall back to the
// English template, then to the key itself.
func (l *Labels) Text(key string, args ...any) string {
	if l != nil && l.Translator != nil {
		if out, err := l.Translator.Translate(l.Locale, key, args...); err == nil {
			return out
		}
	}
	tpl, ok := english[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tpl
	}
	return fmt.Sprintf(tpl, args...)
}
