package labels

import (
	"errors"
	"testing"
)

func TestLabels_BrazilianPortuguese(t *testing.T) {
	l, err := New("pt-BR")
	if err != nil {
		t.Fatalf("new labels: %v", err)
	}
	cases := map[string]string{
		GeneralInfo: "INFORMAÇÕES GERAIS",
		Totals:      "TOTAIS",
		Footer:      "Relatório gerado automaticamente",
	}
	for key, want := range cases {
		if got := l.Text(key); got != want {
			t.Fatalf("Text(%s) = %q, want %q", key, got, want)
		}
	}
	if got := l.Text(GeneratedAt, "05/03/2024 12:30"); got != "Gerado em 05/03/2024 12:30" {
		t.Fatalf("unexpected generated at %q", got)
	}
	if got := l.Text(PageOf, 2, "{nb}"); got != "Página 2 de {nb}" {
		t.Fatalf("unexpected page label %q", got)
	}
}

func TestLabels_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	l, err := New("es-AR")
	if err != nil {
		t.Fatalf("new labels: %v", err)
	}
	if got := l.Text(GeneralInfo); got != "GENERAL INFORMATION" {
		t.Fatalf("expected english fallback, got %q", got)
	}
	if got := l.Text(TypeList, 3); got != "List (3 items)" {
		t.Fatalf("unexpected list label %q", got)
	}
}

func TestLabels_ZeroValueRendersEnglish(t *testing.T) {
	var nilLabels *Labels
	if got := nilLabels.Text(Totals); got != "TOTALS" {
		t.Fatalf("nil labels: got %q", got)
	}
	if got := (&Labels{}).Text(GeneratedAt, "now"); got != "Generated at now" {
		t.Fatalf("zero labels: got %q", got)
	}
	if got := (&Labels{}).Text("unknown.key"); got != "unknown.key" {
		t.Fatalf("unknown key: got %q", got)
	}
}

type failingTranslator struct{}

func (failingTranslator) Translate(string, string, ...any) (string, error) {
	return "", errors.New("store offline")
}

func TestLabels_TranslatorErrorUsesEnglish(t *testing.T) {
	l := &Labels{Translator: failingTranslator{}, Locale: "pt-BR"}
	if got := l.Text(StatMean); got != "Mean" {
		t.Fatalf("got %q", got)
	}
}

func TestCatalogsCoverTheSameKeys(t *testing.T) {
	for key := range english {
		if _, ok := brazilianPortuguese[key]; !ok {
			t.Fatalf("pt-BR catalog is missing %s", key)
		}
	}
	if len(english) != len(brazilianPortuguese) {
		t.Fatalf("catalog sizes differ: %d vs %d", len(english), len(brazilianPortuguese))
	}
}
