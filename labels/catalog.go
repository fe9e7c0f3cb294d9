package labels

import (
	i18n "github.com/goliatone/go-i18n"
)

// Message keys.
const (
	DetailedReport   = "workbook.detailed_report"
	GeneratedAtLabel = "workbook.generated_at"
	SummarySheet     = "workbook.summary_sheet"
	GeneralInfo      = "workbook.general_info"
	NumericStats     = "workbook.numeric_stats"
	StructuredData   = "workbook.structured_data"
	ListSummary      = "workbook.list_summary"
	Totals           = "workbook.totals"

	HeaderField    = "workbook.header.field"
	HeaderValue    = "workbook.header.value"
	HeaderType     = "workbook.header.type"
	HeaderMetric   = "workbook.header.metric"
	HeaderProperty = "workbook.header.property"
	HeaderList     = "workbook.header.list"
	HeaderCount    = "workbook.header.count"
	HeaderDataType = "workbook.header.data_type"
	HeaderSample   = "workbook.header.sample"
	HeaderItem     = "workbook.header.item"

	StatCount = "workbook.stat.count"
	StatSum   = "workbook.stat.sum"
	StatMean  = "workbook.stat.mean"
	StatMax   = "workbook.stat.max"
	StatMin   = "workbook.stat.min"

	TypeNull        = "workbook.type.null"
	TypeBoolean     = "workbook.type.boolean"
	TypeNumber      = "workbook.type.number"
	TypeDate        = "workbook.type.date"
	TypeNumericText = "workbook.type.numeric_text"
	TypeEmail       = "workbook.type.email"
	TypeLongText    = "workbook.type.long_text"
	TypeText        = "workbook.type.text"
	TypeObject      = "workbook.type.object"
	TypeList        = "workbook.type.list"
	TypeUndefined   = "workbook.type.undefined"
	SampleEmpty     = "workbook.sample.empty"

	GeneratedAt    = "document.generated_at"
	Footer         = "document.footer"
	DegradedNotice = "document.degraded_notice"
	PageOf         = "document.page_of"
)

// Supported catalog locales.
const (
	English             = "en"
	BrazilianPortuguese = "pt-BR"
	DefaultLocale       = English
)

var english = map[string]string{
	DetailedReport:   "DETAILED REPORT",
	GeneratedAtLabel: "Generated at:",
	SummarySheet:     "Summary",
	GeneralInfo:      "GENERAL INFORMATION",
	NumericStats:     "NUMERIC STATISTICS",
	StructuredData:   "STRUCTURED DATA",
	ListSummary:      "LIST SUMMARY",
	Totals:           "TOTALS",

	HeaderField:    "Field",
	HeaderValue:    "Value",
	HeaderType:     "Type",
	HeaderMetric:   "Metric",
	HeaderProperty: "Property",
	HeaderList:     "List",
	HeaderCount:    "Count",
	HeaderDataType: "Data Type",
	HeaderSample:   "Sample",
	HeaderItem:     "Item",

	StatCount: "Numeric fields",
	StatSum:   "Sum",
	StatMean:  "Mean",
	StatMax:   "Max",
	StatMin:   "Min",

	TypeNull:        "Null",
	TypeBoolean:     "Boolean",
	TypeNumber:      "Number",
	TypeDate:        "Date",
	TypeNumericText: "Numeric Text",
	TypeEmail:       "Email",
	TypeLongText:    "Long Text",
	TypeText:        "Text",
	TypeObject:      "Object",
	TypeList:        "List (%d items)",
	TypeUndefined:   "Undefined",
	SampleEmpty:     "Empty",

	GeneratedAt:    "Generated at %s",
	Footer:         "Report generated automatically",
	DegradedNotice: "Simplified rendering: the full layout could not be produced.",
	PageOf:         "Page %d of %s",
}

var brazilianPortuguese = map[string]string{
	DetailedReport:   "RELATÓRIO DETALHADO",
	GeneratedAtLabel: "Gerado em:",
	SummarySheet:     "Resumo",
	GeneralInfo:      "INFORMAÇÕES GERAIS",
	NumericStats:     "ESTATÍSTICAS NUMÉRICAS",
	StructuredData:   "DADOS ESTRUTURADOS",
	ListSummary:      "RESUMO DE LISTAS",
	Totals:           "TOTAIS",

	HeaderField:    "Campo",
	HeaderValue:    "Valor",
	HeaderType:     "Tipo",
	HeaderMetric:   "Métrica",
	HeaderProperty: "Propriedade",
	HeaderList:     "Lista",
	HeaderCount:    "Quantidade",
	HeaderDataType: "Tipo de Dados",
	HeaderSample:   "Amostra",
	HeaderItem:     "Item",

	StatCount: "Total de campos numéricos",
	StatSum:   "Soma total",
	StatMean:  "Média",
	StatMax:   "Valor máximo",
	StatMin:   "Valor mínimo",

	TypeNull:        "Nulo",
	TypeBoolean:     "Booleano",
	TypeNumber:      "Número",
	TypeDate:        "Data",
	TypeNumericText: "Número (texto)",
	TypeEmail:       "Email",
	TypeLongText:    "Texto longo",
	TypeText:        "Texto",
	TypeObject:      "Objeto",
	TypeList:        "Lista (%d itens)",
	TypeUndefined:   "Indefinido",
	SampleEmpty:     "Vazio",

	GeneratedAt:    "Gerado em %s",
	Footer:         "Relatório gerado automaticamente",
	DegradedNotice: "Renderização simplificada: o layout completo não pôde ser gerado.",
	PageOf:         "Página %d de %s",
}

// Translations returns the built-in catalogs.
func Translations() i18n.Translations {
	return i18n.Translations{
		English:             catalog(English, "English", english),
		BrazilianPortuguese: catalog(BrazilianPortuguese, "Português (Brasil)", brazilianPortuguese),
	}
}

func catalog(code, name string, templates map[string]string) *i18n.TranslationCatalog {
	messages := make(map[string]i18n.Message, len(templates))
	for key, tpl := range templates {
		messages[key] = i18n.Message{
			MessageMetadata: i18n.MessageMetadata{ID: key, Locale: code},
			Variants: map[i18n.PluralCategory]i18n.MessageVariant{
				i18n.PluralOther: {Template: tpl},
			},
		}
	}
	return &i18n.TranslationCatalog{
		Locale:   i18n.Locale{Code: code, Name: name},
		Messages: messages,
	}
}
