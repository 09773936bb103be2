package core

import (
	"embed"
	"html/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var enUS = message.NewPrinter(language.AmericanEnglish)

// formatCurrency renders whole US dollars with grouping, e.g. $417,650.
func formatCurrency(v int64) string {
	return enUS.Sprintf("$%v", number.Decimal(v))
}

// formatNumber renders a grouped integer, e.g. 71,003.
func formatNumber(v int64) string {
	return enUS.Sprintf("%v", number.Decimal(v))
}

// LoadTemplates parses the embedded page templates with the formatting
// helpers attached.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"currency": formatCurrency,
		"number":   formatNumber,
	}).ParseFS(templatesFS, "templates/*.tmpl")
}
