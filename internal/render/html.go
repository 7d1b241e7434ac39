package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var quoteTemplate = template.Must(
	template.New("quote.html.tmpl").
		Funcs(template.FuncMap{
			"money": model.FormatMoney,
			"qty":   Quantity,
		}).
		ParseFS(templateFS, "templates/quote.html.tmpl"),
)

// Quantity renders a line quantity without trailing zeros ("100", "2.5").
func Quantity(d decimal.Decimal) string {
	return d.String()
}

// HTML renders the quote as a standalone HTML document, used for email bodies and PDFs.
func HTML(q Quote) (string, error) {
	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, q); err != nil {
		return "", fmt.Errorf("render quote html: %w", err)
	}
	return buf.String(), nil
}
