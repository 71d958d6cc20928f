// Package report renders a shop's sales figures as downloadable CSV and as
// a printable HTML page.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/sakchai-01/school-pos/internal/order"
)

// WriteCSV writes the per-menu sales report as CSV. Names containing commas
// or quotes come out properly escaped.
func WriteCSV(w io.Writer, rows []order.MenuSales) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Menu Item", "Total Sold", "Revenue", "Total Cost", "Profit"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Name,
			strconv.FormatInt(r.TotalSold, 10),
			strconv.FormatFloat(r.Revenue, 'f', 2, 64),
			strconv.FormatFloat(r.TotalCost, 'f', 2, 64),
			strconv.FormatFloat(r.Profit, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// pageTemplate wraps the rendered report body for printing.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.8rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`

// Printable renders the sales report as a standalone HTML page. The report
// is composed as markdown and converted, table extension included.
func Printable(shopName string, menu []order.MenuSales, daily []order.DailySales, generatedAt time.Time) ([]byte, error) {
	var md bytes.Buffer
	fmt.Fprintf(&md, "# Sales Report: %s\n\n", shopName)
	fmt.Fprintf(&md, "Generated %s\n\n", generatedAt.Format("2 Jan 2006 15:04"))

	md.WriteString("## Menu Items\n\n")
	if len(menu) == 0 {
		md.WriteString("No sales recorded yet.\n\n")
	} else {
		md.WriteString("| Menu Item | Total Sold | Revenue | Total Cost | Profit |\n")
		md.WriteString("| --- | ---: | ---: | ---: | ---: |\n")
		for _, r := range menu {
			fmt.Fprintf(&md, "| %s | %d | %.2f | %.2f | %.2f |\n",
				r.Name, r.TotalSold, r.Revenue, r.TotalCost, r.Profit)
		}
		md.WriteString("\n")
	}

	md.WriteString("## Last 7 Days\n\n")
	if len(daily) == 0 {
		md.WriteString("No orders in the last seven days.\n")
	} else {
		md.WriteString("| Date | Orders | Revenue |\n")
		md.WriteString("| --- | ---: | ---: |\n")
		for _, d := range daily {
			fmt.Fprintf(&md, "| %s | %d | %.2f |\n", d.Date, d.OrdersCount, d.Revenue)
		}
	}

	conv := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	var body bytes.Buffer
	if err := conv.Convert(md.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("converting report markdown: %w", err)
	}

	tmpl, err := template.New("report").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing report template: %w", err)
	}
	var page bytes.Buffer
	err = tmpl.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{
		Title: "Sales Report: " + shopName,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering report page: %w", err)
	}
	return page.Bytes(), nil
}
