package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/poisebuild/poise-pms/internal/model"
)

type Generator struct {
	fontName string
	currency string
}

func NewGenerator(currencySymbol string) *Generator {
	return &Generator{fontName: "Helvetica", currency: currencySymbol}
}

// Generate renders the invoice for a finalised project with a balance due.
func (g *Generator) Generate(summary model.InvoiceSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 16)
	pdf.CellFormat(0, 10, "Invoice", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Project no. %d - %s", summary.ProjectID, summary.ProjectName), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Finalised on %s", formatDate(summary.CompletionDate)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	g.addCustomerBlock(pdf, summary.Customer)
	pdf.Ln(6)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Project fee", "", 1, "L", false, 0, "")

	headers := []string{"", "Amount"}
	colWidths := []float64{110, 60}
	g.drawRow(pdf, headers, colWidths, true)
	g.drawRow(pdf, []string{"Total fee", g.amount(summary.TotalFee)}, colWidths, false)
	g.drawRow(pdf, []string{"Amount paid", g.amount(summary.AmountPaid)}, colWidths, false)
	g.drawRow(pdf, []string{"Amount due", g.amount(summary.AmountDue)}, colWidths, false)

	pdf.Ln(8)
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Balance due: %s", g.amount(summary.AmountDue)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) addCustomerBlock(pdf *gofpdf.Fpdf, customer model.Person) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(0, 6, "Billed to", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)
	lines := []string{
		customer.Name,
		fmt.Sprintf("Phone: %s", safeValue(customer.Phone)),
		fmt.Sprintf("E-mail: %s", safeValue(customer.Email)),
		fmt.Sprintf("Address: %s", safeValue(customer.Address)),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, line, "", "L", false)
	}
}

func (g *Generator) drawRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(g.fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func (g *Generator) amount(value float64) string {
	return fmt.Sprintf("%s%.2f", g.currency, value)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
