package render

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"PriceScope/internal/model"
	"PriceScope/internal/report"
)

// PDFReport lays out the statistics table, the returns panel and, when given,
// the chart PNG on one A4 page.
func PDFReport(r *model.ComparisonReport, chartPNG []byte) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(Title(r), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, r.Symbol, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, r.Range.String(), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 7, "Statistic", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Value", "1", 1, "R", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, row := range [][2]string{
		{"Highest Price", report.Money(r.Stats.HighestPrice)},
		{"Lowest Price", report.Money(r.Stats.LowestPrice)},
		{"Average Closing Price", report.Money(r.Stats.AverageClosingPrice)},
	} {
		pdf.CellFormat(70, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	for _, line := range returnLines(r) {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	if len(chartPNG) > 0 {
		pdf.Ln(4)
		pdf.RegisterImageOptionsReader("chart", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(chartPNG))
		pdf.ImageOptions("chart", 15, pdf.GetY(), 180, 0, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func returnLines(r *model.ComparisonReport) []string {
	if r.HasBenchmark() {
		name := report.BenchmarkName(r.BenchmarkSymbol)
		lines := []string{fmt.Sprintf("%s total return: %s", r.Symbol, report.Percent(r.TargetReturn.ReturnPercent))}
		if r.CommonWindowNarrower() {
			lines = append(lines, fmt.Sprintf("%s over common days: %s", r.Symbol, report.Percent(r.AlignedTargetReturn.ReturnPercent)))
		}
		return append(lines,
			fmt.Sprintf("%s total return: %s", name, report.Percent(r.BenchmarkReturn.ReturnPercent)),
			fmt.Sprintf("Stock vs %s: %s", name, report.SignedPercent(*r.RelativePerformance)),
		)
	}
	lines := []string{"Total return over period: " + report.Percent(r.TargetReturn.ReturnPercent)}
	if r.BenchmarkUnavailable {
		lines = append(lines, "Benchmark comparison unavailable: "+r.BenchmarkReason+".")
	}
	return lines
}
