package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"Thruster/internal/calc/worksheet"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"
)

type Meta struct {
	Project string `json:"project"`
	Author  string `json:"author"`
	Notes   string `json:"notes"`
}

// PDF writes the sheet as an A4 report: header, one two-column table per
// section, then warnings.
func PDF(w io.Writer, meta Meta, sheet worksheet.Sheet) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, sheet.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", meta.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", meta.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	for _, sec := range sheet.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, sec.Title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, row := range sec.Rows {
			pdf.CellFormat(80, 6, row.Name, "B", 0, "L", false, 0, "")
			pdf.CellFormat(60, 6, row.Display(), "B", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	if len(sheet.Warnings) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Warnings")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, warn := range sheet.Warnings {
			pdf.MultiCell(0, 5, "- "+warn, "", "L", false)
		}
	}
	if meta.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, meta.Notes, "", "L", false)
	}
	return pdf.Output(w)
}

// XLSX writes a summary sheet plus one sheet per section with name,
// magnitude and unit columns.
func XLSX(w io.Writer, sheet worksheet.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return err
	}
	f.SetCellValue(summary, "A1", sheet.Title)
	f.SetCellValue(summary, "A2", time.Now().Format("2006-01-02"))
	for i, warn := range sheet.Warnings {
		cell, _ := excelize.CoordinatesToCellName(1, 4+i)
		f.SetCellValue(summary, cell, warn)
	}
	f.SetColWidth(summary, "A", "A", 90)

	for _, sec := range sheet.Sections {
		name := sheetName(sec.Title)
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
		f.SetCellValue(name, "A1", "Quantity")
		f.SetCellValue(name, "B1", "Value")
		f.SetCellValue(name, "C1", "Unit")
		for i, row := range sec.Rows {
			r := i + 2
			f.SetCellValue(name, fmt.Sprintf("A%d", r), row.Name)
			f.SetCellValue(name, fmt.Sprintf("B%d", r), row.Value.Magnitude())
			f.SetCellValue(name, fmt.Sprintf("C%d", r), row.Value.Units())
		}
		f.SetColWidth(name, "A", "A", 28)
		f.SetColWidth(name, "B", "C", 14)
	}
	return f.Write(w)
}

// sheetName trims a title to the 31 characters Excel allows.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, title)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
