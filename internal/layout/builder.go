// Package layout places a query result onto a single styled worksheet.
package layout

import (
	"fmt"
	"time"

	"revreview/domain/report"
	"revreview/internal/errors"
	"revreview/internal/sanitize"

	"github.com/xuri/excelize/v2"
)

// DefaultTimeFormat is used for time values in columns without a NumFmt.
const DefaultTimeFormat = "yyyy-mm-dd h:mm:ss"

// Builder lays out documents. The zero value is not usable; use NewBuilder.
type Builder struct {
	sheetName string
	rules     report.LayoutRules
	def       report.LayoutRule
	fontName  string
	fontSize  float64
}

// Options configure a Builder
type Options struct {
	SheetName   string
	Rules       report.LayoutRules
	DefaultRule report.LayoutRule
	FontName    string
	FontSize    float64
}

// NewBuilder creates a layout builder. The rule table is copied.
func NewBuilder(opts Options) *Builder {
	rules := make(report.LayoutRules, len(opts.Rules))
	for name, rule := range opts.Rules {
		rules[name] = rule
	}
	return &Builder{
		sheetName: opts.SheetName,
		rules:     rules,
		def:       opts.DefaultRule,
		fontName:  opts.FontName,
		fontSize:  opts.FontSize,
	}
}

// Build lays out columns and rows: bold header on row 1 (frozen, filtered),
// data from row 2 in input order, each cell sanitized and top-aligned with the
// column's wrap rule, then every non-empty cell normalized to the font size.
func (b *Builder) Build(columns []string, rows []report.Row) (*report.Document, error) {
	if len(columns) == 0 {
		return nil, errors.InvalidInput("report has no columns")
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d has %d values, expected %d", i+1, len(row), len(columns)))
		}
	}

	lastCell, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute filter range")
	}

	doc := &report.Document{
		SheetName:  b.sheetName,
		Columns:    make([]report.ColumnFormat, len(columns)),
		Cells:      make([][]report.Cell, 0, len(rows)+1),
		FreezeRows: 1,
		AutoFilter: "A1:" + lastCell,
	}

	resolved := make([]report.LayoutRule, len(columns))
	header := make([]report.Cell, len(columns))
	for i, name := range columns {
		rule := b.rules.Lookup(name, b.def)
		resolved[i] = rule
		doc.Columns[i] = report.ColumnFormat{Name: name, Width: rule.Width, Wrap: rule.Wrap}
		header[i] = report.Cell{
			Value: name,
			Style: report.CellStyle{
				Bold:     true,
				Wrap:     rule.Wrap,
				Vertical: report.VerticalTop,
				FontName: b.fontName,
			},
		}
	}
	doc.Cells = append(doc.Cells, header)

	for _, row := range rows {
		cells := make([]report.Cell, len(row))
		for i, raw := range row {
			value := sanitize.Cell(raw)
			style := report.CellStyle{
				Wrap:     resolved[i].Wrap,
				Vertical: report.VerticalTop,
				FontName: b.fontName,
			}
			if _, ok := value.(time.Time); ok {
				style.NumFmt = resolved[i].NumFmt
				if style.NumFmt == "" {
					style.NumFmt = DefaultTimeFormat
				}
			}
			cells[i] = report.Cell{Value: value, Style: style}
		}
		doc.Cells = append(doc.Cells, cells)
	}

	b.normalizeFonts(doc)
	return doc, nil
}

// normalizeFonts sets the font size of every non-empty cell, leaving bold and
// font name as they are. Empty cells keep the workbook default font.
func (b *Builder) normalizeFonts(doc *report.Document) {
	for r := range doc.Cells {
		for c := range doc.Cells[r] {
			if doc.Cells[r][c].Value == nil {
				continue
			}
			doc.Cells[r][c].Style.FontSize = b.fontSize
		}
	}
}
