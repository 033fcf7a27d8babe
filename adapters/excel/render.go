package excel

import (
	"fmt"

	"revreview/domain/report"
	"revreview/internal/errors"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize.NewFile creates
const defaultSheet = "Sheet1"

// Render converts a laid-out document into a workbook with a single sheet.
// The caller owns the returned file and must Close it.
func Render(doc *report.Document) (*excelize.File, error) {
	f := excelize.NewFile()
	r := &renderer{f: f, sheet: defaultSheet, styles: make(map[report.CellStyle]int)}
	if err := r.render(doc); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "failed to render worksheet")
	}
	return f, nil
}

type renderer struct {
	f      *excelize.File
	sheet  string
	styles map[report.CellStyle]int
}

func (r *renderer) render(doc *report.Document) error {
	if doc.SheetName != "" && doc.SheetName != defaultSheet {
		if err := r.f.SetSheetName(defaultSheet, doc.SheetName); err != nil {
			return fmt.Errorf("naming sheet %q: %w", doc.SheetName, err)
		}
		r.sheet = doc.SheetName
	}

	for i, col := range doc.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := r.f.SetColWidth(r.sheet, name, name, col.Width); err != nil {
			return fmt.Errorf("setting width of column %s: %w", name, err)
		}
	}

	for rowIdx, cells := range doc.Cells {
		for colIdx, cell := range cells {
			ref, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return err
			}
			if cell.Value != nil {
				if err := r.f.SetCellValue(r.sheet, ref, cell.Value); err != nil {
					return fmt.Errorf("writing %s: %w", ref, err)
				}
			}
			styleID, err := r.style(cell.Style)
			if err != nil {
				return err
			}
			if err := r.f.SetCellStyle(r.sheet, ref, ref, styleID); err != nil {
				return fmt.Errorf("styling %s: %w", ref, err)
			}
		}
	}

	if doc.FreezeRows > 0 {
		topLeft, err := excelize.CoordinatesToCellName(1, doc.FreezeRows+1)
		if err != nil {
			return err
		}
		if err := r.f.SetPanes(r.sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      doc.FreezeRows,
			TopLeftCell: topLeft,
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freezing header: %w", err)
		}
	}

	if doc.AutoFilter != "" {
		if err := r.f.AutoFilter(r.sheet, doc.AutoFilter, nil); err != nil {
			return fmt.Errorf("adding filter %s: %w", doc.AutoFilter, err)
		}
	}
	return nil
}

// style returns a cached style id so identical styles share one entry.
func (r *renderer) style(cs report.CellStyle) (int, error) {
	if id, ok := r.styles[cs]; ok {
		return id, nil
	}
	style := &excelize.Style{
		Font: &excelize.Font{
			Bold:   cs.Bold,
			Family: cs.FontName,
			Size:   cs.FontSize,
		},
		Alignment: &excelize.Alignment{
			Vertical: cs.Vertical,
			WrapText: cs.Wrap,
		},
	}
	if cs.NumFmt != "" {
		numFmt := cs.NumFmt
		style.CustomNumFmt = &numFmt
	}
	id, err := r.f.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("creating style: %w", err)
	}
	r.styles[cs] = id
	return id, nil
}
