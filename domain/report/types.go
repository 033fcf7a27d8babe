package report

// Row is one result tuple, positionally aligned with Result.Columns.
// Values are string, time.Time, numeric, bool or nil.
type Row []any

// Result is what the fetcher hands to the layout engine: column display
// names in projection order and the rows in query order.
type Result struct {
	Columns []string
	Rows    []Row
}

// Document is a laid-out single worksheet held in memory.
// Cells is row-major; Cells[0] is the header row.
type Document struct {
	SheetName  string
	Columns    []ColumnFormat
	Cells      [][]Cell
	FreezeRows int
	AutoFilter string
}

// ColumnFormat is the resolved display format of one worksheet column.
type ColumnFormat struct {
	Name  string
	Width float64
	Wrap  bool
}

// Cell is a value plus the style it is rendered with.
type Cell struct {
	Value any
	Style CellStyle
}

// CellStyle carries the subset of spreadsheet styling the report uses.
type CellStyle struct {
	Bold     bool
	Wrap     bool
	Vertical string
	FontName string
	FontSize float64
	NumFmt   string
}

// Vertical alignment values.
const (
	VerticalTop = "top"
)

// RowCount returns the number of worksheet rows including the header.
func (d *Document) RowCount() int {
	return len(d.Cells)
}

// ColumnCount returns the number of worksheet columns.
func (d *Document) ColumnCount() int {
	return len(d.Columns)
}

// Cell returns the cell at 1-based worksheet coordinates.
func (d *Document) Cell(row, col int) (Cell, bool) {
	if row < 1 || row > len(d.Cells) {
		return Cell{}, false
	}
	cells := d.Cells[row-1]
	if col < 1 || col > len(cells) {
		return Cell{}, false
	}
	return cells[col-1], true
}
