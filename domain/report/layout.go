package report

// LayoutRule is the display directive for one column.
// NumFmt, when set, formats date/time values in that column.
type LayoutRule struct {
	Width  float64
	Wrap   bool
	NumFmt string
}

// LayoutRules maps exact column display names to their rule.
type LayoutRules map[string]LayoutRule

// DefaultRule applies to any column without an entry.
var DefaultRule = LayoutRule{Width: 20, Wrap: false}

// Lookup resolves name by exact match, falling back to def.
func (r LayoutRules) Lookup(name string, def LayoutRule) LayoutRule {
	if rule, ok := r[name]; ok {
		return rule
	}
	return def
}

// Review report column names, in projection order.
const (
	ColumnUser         = "User"
	ColumnDueDate      = "Due Date"
	ColumnDueDateTime  = "Due Date Time"
	ColumnOrganization = "Organization"
	ColumnOrgType      = "Org Type"
	ColumnPerson       = "Person"
	ColumnPersonEmail  = "Person Email"
	ColumnSubject      = "Subject"
	ColumnNote         = "Note"
)

// ReviewColumns lists the review report columns in projection order.
func ReviewColumns() []string {
	return []string{
		ColumnUser,
		ColumnDueDate,
		ColumnDueDateTime,
		ColumnOrganization,
		ColumnOrgType,
		ColumnPerson,
		ColumnPersonEmail,
		ColumnSubject,
		ColumnNote,
	}
}

// ReviewLayout returns the static column formatting of the review report.
// A fresh map is returned on each call so callers cannot alter the table.
func ReviewLayout() LayoutRules {
	return LayoutRules{
		ColumnUser:         {Width: 20},
		ColumnDueDate:      {Width: 15, NumFmt: "yyyy-mm-dd"},
		ColumnDueDateTime:  {Width: 18, NumFmt: "yyyy-mm-dd h:mm:ss"},
		ColumnOrganization: {Width: 25},
		ColumnOrgType:      {Width: 14},
		ColumnPerson:       {Width: 20},
		ColumnPersonEmail:  {Width: 35},
		ColumnSubject:      {Width: 40},
		ColumnNote:         {Width: 65, Wrap: true},
	}
}
