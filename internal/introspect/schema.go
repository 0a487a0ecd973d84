package introspect

// TableSummary is one line of the table listing.
type TableSummary struct {
	ID         int // 1-based position in catalog order
	Name       string
	RowCount   int64
	FieldCount int
}

// ColumnMeta describes a single table column.
type ColumnMeta struct {
	Name         string
	Type         string
	MaxLength    *int64
	Nullable     bool
	Default      *string
	IsPrimaryKey bool
}

// PrimaryKey returns the name of the first primary key column, or "" if the
// table has none.
func PrimaryKey(cols []ColumnMeta) string {
	for _, c := range cols {
		if c.IsPrimaryKey {
			return c.Name
		}
	}
	return ""
}

// Cell is a single column value of a Row.
type Cell struct {
	Column string
	Value  Value
}

// Row is an ordered set of cells. The order matches the table's schema order.
type Row []Cell

// Get returns the value stored under column. Data reports look cells up by
// the names Describe returns.
func (r Row) Get(column string) (Value, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return Value{}, false
}
