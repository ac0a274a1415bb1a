package columns

// FieldLister is implemented by items whose fields can be enumerated in a stable order.
type FieldLister interface {
	FieldNames() []string
}

// Infer derives one column per field of first. The first column is sorted
// ascending and never collapses; the rest are collapsable. Only first is
// inspected, so fields missing from it get no column.
func Infer(first FieldLister, m Metrics) []Column {
	if first == nil {
		return nil
	}

	names := first.FieldNames()
	cols := make([]Column, 0, len(names))
	for i, name := range names {
		cols = append(cols, Column{
			Key:           name,
			Name:          name,
			FieldName:     name,
			MinWidth:      m.InferredMinWidth,
			MaxWidth:      m.InferredMaxWidth,
			IsCollapsable: i > 0,
			IsClipped:     true,
			IsSortable:    true,
			IsSorted:      i == 0,
			IsFilterable:  true,
		})
	}
	return cols
}
