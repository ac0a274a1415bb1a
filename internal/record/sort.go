package record

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Sort orders.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

const sortPartsMax = 2

// ErrInvalidSortOrder is returned for orders other than asc and desc.
var ErrInvalidSortOrder = errors.New("invalid sort order")

// ParseSortExpression parses a sort expression in "field:order" format.
// Supports:
//   - "field" - defaults to asc order
//   - "field:asc" - explicit ascending order
//   - "field:desc" - explicit descending order
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSortExpression(expr string) (field, order string, err error) {
	if strings.TrimSpace(expr) == "" {
		return "", "", errors.New("empty sort expression")
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("invalid format: too many colons in %q", expr)
	}

	field = strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", errors.New("empty sort expression")
	}

	order = SortOrderAsc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: %q (must be asc or desc)", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}

// Sort returns a copy of records stably ordered by field. Numbers compare
// numerically, everything else by display text. Records missing the field
// sort last in either order.
func Sort(records []Record, field string, descending bool) []Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		av, aok := a.Get(field)
		bv, bok := b.Get(field)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		c := compareValues(av, bv)
		if descending {
			return -c
		}
		return c
	})
	return sorted
}

func compareValues(a, b any) int {
	an, aNum := number(a)
	bn, bNum := number(b)
	if aNum && bNum {
		return cmp.Compare(an, bn)
	}
	return strings.Compare(FormatValue(a), FormatValue(b))
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Filter returns the records whose key or any field text contains query,
// ignoring case. An empty query returns records unchanged.
func Filter(records []Record, query string) []Record {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Matches(query) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a lower-cased query occurs in the record.
func (r Record) Matches(query string) bool {
	if strings.Contains(strings.ToLower(r.key), query) {
		return true
	}
	for _, f := range r.fields {
		if strings.Contains(strings.ToLower(FormatValue(f.Value)), query) {
			return true
		}
	}
	return false
}
