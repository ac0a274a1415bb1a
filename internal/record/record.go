// Package record defines the items browsed by vlist: keyed records with ordered
// fields, decoded from JSON, YAML or NDJSON files.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is one named value of a record.
type Field struct {
	Name  string
	Value any
}

// Record is a keyed item with fields in source order. Records are immutable
// once built.
type Record struct {
	key    string
	fields []Field
}

// New builds a record. The fields slice is copied.
func New(key string, fields ...Field) Record {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return Record{key: key, fields: cp}
}

// Key returns the record key.
func (r Record) Key() string {
	return r.key
}

// Fields returns a copy of the fields.
func (r Record) Fields() []Field {
	cp := make([]Field, len(r.fields))
	copy(cp, r.fields)
	return cp
}

// FieldNames returns field names in source order.
func (r Record) FieldNames() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Format returns the display text of the named field, or "" when it is missing.
func (r Record) Format(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// FormatValue renders a decoded value as single-line text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case map[string]any, []any:
		out, err := yaml.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return flatten(string(out))
	default:
		return fmt.Sprint(val)
	}
}

// flatten collapses multi-line YAML into one line.
func flatten(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, " ")
}

// String implements fmt.Stringer.
func (r Record) String() string {
	var b strings.Builder
	b.WriteString(r.key)
	for _, f := range r.fields {
		b.WriteString("\t")
		b.WriteString(FormatValue(f.Value))
	}
	return b.String()
}
