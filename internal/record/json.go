package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// decodeJSON reads a stream of JSON values, each an object or an array of
// objects. Objects are walked token by token so field order is kept.
func decodeJSON(r io.Reader, keyField string) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var records []Record
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
		recs, err := jsonRecords(dec, tok, keyField)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
}

// jsonRecords converts the value that starts with tok.
func jsonRecords(dec *json.Decoder, tok json.Token, keyField string) ([]Record, error) {
	switch tok {
	case json.Delim('{'):
		rec, err := jsonObject(dec, keyField)
		if err != nil {
			return nil, err
		}
		return []Record{rec}, nil
	case json.Delim('['):
		var records []Record
		for i := 0; dec.More(); i++ {
			start, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			if start != json.Delim('{') {
				return nil, fmt.Errorf("element %d at offset %d: %w", i, dec.InputOffset(), ErrNotRecords)
			}
			rec, err := jsonObject(dec, keyField)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			records = append(records, rec)
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("closing array: %w", err)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("offset %d: %w", dec.InputOffset(), ErrNotRecords)
	}
}

// jsonObject reads the members of an object whose opening brace was consumed.
func jsonObject(dec *json.Decoder, keyField string) (Record, error) {
	var (
		fields []Field
		key    string
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Record{}, err
		}
		name, ok := tok.(string)
		if !ok {
			return Record{}, fmt.Errorf("unexpected token %v at offset %d", tok, dec.InputOffset())
		}
		value, err := jsonValue(dec)
		if err != nil {
			return Record{}, fmt.Errorf("field %q: %w", name, err)
		}
		if name == keyField {
			key = FormatValue(value)
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return Record{}, err
	}
	return Record{key: key, fields: fields}, nil
}

// jsonValue reads one value. Nested objects become maps; numbers become int
// when integral, float64 otherwise, matching the YAML decoder.
func jsonValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			m := make(map[string]any)
			for dec.More() {
				k, err := dec.Token()
				if err != nil {
					return nil, err
				}
				name, _ := k.(string)
				if m[name], err = jsonValue(dec); err != nil {
					return nil, err
				}
			}
			_, err = dec.Token()
			return m, err
		case '[':
			list := []any{}
			for dec.More() {
				item, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, item)
			}
			_, err = dec.Token()
			return list, err
		default:
			return nil, fmt.Errorf("unexpected delimiter %v at offset %d", v, dec.InputOffset())
		}
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), nil
		}
		return v.Float64()
	default:
		return v, nil
	}
}
