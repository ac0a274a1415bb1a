package record

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Format names an input encoding.
type Format string

// Supported input formats.
const (
	FormatAuto   Format = "auto"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatNDJSON Format = "ndjson"
)

// DefaultKeyField is the field used as record key when none is configured.
const DefaultKeyField = "key"

// Decoding errors.
var (
	ErrUnknownFormat = errors.New("unknown input format")
	ErrNotRecords    = errors.New("input is not a list of objects")
)

// maxLineSize bounds one NDJSON line.
const maxLineSize = 4 * 1024 * 1024

// ParseFormat parses a format name. The empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatJSON, FormatYAML, FormatNDJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "jsonl":
		return FormatNDJSON, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".ndjson", ".jsonl":
		return FormatNDJSON, nil
	default:
		return "", fmt.Errorf("cannot detect format of %s: %w", path, ErrUnknownFormat)
	}
}

// Decode reads records from r. Field order follows the input for every format. Records without keyField get a generated ULID key; duplicate keys
// are replaced the same way.
func Decode(r io.Reader, format Format, keyField string) ([]Record, error) {
	if keyField == "" {
		keyField = DefaultKeyField
	}

	var (
		records []Record
		err     error
	)
	switch format {
	case FormatJSON:
		records, err = decodeJSON(r, keyField)
	case FormatYAML:
		records, err = decodeDocuments(r, keyField)
	case FormatNDJSON:
		records, err = decodeLines(r, keyField)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, err
	}

	return ensureUniqueKeys(records), nil
}

func decodeDocuments(r io.Reader, keyField string) ([]Record, error) {
	dec := yaml.NewDecoder(r)
	var records []Record
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, fmt.Errorf("decoding document: %w", err)
		}
		recs, err := fromNode(&doc, keyField)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
}

func decodeLines(r io.Reader, keyField string) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize) //nolint:mnd // Initial scanner buffer.

	var records []Record
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		recs, err := decodeJSON(strings.NewReader(text), keyField)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, recs...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return records, nil
}

// fromNode converts a document holding either one mapping or a sequence of mappings.
func fromNode(n *yaml.Node, keyField string) ([]Record, error) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = n.Content[0]
	}

	switch n.Kind {
	case yaml.MappingNode:
		rec, err := fromMapping(n, keyField)
		if err != nil {
			return nil, err
		}
		return []Record{rec}, nil
	case yaml.SequenceNode:
		records := make([]Record, 0, len(n.Content))
		for i, child := range n.Content {
			if child.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("element %d at line %d: %w", i, child.Line, ErrNotRecords)
			}
			rec, err := fromMapping(child, keyField)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("line %d: %w", n.Line, ErrNotRecords)
	}
}

func fromMapping(n *yaml.Node, keyField string) (Record, error) {
	fields := make([]Field, 0, len(n.Content)/2) //nolint:mnd // Key/value pairs.
	key := ""
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		var value any
		if err := n.Content[i+1].Decode(&value); err != nil {
			return Record{}, fmt.Errorf("field %q at line %d: %w", name, n.Content[i+1].Line, err)
		}
		if name == keyField {
			key = FormatValue(value)
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	return Record{key: key, fields: fields}, nil
}

func ensureUniqueKeys(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		if _, dup := seen[records[i].key]; records[i].key == "" || dup {
			records[i].key = ulid.Make().String()
		}
		seen[records[i].key] = struct{}{}
	}
	return records
}

// LoadFile reads records from path. "-" reads standard input.
func LoadFile(path string, format Format, keyField string) ([]Record, error) {
	if format == FormatAuto || format == "" {
		if path == "-" {
			format = FormatJSON
		} else {
			detected, err := DetectFormat(path)
			if err != nil {
				return nil, err
			}
			format = detected
		}
	}

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	records, err := Decode(r, format, keyField)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return records, nil
}

// LoadFiles reads every path concurrently and concatenates the records in
// argument order. Keys are made unique across files.
func LoadFiles(ctx context.Context, paths []string, format Format, keyField string) ([]Record, error) {
	results := make([][]Record, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			recs, err := LoadFile(path, format, keyField)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]Record, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}
	return ensureUniqueKeys(all), nil
}
