package sampling

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// Format names accepted for sample decoding.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// FormatForPath guesses the sample format from a file path's extension. An
// explicit format always wins; this is the fallback when none is configured.
func FormatForPath(filePath string) string {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".csv", ".tsv":
		return FormatCSV
	default:
		return FormatJSON
	}
}

// DecodeRecords decodes up to maxRecords records from a fetched sample.
// Samples are byte-bounded, so the tail of the data may be a truncated
// record; decoding keeps every complete record seen before the cut instead
// of failing. An error comes back only when nothing decodable was found.
func DecodeRecords(data []byte, format string, maxRecords int) ([]any, error) {
	switch strings.ToLower(format) {
	case FormatCSV:
		return decodeCSV(data, maxRecords)
	case FormatJSON, "":
		return decodeJSON(data, maxRecords)
	default:
		return nil, fmt.Errorf("unsupported sample format %q", format)
	}
}

// decodeJSON accepts a JSON array of records, a single record object, or
// newline-delimited records.
func decodeJSON(data []byte, maxRecords int) ([]any, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, errors.New("empty sample")
	}

	switch trimmed[0] {
	case '[':
		return decodeJSONArray(trimmed, maxRecords)
	case '{':
		return decodeJSONLines(trimmed, maxRecords)
	default:
		return nil, errors.New("sample is not JSON records")
	}
}

func decodeJSONArray(data []byte, maxRecords int) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode sample: %w", err)
	}

	var records []any
	for dec.More() && len(records) < maxRecords {
		var rec any
		if err := dec.Decode(&rec); err != nil {
			// Truncated tail: keep what decoded cleanly.
			if len(records) > 0 {
				return records, nil
			}
			return nil, fmt.Errorf("decode sample: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// decodeJSONLines handles both a single object sample and NDJSON. The first
// object is decoded from the stream; if more follow they are decoded until
// the byte bound cut one off.
func decodeJSONLines(data []byte, maxRecords int) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var records []any
	for len(records) < maxRecords {
		var rec any
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(records) > 0 {
				return records, nil
			}
			return nil, fmt.Errorf("decode sample: %w", err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, errors.New("empty sample")
	}
	return records, nil
}

// decodeCSV reads a header row then up to maxRecords data rows. Cells stay
// strings; the literal detectors downstream refine dates, emails, and URLs.
func decodeCSV(data []byte, maxRecords int) ([]any, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) == 0 {
		return nil, errors.New("empty csv header")
	}

	var records []any
	for len(records) < maxRecords {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Truncated tail row.
			break
		}
		rec := make(map[string]any, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, errors.New("csv sample has no data rows")
	}
	return records, nil
}
