package audit

import (
	"fmt"
	"strings"
)

// ParseCompletion turns the model's raw completion text into an ordered
// sequence of field tuples, one per data row. The completion is treated as
// hostile input: it may open with prose, restate the header it was told to
// omit, wrap the data in code fences, or emit rows with the wrong field
// count. Individual malformed lines never fail the parse; only a completion
// with zero usable rows does, as ErrEmptyExtraction.
func ParseCompletion(raw string, schema Schema, delim Delimiter) ([][]string, error) {
	sep := delim.String()

	var rows [][]string
	for _, line := range strings.Split(raw, "\n") {
		// Lines without the delimiter are commentary, fences, or blanks.
		if !strings.Contains(line, sep) {
			continue
		}
		if isHeaderLine(line, schema) {
			continue
		}

		fields := strings.Split(line, sep)
		empty := true
		for i, f := range fields {
			fields[i] = strings.TrimSpace(f)
			if fields[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}

		rows = append(rows, fitToSchema(fields, schema))
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("parse completion: %w", ErrEmptyExtraction)
	}
	return rows, nil
}

// isHeaderLine reports whether the line restates the schema's column names.
// Instructing the model to omit the header is unreliable, so the parser does
// not depend on the header being present or absent.
func isHeaderLine(line string, schema Schema) bool {
	lower := strings.ToLower(line)
	for _, c := range schema.Columns {
		if !strings.Contains(lower, strings.ToLower(c.Name)) {
			return false
		}
	}
	return true
}

// fitToSchema forces a row to the schema's field count. Short rows get
// trailing defaults (the model dropped a column); long rows are truncated
// (the model over-segmented, usually a description containing the
// delimiter). Positional truncation is deterministic, not quote-aware.
func fitToSchema(fields []string, schema Schema) []string {
	n := schema.Len()
	if len(fields) > n {
		return fields[:n]
	}
	for len(fields) < n {
		fields = append(fields, schema.Default(len(fields)))
	}
	return fields
}
