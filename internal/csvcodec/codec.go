package csvcodec

import (
	"strings"
)

// BOM is prefixed to every generated file so Excel picks up UTF-8.
const BOM = "\uFEFF"

// Parse reads CSV content into rows of fields. It is deliberately
// permissive: a double quote opens a quoted section anywhere, `""` inside a
// quoted section yields a literal quote, an unterminated quote is closed at
// end of input, and rows whose fields are all empty are dropped. It never
// fails on malformed input.
func Parse(content string) [][]string {
	content = strings.TrimPrefix(content, BOM)

	var (
		rows     [][]string
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		fields = append(fields, field.String())
		field.Reset()
	}

	endRow := func() {
		endField()
		blank := true
		for _, f := range fields {
			if f != "" {
				blank = false
				break
			}
		}
		if !blank {
			rows = append(rows, fields)
		}
		fields = nil
	}

	runes := []rune(content)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inQuotes {
			if ch == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteRune(ch)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\r':
			if i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			endRow()
		case '\n':
			endRow()
		default:
			field.WriteRune(ch)
		}
	}

	// Trailing row without a final line break.
	if field.Len() > 0 || len(fields) > 0 {
		endRow()
	}

	return rows
}

// SerializeOptions selects the output flavor of Serialize. The zero value
// produces CRLF rows with minimal quoting.
type SerializeOptions struct {
	// RowSeparator defaults to "\r\n". The legacy consignment export keeps
	// "\n" because its existing consumers split on bare LF.
	RowSeparator string
	// QuoteAll wraps every field in quotes regardless of content. The item
	// export uses it; the template endpoint quotes only when needed.
	QuoteAll bool
}

// Serialize renders a header row plus data rows, prefixed with a BOM.
func Serialize(headers []string, rows [][]string, opts SerializeOptions) string {
	sep := opts.RowSeparator
	if sep == "" {
		sep = "\r\n"
	}

	var sb strings.Builder
	sb.WriteString(BOM)
	writeRow(&sb, headers, opts.QuoteAll)
	for _, row := range rows {
		sb.WriteString(sep)
		writeRow(&sb, row, opts.QuoteAll)
	}
	sb.WriteString(sep)

	return sb.String()
}

func writeRow(sb *strings.Builder, fields []string, quoteAll bool) {
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(encodeField(f, quoteAll))
	}
}

func encodeField(field string, quoteAll bool) string {
	needsQuote := quoteAll || strings.ContainsAny(field, ",\"\r\n")
	if !needsQuote {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
