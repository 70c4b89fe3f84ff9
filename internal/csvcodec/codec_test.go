package csvcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected [][]string
	}{
		{
			name:     "Quoted Field With Comma",
			content:  "a,\"b,c\",d\n",
			expected: [][]string{{"a", "b,c", "d"}},
		},
		{
			name:     "Escaped Quotes",
			content:  "a,\"he said \"\"quoted\"\"\",b\n",
			expected: [][]string{{"a", `he said "quoted"`, "b"}},
		},
		{
			name:     "CRLF Rows",
			content:  "a,b\r\nc,d\r\n",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "Newline Inside Quotes",
			content:  "a,\"line1\nline2\",b\n",
			expected: [][]string{{"a", "line1\nline2", "b"}},
		},
		{
			name:     "Blank Rows Dropped",
			content:  "a,b\n\n,,\nc,d\n",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "BOM Stripped",
			content:  "\uFEFFa,b\n",
			expected: [][]string{{"a", "b"}},
		},
		{
			name:     "Unterminated Quote Closed At EOF",
			content:  "a,\"unterminated",
			expected: [][]string{{"a", "unterminated"}},
		},
		{
			name:     "No Trailing Newline",
			content:  "a,b",
			expected: [][]string{{"a", "b"}},
		},
		{
			name:     "Bare CR Row Separator",
			content:  "a,b\rc,d",
			expected: [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:     "Empty Input",
			content:  "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.content))
		})
	}
}

func TestSerialize(t *testing.T) {
	headers := []string{"name", "note"}
	rows := [][]string{
		{"desk", "wood, oak"},
		{"chair", `said "fine"`},
	}

	t.Run("Minimal Quoting", func(t *testing.T) {
		out := Serialize(headers, rows, SerializeOptions{})

		assert.Equal(t, BOM+"name,note\r\ndesk,\"wood, oak\"\r\nchair,\"said \"\"fine\"\"\"\r\n", out)
	})

	t.Run("Quote All Fields", func(t *testing.T) {
		out := Serialize(headers, rows, SerializeOptions{QuoteAll: true})

		assert.Equal(t, BOM+"\"name\",\"note\"\r\n\"desk\",\"wood, oak\"\r\n\"chair\",\"said \"\"fine\"\"\"\r\n", out)
	})

	t.Run("LF Separator", func(t *testing.T) {
		out := Serialize(headers, nil, SerializeOptions{RowSeparator: "\n"})

		assert.Equal(t, BOM+"name,note\n", out)
	})
}

func TestSerializeParseRoundTrip(t *testing.T) {
	headers := []string{"sku", "name", "notes"}
	rows := [][]string{
		{"SKU-00001", "desk, small", "multi\nline"},
		{"CSG-00002", `with "quotes"`, ""},
	}

	for _, opts := range []SerializeOptions{
		{},
		{QuoteAll: true},
		{RowSeparator: "\n"},
	} {
		parsed := Parse(Serialize(headers, rows, opts))

		assert.Equal(t, append([][]string{headers}, rows...), parsed)
	}
}

func TestConvertExcelSerialDate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name     string
		value    string
		expected *string
	}{
		{name: "Empty", value: "", expected: nil},
		{name: "Whitespace Only", value: "   ", expected: nil},
		{name: "Already Formatted", value: "2024年5月", expected: strPtr("2024年5月")},
		{name: "Serial One Is January 1900", value: "1", expected: strPtr("1900年1月")},
		{name: "Serial Below Leap Bug", value: "59", expected: strPtr("1900年2月")},
		{name: "Phantom Leap Day Corrected", value: "60", expected: strPtr("1900年2月")},
		{name: "First Of March 1900", value: "61", expected: strPtr("1900年3月")},
		{name: "Unix Epoch Day", value: "25569", expected: strPtr("1970年1月")},
		{name: "Free Text Passes Through Trimmed", value: " spring 2023 ", expected: strPtr("spring 2023")},
		{name: "Negative Serial Passes Through", value: "-5", expected: strPtr("-5")},
		{name: "Zero Passes Through", value: "0", expected: strPtr("0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertExcelSerialDate(tt.value)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, *tt.expected, *got)
			}
		})
	}
}
