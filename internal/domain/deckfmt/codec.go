package deckfmt

import (
	"strings"
	"unicode"

	"github.com/phrazzld/scry-decks/internal/domain"
)

// Separator joins fields in encoded decks.
const Separator = " - "

// Encode renders headers and rows as deck text: the header line followed by
// one line per row, fields joined by Separator. Missing fields encode as empty.
func Encode(headers []string, rows []domain.RowRecord) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, Separator))

	values := make([]string, len(headers))
	for _, row := range rows {
		for i, h := range headers {
			values[i] = row.Get(h)
		}
		lines = append(lines, strings.Join(values, Separator))
	}

	return strings.Join(lines, "\n")
}

// EncodeDeck is Encode for a whole deck.
func EncodeDeck(d *domain.Deck) string {
	return Encode(d.Headers, d.Rows)
}

// Decode parses deck text into headers and rows.
//
// Blank lines are ignored. The delimiter is inferred from the data lines (see
// InferDelimiter). A data line made only of dashes is a row of empty values
// when it holds exactly one delimiter per header gap; any other dash line,
// such as a "---" rule, is ignored. Each row is zipped positionally against
// the headers: short rows are padded with empty strings and surplus fields are
// dropped. Any failure is a *FormatError and no partial result is returned.
func Decode(text string) ([]string, []domain.RowRecord, error) {
	header, data := contentLines(text)
	if header == "" || len(data) == 0 {
		return nil, nil, formatError(ReasonInsufficientLines)
	}

	delim, err := InferDelimiter(sampleLines(data))
	if err != nil {
		return nil, nil, err
	}

	headers, err := parseHeader(header, delim)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]domain.RowRecord, 0, len(data))
	for _, line := range data {
		if isDelimiterOnly(line) && !isEmptyRow(line, delim, len(headers)) {
			continue
		}
		fields := splitFields(line, delim)
		row := make(domain.RowRecord, len(headers))
		for i, h := range headers {
			if i < len(fields) {
				row[h] = fields[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, nil, formatError(ReasonInsufficientLines)
	}

	return headers, rows, nil
}

// Normalize decodes text and re-encodes it with the canonical separator.
func Normalize(text string) (string, error) {
	headers, rows, err := Decode(text)
	if err != nil {
		return "", err
	}
	return Encode(headers, rows), nil
}

// contentLines trims every line and drops blank ones. The header is the first
// line that is not made only of dashes.
func contentLines(text string) (string, []string) {
	var header string
	var data []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case header != "":
			data = append(data, line)
		case !isDelimiterOnly(line):
			header = line
		}
	}
	return header, data
}

// sampleLines returns the data lines worth inferring a delimiter from. Dash
// lines are left out unless nothing else is there.
func sampleLines(data []string) []string {
	var sample []string
	for _, line := range data {
		if !isDelimiterOnly(line) {
			sample = append(sample, line)
		}
	}
	if len(sample) == 0 {
		return data
	}
	return sample
}

// isEmptyRow reports whether a dash-only line is the encoding of a row whose
// values are all empty: delim and whitespace, one delim per header gap.
func isEmptyRow(line string, delim rune, headerCount int) bool {
	n := 0
	for _, r := range line {
		switch {
		case r == delim:
			n++
		case !unicode.IsSpace(r):
			return false
		}
	}
	return n == headerCount-1
}

// parseHeader splits the header line on delim. When that yields fewer than two
// names or an empty name between others, each dash-like character is tried on its own, which covers a header
// typed with a different dash than the rows.
func parseHeader(line string, delim rune) ([]string, error) {
	if headers, ok := headerFields(line, delim); ok {
		return headers, nil
	}
	for _, d := range dashRunes {
		if d == delim {
			continue
		}
		if headers, ok := headerFields(line, d); ok {
			return headers, nil
		}
	}
	return nil, formatError(ReasonInvalidHeader)
}

func headerFields(line string, delim rune) ([]string, bool) {
	fields := splitFields(line, delim)
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}
	if len(fields) < domain.MinHeaders {
		return nil, false
	}
	for _, f := range fields {
		if f == "" {
			return nil, false
		}
	}
	return fields, true
}
