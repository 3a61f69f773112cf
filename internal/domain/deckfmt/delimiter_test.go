package deckfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferDelimiter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  rune
		err   error
	}{
		{name: "hyphen", lines: []string{"Cat - Gato", "Dog - Perro"}, want: '-'},
		{name: "en dash", lines: []string{"Cat – Gato"}, want: '–'},
		{name: "single non-dash candidate", lines: []string{"a;b", "c ; d"}, want: ';'},
		{name: "dash preferred over punctuation", lines: []string{"Hi, you - Hola, tú", "A, B - C, D"}, want: '-'},
		{name: "dash preferred over non-ASCII letters", lines: []string{"Café - Kaffee"}, want: '-'},
		{name: "no lines", lines: nil, err: ErrNoConsistentDelimiter},
		{name: "nothing in common", lines: []string{"a-b", "c:d"}, err: ErrNoConsistentDelimiter},
		{name: "two dashes", lines: []string{"a-b—c", "d—e-f"}, err: ErrAmbiguousDelimiter},
		{name: "no dash among several", lines: []string{"a:b;c", "d;e:f"}, err: ErrAmbiguousDelimiter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := InferDelimiter(tc.lines)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(tc.want), string(got))
		})
	}
}

func TestInferDelimiterSamplesTenLines(t *testing.T) {
	t.Parallel()
	lines := make([]string, 0, MaxSampledLines+1)
	for i := 0; i < MaxSampledLines; i++ {
		lines = append(lines, "a - b")
	}
	lines = append(lines, "no delimiter here")

	got, err := InferDelimiter(lines)
	require.NoError(t, err)
	assert.Equal(t, '-', got)
}

func TestInferDelimiterReportsCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
		want  []rune
	}{
		{name: "no dash", lines: []string{"a;b:c", "d:e;f"}, want: []rune{':', ';'}},
		{name: "two dashes and a tab", lines: []string{"a-b\tc–d"}, want: []rune{'\t', '-', '–'}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := InferDelimiter(tc.lines)
			require.ErrorIs(t, err, ErrAmbiguousDelimiter)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.want, fe.Candidates)
		})
	}

	_, err := InferDelimiter([]string{"a-b", "c:d"})
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Empty(t, fe.Candidates)
}

func TestSplitFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want []string
	}{
		{"Cat - Gato", []string{"Cat", "Gato"}},
		{"Cat-Gato", []string{"Cat", "Gato"}},
		{"Cat -Gato", []string{"Cat", "Gato"}},
		{"well-known - bien conocido", []string{"well-known", "bien conocido"}},
		{"a-b-c", []string{"a", "b", "c"}},
		{"- back", []string{"", "back"}},
		{"front -", []string{"front", ""}},
		{"-5 - x", []string{"-5", "x"}},
		{"x - y-", []string{"x", "y-"}},
		{"-ish", []string{"-ish"}},
		{"- -5", []string{"", "-5"}},
		{"y- - z", []string{"y-", "z"}},
		{"-", []string{"", ""}},
		{"-  -", []string{"", "", ""}},
		{"no delimiter", []string{"no delimiter"}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, splitFields(tc.line, '-'), "line %q", tc.line)
	}
}

func TestIsDashLike(t *testing.T) {
	t.Parallel()
	for _, r := range []rune{'-', '–', '—'} {
		assert.True(t, IsDashLike(r), "%q", r)
	}
	for _, r := range []rune{'_', '~', '‒', ':'} {
		assert.False(t, IsDashLike(r), "%q", r)
	}
}
