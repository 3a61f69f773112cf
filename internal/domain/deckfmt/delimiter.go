package deckfmt

import (
	"sort"
	"strings"
	"unicode"
)

// MaxSampledLines is how many data lines InferDelimiter inspects.
const MaxSampledLines = 10

// Dash-like delimiters, in fallback order.
const (
	Hyphen = '-'
	EnDash = '–'
	EmDash = '—'
)

var dashRunes = []rune{Hyphen, EnDash, EmDash}

// IsDashLike reports whether r is a hyphen, en dash or em dash.
func IsDashLike(r rune) bool {
	for _, d := range dashRunes {
		if r == d {
			return true
		}
	}
	return false
}

// InferDelimiter picks the field delimiter from the data lines of a deck
// (header line excluded). A delimiter must occur on every one of the first
// MaxSampledLines lines and must not be an ASCII letter, digit or space.
// When several characters qualify, a single dash-like one wins; otherwise the
// choice is ambiguous and the FormatError lists the qualifying characters.
func InferDelimiter(dataLines []string) (rune, error) {
	if len(dataLines) > MaxSampledLines {
		dataLines = dataLines[:MaxSampledLines]
	}
	if len(dataLines) == 0 {
		return 0, formatError(ReasonNoConsistentDelimiter)
	}

	common := candidateRunes(dataLines[0])
	for _, line := range dataLines[1:] {
		seen := candidateRunes(line)
		for r := range common {
			if !seen[r] {
				delete(common, r)
			}
		}
		if len(common) == 0 {
			break
		}
	}

	switch len(common) {
	case 0:
		return 0, formatError(ReasonNoConsistentDelimiter)
	case 1:
		for r := range common {
			return r, nil
		}
	}

	var dashes []rune
	for r := range common {
		if IsDashLike(r) {
			dashes = append(dashes, r)
		}
	}
	if len(dashes) != 1 {
		return 0, &FormatError{Reason: ReasonAmbiguousDelimiter, Candidates: sortedRunes(common)}
	}
	return dashes[0], nil
}

func sortedRunes(set map[rune]bool) []rune {
	out := make([]rune, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func candidateRunes(line string) map[rune]bool {
	set := make(map[rune]bool)
	for _, r := range line {
		if isASCIIAlnum(r) || r == ' ' {
			continue
		}
		set[r] = true
	}
	return set
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// splitFields splits line on delim and trims each field.
//
// Each occurrence of delim is graded by what surrounds it:
//
//   - spaced: whitespace or a line edge on both sides ("Cat - Gato", "- back")
//   - leaning: whitespace on one side only ("Cat -Gato", "y- - z")
//   - joined: non-space characters on both sides ("well-known")
//
// Only the strongest grade present on the line cuts fields, so hyphens
// inside values survive next to spaced separators. An occurrence at a line
// edge that touches a non-space character ("-5", "y-") is part of a value
// and never cuts.
func splitFields(line string, delim rune) []string {
	runes := []rune(line)

	type cut struct {
		at    int
		grade int
	}
	var cuts []cut
	strongest := gradeJoined
	for i, r := range runes {
		if r != delim {
			continue
		}
		g := occurrenceGrade(runes, i)
		if g == gradeAttached {
			continue
		}
		if g > strongest {
			strongest = g
		}
		cuts = append(cuts, cut{at: i, grade: g})
	}

	fields := make([]string, 0, len(cuts)+1)
	start := 0
	for _, c := range cuts {
		if c.grade != strongest {
			continue
		}
		fields = append(fields, strings.TrimSpace(string(runes[start:c.at])))
		start = c.at + 1
	}
	fields = append(fields, strings.TrimSpace(string(runes[start:])))
	return fields
}

const (
	gradeAttached = iota
	gradeJoined
	gradeLeaning
	gradeSpaced
)

func occurrenceGrade(runes []rune, i int) int {
	atStart, atEnd := i == 0, i == len(runes)-1
	spaceBefore := atStart || unicode.IsSpace(runes[i-1])
	spaceAfter := atEnd || unicode.IsSpace(runes[i+1])

	switch {
	case spaceBefore && spaceAfter:
		return gradeSpaced
	case atStart || atEnd:
		return gradeAttached
	case spaceBefore || spaceAfter:
		return gradeLeaning
	default:
		return gradeJoined
	}
}

// isDelimiterOnly reports whether line holds nothing but dashes and whitespace,
// such as a "---" rule separating sections of a pasted deck.
func isDelimiterOnly(line string) bool {
	for _, r := range line {
		if !IsDashLike(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
