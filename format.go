package chmgen

import (
	"strconv"
	"strings"
)

// Format controls how sequence placeholders (the value table, salts and key
// lists) are laid out in emitted code.
//
// The zero value wraps after every element; use DefaultFormat for the
// conventional layout. Render treats the zero value as DefaultFormat.
type Format struct {
	// Width is the column budget per emitted line.
	Width int

	// Indent is the number of spaces prefixed to continuation lines.
	Indent int

	// Delimiter separates sequence elements, e.g. ", ".
	Delimiter string
}

// DefaultFormat returns the layout used when the caller supplies none:
// 76 columns, 4-space continuation indent, comma-space delimiter.
func DefaultFormat() Format {
	return Format{Width: 76, Indent: 4, Delimiter: ", "}
}

// firstLineBudget is the column assumed already consumed on the first line
// by whatever template text precedes the placeholder (e.g. `var G = [...]`).
// Sequences always start mid-line, so the first wrap triggers early.
const firstLineBudget = 20

// Ints renders vals as a width-wrapped, delimiter-separated list.
func (f Format) Ints(vals []int32) string {
	elems := make([]string, len(vals))
	for i, v := range vals {
		elems[i] = strconv.FormatInt(int64(v), 10)
	}
	return f.wrap(elems)
}

// Strings renders vals as a width-wrapped list of quoted literals.
func (f Format) Strings(vals []string) string {
	elems := make([]string, len(vals))
	for i, v := range vals {
		elems[i] = strconv.Quote(v)
	}
	return f.wrap(elems)
}

func (f Format) wrap(elems []string) string {
	indent := max(f.Indent, 0)
	lendel := len(f.Delimiter)

	var lines []string
	var cur strings.Builder
	pos := firstLineBudget
	for i, s := range elems {
		// The delimiter counts against the budget even for the last
		// element, so a line never fills to the exact edge.
		if pos+len(s)+lendel > f.Width {
			lines = append(lines, strings.TrimRight(cur.String(), " \t"))
			cur.Reset()
			cur.WriteString(strings.Repeat(" ", indent))
			pos = indent
		}
		cur.WriteString(s)
		pos += len(s)
		if i != len(elems)-1 {
			cur.WriteString(f.Delimiter)
			pos += lendel
		}
	}
	lines = append(lines, strings.TrimRight(cur.String(), " \t"))
	return strings.Join(lines, "\n")
}
