package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiGray   = "\033[90m"
)

// ansiPattern matches SGR escape sequences.
var ansiPattern = regexp.MustCompile("\033\\[[0-9;]*m")

// colorEnabled is true when stdout is a terminal and NO_COLOR is unset.
var colorEnabled = os.Getenv("NO_COLOR") == "" && IsTerminal(os.Stdout)

// SetColorEnabled overrides terminal detection.
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

// ColorEnabled reports whether styled output is on.
func ColorEnabled() bool {
	return colorEnabled
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func style(code, s string) string {
	if !colorEnabled || s == "" {
		return s
	}
	return code + s + ansiReset
}

// Success styles s for completed actions.
func Success(s string) string { return style(ansiGreen, s) }

// Failure styles s for failed actions.
func Failure(s string) string { return style(ansiRed, s) }

// Accent styles s for emphasis.
func Accent(s string) string { return style(ansiYellow, s) }

// Muted styles secondary text.
func Muted(s string) string { return style(ansiGray, s) }

// DefaultMaxNameWidth bounds free-text columns such as extra fields.
const DefaultMaxNameWidth = 40

// Column configures one table column. The zero value is a left-aligned
// column of unlimited width.
type Column struct {
	MaxWidth   int  // 0 for no limit
	AlignRight bool // pad on the left, for amounts
}

// Table lays out rows in aligned columns separated by two spaces.
// Widths are measured without ANSI escapes.
type Table struct {
	cols []Column
	rows [][]string
}

// NewTable creates a table. Columns beyond those given use the zero Column.
func NewTable(cols ...Column) *Table {
	return &Table{cols: cols}
}

// AddRow appends a row. Rows may have different lengths.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *Table) column(i int) Column {
	if i < len(t.cols) {
		return t.cols[i]
	}
	return Column{}
}

// Render writes the table to w. Trailing spaces are not written.
func (t *Table) Render(w io.Writer) {
	var widths []int
	cells := make([][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([]string, len(row))
		for i, cell := range row {
			if limit := t.column(i).MaxWidth; limit > 0 {
				cell = Truncate(cell, limit)
			}
			cells[r][i] = cell
			if i == len(widths) {
				widths = append(widths, 0)
			}
			if n := visibleWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var line strings.Builder
	for _, row := range cells {
		line.Reset()
		for i, cell := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			pad := strings.Repeat(" ", widths[i]-visibleWidth(cell))
			if t.column(i).AlignRight {
				line.WriteString(pad + cell)
			} else {
				line.WriteString(cell + pad)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

// Truncate shortens s to at most maxWidth visible runes, replacing the
// tail with "..." when there is room. Escape sequences are kept and a
// reset is appended when s was styled.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if visibleWidth(s) <= maxWidth {
		return s
	}

	const ellipsis = "..."
	keep, tail := maxWidth-len(ellipsis), ellipsis
	if keep < 0 {
		keep, tail = maxWidth, ""
	}

	var b strings.Builder
	rest := s
	for rest != "" {
		if rest[0] == '\033' {
			if loc := ansiPattern.FindStringIndex(rest); loc != nil && loc[0] == 0 {
				b.WriteString(rest[:loc[1]])
				rest = rest[loc[1]:]
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(rest)
		rest = rest[size:]
		if keep > 0 {
			b.WriteRune(r)
			keep--
		}
	}
	b.WriteString(tail)
	if ansiPattern.MatchString(s) {
		b.WriteString(ansiReset)
	}
	return b.String()
}

// visibleWidth counts the runes of s outside escape sequences.
func visibleWidth(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}
