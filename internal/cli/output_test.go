package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withColor forces styled output on or off for one test.
func withColor(t *testing.T, enabled bool) {
	t.Helper()
	prev := ColorEnabled()
	SetColorEnabled(enabled)
	t.Cleanup(func() { SetColorEnabled(prev) })
}

func render(table *Table) string {
	var buf bytes.Buffer
	table.Render(&buf)
	return buf.String()
}

func TestIsTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestStyles(t *testing.T) {
	t.Run("enabled", func(t *testing.T) {
		withColor(t, true)
		assert.Equal(t, "\033[32mok\033[0m", Success("ok"))
		assert.Equal(t, "\033[31mok\033[0m", Failure("ok"))
		assert.Equal(t, "\033[33mok\033[0m", Accent("ok"))
		assert.Equal(t, "\033[90mok\033[0m", Muted("ok"))
		assert.Equal(t, "", Success(""), "empty strings stay empty")
	})

	t.Run("disabled", func(t *testing.T) {
		withColor(t, false)
		for _, fn := range []func(string) string{Success, Failure, Accent, Muted} {
			assert.Equal(t, "ok", fn("ok"))
		}
	})
}

func TestTable(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
		rows [][]string
		want string
	}{
		{
			name: "empty",
			want: "",
		},
		{
			name: "left aligned by default",
			rows: [][]string{
				{"65f0a1", "percent", "15%"},
				{"65f0a2", "fixed", "Rp 12.000"},
				{"65f0a10", "nominal", "Rp 500"},
			},
			want: "65f0a1   percent  15%\n" +
				"65f0a2   fixed    Rp 12.000\n" +
				"65f0a10  nominal  Rp 500\n",
		},
		{
			name: "right aligned amounts",
			cols: []Column{{}, {AlignRight: true}},
			rows: [][]string{
				{"a", "15%"},
				{"b", "Rp 12.000"},
			},
			want: "a        15%\n" +
				"b  Rp 12.000\n",
		},
		{
			name: "uneven rows",
			rows: [][]string{{"a", "b", "c"}, {"d", "e"}},
			want: "a  b  c\nd  e\n",
		},
		{
			name: "no trailing spaces",
			rows: [][]string{{"long-id", ""}, {"x", "y"}},
			want: "long-id\nx        y\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(tt.cols...)
			for _, row := range tt.rows {
				table.AddRow(row...)
			}
			assert.Equal(t, tt.want, render(table))
		})
	}
}

func TestTableAlignsStyledCells(t *testing.T) {
	withColor(t, true)

	table := NewTable()
	table.AddRow("65f0a1", Success("deleted"), "x")
	table.AddRow("65f0a2", Failure("failed: 404"), "y")

	lines := strings.Split(strings.TrimSpace(render(table)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, visibleWidth(lines[0]), visibleWidth(lines[1]))
}

func TestTableMaxWidth(t *testing.T) {
	table := NewTable(Column{}, Column{MaxWidth: 10})
	table.AddRow("ID", strings.Repeat("x", 100), "end")
	table.AddRow("ID", "short", "end")

	output := render(table)
	assert.Contains(t, output, "xxxxxxx...")
	assert.NotContains(t, output, strings.Repeat("x", 8))
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		assert.True(t, strings.HasSuffix(line, "end"))
	}
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"Rp 15.000", 9},
		{"\033[32mdeleted\033[0m", 7},
		{"\033[31m\033[0m", 0},
		{"a\033[1;32mb\033[0mc", 3},
		{"diskon 10%", 10},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, visibleWidth(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "Lebaran", 10, "Lebaran"},
		{"exact fit", "Lebaran", 7, "Lebaran"},
		{"ellipsis", "name=Weekend promo", 8, "name=..."},
		{"only ellipsis", "name=Weekend", 3, "..."},
		{"no room for ellipsis", "name", 2, "na"},
		{"zero width", "name", 0, ""},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, visibleWidth(got), tt.maxWidth)
		})
	}
}

func TestTruncateStyled(t *testing.T) {
	withColor(t, true)

	got := Truncate(Muted("name=Weekend promo"), 8)
	assert.Equal(t, 8, visibleWidth(got))
	assert.True(t, strings.HasPrefix(got, ansiGray))
	assert.True(t, strings.HasSuffix(got, "..."+ansiReset))

	short := Muted("hi")
	assert.Equal(t, short, Truncate(short, 10))
}
