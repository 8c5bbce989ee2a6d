package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dkoosis/insights-build-reporter/pkg/buildreport"
)

// Summary prints a table of what the report contains.
func (l *Logger) Summary(s buildreport.Summary) {
	RenderSummary(l.w, s, l.theme)
}

// RenderSummary writes the report contents as an aligned table.
func RenderSummary(w io.Writer, s buildreport.Summary, theme Theme) {
	titleCase := cases.Title(language.English)
	rows := [][]string{{"Fragment", "Entries", "Operations"}}
	for _, f := range s.Fragments {
		rows = append(rows, []string{titleCase.String(f.Name), strconv.Itoa(f.Entries), strconv.Itoa(f.Operations)})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	if len(s.Fragments) == 0 {
		fmt.Fprintf(w, "    %s\n", theme.Muted.Render("no report fragments"))
	} else {
		for i, row := range rows {
			cells := make([]string, len(row))
			for j, cell := range row {
				if j == 0 {
					cells[j] = runewidth.FillRight(cell, widths[j])
				} else {
					cells[j] = runewidth.FillLeft(cell, widths[j])
				}
			}
			line := strings.Join(cells, "  ")
			if i == 0 {
				line = theme.Bold.Render(line)
			}
			fmt.Fprintf(w, "    %s\n", line)
		}
	}

	configPath := s.ConfigPath
	if configPath == "" {
		configPath = "-"
	}
	fmt.Fprintf(w, "    %s %s\n", theme.Muted.Render("config path:"), configPath)
	fmt.Fprintf(w, "    %s %s\n", theme.Muted.Render("test data:  "), yesNo(s.TestData))
	fmt.Fprintf(w, "    %s %s\n", theme.Muted.Render("config:     "), yesNo(s.Config))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
