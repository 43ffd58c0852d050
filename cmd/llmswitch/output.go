package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func validFormat(f string) bool {
	return f == formatTable || f == formatJSON || f == formatYAML
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// render writes v as JSON or YAML, or headers and rows as a table.
func render(w io.Writer, format string, v any, headers []string, rows [][]string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(w, renderTable(headers, rows))
		return err
	}
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// keyValueRows renders pairs as two-column rows.
func keyValueRows(pairs ...string) [][]string {
	rows := make([][]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rows = append(rows, []string{pairs[i], pairs[i+1]})
	}
	return rows
}

func yesNo(b bool) string {
	if b {
		return color.GreenString("yes")
	}
	return color.HiBlackString("no")
}

func credentialStatus(env string, set bool) string {
	if set {
		return color.GreenString("%s set", env)
	}
	return color.RedString("%s missing", env)
}

func price(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

func optionalPrice(v *float64) string {
	if v == nil {
		return "-"
	}
	return price(*v)
}

func tokenCount(n int) string {
	return strconv.Itoa(n)
}
