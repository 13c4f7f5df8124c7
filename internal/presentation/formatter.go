// Package presentation renders registry data for the CLI.
package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Output formats accepted by the list command.
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#4B5563"})
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatSpecs writes specs in the given format.
func (f *Formatter) FormatSpecs(specs []SpecDTO, format string) error {
	switch format {
	case FormatJSON, "":
		return f.JSON(specs)
	case FormatTable:
		return f.SpecTable(specs)
	default:
		return fmt.Errorf("unknown format %q (must be %q or %q)", format, FormatJSON, FormatTable)
	}
}

// JSON writes v as indented JSON.
func (f *Formatter) JSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// SpecTable writes specs as a bordered table.
func (f *Formatter) SpecTable(specs []SpecDTO) error {
	rows := make([][]string, 0, len(specs))
	for _, s := range specs {
		rows = append(rows, []string{s.ID, s.Name, fmt.Sprintf("%d", s.Version), s.EntryPoint, formatKwargs(s.Kwargs)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "NAME", "VERSION", "ENTRY POINT", "KWARGS").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(f.writer, t.Render())
	return err
}

// formatKwargs renders kwargs as sorted k=v pairs.
func formatKwargs(kwargs map[string]any) string {
	if len(kwargs) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, kwargs[k]))
	}
	return strings.Join(parts, " ")
}
