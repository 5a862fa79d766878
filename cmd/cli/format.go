package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ksfit/internal/view"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q (use table, json or yaml)", format)
}

// writeReport prints a report in the requested format
func writeReport(w io.Writer, report view.Report, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case formatTable:
		return writeTable(w, report)
	}
	return checkFormat(format)
}

// writeTable aligns labels by display width so accented labels line up
func writeTable(w io.Writer, report view.Report) error {
	rows := []view.Row{
		{Label: "Distribution", Value: report.Distribution},
		{Label: "KS statistic", Value: report.Statistic},
		{Label: "p-value", Value: report.PValue},
	}
	rows = append(rows, report.Descriptive...)
	if report.Params != "" {
		rows = append(rows, view.Row{Label: "Fitted parameters", Value: report.Params})
	}

	width := 0
	for _, r := range rows {
		width = max(width, runewidth.StringWidth(r.Label))
	}

	var b strings.Builder
	b.WriteString(report.Title + "\n")
	b.WriteString(strings.Repeat("─", runewidth.StringWidth(report.Title)) + "\n")
	for _, r := range rows {
		b.WriteString(runewidth.FillRight(r.Label, width) + "  " + r.Value + "\n")
	}
	b.WriteString("\n" + report.Conclusion + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
