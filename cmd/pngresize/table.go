package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"pngresize/internal/i18n"
	"pngresize/internal/pipeline"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, footer []string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}
	if len(footer) > 0 {
		tw.AppendFooter(toRow(footer, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func toRow(values []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(values) {
			r[i] = values[i]
		} else {
			r[i] = ""
		}
	}
	return r
}

// renderSummary lists written files with their sizes, then skipped sources.
func renderSummary(p *i18n.Printer, stats pipeline.Stats) string {
	headers := []string{
		p.Sprintf(i18n.SummaryFile),
		p.Sprintf(i18n.SummarySource),
		p.Sprintf(i18n.SummaryTarget),
		p.Sprintf(i18n.SummarySize),
	}
	rows := make([][]string, 0, len(stats.Written)+len(stats.Skipped))
	for _, w := range stats.Written {
		rows = append(rows, []string{
			w.Name,
			dimensions(w.SourceWidth, w.SourceHeight),
			dimensions(w.Width, w.Height),
			humanize.Bytes(uint64(w.Bytes)),
		})
	}
	for _, s := range stats.Skipped {
		rows = append(rows, []string{s.Path, "-", p.Sprintf(i18n.SummarySkipped), "-"})
	}
	footer := []string{p.Sprintf(i18n.SummaryTotal), "", "", humanize.Bytes(uint64(stats.TotalBytes()))}
	return renderTable(headers, rows, footer, []columnAlignment{alignLeft, alignRight, alignRight, alignRight})
}

func dimensions(w, h int) string {
	return fmt.Sprintf("%dx%d", w, h)
}
