package types

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
)

// FormatItems renders items as a markdown table, one row per item in order.
func FormatItems(items []*Item) string {
	if len(items) == 0 {
		return ""
	}
	var buf strings.Builder
	table := tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
	table.Header("Key", "Label", "Value", "Required", "Error")
	for _, it := range items {
		_ = table.Append(it.Key, it.Label, formatValue(it.Value), fmt.Sprintf("%t", it.Required), it.ErrorText)
	}
	_ = table.Render()
	return buf.String()
}

// FormatErrors renders the invalid items only. It returns "" when every item is valid.
func FormatErrors(items []*Item) string {
	var buf strings.Builder
	var table *tablewriter.Table
	for _, it := range items {
		if it.ErrorText == "" {
			continue
		}
		if table == nil {
			buf.WriteString("# Validation errors:\n")
			table = tablewriter.NewTable(&buf, tablewriter.WithRenderer(renderer.NewMarkdown()))
			table.Header("Key", "Error")
		}
		_ = table.Append(it.Key, it.ErrorText)
	}
	if table == nil {
		return ""
	}
	_ = table.Render()
	return buf.String()
}

func formatValue(v any) string {
	if IsEmpty(v) {
		return ""
	}
	return fmt.Sprint(v)
}
