package actions

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
)

func getTable(header []string, rows [][]string) string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()

	return tableString.String()
}

func getJSON(data interface{}) (string, error) {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(output) + "\n", nil
}

func render(output outputType, data interface{}, table func() string) (string, error) {
	switch output {
	case tableOutputType:
		return table(), nil
	case jsonOutputType:
		return getJSON(data)
	default:
		return "", fmt.Errorf("unknown output type: %s", output)
	}
}

func cell(v interface{}) string {
	if v == nil {
		return ""
	}
	if list, ok := v.([]interface{}); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			parts = append(parts, cell(item))
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}
