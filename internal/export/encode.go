package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/tealeg/xlsx"

	"github.com/baabuu/storefront-web/pkg/enums"
)

// Encode renders payload in the requested format. JSON exports marshal
// records as-is; CSV and XLSX use table.
func Encode(format enums.ExportFormat, records any, table Table) ([]byte, error) {
	switch format {
	case enums.ExportFormatJSON:
		return encodeJSON(records)
	case enums.ExportFormatCSV:
		return encodeCSV(table)
	case enums.ExportFormatXLSX:
		return encodeXLSX(table)
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

func encodeJSON(records any) ([]byte, error) {
	body, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json export: %w", err)
	}
	return body, nil
}

func encodeCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Header); err != nil {
		return nil, err
	}
	record := make([]string, len(t.Header))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = formatCell(row[i])
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv export: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeXLSX(t Table) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(t.Sheet)
	if err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range t.Header {
		header.AddCell().SetString(h)
	}
	for _, row := range t.Rows {
		r := sheet.AddRow()
		for _, v := range row {
			setCell(r.AddCell(), v)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("write xlsx export: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(cell *xlsx.Cell, v any) {
	switch x := v.(type) {
	case int:
		cell.SetInt(x)
	case bool:
		cell.SetBool(x)
	default:
		if d, ok := decimalValue(v); ok {
			cell.SetFloat(d)
			return
		}
		cell.SetString(formatCell(v))
	}
}
