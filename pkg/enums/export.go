package enums

import (
	"fmt"
	"strings"
)

// ExportFormat is the file format produced by the admin export.
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

var validExportFormats = []ExportFormat{
	ExportFormatJSON,
	ExportFormatCSV,
	ExportFormatXLSX,
}

// String implements fmt.Stringer.
func (f ExportFormat) String() string {
	return string(f)
}

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatCSV:
		return "text/csv"
	case ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

// ParseExportFormat converts raw input into an ExportFormat. Empty input means json.
func ParseExportFormat(value string) (ExportFormat, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ExportFormatJSON, nil
	}
	for _, candidate := range validExportFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid export format %q", value)
}

// ExportKind is the collection being exported.
type ExportKind string

const (
	ExportKindProducts   ExportKind = "products"
	ExportKindCategories ExportKind = "categories"
)

// String implements fmt.Stringer.
func (k ExportKind) String() string {
	return string(k)
}

// ParseExportKind converts raw input into an ExportKind. Empty input means products.
func ParseExportKind(value string) (ExportKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(ExportKindProducts):
		return ExportKindProducts, nil
	case string(ExportKindCategories):
		return ExportKindCategories, nil
	}
	return "", fmt.Errorf("invalid export kind %q", value)
}
