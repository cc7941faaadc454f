package export

import "strings"

// Content types of the generated files.
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// File is a rendered download.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Column maps one header to a value of T.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Table builds a Dataset from records using the given columns.
func Table[T any](columns []Column[T], items []T) Dataset {
	data := Dataset{Headers: make([]string, len(columns)), Rows: make([]map[string]string, 0, len(items))}
	for i, c := range columns {
		data.Headers[i] = c.Header
	}
	for _, item := range items {
		row := make(map[string]string, len(columns))
		for _, c := range columns {
			row[c.Header] = c.Value(item)
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

// SwapExtension replaces the extension of a filename ("students.csv" -> "students.xlsx").
func SwapExtension(filename, ext string) string {
	if i := strings.LastIndex(filename, "."); i > 0 {
		filename = filename[:i]
	}
	return filename + "." + strings.TrimPrefix(ext, ".")
}
