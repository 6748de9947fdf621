package export

import (
	"fmt"
	"reflect"

	"github.com/gocarina/gocsv"
)

// CSVExporter renders slices of csv-tagged structs.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes rows, which must be a slice of structs with csv tags, header first.
func (e *CSVExporter) Render(rows interface{}) ([]byte, error) {
	if kind := reflect.TypeOf(rows); kind == nil || kind.Kind() != reflect.Slice {
		return nil, fmt.Errorf("csv export expects a slice, got %T", rows)
	}
	out, err := gocsv.MarshalBytes(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal csv: %w", err)
	}
	return out, nil
}
