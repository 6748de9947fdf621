package export

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Section string `csv:"section"`
	Slot    int    `csv:"slot"`
	Skip    string `csv:"-"`
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render([]row{{Section: "S1", Slot: 10, Skip: "x"}, {Section: "S2", Slot: 3}})

	require.NoError(t, err)
	assert.Equal(t, "section,slot\nS1,10\nS2,3\n", string(out))
}

func TestCSVExporterRejectsNonSlice(t *testing.T) {
	_, err := NewCSVExporter().Render(row{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{Headers: []string{"Section", "Day"}}
	for i := 0; i < 60; i++ {
		data.Rows = append(data.Rows, []string{fmt.Sprintf("S%d", i), "Monday"})
	}

	out, err := NewPDFExporter().Render(data, "Timetable")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}
