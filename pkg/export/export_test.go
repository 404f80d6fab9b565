package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset(rows int) Dataset {
	data := Dataset{
		Title:   "Point Card",
		Summary: []Field{{Label: "Total", Value: "150"}, {Label: "Level", Value: "Level I"}},
		Headers: []string{"#", "Skill", "Behavior", "Points"},
	}
	for i := 0; i < rows; i++ {
		data.Rows = append(data.Rows, map[string]string{
			"#":        "1",
			"Skill":    "Self-Control",
			"Behavior": "walked away, calmly",
			"Points":   "+100",
		})
	}
	return data
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset(2))
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"#", "Skill", "Behavior", "Points"}, records[0])
	assert.Equal(t, "walked away, calmly", records[1][2])
	assert.NotContains(t, string(out), "Level I")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(80))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDFExporterRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Dataset{Title: "empty"})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	long := strings.Repeat("a", 100)
	got := truncate(long, 10)
	assert.Len(t, got, 20)
	assert.True(t, strings.HasSuffix(got, "..."))
}
