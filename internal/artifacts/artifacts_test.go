package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itac-tools/reportrecon/internal/docmodel"
	"github.com/itac-tools/reportrecon/internal/extract"
	"github.com/itac-tools/reportrecon/internal/gridscan"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"General Info", "General_Info"},
		{"Energy-Waste Info", "Energy-Waste_Info"},
		{"a/b\\c:d", "a_b_c_d"},
		{"  ", "sheet"},
		{"averyveryverylongsheetnamethatkeepsgoingandgoingpastforty", "averyveryverylongsheetnamethatkeepsgoing"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeName(tt.in), tt.in)
	}
}

func sampleDocument() *extract.Document {
	return &extract.Document{
		GeneralInformation: []docmodel.Block{
			docmodel.Para("General Information"),
			docmodel.Para("SIC No.: 3555"),
		},
		AnnualEnergy: []docmodel.Block{
			docmodel.Para("Annual Energy Usages and Costs"),
		},
		Recommendations: [][]docmodel.Block{
			{docmodel.Para("AR No. 1 Reduce compressed air leaks")},
			{docmodel.Para("AR No. 2 Insulate steam lines")},
		},
		GeneralInfo: map[string]any{"sic_no": 3555.0},
	}
}

func TestWriteDocumentHTML(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")

	written, err := WriteDocumentHTML(dir, sampleDocument())
	require.NoError(t, err)

	names := make([]string, len(written))
	for i, p := range written {
		names[i] = filepath.Base(p)
	}
	assert.Equal(t, []string{
		"general_information.html",
		"annual_energy_usages_and_costs.html",
		"AR_01.html",
		"AR_02.html",
	}, names)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "SIC No.: 3555")

	// Carbon footprint was absent, so no file for it.
	_, err = os.Stat(filepath.Join(dir, "carbon_footprint.html"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteDocumentJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extracted_sections.json")

	require.NoError(t, WriteDocumentJSON(path, sampleDocument()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "general_information")
	assert.Contains(t, decoded, "general_info")
	assert.Len(t, decoded["recommendations"], 2)
	assert.Nil(t, decoded["recommendation_summary_table"])
}

func TestWriteTableCSVs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tables")

	sheets := map[string]extract.SheetScan{
		"Energy-Waste Info": {
			Name: "Energy-Waste Info",
			Tables: []gridscan.Table{
				{
					Headers: []string{"Energy Type", "Cost"},
					Rows: []map[string]any{
						{"Energy Type": "Electrical Energy", "Cost": 50000.0},
						{"Energy Type": "Natural Gas", "Cost": nil},
					},
				},
			},
		},
		"Empty Sheet": {Name: "Empty Sheet"},
	}

	written, err := WriteTableCSVs(dir, sheets)
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, "Energy-Waste_Info_table1.csv", filepath.Base(written[0]))

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Equal(t, "Energy Type,Cost\nElectrical Energy,50000\nNatural Gas,\n", string(data))
}
