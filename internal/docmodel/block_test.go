package docmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "General   Information", "General Information"},
		{"trims ends", "  1.1 General Information  ", "1.1 General Information"},
		{"tabs and newlines", "Annual\tEnergy\nUsages", "Annual Energy Usages"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestParagraphText(t *testing.T) {
	t.Parallel()

	p := Paragraph{Runs: []Run{
		{Text: "AR No. 1 ", Bold: true},
		{Text: "– Reduce compressor set point"},
	}}
	assert.Equal(t, "AR No. 1 – Reduce compressor set point", p.Text())

	assert.Equal(t, "", Paragraph{}.Text())
	assert.Equal(t, "plain", Para("plain").Text())
}

func TestCellText(t *testing.T) {
	t.Parallel()

	c := Cell{Blocks: []Block{
		Para("SIC No.: 3555"),
		Para("NAICS Code: 333244"),
	}}
	assert.Equal(t, "SIC No.: 3555\nNAICS Code: 333244", c.Text())

	assert.Equal(t, "", Cell{}.Text())
}

func TestBlockKinds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindParagraph, Para("x").Kind())
	assert.Equal(t, KindTable, Table{}.Kind())
}
