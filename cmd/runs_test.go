package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/itac-tools/reportrecon/internal/store"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 15, 0, 0, time.UTC)
	runs := []store.Run{
		{
			ID:        "abc12345-6789-0000-0000-000000000000",
			DocFile:   "plant_report.docx",
			XlsxFile:  "plant_workbook.xlsx",
			Status:    store.RunStatusComplete,
			CreatedAt: now,
			UpdatedAt: now.Add(time.Minute),
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			DocFile:   "other_report.docx",
			XlsxFile:  "other_workbook.xlsx",
			Status:    store.RunStatusFailed,
			Error:     "decode failure",
			CreatedAt: now.Add(-time.Hour),
			UpdatedAt: now.Add(-time.Hour),
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "DOCUMENT")
	assert.Contains(t, output, "WORKBOOK")
	assert.Contains(t, output, "plant_report.docx")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "2026-03-10 09:15")
	assert.Contains(t, output, "abc12345")
}
