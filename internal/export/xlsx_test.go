package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	plan := testPlan(t)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, plan))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Equal(t, []string{"Prep Plan"}, sheets)

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Contains(t, title, "Reagent Prep Plan")
	assert.Contains(t, title, "1250")

	// Header row.
	h, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "plex", h)

	// First entry row: CD3.
	name, err := f.GetCellValue(sheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "CD3", name)
	total, err := f.GetCellValue(sheetName, "H3")
	require.NoError(t, err)
	assert.Equal(t, "630", total)

	// Total row comes after the two entries.
	label, err := f.GetCellValue(sheetName, "B5")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", label)
	grand, err := f.GetCellValue(sheetName, "H5")
	require.NoError(t, err)
	assert.Equal(t, "1250", grand)

	// Warning row.
	warnLabel, err := f.GetCellValue(sheetName, "B6")
	require.NoError(t, err)
	assert.Contains(t, warnLabel, "4000")
	warn, err := f.GetCellValue(sheetName, "H6")
	require.NoError(t, err)
	assert.Equal(t, "FALSE", warn)
}
