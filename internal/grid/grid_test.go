package grid_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sovbridge/internal/domain"
	"sovbridge/internal/grid"
)

func buildWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	require.NoError(t, f.SetSheetName("Sheet1", "Buildings"))
	require.NoError(t, f.SetCellValue("Buildings", "A1", "Bldg #"))
	require.NoError(t, f.SetCellValue("Buildings", "B1", "Address"))
	require.NoError(t, f.SetCellValue("Buildings", "A2", 1))
	require.NoError(t, f.SetCellValue("Buildings", "B2", "123 Main St"))

	_, err := f.NewSheet("Hidden Notes")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Hidden Notes", "A1", "internal"))
	require.NoError(t, f.SetSheetVisible("Hidden Notes", false))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLoadWorkbook(t *testing.T) {
	sheets, err := grid.Load(buildWorkbook(t))
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	assert.Equal(t, "Buildings", sheets[0].Name)
	assert.False(t, sheets[0].Hidden)
	require.Len(t, sheets[0].Rows, 2)
	assert.Equal(t, []string{"Bldg #", "Address"}, sheets[0].Rows[0])
	assert.Equal(t, []string{"1", "123 Main St"}, sheets[0].Rows[1])

	assert.Equal(t, "Hidden Notes", sheets[1].Name)
	assert.True(t, sheets[1].Hidden)
}

func TestLoadRejectsGarbage(t *testing.T) {
	_, err := grid.Load(strings.NewReader("not a workbook"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInputFormat))
}

func TestSheetCellBounds(t *testing.T) {
	s := grid.Sheet{Rows: [][]string{{"a", "b"}, {"c"}}}

	assert.Equal(t, "a", s.Cell(0, 0))
	assert.Equal(t, "c", s.Cell(1, 0))
	// Ragged row and out-of-range lookups come back empty.
	assert.Equal(t, "", s.Cell(1, 1))
	assert.Equal(t, "", s.Cell(5, 0))
	assert.Equal(t, "", s.Cell(-1, 0))
}
