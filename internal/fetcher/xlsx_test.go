package fetcher

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

// writeWorkbook builds a small eGRID-shaped workbook on disk.
func writeWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()

	f := xlsx.NewFile()
	sh, err := f.AddSheet(sheet)
	require.NoError(t, err)
	for _, cells := range rows {
		row := sh.AddRow()
		for _, c := range cells {
			row.AddCell().SetString(c)
		}
	}

	path := filepath.Join(t.TempDir(), "egrid.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func plantSheetRows(withLabelRow bool) [][]string {
	var rows [][]string
	if withLabelRow {
		rows = append(rows, []string{"DOE/EIA ORIS plant code", "Plant name", "Latitude", "Longitude", "Nameplate capacity (MW)"})
	}
	rows = append(rows,
		[]string{"ORISPL", "PNAME", "LAT", "LON", "NAMEPCAP"},
		[]string{"57", "Sand Point", "55.34", "-160.5", "2.2"},
		[]string{"6452", "Barton Chapel Wind", "32.35", "-98.39", "120"},
	)
	return rows
}

func TestScanSheetSkipsLabelRow(t *testing.T) {
	path := writeWorkbook(t, "PLNT23", plantSheetRows(true))
	opts := plantTable()
	opts.HeaderScan = 5

	var names []string
	err := ScanSheet(context.Background(), path, "PLNT23", opts, func(row Row) error {
		names = append(names, row.Text("PNAME"))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Sand Point", "Barton Chapel Wind"}, names)
}

func TestScanSheetDefaultsToFirstSheet(t *testing.T) {
	path := writeWorkbook(t, "PLNT23", plantSheetRows(false))

	var rows int
	err := ScanSheet(context.Background(), path, "", plantTable(), func(Row) error {
		rows++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, rows)
}

func TestScanSheetMissingSheet(t *testing.T) {
	path := writeWorkbook(t, "PLNT23", plantSheetRows(false))

	err := ScanSheet(context.Background(), path, "PLNT99", plantTable(), func(Row) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PLNT99")
}

func TestScanSheetHeaderBeyondScanLimit(t *testing.T) {
	rows := append([][]string{{"label row"}, {"another label row"}}, plantSheetRows(false)...)
	path := writeWorkbook(t, "PLNT23", rows)
	opts := plantTable()
	opts.HeaderScan = 2

	err := ScanSheet(context.Background(), path, "PLNT23", opts, func(Row) error { return nil })
	require.Error(t, err)
}

func TestScanSheetMissingWorkbook(t *testing.T) {
	err := ScanSheet(context.Background(), filepath.Join(t.TempDir(), "absent.xlsx"), "", plantTable(), func(Row) error { return nil })
	require.Error(t, err)
}
