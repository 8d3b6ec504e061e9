package fetcher

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plantTable mirrors the eGRID plant CSV export layout.
func plantTable() TableOptions {
	return TableOptions{
		KeyColumn: "ORISPL",
		Required:  []string{"ORISPL", "PNAME", "LAT", "LON", "NAMEPCAP"},
	}
}

const plantCSV = `ORISPL,PNAME,LAT,LON,NAMEPCAP,PLNGENAN
57,Sand Point,55.34,-160.5,2.2,"3,278"
6452,Barton Chapel Wind,32.35,-98.39,120,312450.75
7063,Comanche Peak,32.3,-97.79,"2,430",19254010
`

func TestScanCSVPlantExport(t *testing.T) {
	var oris []int
	var names []string
	var capacities []float64

	err := ScanCSV(context.Background(), strings.NewReader(plantCSV), plantTable(), func(row Row) error {
		code, err := row.Int("ORISPL")
		require.NoError(t, err)
		capMW, err := row.Float("NAMEPCAP")
		require.NoError(t, err)

		oris = append(oris, code)
		names = append(names, row.Text("PNAME"))
		capacities = append(capacities, capMW)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{57, 6452, 7063}, oris)
	assert.Equal(t, []string{"Sand Point", "Barton Chapel Wind", "Comanche Peak"}, names)
	// Quoted thousands separators parse as plain numbers.
	assert.InDelta(t, 2430.0, capacities[2], 1e-9)
}

func TestScanCSVMissingRequiredColumn(t *testing.T) {
	input := "ORISPL,PNAME\n57,Sand Point\n"

	err := ScanCSV(context.Background(), strings.NewReader(input), plantTable(), func(Row) error {
		t.Fatal("no data row should be delivered without a valid header")
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAT")
}

func TestScanCSVHeaderAfterPreamble(t *testing.T) {
	input := "eGRID2023 plant file,,,,,\n" + plantCSV
	opts := plantTable()
	opts.HeaderScan = 3

	var rows int
	err := ScanCSV(context.Background(), strings.NewReader(input), opts, func(Row) error {
		rows++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, rows)
}

func TestScanCSVHeaderBeyondScanLimit(t *testing.T) {
	input := "not a header\nstill not a header\n" + plantCSV
	opts := plantTable()
	opts.HeaderScan = 2

	err := ScanCSV(context.Background(), strings.NewReader(input), opts, func(Row) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ORISPL")
}

func TestScanCSVStopEarly(t *testing.T) {
	var rows int
	err := ScanCSV(context.Background(), strings.NewReader(plantCSV), plantTable(), func(Row) error {
		rows++
		return ErrStop
	})

	require.NoError(t, err)
	assert.Equal(t, 1, rows)
}

func TestScanCSVEmptyInput(t *testing.T) {
	err := ScanCSV(context.Background(), strings.NewReader(""), plantTable(), func(Row) error { return nil })
	require.Error(t, err)
}

func TestScanCSVCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ScanCSV(ctx, strings.NewReader(plantCSV), plantTable(), func(Row) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRowNumericParsing(t *testing.T) {
	input := "ORISPL,PNAME,LAT,LON,NAMEPCAP,PLNGENAN\n" +
		"57.0,Sand Point,55.34,-160.5,\"1,743.6\",\n"

	err := ScanCSV(context.Background(), strings.NewReader(input), plantTable(), func(row Row) error {
		// Spreadsheet float forms of integer codes are accepted.
		code, err := row.Int("ORISPL")
		require.NoError(t, err)
		assert.Equal(t, 57, code)

		capMW, err := row.Float("NAMEPCAP")
		require.NoError(t, err)
		assert.InDelta(t, 1743.6, capMW, 1e-9)

		// Blank and absent cells are parse errors, not zeros.
		_, err = row.Float("PLNGENAN")
		assert.Error(t, err)
		_, err = row.Float("NOSUCHCOL")
		assert.Error(t, err)
		assert.Empty(t, row.Text("NOSUCHCOL"))
		return nil
	})
	require.NoError(t, err)
}
