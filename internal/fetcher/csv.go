package fetcher

import (
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/rotisserie/eris"
)

// ScanCSV streams a column-coded CSV export, calling fn for each data row.
// fn may return ErrStop to end the scan early. Rows may vary in width; eGRID
// CSV exports pad trailing blank cells inconsistently.
func ScanCSV(ctx context.Context, r io.Reader, opts TableOptions, fn func(Row) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	scan := newTableScanner(opts)
	for {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "fetcher: csv scan")
		}

		cells, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return eris.Wrap(err, "fetcher: csv read")
		}

		row, ok, err := scan.row(cells)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := fn(row); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return scan.finish()
}
