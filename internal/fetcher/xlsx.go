package fetcher

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// ScanSheet streams one sheet of a workbook as a column-coded table, calling
// fn for each data row. An empty sheet name selects the first sheet; eGRID
// names the plant sheet after the data year (PLNT22, PLNT23, ...), so
// callers importing the full workbook pass it explicitly.
func ScanSheet(ctx context.Context, path, sheet string, opts TableOptions, fn func(Row) error) error {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return eris.Wrapf(err, "fetcher: open workbook %s", path)
	}

	sh, err := pickSheet(f, sheet)
	if err != nil {
		return err
	}

	scan := newTableScanner(opts)
	for _, raw := range sh.Rows {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "fetcher: sheet scan")
		}

		cells := make([]string, len(raw.Cells))
		for i, cell := range raw.Cells {
			cells[i] = cell.String()
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

func pickSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sh, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("fetcher: workbook has no sheet %q", name)
		}
		return sh, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("fetcher: workbook has no sheets")
	}
	return f.Sheets[0], nil
}
