package fetcher

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// TableOptions describe how to locate the column-code header of a federal
// dataset export. eGRID workbooks put a human-readable label row above the
// code row, so the header may sit a few rows down the sheet.
type TableOptions struct {
	// KeyColumn is the code that identifies the header row (ORISPL for the
	// eGRID plant table). Empty means the first row is the header.
	KeyColumn string

	// Required lists codes that must all be present in the header.
	Required []string

	// HeaderScan bounds how many leading rows are searched for the header.
	// Default 1.
	HeaderScan int
}

// Row is one data row of a column-coded table. Cells are addressed by the
// dataset's column codes rather than by position; eGRID reorders columns
// between release years.
type Row struct {
	index map[string]int
	cells []string
}

// Text returns the trimmed cell under code, or "" when the column or cell
// is absent.
func (r Row) Text(code string) string {
	i, ok := r.index[strings.ToUpper(code)]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

// Float parses a numeric cell. Federal exports group thousands with commas;
// separators are stripped before parsing.
func (r Row) Float(code string) (float64, error) {
	s := strings.ReplaceAll(r.Text(code), ",", "")
	if s == "" {
		return 0, eris.Errorf("fetcher: column %s is empty", code)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "fetcher: column %s", code)
	}
	return f, nil
}

// Int parses an integer cell. Spreadsheet round-tripping turns integers
// into floats ("57.0"), so float forms are accepted and truncated.
func (r Row) Int(code string) (int, error) {
	f, err := r.Float(code)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// tableScanner consumes raw rows and starts yielding data Rows once the
// header row has been located and validated.
type tableScanner struct {
	opts  TableOptions
	index map[string]int
	seen  int
	fail  error
}

func newTableScanner(opts TableOptions) *tableScanner {
	if opts.HeaderScan <= 0 {
		opts.HeaderScan = 1
	}
	return &tableScanner{opts: opts}
}

// row feeds one raw row. It returns the data Row and true once past the
// header; header rows and pre-header rows return false.
func (s *tableScanner) row(cells []string) (Row, bool, error) {
	if s.index != nil {
		return Row{index: s.index, cells: cells}, true, nil
	}

	s.seen++
	if s.opts.KeyColumn == "" || containsCode(cells, s.opts.KeyColumn) {
		index, err := headerIndex(cells, s.opts.Required)
		if err != nil {
			s.fail = err
			return Row{}, false, err
		}
		s.index = index
		return Row{}, false, nil
	}
	if s.seen >= s.opts.HeaderScan {
		s.fail = eris.Errorf("fetcher: no %s header row within the first %d rows",
			s.opts.KeyColumn, s.opts.HeaderScan)
		return Row{}, false, s.fail
	}
	return Row{}, false, nil
}

// finish reports whether a header was ever found. Called at end of input.
func (s *tableScanner) finish() error {
	if s.fail != nil {
		return s.fail
	}
	if s.index == nil {
		return eris.New("fetcher: table has no header row")
	}
	return nil
}

// headerIndex maps column codes to positions, case-insensitively.
func headerIndex(header []string, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, code := range header {
		index[strings.ToUpper(strings.TrimSpace(code))] = i
	}
	for _, code := range required {
		if _, ok := index[strings.ToUpper(code)]; !ok {
			return nil, eris.Errorf("fetcher: required column %s missing from header", code)
		}
	}
	return index, nil
}

func containsCode(cells []string, code string) bool {
	for _, cell := range cells {
		if strings.EqualFold(strings.TrimSpace(cell), code) {
			return true
		}
	}
	return false
}
