package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/rotisserie/eris"
)

// DecodeArray streams a JSON array of records, calling fn for each element.
// The eGRID plant export and the PPA project feed are both single top-level
// arrays far too large to decode at once. fn may return ErrStop to end the
// scan early. Empty input decodes as an empty dataset.
func DecodeArray[T any](ctx context.Context, r io.Reader, fn func(T) error) error {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return eris.Wrap(err, "fetcher: json open")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return eris.Errorf("fetcher: expected a JSON array, got %v", tok)
	}

	for dec.More() {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "fetcher: json scan")
		}

		var record T
		if err := dec.Decode(&record); err != nil {
			return eris.Wrap(err, "fetcher: json record")
		}
		if err := fn(record); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}

	if _, err := dec.Token(); err != nil && err != io.EOF {
		return eris.Wrap(err, "fetcher: json close")
	}
	return nil
}
