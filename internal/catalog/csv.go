package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"geoquiz/internal/domain"
)

// row is one parsed country record before validation. Column order
// follows the data files: name, capital, continent, code.
type row struct {
	name      string
	capital   string
	continent string
	code      string
}

// readRows parses the named data file. Lines starting with '#' are
// comments; rows with fewer than four columns are skipped with a
// warning rather than aborting the load.
func readRows(fsys fs.FS, name string, logger *slog.Logger) ([]row, error) {
	data, err := open(fsys, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = data.Close() }()

	reader := csv.NewReader(data)
	reader.FieldsPerRecord = -1 // validated per row below
	reader.TrimLeadingSpace = true

	var rows []row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if len(record) == 0 || strings.HasPrefix(record[0], "#") {
			continue
		}
		if len(record) < 4 {
			logger.Warn("skipping incomplete catalog row",
				slog.String("file", name),
				slog.Any("row", record))
			continue
		}
		rows = append(rows, row{
			name:      strings.TrimSpace(record[0]),
			capital:   strings.TrimSpace(record[1]),
			continent: strings.TrimSpace(record[2]),
			code:      strings.TrimSpace(record[3]),
		})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no countries in %s", domain.ErrNotFound, name)
	}

	return rows, nil
}

// open prefers the override filesystem and falls back to the embedded
// data files, so a data directory only needs to carry the languages it
// overrides.
func open(fsys fs.FS, name string) (fs.File, error) {
	if fsys != nil {
		if f, err := fsys.Open(name); err == nil {
			return f, nil
		}
	}
	f, err := embeddedData.Open("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("%w: data file %s", domain.ErrNotFound, name)
	}
	return f, nil
}
