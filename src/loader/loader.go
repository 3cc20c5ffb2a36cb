// Package loader reads the tweet datasets offered by the analyzer.
package loader

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"hashtag-analyzer/src/tweets"
)

// Datasets are the dataset names a caller may ask for.
var Datasets = []string{
	"obamacare.csv",
	"trumptweets.csv",
	"got_tweets.csv",
}

// TextColumn is the header of the column hashtags are extracted from.
const TextColumn = "text"

// ErrUnknownDataset is wrapped by Load when the name is not in Datasets.
var ErrUnknownDataset = errors.New("unknown dataset")

// DataSourceError reports a failure to read a dataset.
type DataSourceError struct {
	Name string
	Op   string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %s: %v", e.Name, e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// IsAllowed reports whether name is one of Datasets.
func IsAllowed(name string) bool {
	return slices.Contains(Datasets, name)
}

// Loader reads datasets from a directory.
type Loader struct {
	Dir string
}

// New returns a Loader rooted at dir.
func New(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load reads the named dataset. A gzipped copy (name + ".gz") is used when
// the plain file does not exist.
func (l *Loader) Load(name string) (*tweets.Dataset, error) {
	if !IsAllowed(name) {
		return nil, &DataSourceError{Name: name, Op: "resolve", Err: ErrUnknownDataset}
	}

	path := filepath.Join(l.Dir, name)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if _, gzErr := os.Stat(path + ".gz"); gzErr == nil {
			path += ".gz"
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DataSourceError{Name: name, Op: "open", Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, &DataSourceError{Name: name, Op: "gzip", Err: err}
		}
		defer gz.Close()
		r = gz
	}

	ds, err := ReadCSV(name, r)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded dataset", "dataset", name, "path", path, "records", len(ds.Records), "has_text", ds.HasTextColumn)
	return ds, nil
}

// ReadCSV parses a CSV stream with a header row. Rows that are too short to
// reach the text column, or whose text cell is empty, become records without
// text. A header lacking the text column yields a Dataset with
// HasTextColumn set to false.
func ReadCSV(name string, r io.Reader) (*tweets.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	head, err := reader.Read()
	if err == io.EOF {
		return nil, &DataSourceError{Name: name, Op: "read header", Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, &DataSourceError{Name: name, Op: "read header", Err: err}
	}

	columns := make([]string, len(head))
	textIdx, idIdx := -1, -1
	for i, col := range head {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		columns[i] = col
		switch col {
		case TextColumn:
			if textIdx < 0 {
				textIdx = i
			}
		case "id_str":
			idIdx = i
		}
	}

	ds := &tweets.Dataset{
		Name:          name,
		Columns:       columns,
		HasTextColumn: textIdx >= 0,
	}

	line := 1
	for {
		row, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Skipping row", "dataset", name, "line", line, "error", err)
			continue
		}

		var record tweets.Record
		if idIdx >= 0 && idIdx < len(row) {
			record.IDStr = row[idIdx]
		}
		if textIdx >= 0 && textIdx < len(row) && row[textIdx] != "" {
			text := row[textIdx]
			record.Text = &text
		}
		ds.Records = append(ds.Records, record)
	}
	return ds, nil
}
