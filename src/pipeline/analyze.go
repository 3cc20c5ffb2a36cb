package pipeline

import (
	"hashtag-analyzer/src/tweets"
)

// DefaultTopN is the number of hashtags ranked when none is requested.
const DefaultTopN = 10

// Excluder reports hashtags that must not appear in a ranking.
type Excluder interface {
	IsFiltered(token string) bool
}

// Options are the per-request parameters of an analysis. Each request owns
// its Options value; nothing is shared between calls.
type Options struct {
	CaseSensitive bool
	TopN          int
	// Exclude is optional.
	Exclude Excluder
	// FreqClasses partitions the table into that many classes when > 0.
	FreqClasses int
}

// DefaultOptions returns case-insensitive matching and the default top N.
func DefaultOptions() Options {
	return Options{CaseSensitive: false, TopN: DefaultTopN}
}

// Analysis is the full result of one run over a dataset.
type Analysis struct {
	Dataset string
	Records int
	Table   *FrequencyTable
	Top     RankedResult
	Classes *FreqClassResult
}

// Analyze aggregates ds and ranks the result according to opts.
func Analyze(ds *tweets.Dataset, opts Options) (*Analysis, error) {
	table, err := Aggregate(ds, opts.CaseSensitive)
	if err != nil {
		return nil, err
	}

	ranked := table
	if opts.Exclude != nil {
		ranked = table.Filter(func(token string) bool {
			return !opts.Exclude.IsFiltered(token)
		})
	}

	a := &Analysis{
		Dataset: ds.Name,
		Records: len(ds.Records),
		Table:   table,
		Top:     TopN(ranked, opts.TopN),
	}
	if opts.FreqClasses > 0 {
		a.Classes = BuildFrequencyClasses(ranked, opts.FreqClasses, nil, nil)
	}
	return a, nil
}
