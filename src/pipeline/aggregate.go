package pipeline

import (
	"slices"

	"hashtag-analyzer/src/tweets"
)

// RankedResult is the top of a FrequencyTable, count descending.
type RankedResult []TokenCount

// Labels returns the hashtags of the result in order.
func (r RankedResult) Labels() []string {
	labels := make([]string, len(r))
	for i, tc := range r {
		labels[i] = tc.Token
	}
	return labels
}

// Aggregate runs Extract over every record in input order and counts the
// resulting hashtags. Records without text contribute nothing.
func Aggregate(ds *tweets.Dataset, caseSensitive bool) (*FrequencyTable, error) {
	if ds == nil {
		return nil, &InvalidInputError{Reason: "dataset is nil"}
	}
	if !ds.HasTextColumn {
		return nil, &InvalidInputError{Reason: "dataset " + ds.Name + " has no text column"}
	}

	ft := NewFrequencyTable()
	for _, record := range ds.Records {
		if !record.HasText() {
			continue
		}
		ft.IncrementTokens(Extract(record.TextOrEmpty(), caseSensitive))
	}
	return ft, nil
}

// TopN returns the n highest-count entries of the table. Equal counts keep
// first-appearance order. n <= 0 yields an empty result.
func TopN(ft *FrequencyTable, n int) RankedResult {
	if n <= 0 || ft.Len() == 0 {
		return RankedResult{}
	}
	ranked := ft.Entries()
	slices.SortStableFunc(ranked, func(a, b TokenCount) int {
		return b.Count - a.Count
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return RankedResult(ranked[:n])
}
