package pipeline

import (
	"log/slog"

	"github.com/bits-and-blooms/bloom/v3"
)

// setFilterThreshold is the class size at which a Bloom filter replaces the hash set.
const setFilterThreshold = 1000

// FreqClassFilter answers membership for one frequency class.
type FreqClassFilter interface {
	Contains(token string) bool
}

// SetFilter implements FreqClassFilter using a simple hash set
type SetFilter struct {
	tokens map[string]bool
}

func (sf *SetFilter) Contains(token string) bool {
	return sf.tokens[token]
}

// BloomFilterWrapper implements FreqClassFilter using a Bloom filter
type BloomFilterWrapper struct {
	filter *bloom.BloomFilter
}

func (bf *BloomFilterWrapper) Contains(token string) bool {
	return bf.filter.TestString(token)
}

// FreqClass describes one class of the partition.
type FreqClass struct {
	Tokens      int // distinct hashtags
	Occurrences int // sum of their counts
	Bloom       bool
}

// FreqClassResult holds the partition of a table into frequency classes.
// Class 0 holds the most frequent hashtags.
type FreqClassResult struct {
	Filters []FreqClassFilter
	Classes []FreqClass
}

// ClassOf returns the index of the first class whose filter contains token,
// or -1. Bloom filters can report false positives, so a rare hashtag may be
// placed in a larger class.
func (r *FreqClassResult) ClassOf(token string) int {
	if r == nil {
		return -1
	}
	for i, f := range r.Filters {
		if f.Contains(token) {
			return i
		}
	}
	return -1
}

// BuildFrequencyClasses divides the table into F classes, each accounting for
// roughly the same number of hashtag occurrences (not distinct hashtags).
// Small classes use hash sets, large classes use Bloom filters sized by
// bloomSizes and hashCounts when given.
func BuildFrequencyClasses(ft *FrequencyTable, F int, bloomSizes []uint, hashCounts []uint) *FreqClassResult {
	if F <= 0 {
		F = 1
	}
	ranked := TopN(ft, ft.Len())

	total := ft.Total()
	C := total / F
	if C == 0 {
		C = 1
	}

	classes := make([][]TokenCount, F)
	classIdx := 0
	runningTotal := 0
	for _, pair := range ranked {
		if classIdx < F-1 && runningTotal >= (classIdx+1)*C {
			classIdx++
		}
		classes[classIdx] = append(classes[classIdx], pair)
		runningTotal += pair.Count
	}

	result := &FreqClassResult{
		Filters: make([]FreqClassFilter, F),
		Classes: make([]FreqClass, F),
	}
	for i, members := range classes {
		occurrences := 0
		for _, tc := range members {
			occurrences += tc.Count
		}
		result.Classes[i] = FreqClass{Tokens: len(members), Occurrences: occurrences}

		if len(members) < setFilterThreshold {
			sf := &SetFilter{tokens: make(map[string]bool, len(members))}
			for _, tc := range members {
				sf.tokens[tc.Token] = true
			}
			result.Filters[i] = sf
			continue
		}

		bloomSize := uint(len(members) * 10)
		numHashes := uint(10)
		if i < len(bloomSizes) {
			bloomSize = bloomSizes[i]
		}
		if i < len(hashCounts) {
			numHashes = hashCounts[i]
		}
		bf := bloom.New(bloomSize, numHashes)
		for _, tc := range members {
			bf.AddString(tc.Token)
		}
		result.Filters[i] = &BloomFilterWrapper{filter: bf}
		result.Classes[i].Bloom = true
	}

	slog.Debug("Built frequency classes", "classes", F, "total", total, "target_per_class", C)
	return result
}
