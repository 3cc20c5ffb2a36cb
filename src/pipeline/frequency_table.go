package pipeline

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// TokenCount holds a token and its count.
type TokenCount struct {
	Token string
	Count int
}

// FrequencyTable maps each distinct hashtag to the number of times it occurred.
// Entries are kept in first-appearance order, which is the tie-break used when
// ranking equal counts.
type FrequencyTable struct {
	index   map[string]int // token -> position in entries
	entries []TokenCount
	total   int
}

// NewFrequencyTable creates an empty FrequencyTable.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{index: make(map[string]int)}
}

// IncrementTokens increases the count for each token in the list.
func (ft *FrequencyTable) IncrementTokens(tokens []string) {
	for _, token := range tokens {
		if i, ok := ft.index[token]; ok {
			ft.entries[i].Count++
		} else {
			ft.index[token] = len(ft.entries)
			ft.entries = append(ft.entries, TokenCount{Token: token, Count: 1})
		}
		ft.total++
	}
}

// GetCount returns the count for a specific token.
func (ft *FrequencyTable) GetCount(token string) int {
	if ft == nil {
		return 0
	}
	i, ok := ft.index[token]
	if !ok {
		return 0
	}
	return ft.entries[i].Count
}

// Len returns the number of distinct tokens.
func (ft *FrequencyTable) Len() int {
	if ft == nil {
		return 0
	}
	return len(ft.entries)
}

// Total returns the number of token occurrences (sum of all counts).
func (ft *FrequencyTable) Total() int {
	if ft == nil {
		return 0
	}
	return ft.total
}

// Counts returns a copy of the table as a plain map.
func (ft *FrequencyTable) Counts() map[string]int {
	counts := make(map[string]int, ft.Len())
	if ft == nil {
		return counts
	}
	for _, e := range ft.entries {
		counts[e.Token] = e.Count
	}
	return counts
}

// Entries returns a copy of the entries in first-appearance order.
func (ft *FrequencyTable) Entries() []TokenCount {
	if ft == nil {
		return nil
	}
	out := make([]TokenCount, len(ft.entries))
	copy(out, ft.entries)
	return out
}

// Filter returns a new table holding only the tokens for which keep returns
// true. First-appearance order is preserved.
func (ft *FrequencyTable) Filter(keep func(token string) bool) *FrequencyTable {
	out := NewFrequencyTable()
	if ft == nil {
		return out
	}
	for _, e := range ft.entries {
		if !keep(e.Token) {
			continue
		}
		out.index[e.Token] = len(out.entries)
		out.entries = append(out.entries, e)
		out.total += e.Count
	}
	return out
}

// SaveToFile saves the table to a file using gob encoding.
func (ft *FrequencyTable) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", filename, err)
	}
	defer file.Close()

	// A slice keeps first-appearance order across the round trip; a map would not.
	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(ft.Entries()); err != nil {
		return fmt.Errorf("failed to encode table to %s: %w", filename, err)
	}
	return nil
}

// LoadTable reads a table written by SaveToFile.
func LoadTable(filename string) (*FrequencyTable, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var entries []TokenCount
	if err := gob.NewDecoder(file).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode table from %s: %w", filename, err)
	}

	ft := NewFrequencyTable()
	for _, e := range entries {
		if e.Count <= 0 {
			continue
		}
		if _, dup := ft.index[e.Token]; dup {
			return nil, fmt.Errorf("duplicate token %q in %s", e.Token, filename)
		}
		ft.index[e.Token] = len(ft.entries)
		ft.entries = append(ft.entries, e)
		ft.total += e.Count
	}
	return ft, nil
}
