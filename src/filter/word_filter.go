package filter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// HashtagFilter holds a set of hashtags to keep out of rankings.
// Matching is case-insensitive and the leading '#' is optional.
type HashtagFilter struct {
	filtered map[string]bool
	mu       sync.RWMutex
}

// NewHashtagFilter creates a new empty HashtagFilter
func NewHashtagFilter() *HashtagFilter {
	return &HashtagFilter{
		filtered: make(map[string]bool),
	}
}

// LoadFromFile loads hashtags from a file, one per line. Blank lines and
// lines starting with "//" or "# " are comments.
func (hf *HashtagFilter) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open filter file %s: %w", filename, err)
	}
	defer file.Close()

	hf.mu.Lock()
	defer hf.mu.Unlock()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "#" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "# ") {
			continue
		}
		hf.filtered[normalize(line)] = true
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading filter file %s at line %d: %w", filename, lineNum, err)
	}
	return nil
}

// IsFiltered checks if a hashtag should be left out
func (hf *HashtagFilter) IsFiltered(token string) bool {
	hf.mu.RLock()
	defer hf.mu.RUnlock()
	return hf.filtered[normalize(token)]
}

// GetFilteredCount returns the number of hashtags in the filter
func (hf *HashtagFilter) GetFilteredCount() int {
	hf.mu.RLock()
	defer hf.mu.RUnlock()
	return len(hf.filtered)
}

// AddHashtag adds a single hashtag to the filter
func (hf *HashtagFilter) AddHashtag(tag string) {
	hf.mu.Lock()
	defer hf.mu.Unlock()
	hf.filtered[normalize(tag)] = true
}

// RemoveHashtag removes a hashtag from the filter
func (hf *HashtagFilter) RemoveHashtag(tag string) {
	hf.mu.Lock()
	defer hf.mu.Unlock()
	delete(hf.filtered, normalize(tag))
}

func normalize(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	return tag
}
