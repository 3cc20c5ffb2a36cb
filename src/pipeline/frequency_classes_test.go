package pipeline

import (
	"fmt"
	"testing"
)

// TestBuildFrequencyClasses tests the partition of a small table.
//
// Rationale: Each class should carry roughly the same occurrence mass, so
// a single dominant hashtag fills the first class on its own.
func TestBuildFrequencyClasses(t *testing.T) {
	ft := NewFrequencyTable()
	for i := 0; i < 6; i++ {
		ft.IncrementTokens([]string{"#big"})
	}
	ft.IncrementTokens([]string{"#mid", "#mid", "#mid", "#a", "#b", "#c"})

	result := BuildFrequencyClasses(ft, 2, nil, nil)

	if len(result.Classes) != 2 || len(result.Filters) != 2 {
		t.Fatalf("Expected 2 classes, got %d", len(result.Classes))
	}
	if result.Classes[0].Tokens != 1 || result.Classes[0].Occurrences != 6 {
		t.Errorf("Expected class 0 to hold #big only, got %+v", result.Classes[0])
	}
	if result.Classes[1].Tokens != 4 || result.Classes[1].Occurrences != 6 {
		t.Errorf("Expected class 1 to hold 4 hashtags / 6 occurrences, got %+v", result.Classes[1])
	}
	if got := result.ClassOf("#big"); got != 0 {
		t.Errorf("Expected #big in class 0, got %d", got)
	}
	if got := result.ClassOf("#c"); got != 1 {
		t.Errorf("Expected #c in class 1, got %d", got)
	}
	if got := result.ClassOf("#missing"); got != -1 {
		t.Errorf("Expected -1 for unknown hashtag, got %d", got)
	}
}

// TestBuildFrequencyClassesBloom tests that large classes switch to Bloom filters.
func TestBuildFrequencyClassesBloom(t *testing.T) {
	ft := NewFrequencyTable()
	for i := 0; i < 3000; i++ {
		ft.IncrementTokens([]string{fmt.Sprintf("#tag%d", i)})
	}

	result := BuildFrequencyClasses(ft, 1, []uint{100000}, []uint{7})

	if !result.Classes[0].Bloom {
		t.Fatalf("Expected a Bloom filter for %d hashtags", result.Classes[0].Tokens)
	}
	for i := 0; i < 3000; i += 97 {
		token := fmt.Sprintf("#tag%d", i)
		if result.ClassOf(token) != 0 {
			t.Errorf("Expected %s in class 0", token)
		}
	}
}

// TestBuildFrequencyClassesEdgeCases tests empty tables and bad class counts.
func TestBuildFrequencyClassesEdgeCases(t *testing.T) {
	result := BuildFrequencyClasses(NewFrequencyTable(), 3, nil, nil)
	if len(result.Classes) != 3 {
		t.Errorf("Expected 3 empty classes, got %d", len(result.Classes))
	}
	for i, c := range result.Classes {
		if c.Tokens != 0 {
			t.Errorf("Expected class %d empty, got %+v", i, c)
		}
	}

	ft := NewFrequencyTable()
	ft.IncrementTokens([]string{"#x"})
	if got := BuildFrequencyClasses(ft, 0, nil, nil); len(got.Classes) != 1 {
		t.Errorf("Expected F<=0 to fall back to one class, got %d", len(got.Classes))
	}

	var nilResult *FreqClassResult
	if nilResult.ClassOf("#x") != -1 {
		t.Error("Expected -1 from a nil result")
	}
}
