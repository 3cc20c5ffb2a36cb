package filter

import (
	"os"
	"testing"
)

func TestNewHashtagFilter(t *testing.T) {
	hf := NewHashtagFilter()
	if hf == nil {
		t.Fatal("NewHashtagFilter returned nil")
	}
	if hf.GetFilteredCount() != 0 {
		t.Errorf("Expected empty filter, got %d hashtags", hf.GetFilteredCount())
	}
}

func TestAddAndRemoveHashtag(t *testing.T) {
	hf := NewHashtagFilter()

	hf.AddHashtag("#RT")
	hf.AddHashtag("news")

	testCases := []struct {
		token    string
		shouldBe bool
	}{
		{"#rt", true},
		{"#RT", true},
		{"rt", true},
		{"#news", true},
		{"#NEWS", true},
		{"#other", false},
	}
	for _, tc := range testCases {
		if got := hf.IsFiltered(tc.token); got != tc.shouldBe {
			t.Errorf("IsFiltered(%q): expected %v, got %v", tc.token, tc.shouldBe, got)
		}
	}

	hf.RemoveHashtag("RT")
	if hf.IsFiltered("#rt") {
		t.Error("Expected '#rt' to not be filtered after removal")
	}
	if !hf.IsFiltered("#news") {
		t.Error("Expected '#news' to still be filtered")
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `# retweet noise
#RT
// channels
#ff
mustread

#
  #Spaced  `

	tmpfile, err := os.CreateTemp("", "filter_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	hf := NewHashtagFilter()
	if err := hf.LoadFromFile(tmpfile.Name()); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	expectedCount := 4 // #rt, #ff, #mustread, #spaced
	if hf.GetFilteredCount() != expectedCount {
		t.Errorf("Expected %d hashtags, got %d", expectedCount, hf.GetFilteredCount())
	}
	for _, token := range []string{"#rt", "#FF", "#mustread", "#spaced"} {
		if !hf.IsFiltered(token) {
			t.Errorf("Expected %q to be filtered", token)
		}
	}
	if hf.IsFiltered("#retweet") {
		t.Error("Expected comment text not to be loaded")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	hf := NewHashtagFilter()
	if err := hf.LoadFromFile("nonexistent_filter.txt"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}
