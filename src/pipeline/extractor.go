package pipeline

import (
	"regexp"
	"strings"
)

// hashtagRe matches a '#' followed by a maximal run of word characters.
// Word characters are Unicode letters, Unicode numbers and underscore.
var hashtagRe = regexp.MustCompile(`#[\p{L}\p{N}_]+`)

// Extract returns the hashtags found in text, in order of appearance.
// Repeated hashtags are kept. When caseSensitive is false the text is
// lowercased before matching, so #Go and #GO both yield #go.
func Extract(text string, caseSensitive bool) []string {
	if text == "" || !strings.Contains(text, "#") {
		return []string{}
	}
	if !caseSensitive {
		text = strings.ToLower(text)
	}
	matches := hashtagRe.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
