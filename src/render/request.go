package render

import (
	"slices"

	"hashtag-analyzer/src/pipeline"
)

const (
	XLabel = "# Hashtag"
	YLabel = "Count"
)

// Bar is one labelled value of a chart.
type Bar struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// RenderRequest is everything a chart renderer needs. Bars are in final
// display order: left to right for vertical charts, bottom to top for
// horizontal ones.
type RenderRequest struct {
	Title      string `json:"title"`
	XLabel     string `json:"x_label"`
	YLabel     string `json:"y_label"`
	Style      Style  `json:"style"`
	InvertAxis bool   `json:"invert_axis"`
	Bars       []Bar  `json:"bars"`
}

// DisplayOrder converts a ranking into bars for the given orientation.
// Vertical charts keep the ranking (largest on the left); horizontal charts
// reverse it so the largest bar ends up at the top.
func DisplayOrder(result pipeline.RankedResult, o Orientation) []Bar {
	bars := make([]Bar, len(result))
	for i, tc := range result {
		bars[i] = Bar{Label: tc.Token, Count: tc.Count}
	}
	if o == Horizontal {
		slices.Reverse(bars)
	}
	return bars
}

// NewRenderRequest builds the request for a ranking of the top n hashtags.
func NewRenderRequest(result pipeline.RankedResult, n int, style Style) RenderRequest {
	return RenderRequest{
		Title:      Title(n),
		XLabel:     XLabel,
		YLabel:     YLabel,
		Style:      style,
		InvertAxis: style.Orientation == Horizontal,
		Bars:       DisplayOrder(result, style.Orientation),
	}
}

// MaxCount returns the largest bar value, or 0 for an empty chart.
func (r RenderRequest) MaxCount() int {
	highest := 0
	for _, b := range r.Bars {
		if b.Count > highest {
			highest = b.Count
		}
	}
	return highest
}
