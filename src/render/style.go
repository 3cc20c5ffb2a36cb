// Package render turns ranked hashtags into charts.
package render

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultColor is the bar colour used when none is chosen.
const DefaultColor = "#808080"

// Palette lists the colours offered to users, default first.
var Palette = []string{
	DefaultColor,
	"#FF5733", "#33FF57", "#3357FF", "#FF33A1", "#A133FF",
	"#33FFA1", "#FFD700", "#8A2BE2", "#00CED1", "#FF4500",
	"#DAA520", "#4B0082", "#FF6347", "#40E0D0", "#FF1493",
	"#7FFF00", "#FF69B4", "#00FA9A", "#1E90FF", "#FF7F50",
}

// Orientation is the direction bars grow in.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Placement is where the chart sits in the page layout.
type Placement string

const (
	Sidebar Placement = "sidebar"
	Main    Placement = "main"
)

// Style carries the display-only parameters of a chart.
type Style struct {
	Color       string      `json:"color"`
	Orientation Orientation `json:"orientation"`
	Placement   Placement   `json:"placement"`
}

// DefaultStyle returns grey vertical bars in the sidebar.
func DefaultStyle() Style {
	return Style{Color: DefaultColor, Orientation: Vertical, Placement: Sidebar}
}

// ParseOrientation accepts "vertical" or "horizontal", any case.
func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(strings.ToLower(strings.TrimSpace(s))); o {
	case Vertical, Horizontal:
		return o, nil
	}
	return "", fmt.Errorf("unknown orientation %q", s)
}

// ParsePlacement accepts "sidebar" or "main", any case.
func ParsePlacement(s string) (Placement, error) {
	switch p := Placement(strings.ToLower(strings.TrimSpace(s))); p {
	case Sidebar, Main:
		return p, nil
	}
	return "", fmt.Errorf("unknown placement %q", s)
}

// ParseColor decodes a #RRGGBB colour.
func ParseColor(hex string) (r, g, b uint8, err error) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, fmt.Errorf("invalid colour %q: want #RRGGBB", hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// Normalized returns the style with orientation and placement lowercased.
func (s Style) Normalized() Style {
	s.Orientation = Orientation(strings.ToLower(strings.TrimSpace(string(s.Orientation))))
	s.Placement = Placement(strings.ToLower(strings.TrimSpace(string(s.Placement))))
	return s
}

// Validate checks every field of the style.
func (s Style) Validate() error {
	if _, _, _, err := ParseColor(s.Color); err != nil {
		return err
	}
	if _, err := ParseOrientation(string(s.Orientation)); err != nil {
		return err
	}
	if _, err := ParsePlacement(string(s.Placement)); err != nil {
		return err
	}
	return nil
}

// Title is the chart heading for a request of n hashtags.
func Title(n int) string {
	return fmt.Sprintf("Top %d most common hashtags", n)
}
