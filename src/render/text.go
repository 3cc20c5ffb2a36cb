package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const barRune = "█"

// chartSize returns the bar length budget for a placement: rows for a
// vertical chart, columns for a horizontal one.
func chartSize(p Placement, o Orientation) int {
	switch {
	case o == Vertical && p == Main:
		return 16
	case o == Vertical:
		return 8
	case p == Main:
		return 60
	default:
		return 30
	}
}

// scale maps count onto [0, size], keeping non-zero counts visible.
func scale(count, highest, size int) int {
	if highest <= 0 || count <= 0 {
		return 0
	}
	return (count*size + highest - 1) / highest
}

// WriteText draws the chart with block characters. When ansi is true the
// bars are coloured with a 24-bit escape sequence.
func WriteText(w io.Writer, req RenderRequest, ansi bool) error {
	bw := bufio.NewWriter(w)
	paint := func(s string) string { return s }
	if ansi {
		r, g, b, err := ParseColor(req.Style.Color)
		if err != nil {
			return err
		}
		paint = func(s string) string {
			return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", r, g, b, s)
		}
	}

	fmt.Fprintln(bw, req.Title)
	if len(req.Bars) == 0 {
		fmt.Fprintln(bw, "(no hashtags found)")
		return bw.Flush()
	}

	size := chartSize(req.Style.Placement, req.Style.Orientation)
	highest := req.MaxCount()
	if req.Style.Orientation == Horizontal {
		writeHorizontal(bw, req, size, highest, paint)
	} else {
		writeVertical(bw, req, size, highest, paint)
	}
	return bw.Flush()
}

func writeHorizontal(w io.Writer, req RenderRequest, size, highest int, paint func(string) string) {
	width := utf8.RuneCountInString(req.XLabel)
	for _, b := range req.Bars {
		if n := utf8.RuneCountInString(b.Label); n > width {
			width = n
		}
	}
	// Bars are listed bottom to top; print the top row first.
	for i := len(req.Bars) - 1; i >= 0; i-- {
		b := req.Bars[i]
		pad := strings.Repeat(" ", width-utf8.RuneCountInString(b.Label))
		bar := strings.Repeat(barRune, scale(b.Count, highest, size))
		fmt.Fprintf(w, "%s%s | %s %d\n", b.Label, pad, paint(bar), b.Count)
	}
	fmt.Fprintf(w, "%s | %s\n", req.XLabel+strings.Repeat(" ", width-utf8.RuneCountInString(req.XLabel)), req.YLabel)
}

func writeVertical(w io.Writer, req RenderRequest, size, highest int, paint func(string) string) {
	heights := make([]int, len(req.Bars))
	for i, b := range req.Bars {
		heights[i] = scale(b.Count, highest, size)
	}
	axis := len(fmt.Sprint(highest))
	fmt.Fprintf(w, "%*s\n", axis, req.YLabel)
	for row := size; row >= 1; row-- {
		label := ""
		if row == size {
			label = fmt.Sprint(highest)
		}
		var sb strings.Builder
		for _, h := range heights {
			if h >= row {
				sb.WriteString(" " + paint(barRune+barRune) + " ")
			} else {
				sb.WriteString("    ")
			}
		}
		fmt.Fprintf(w, "%*s |%s\n", axis, label, strings.TrimRight(sb.String(), " "))
	}
	fmt.Fprintf(w, "%*s +%s\n", axis, "0", strings.Repeat("-", 4*len(heights)))
	var idx strings.Builder
	for i := range req.Bars {
		idx.WriteString(fmt.Sprintf("%3d ", i+1))
	}
	fmt.Fprintf(w, "%*s  %s\n", axis, "", strings.TrimRight(idx.String(), " "))
	fmt.Fprintln(w, req.XLabel)
	for i, b := range req.Bars {
		fmt.Fprintf(w, "%3d  %s  %d\n", i+1, b.Label, b.Count)
	}
}
