package render

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	svgWidth  = 1000
	svgHeight = 600
	svgMargin = 80
)

func escape(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// WriteSVG draws the chart as a standalone SVG document.
func WriteSVG(w io.Writer, req RenderRequest) error {
	if _, _, _, err := ParseColor(req.Style.Color); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		svgWidth, svgHeight, svgWidth, svgHeight)
	fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="#FFFFFF"/>`+"\n")
	fmt.Fprintf(bw, `<text x="%d" y="%d" text-anchor="middle" font-size="20">%s</text>`+"\n",
		svgWidth/2, svgMargin/2, escape(req.Title))

	plotW := svgWidth - 2*svgMargin
	plotH := svgHeight - 2*svgMargin
	highest := req.MaxCount()
	n := len(req.Bars)

	if req.Style.Orientation == Horizontal {
		fmt.Fprintf(bw, `<text x="%d" y="%d" text-anchor="middle" font-size="14">%s</text>`+"\n",
			svgWidth/2, svgHeight-svgMargin/4, escape(req.YLabel))
		fmt.Fprintf(bw, `<text x="%d" y="%d" font-size="14" transform="rotate(-90 %d %d)">%s</text>`+"\n",
			svgMargin/4, svgHeight/2, svgMargin/4, svgHeight/2, escape(req.XLabel))
		for i, b := range req.Bars {
			slot := plotH / n
			// bottom to top
			y := svgMargin + plotH - (i+1)*slot
			length := 0
			if highest > 0 {
				length = b.Count * plotW / highest
			}
			fmt.Fprintf(bw, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
				svgMargin, y+slot/10, length, slot*8/10, req.Style.Color)
			fmt.Fprintf(bw, `<text x="%d" y="%d" text-anchor="end" font-size="12">%s</text>`+"\n",
				svgMargin-4, y+slot/2, escape(b.Label))
		}
	} else {
		fmt.Fprintf(bw, `<text x="%d" y="%d" text-anchor="middle" font-size="14">%s</text>`+"\n",
			svgWidth/2, svgHeight-svgMargin/4, escape(req.XLabel))
		fmt.Fprintf(bw, `<text x="%d" y="%d" font-size="14" transform="rotate(-90 %d %d)">%s</text>`+"\n",
			svgMargin/4, svgHeight/2, svgMargin/4, svgHeight/2, escape(req.YLabel))
		for i, b := range req.Bars {
			slot := plotW / n
			x := svgMargin + i*slot
			height := 0
			if highest > 0 {
				height = b.Count * plotH / highest
			}
			fmt.Fprintf(bw, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`+"\n",
				x+slot/10, svgMargin+plotH-height, slot*8/10, height, req.Style.Color)
			lx, ly := x+slot/2, svgMargin+plotH+14
			fmt.Fprintf(bw, `<text x="%d" y="%d" text-anchor="end" font-size="12" transform="rotate(-45 %d %d)">%s</text>`+"\n",
				lx, ly, lx, ly, escape(b.Label))
		}
	}
	fmt.Fprintln(bw, `</svg>`)
	return bw.Flush()
}

// SaveSVG writes the chart to path.
func SaveSVG(path string, req RenderRequest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteSVG(f, req); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
