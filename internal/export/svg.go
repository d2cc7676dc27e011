package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/gamesim/internal/store"
)

// palette cycles per track.
var palette = []string{"#00ff9c", "#ffb000", "#4fc3f7", "#ff5c8a", "#c792ea", "#e6e6e6"}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func trackBounds(tracks []store.Track) (bounds, bool) {
	b := bounds{}
	seen := false
	for _, tr := range tracks {
		for i := range tr.X {
			x, y := tr.X[i], tr.Y[i]
			if !seen {
				b = bounds{x, x, y, y}
				seen = true
				continue
			}
			b.minX = min(b.minX, x)
			b.maxX = max(b.maxX, x)
			b.minY = min(b.minY, y)
			b.maxY = max(b.maxY, y)
		}
	}
	if !seen {
		return b, false
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b, true
}

// TracksToSVG draws every entity track of a run as a polyline, world y up.
// A track with a single sample is drawn as a dot.
func TracksToSVG(tracks []store.Track, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	b, ok := trackBounds(tracks)
	if !ok {
		sb.WriteString("</svg>\n")
		return sb.String()
	}
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY

	project := func(x, y float64) (float64, float64) {
		px := (x - b.minX) / rangeX * float64(width)
		py := float64(height) - (y-b.minY)/rangeY*float64(height)
		return px, py
	}

	for i, tr := range tracks {
		if len(tr.X) == 0 {
			continue
		}
		color := palette[i%len(palette)]
		label := html.EscapeString(fmt.Sprintf("%s #%d", tr.Template, tr.Entity))

		x0, y0 := project(tr.X[0], tr.Y[0])
		if len(tr.X) == 1 {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="2" fill="%s"><title>%s</title></circle>
`, x0, y0, color, label))
			continue
		}

		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M%.1f,%.1f`, color, x0, y0))
		for j := 1; j < len(tr.X); j++ {
			x, y := project(tr.X[j], tr.Y[j])
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
		sb.WriteString(fmt.Sprintf(`"><title>%s</title></path>
`, label))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
