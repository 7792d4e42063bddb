package export

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/san-kum/nodemesh/internal/camera"
	"github.com/san-kum/nodemesh/internal/config"
	"github.com/san-kum/nodemesh/internal/geom"
	"github.com/san-kum/nodemesh/internal/network"
	"github.com/san-kum/nodemesh/internal/viz"
)

// Style holds the colours written into exported SVGs.
type Style struct {
	Background string
	Node       string
	Line       string
	LineAlpha  float64
}

func DefaultStyle() Style {
	return StyleFrom(config.DefaultConfig().Style)
}

func StyleFrom(s config.StyleConfig) Style {
	return Style{
		Background: s.Background,
		Node:       s.NodeColor,
		Line:       s.LineColor,
		LineAlpha:  s.LineAlpha,
	}
}

func header(sb *strings.Builder, width, height float64, bg string) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg)
}

// CanvasToSVG converts a Braille canvas to SVG format. Node and line dots
// are grouped by ink.
func CanvasToSVG(canvas *viz.Canvas, scale float64, style Style) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var lines, nodes strings.Builder
	dotRadius := scale * 0.4
	pw, ph := canvas.PixelSize()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			dst := &lines
			if canvas.Ink[y/4][x/2] == viz.InkNode {
				dst = &nodes
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(dst, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	var sb strings.Builder
	header(&sb, width, height, style.Background)
	fmt.Fprintf(&sb, "<g fill=\"%s\" fill-opacity=\"%.2f\">\n%s</g>\n", style.Line, style.LineAlpha, lines.String())
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n%s</g>\n", style.Node, nodes.String())
	sb.WriteString("</svg>")
	return sb.String()
}

type element struct {
	depth float64
	svg   string
}

// SceneToSVG projects the network through cam onto a width x height image.
// Elements are emitted far to near.
func SceneToSVG(net *network.Network, cam *camera.Camera, width, height int, style Style) string {
	if net == nil || cam == nil || width <= 0 || height <= 0 {
		return ""
	}

	var els []element
	for i := range net.Connections {
		seg := net.Segment(i)
		x1, y1, d1, v1 := cam.Project(seg.Start, width, height)
		x2, y2, d2, v2 := cam.Project(seg.End, width, height)
		if cam.Clipped(d1) || cam.Clipped(d2) || !(v1 || v2) {
			continue
		}
		els = append(els, element{(d1 + d2) / 2, fmt.Sprintf(
			"<line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\"/>", x1, y1, x2, y2)})
	}
	var circles []element
	for _, n := range net.Nodes {
		x, y, d, ok := cam.Project(n.Position, width, height)
		if !ok {
			continue
		}
		r := cam.PixelScale(d, height) * net.Radius
		circles = append(circles, element{d, fmt.Sprintf(
			"<circle cx=\"%d\" cy=\"%d\" r=\"%.2f\"/>", x, y, math.Max(r, 0.5))})
	}
	sort.SliceStable(els, func(i, j int) bool { return els[i].depth > els[j].depth })
	sort.SliceStable(circles, func(i, j int) bool { return circles[i].depth > circles[j].depth })

	var sb strings.Builder
	header(&sb, float64(width), float64(height), style.Background)
	fmt.Fprintf(&sb, "<g stroke=\"%s\" stroke-opacity=\"%.2f\" stroke-width=\"1\">\n", style.Line, style.LineAlpha)
	for _, e := range els {
		sb.WriteString(e.svg + "\n")
	}
	fmt.Fprintf(&sb, "</g>\n<g fill=\"%s\">\n", style.Node)
	for _, e := range circles {
		sb.WriteString(e.svg + "\n")
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrailsToSVG plots each node's path on the XY plane, fitted to the image
// with 10% padding.
func TrailsToSVG(trails [][]geom.Vec3, width, height int, style Style) string {
	var minX, maxX, minY, maxY float64
	first := true
	for _, tr := range trails {
		for _, p := range tr {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if first {
		return ""
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	header(&sb, float64(width), float64(height), style.Background)
	fmt.Fprintf(&sb, "<g fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\">\n", style.Line)
	for _, tr := range trails {
		if len(tr) < 2 {
			continue
		}
		sb.WriteString(`<path d="M`)
		for i, p := range tr {
			x := (p.X - minX) / rangeX * float64(width)
			y := float64(height) - (p.Y-minY)/rangeY*float64(height)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// WriteFile writes an SVG document to path.
func WriteFile(path, svg string) error {
	if svg == "" {
		return fmt.Errorf("export %s: nothing to draw", path)
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
