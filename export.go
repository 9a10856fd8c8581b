package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// exportCode writes the generated program to filename.
func exportCode(filename, code string) error {
	if err := os.WriteFile(filename, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write code: %w", err)
	}
	return nil
}

// ExportPNG renders the field, connectors and numbered markers as a square
// image of size pixels.
func ExportPNG(filename string, path []Waypoint, field FieldConfig, size int) error {
	if len(path) == 0 {
		return fmt.Errorf("nothing to export")
	}
	if size < 64 {
		size = 64
	}

	dc := gg.NewContext(size, size)
	dc.SetColor(color.White)
	dc.Clear()

	t := NewTranslator(float64(size), float64(size), WithFieldSize(field.Width, field.Height))

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	radius := float64(size) / 40
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    radius,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	drawTilesPNG(dc, t)

	points := make([][2]float64, len(path))
	for i, w := range path {
		px, py := t.FromFieldCoords(w.X, w.Y)
		points[i] = [2]float64{px, py}
	}

	dc.SetLineWidth(2.0)
	dc.SetColor(color.RGBA{R: 0x7C, G: 0x3A, B: 0xED, A: 0xFF})
	for i := 1; i < len(points); i++ {
		dc.DrawLine(points[i-1][0], points[i-1][1], points[i][0], points[i][1])
		dc.Stroke()
		drawArrowPNG(dc, points[i-1], points[i], radius)
	}

	for i, p := range points {
		dc.SetColor(color.White)
		dc.DrawCircle(p[0], p[1], radius)
		dc.Fill()
		dc.SetColor(color.Black)
		dc.SetLineWidth(1.5)
		dc.DrawCircle(p[0], p[1], radius)
		dc.Stroke()
		dc.DrawStringAnchored(strconv.Itoa(i), p[0], p[1], 0.5, 0.35)
	}

	return dc.SavePNG(filename)
}

func drawTilesPNG(dc *gg.Context, t *Translator) {
	fw, fh := t.FieldSize()
	const tile = 24.0
	dc.SetColor(color.Gray{Y: 0xDD})
	dc.SetLineWidth(1.0)
	for x := -fw / 2; x <= fw/2; x += tile {
		px, _ := t.FromFieldCoords(x, 0)
		_, top := t.FromFieldCoords(0, fh/2)
		_, bottom := t.FromFieldCoords(0, -fh/2)
		dc.DrawLine(px, top, px, bottom)
		dc.Stroke()
	}
	for y := -fh / 2; y <= fh/2; y += tile {
		_, py := t.FromFieldCoords(0, y)
		left, _ := t.FromFieldCoords(-fw/2, 0)
		right, _ := t.FromFieldCoords(fw/2, 0)
		dc.DrawLine(left, py, right, py)
		dc.Stroke()
	}
}

// drawArrowPNG puts an arrowhead on the edge of the target marker.
func drawArrowPNG(dc *gg.Context, from, to [2]float64, radius float64) {
	dx := to[0] - from[0]
	dy := to[1] - from[1]
	length := math.Sqrt(dx*dx + dy*dy)
	if length <= radius {
		return
	}
	dx /= length
	dy /= length

	arrowSize := radius * 0.8
	arrowAngle := 0.5

	tipX := to[0] - dx*radius
	tipY := to[1] - dy*radius
	baseX1 := tipX - arrowSize*dx + arrowSize*dy*arrowAngle
	baseY1 := tipY - arrowSize*dy - arrowSize*dx*arrowAngle
	baseX2 := tipX - arrowSize*dx - arrowSize*dy*arrowAngle
	baseY2 := tipY - arrowSize*dy + arrowSize*dx*arrowAngle

	dc.MoveTo(tipX, tipY)
	dc.LineTo(baseX1, baseY1)
	dc.LineTo(baseX2, baseY2)
	dc.ClosePath()
	dc.Fill()
}
