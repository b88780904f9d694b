package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// formatWaypoints writes poses in the import format, one declaration per
// line. Orientation is written equal to heading.
func formatWaypoints(poses []Pose) string {
	var b strings.Builder
	for _, p := range poses {
		heading := formatNumber(p.Heading)
		fmt.Fprintf(&b, "%s(%s, %s, %s, %s),\n",
			waypointDeclaration, formatNumber(p.X), formatNumber(p.Y), heading, heading)
	}
	return b.String()
}

func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

func exportText(filename string, poses []Pose) error {
	if len(poses) == 0 {
		return ErrNothingToExport
	}
	return os.WriteFile(filename, []byte(formatWaypoints(poses)), 0644)
}

const (
	pngPixelsPerMeter = 60.0
	pngPadding        = 40.0
	pngMarkerRadius   = 5.0
	pngHeadingLength  = 22.0
	pngMinSize        = 200
	pngMaxSize        = 2000
)

// pngScale is pixels per metre: pngPixelsPerMeter unless the span would
// not fit in pngMaxSize, in which case the path is shrunk to fit.
func pngScale(spanX, spanY float64) float64 {
	scale := pngPixelsPerMeter
	limit := pngMaxSize - 2*pngPadding
	if spanX*scale > limit {
		scale = limit / spanX
	}
	if spanY*scale > limit {
		scale = limit / spanY
	}
	return scale
}

// exportPNG draws the waypoint path: a polyline in path order, a marker
// and heading tick per waypoint, and its index. Y grows upward.
func exportPNG(filename string, poses []Pose) error {
	if len(poses) == 0 {
		return ErrNothingToExport
	}

	minX, minY := poses[0].X, poses[0].Y
	maxX, maxY := minX, minY
	for _, p := range poses[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	scale := pngScale(maxX-minX, maxY-minY)
	imageWidth := int(math.Ceil((maxX-minX)*scale + 2*pngPadding))
	imageHeight := int(math.Ceil((maxY-minY)*scale + 2*pngPadding))
	if imageWidth < pngMinSize {
		imageWidth = pngMinSize
	}
	if imageHeight < pngMinSize {
		imageHeight = pngMinSize
	}
	imageWidth = min(imageWidth, pngMaxSize)
	imageHeight = min(imageHeight, pngMaxSize)

	toPixel := func(p Pose) (float64, float64) {
		px := pngPadding + (p.X-minX)*scale
		py := float64(imageHeight) - pngPadding - (p.Y-minY)*scale
		return px, py
	}

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	// Path first so markers sit on top.
	dc.SetLineWidth(2.0)
	dc.SetColor(color.RGBA{R: 90, G: 90, B: 90, A: 255})
	for i, p := range poses {
		x, y := toPixel(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()

	for i, p := range poses {
		x, y := toPixel(p)

		dc.SetColor(color.RGBA{R: 200, G: 40, B: 40, A: 255})
		dc.SetLineWidth(2.0)
		dc.DrawLine(x, y, x+pngHeadingLength*math.Cos(p.Heading), y-pngHeadingLength*math.Sin(p.Heading))
		dc.Stroke()

		if i == 0 {
			dc.SetColor(color.RGBA{R: 30, G: 140, B: 60, A: 255})
		} else {
			dc.SetColor(color.RGBA{R: 30, G: 80, B: 200, A: 255})
		}
		dc.DrawCircle(x, y, pngMarkerRadius)
		dc.Fill()

		dc.SetColor(color.Black)
		dc.DrawString(strconv.Itoa(i), x+pngMarkerRadius+2, y-pngMarkerRadius-2)
	}

	return dc.SavePNG(filename)
}
