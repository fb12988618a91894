package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	colorDoor    = color.RGBA{R: 0, G: 0, B: 200, A: 255}
	colorFits    = color.RGBA{R: 0, G: 150, B: 0, A: 255}
	colorBlocked = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	colorFill    = color.RGBA{R: 144, G: 238, B: 144, A: 200}
)

// rectXYs returns a closed outline for an axis-aligned rectangle.
func rectXYs(x, y, w, h float64) plotter.XYs {
	return plotter.XYs{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
		{X: x, Y: y},
	}
}

// ExportDoorDiagram exports the door-vs-cargo footprint drawing to an image
// file and returns the path written.
func ExportDoorDiagram(data DoorDiagramData, filename string) (string, error) {
	p := plot.New()
	title := "Cargo vs Door"
	if data.Name != "" {
		title = fmt.Sprintf("%s vs Door", data.Name)
	}
	p.Title.Text = title
	p.X.Label.Text = "inches"
	p.Y.Label.Text = "inches"

	doorLine, err := plotter.NewLine(rectXYs(0, 0, data.DoorWidth, data.DoorHeight))
	if err != nil {
		return "", err
	}
	doorLine.LineStyle.Width = vg.Points(2)
	doorLine.LineStyle.Color = colorDoor
	p.Add(doorLine)
	p.Legend.Add("Door", doorLine)

	cargoLine, err := plotter.NewLine(rectXYs(0, 0, data.Length, data.Width))
	if err != nil {
		return "", err
	}
	cargoLine.LineStyle.Width = vg.Points(2)
	cargoLine.LineStyle.Color = colorBlocked
	if data.FitsAsPresented() {
		cargoLine.LineStyle.Color = colorFits
	}
	p.Add(cargoLine)
	p.Legend.Add("Cargo", cargoLine)

	extent := math.Max(math.Max(data.DoorWidth, data.Length), math.Max(data.DoorHeight, data.Width)) + 10
	p.X.Min, p.X.Max = 0, extent
	p.Y.Min, p.Y.Max = 0, extent

	return save(p, 6*vg.Inch, 6*vg.Inch, filename)
}

// ExportCabinLayout exports the cabin floor layout to an image file and
// returns the path written.
func ExportCabinLayout(layout CabinLayout, filename string) (string, error) {
	p := plot.New()
	p.Title.Text = "Cabin Cargo Layout"
	p.X.Label.Text = "Cabin Length (in)"
	p.Y.Label.Text = "Cabin Width (in)"
	p.X.Min, p.X.Max = 0, layout.CabinLength
	p.Y.Min, p.Y.Max = 0, layout.CabinWidth

	cabin, err := plotter.NewLine(rectXYs(0, 0, layout.CabinLength, layout.CabinWidth))
	if err != nil {
		return "", err
	}
	cabin.LineStyle.Width = vg.Points(1)
	cabin.LineStyle.Color = color.Black
	p.Add(cabin)

	for _, pl := range layout.Placements {
		pts := rectXYs(pl.X, pl.Y, pl.Length, pl.Width)
		poly, err := plotter.NewPolygon(pts[:4])
		if err != nil {
			return "", err
		}
		poly.Color = colorFill
		poly.LineStyle.Width = vg.Points(2)
		poly.LineStyle.Color = colorFits
		p.Add(poly)

		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: pl.X + 2, Y: pl.Y + 2}},
			Labels: []string{pl.Name},
		})
		if err != nil {
			return "", err
		}
		p.Add(lbl)
	}

	if layout.Overflow {
		warn, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: 5, Y: math.Max(layout.CabinWidth-10, 0)}},
			Labels: []string{"Not all parts fit in cabin!"},
		})
		if err != nil {
			return "", err
		}
		warn.TextStyle[0].Color = colorBlocked
		p.Add(warn)
	}

	// Keep the aspect of the floor, 8in wide.
	width := 8 * vg.Inch
	height := vg.Length(math.Max(2, 8*layout.CabinWidth/math.Max(layout.CabinLength, 1))) * vg.Inch
	return save(p, width, height, filename)
}

// save writes the plot, choosing the format from the extension
// (png, svg, pdf, any case); other extensions get .png appended. It returns
// the path actually written.
func save(p *plot.Plot, width, height vg.Length, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := p.Save(width, height, filename); err != nil {
		return "", err
	}
	return filename, nil
}
