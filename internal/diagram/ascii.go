package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DoorDiagramData holds the door opening and the cargo footprint as
// presented to it (length across, width up).
type DoorDiagramData struct {
	Name       string
	DoorWidth  float64 // in
	DoorHeight float64 // in
	Length     float64 // in
	Width      float64 // in
}

// FitsAsPresented reports whether the footprint clears the door without turning it.
func (d DoorDiagramData) FitsAsPresented() bool {
	return d.Length <= d.DoorWidth && d.Width <= d.DoorHeight
}

// Rotated returns the same data with the footprint turned 90°.
func (d DoorDiagramData) Rotated() DoorDiagramData {
	d.Length, d.Width = d.Width, d.Length
	return d
}

// canvas is a character grid with its origin at the bottom-left.
type canvas struct {
	cells [][]rune
	sx    float64 // columns per inch
	sy    float64 // rows per inch
}

func newCanvas(cols int, extX, extY float64) *canvas {
	extX, extY = math.Max(extX, 1), math.Max(extY, 1)
	sx := float64(cols-1) / extX
	sy := sx / 2 // terminal cells are roughly twice as tall as wide
	rows := int(math.Ceil(extY*sy)) + 1
	c := &canvas{sx: sx, sy: sy, cells: make([][]rune, rows)}
	for i := range c.cells {
		c.cells[i] = []rune(strings.Repeat(" ", cols))
	}
	return c
}

func (c *canvas) col(x float64) int { return c.clampX(int(math.Round(x * c.sx))) }
func (c *canvas) row(y float64) int { return c.clampY(len(c.cells) - 1 - int(math.Round(y*c.sy))) }

func (c *canvas) clampX(i int) int { return max(0, min(i, len(c.cells[0])-1)) }
func (c *canvas) clampY(i int) int { return max(0, min(i, len(c.cells)-1)) }

func (c *canvas) set(r, col int, ch rune) {
	c.cells[r][col] = ch
}

// box draws a rectangle outline in box-drawing characters.
func (c *canvas) box(x, y, w, h float64) {
	l, r := c.col(x), c.col(x+w)
	top, bottom := c.row(y+h), c.row(y)
	for i := l; i <= r; i++ {
		c.set(top, i, '─')
		c.set(bottom, i, '─')
	}
	for j := top; j <= bottom; j++ {
		c.set(j, l, '│')
		c.set(j, r, '│')
	}
	c.set(top, l, '┌')
	c.set(top, r, '┐')
	c.set(bottom, l, '└')
	c.set(bottom, r, '┘')
}

// outline draws a rectangle outline with a single rune.
func (c *canvas) outline(x, y, w, h float64, ch rune) {
	l, r := c.col(x), c.col(x+w)
	top, bottom := c.row(y+h), c.row(y)
	for i := l; i <= r; i++ {
		c.set(top, i, ch)
		c.set(bottom, i, ch)
	}
	for j := top; j <= bottom; j++ {
		c.set(j, l, ch)
		c.set(j, r, ch)
	}
}

// fill paints the interior of a rectangle.
func (c *canvas) fill(x, y, w, h float64, ch rune) {
	l, r := c.col(x), c.col(x+w)
	top, bottom := c.row(y+h), c.row(y)
	for j := top; j <= bottom; j++ {
		for i := l; i <= r; i++ {
			c.set(j, i, ch)
		}
	}
}

func (c *canvas) String() string {
	var sb strings.Builder
	for _, line := range c.cells {
		sb.WriteString("  ")
		sb.WriteString(strings.TrimRight(string(line), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}

const (
	doorCols  = 48
	cabinCols = 64
)

// DrawDoorDiagram draws the cargo footprint over the door opening, both
// anchored at the bottom-left corner of the door.
func DrawDoorDiagram(d DoorDiagramData) string {
	var sb strings.Builder

	extX := math.Max(d.DoorWidth, d.Length) + 10
	extY := math.Max(d.DoorHeight, d.Width) + 10
	c := newCanvas(doorCols, extX, extY)

	c.box(0, 0, d.DoorWidth, d.DoorHeight)
	mark := '▓'
	if !d.FitsAsPresented() {
		mark = '╳'
	}
	c.outline(0, 0, d.Length, d.Width, mark)

	title := "CARGO vs DOOR"
	if d.Name != "" {
		title = fmt.Sprintf("%s vs DOOR", strings.ToUpper(d.Name))
	}
	sb.WriteString("\n")
	sb.WriteString("  " + title + "\n")
	sb.WriteString("  " + strings.Repeat("─", len([]rune(title))) + "\n")
	sb.WriteString(c.String())
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  ┌┐  = Door %.1f W × %.1f H in\n", d.DoorWidth, d.DoorHeight))
	if d.FitsAsPresented() {
		sb.WriteString(fmt.Sprintf("  ▓▓  = Cargo %.1f L × %.1f W in (clears as shown)\n", d.Length, d.Width))
	} else {
		sb.WriteString(fmt.Sprintf("  ╳╳  = Cargo %.1f L × %.1f W in (blocked as shown)\n", d.Length, d.Width))
	}
	return sb.String()
}

// DrawCabinLayout draws the cabin floor seen from above with each placed
// item lettered A, B, C... in manifest order.
func DrawCabinLayout(layout CabinLayout) string {
	var sb strings.Builder

	c := newCanvas(cabinCols, layout.CabinLength, layout.CabinWidth)
	for i, p := range layout.Placements {
		c.fill(p.X, p.Y, p.Length, p.Width, placementRune(i))
	}
	c.box(0, 0, layout.CabinLength, layout.CabinWidth)

	sb.WriteString("\n")
	sb.WriteString("  CABIN CARGO LAYOUT (top view, forward at left)\n")
	sb.WriteString("  ─────────────────────────────────────────────\n")
	sb.WriteString(c.String())
	sb.WriteString(fmt.Sprintf("  Cabin %.1f L × %.1f W in\n\n", layout.CabinLength, layout.CabinWidth))

	for i, p := range layout.Placements {
		sb.WriteString(fmt.Sprintf("  %c = %s (%.1f × %.1f in at %.1f, %.1f)\n",
			placementRune(i), p.Name, p.Length, p.Width, p.X, p.Y))
	}
	if layout.Overflow {
		sb.WriteString("\n  Not all parts fit in cabin!\n")
		for _, name := range layout.Unplaced {
			sb.WriteString(fmt.Sprintf("    - %s\n", name))
		}
	}
	return sb.String()
}

func placementRune(i int) rune {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < len(letters) {
		return rune(letters[i])
	}
	return '*'
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := lipgloss.Width(title)
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxLen {
			maxLen = w
		}
	}
	maxLen += 4

	pad := func(s string) string {
		return s + strings.Repeat(" ", maxLen-2-lipgloss.Width(s))
	}

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s║\n", pad(title)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s║\n", pad(line)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
