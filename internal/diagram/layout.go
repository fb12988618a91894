package diagram

import "github.com/onflyair/cargofit/internal/feasibility"

// DefaultSpacing is the gap left between items in the cabin layout (in).
const DefaultSpacing = 5.0

// Placement is one item's footprint on the cabin floor. X runs along the
// cabin length from the forward bulkhead, Y across the cabin width.
type Placement struct {
	Name   string
	X, Y   float64
	Length float64
	Width  float64
}

// CabinLayout is a display arrangement of a manifest on the cabin floor.
type CabinLayout struct {
	CabinLength float64
	CabinWidth  float64
	Placements  []Placement
	Unplaced    []string
	Overflow    bool
}

// LayoutCabin lines items up row by row in manifest order, starting a new
// row when the next item would pass the aft end of the cabin. It is only a
// picture of one loading order, not a packing search; items that do not
// land inside the floor or have unknown footprints are listed as unplaced.
func LayoutCabin(cabinLength, cabinWidth, spacing float64, items []feasibility.CargoItem) CabinLayout {
	layout := CabinLayout{CabinLength: cabinLength, CabinWidth: cabinWidth}

	var x, y, rowDepth float64
	for _, item := range items {
		l, okL := item.Length.Value()
		w, okW := item.Width.Value()
		if !okL || !okW || l > cabinLength {
			layout.Unplaced = append(layout.Unplaced, item.Name)
			continue
		}

		if x > 0 && x+l > cabinLength {
			x = 0
			y += rowDepth + spacing
			rowDepth = 0
		}
		if y+w > cabinWidth {
			layout.Unplaced = append(layout.Unplaced, item.Name)
			continue
		}

		layout.Placements = append(layout.Placements, Placement{
			Name:   item.Name,
			X:      x,
			Y:      y,
			Length: l,
			Width:  w,
		})
		x += l + spacing
		rowDepth = max(rowDepth, w)
	}

	layout.Overflow = len(layout.Unplaced) > 0
	return layout
}
