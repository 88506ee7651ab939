package atlas

// ShelfAllocator implements shelf-based rectangle packing.
//
// The algorithm organizes rectangles in horizontal "shelves".
// Each shelf has a fixed height (determined by the tallest item placed so far).
// New items are placed left-to-right on a shelf until no space remains,
// then a new shelf is started below.
//
// Unlike a fixed-size allocator, the area can be enlarged with Grow.
// Shelves keep their positions when the area grows.
type ShelfAllocator struct {
	width   int     // Total width of the area
	height  int     // Total height of the area
	padding int     // Padding to the right of and below each item
	shelves []shelf // List of shelves

	usedArea int
}

// shelf represents a horizontal strip in the area.
type shelf struct {
	y      int // Y position of shelf top
	height int // Height of the shelf (tallest item so far)
	x      int // Current X position (next free slot)
}

// NewShelfAllocator creates a new allocator for the given dimensions.
func NewShelfAllocator(width, height, padding int) *ShelfAllocator {
	return &ShelfAllocator{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// Allocate finds space for a rectangle of the given size.
// Returns x, y position and true if space was found, or -1, -1, false if not.
//
// The algorithm:
//  1. Try to fit on an existing shelf with enough height
//  2. If the last shelf is too short, extend it when there is room below
//  3. Otherwise create a new shelf
func (a *ShelfAllocator) Allocate(w, h int) (x, y int, ok bool) {
	paddedW := w + a.padding
	paddedH := h + a.padding

	for i := range a.shelves {
		s := &a.shelves[i]

		if s.x+paddedW > a.width {
			continue
		}

		if h > s.height {
			// Only the last shelf can grow taller without overlapping the next one.
			if i == len(a.shelves)-1 && s.y+paddedH <= a.height {
				s.height = h
				x, y = s.x, s.y
				s.x += paddedW
				a.usedArea += w * h
				return x, y, true
			}
			continue
		}

		x, y = s.x, s.y
		s.x += paddedW
		a.usedArea += w * h
		return x, y, true
	}

	newY := a.nextShelfY()
	if paddedW > a.width || newY+paddedH > a.height {
		return -1, -1, false
	}

	a.shelves = append(a.shelves, shelf{
		y:      newY,
		height: h,
		x:      paddedW,
	})
	a.usedArea += w * h

	return 0, newY, true
}

// Grow enlarges the allocation area. Dimensions smaller than the current
// ones are ignored; existing allocations are unaffected.
func (a *ShelfAllocator) Grow(width, height int) {
	if width > a.width {
		a.width = width
	}
	if height > a.height {
		a.height = height
	}
}

// CanFit reports whether an item of the given size could be allocated
// without growing the area.
func (a *ShelfAllocator) CanFit(w, h int) bool {
	paddedW := w + a.padding
	paddedH := h + a.padding

	if paddedW > a.width || paddedH > a.height {
		return false
	}

	for i := range a.shelves {
		s := &a.shelves[i]
		if s.x+paddedW > a.width {
			continue
		}
		if h <= s.height {
			return true
		}
		if i == len(a.shelves)-1 && s.y+paddedH <= a.height {
			return true
		}
	}

	return a.nextShelfY()+paddedH <= a.height
}

// nextShelfY returns the top of the next shelf to be created.
func (a *ShelfAllocator) nextShelfY() int {
	if len(a.shelves) == 0 {
		return 0
	}
	last := a.shelves[len(a.shelves)-1]
	return last.y + last.height + a.padding
}

// Size returns the current dimensions of the area.
func (a *ShelfAllocator) Size() (width, height int) {
	return a.width, a.height
}

// Utilization returns the fraction of the area used (0.0 to 1.0).
func (a *ShelfAllocator) Utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}
