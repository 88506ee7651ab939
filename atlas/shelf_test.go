package atlas

import "testing"

func TestShelfAllocator_Basic(t *testing.T) {
	a := NewShelfAllocator(100, 100, 2)

	x, y, ok := a.Allocate(20, 20)
	if !ok {
		t.Fatal("failed to allocate first cell")
	}
	if x != 0 || y != 0 {
		t.Errorf("expected (0,0), got (%d,%d)", x, y)
	}

	x, y, ok = a.Allocate(20, 20)
	if !ok {
		t.Fatal("failed to allocate second cell")
	}
	if x != 22 || y != 0 { // 20 + 2 padding
		t.Errorf("expected (22,0), got (%d,%d)", x, y)
	}
}

func TestShelfAllocator_FullThenGrow(t *testing.T) {
	a := NewShelfAllocator(50, 50, 2)

	count := 0
	for {
		_, _, ok := a.Allocate(20, 20)
		if !ok {
			break
		}
		count++
		if count > 100 {
			t.Fatal("allocator never filled up")
		}
	}
	if count != 4 { // 2x2 grid of 20+2 in 50x50
		t.Errorf("count = %d, want 4", count)
	}

	a.Grow(100, 100)
	w, h := a.Size()
	if w != 100 || h != 100 {
		t.Errorf("Size() = %dx%d, want 100x100", w, h)
	}

	// The first shelf continues to the right after growth.
	x, y, ok := a.Allocate(20, 20)
	if !ok {
		t.Fatal("failed to allocate after Grow")
	}
	if x != 44 || y != 0 {
		t.Errorf("expected (44,0), got (%d,%d)", x, y)
	}
}

func TestShelfAllocator_GrowNeverShrinks(t *testing.T) {
	a := NewShelfAllocator(64, 64, 0)
	a.Grow(32, 128)
	w, h := a.Size()
	if w != 64 || h != 128 {
		t.Errorf("Size() = %dx%d, want 64x128", w, h)
	}
}

func TestShelfAllocator_ExtendLastShelf(t *testing.T) {
	a := NewShelfAllocator(100, 100, 1)

	if x, y, _ := a.Allocate(10, 10); x != 0 || y != 0 {
		t.Fatalf("first = (%d,%d), want (0,0)", x, y)
	}
	// Taller item raises the only shelf.
	if x, y, _ := a.Allocate(10, 30); x != 11 || y != 0 {
		t.Fatalf("tall = (%d,%d), want (11,0)", x, y)
	}
	if x, y, _ := a.Allocate(10, 5); x != 22 || y != 0 {
		t.Fatalf("short = (%d,%d), want (22,0)", x, y)
	}
	// Next shelf starts below the raised height.
	if x, y, _ := a.Allocate(90, 10); x != 0 || y != 31 {
		t.Fatalf("wide = (%d,%d), want (0,31)", x, y)
	}
	// The first shelf is no longer last and cannot be raised.
	if x, y, _ := a.Allocate(5, 40); x != 91 || y != 31 {
		t.Fatalf("second tall = (%d,%d), want (91,31)", x, y)
	}
}

func TestShelfAllocator_TooWide(t *testing.T) {
	a := NewShelfAllocator(32, 32, 1)
	if _, _, ok := a.Allocate(32, 4); ok {
		t.Error("allocation wider than the area (with padding) should fail")
	}
	if a.CanFit(32, 4) {
		t.Error("CanFit should report false for an oversized item")
	}
}

func TestShelfAllocator_Utilization(t *testing.T) {
	a := NewShelfAllocator(100, 100, 0)

	if u := a.Utilization(); u != 0 {
		t.Errorf("empty utilization = %f, want 0", u)
	}

	a.Allocate(50, 50)
	if u := a.Utilization(); u != 0.25 {
		t.Errorf("utilization = %f, want 0.25", u)
	}
}

func TestShelfAllocator_CanFit(t *testing.T) {
	a := NewShelfAllocator(50, 50, 2)

	if !a.CanFit(20, 20) {
		t.Error("should fit 20x20 in empty 50x50")
	}
	if a.CanFit(60, 20) {
		t.Error("should not fit 60x20 in 50x50")
	}
	for i := 0; i < 4; i++ {
		a.Allocate(20, 20)
	}
	if a.CanFit(20, 20) {
		t.Error("should not fit after the area is full")
	}
}

func TestShelfAllocator_CanFitMatchesAllocate(t *testing.T) {
	sizes := [][2]int{{10, 10}, {10, 30}, {30, 5}, {60, 20}, {5, 40}, {40, 40}, {12, 12}}
	a := NewShelfAllocator(64, 64, 1)
	for _, sz := range sizes {
		want := a.CanFit(sz[0], sz[1])
		_, _, ok := a.Allocate(sz[0], sz[1])
		if ok != want {
			t.Errorf("%dx%d: CanFit = %t, Allocate ok = %t", sz[0], sz[1], want, ok)
		}
	}
}
