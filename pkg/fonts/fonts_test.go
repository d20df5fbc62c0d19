package fonts

import (
	"fmt"
	"sync"
	"testing"
)

func TestMeasure(t *testing.T) {
	empty, err := Measure(Variant{}, 12, "")
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	if empty.Width != 0 {
		t.Errorf("Width of empty string = %v, want 0", empty.Width)
	}
	if empty.Height() <= 0 {
		t.Errorf("Height of empty string = %v, want > 0", empty.Height())
	}

	short, _ := Measure(Variant{}, 12, "ab")
	long, _ := Measure(Variant{}, 12, "abcd")
	if long.Width <= short.Width {
		t.Errorf("Width(abcd) = %v, want > Width(ab) = %v", long.Width, short.Width)
	}

	big, _ := Measure(Variant{}, 24, "ab")
	if big.Width <= short.Width {
		t.Errorf("Width at 24pt = %v, want > %v", big.Width, short.Width)
	}
}

func TestMonoAdvances(t *testing.T) {
	i, _ := Measure(Variant{Mono: true}, 12, "iiii")
	w, _ := Measure(Variant{Mono: true}, 12, "wwww")
	if i.Width != w.Width {
		t.Errorf("mono widths differ: %v vs %v", i.Width, w.Width)
	}
}

func TestNewFaceIsFresh(t *testing.T) {
	a, err := NewFace(Variant{Bold: true}, 10)
	if err != nil {
		t.Fatalf("NewFace() error: %v", err)
	}
	b, _ := NewFace(Variant{Bold: true}, 10)
	if a == b {
		t.Error("NewFace() returned the same face twice")
	}

	fa, _ := Font(Variant{Bold: true})
	fb, _ := Font(Variant{Bold: true})
	if fa != fb {
		t.Error("Font() parsed the same variant twice")
	}
}

func TestMeasureConcurrent(t *testing.T) {
	want, err := Measure(Variant{}, 14, "concurrent words")
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				got, err := Measure(Variant{}, 14, "concurrent words")
				if err != nil || got != want {
					errs <- fmt.Sprintf("Measure() = %+v, %v; want %+v", got, err, want)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}
