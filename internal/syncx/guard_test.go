package syncx

import (
	"sync"
	"testing"
)

func TestGuardGet(t *testing.T) {
	g := NewGuard(42)

	if got := g.Get(); got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
}

func TestGuardSwap(t *testing.T) {
	g := NewGuard("hello")

	old := g.Swap("world")
	if old != "hello" {
		t.Errorf("Swap returned %q, want %q", old, "hello")
	}
	if got := g.Get(); got != "world" {
		t.Errorf("Get() after Swap = %q, want %q", got, "world")
	}
}

func TestGuardGeneration(t *testing.T) {
	g := NewGuard([]int(nil))
	if _, gen := g.Load(); gen != 0 {
		t.Errorf("initial generation = %d, want 0", gen)
	}

	g.Swap([]int{1})
	g.Swap([]int{1, 2})

	v, gen := g.Load()
	if gen != 2 {
		t.Errorf("Generation = %d, want 2", gen)
	}
	if len(v) != 2 {
		t.Errorf("Load() value = %v, want [1 2]", v)
	}
}

// Readers must never see a slice that is half old and half new.
func TestGuardPublishesWholeSlices(t *testing.T) {
	g := NewGuard(make([]int, 64))
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 500; i++ {
			next := make([]int, 64)
			for j := range next {
				next[j] = i
			}
			g.Swap(next)
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				v := g.Get()
				for _, x := range v {
					if x != v[0] {
						t.Errorf("torn read: %d vs %d", x, v[0])
						return
					}
				}
			}
		}()
	}

	wg.Wait()

	if _, gen := g.Load(); gen != 500 {
		t.Errorf("generation = %d, want 500", gen)
	}
}
