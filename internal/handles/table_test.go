package handles

import (
	"slices"
	"sync"
	"testing"

	"github.com/gogpu/shaderprog"
)

func TestTableHandles(t *testing.T) {
	tbl := New[string]()

	a := tbl.Add("a")
	b := tbl.Add("b")
	if a == shaderprog.InvalidHandle || b == shaderprog.InvalidHandle {
		t.Fatal("table handed out InvalidHandle")
	}
	if a != 1 || b != 2 {
		t.Errorf("handles = %d, %d, want 1, 2", a, b)
	}

	if got, ok := tbl.Get(a); !ok || got != "a" {
		t.Errorf("Get(%d) = %q, %v", a, got, ok)
	}
	if _, ok := tbl.Remove(a); !ok {
		t.Error("Remove of a live handle failed")
	}
	if _, ok := tbl.Remove(a); ok {
		t.Error("second Remove succeeded")
	}
	if _, ok := tbl.Get(a); ok {
		t.Error("removed handle still resolves")
	}

	c := tbl.Add("c")
	if c == a {
		t.Error("handle reused after removal")
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
}

func TestTableDrain(t *testing.T) {
	tbl := New[int]()
	for i := range 5 {
		tbl.Add(i * 10)
	}
	if got := tbl.Drain(); !slices.Equal(got, []int{0, 10, 20, 30, 40}) {
		t.Errorf("Drain() = %v", got)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() after Drain = %d", tbl.Len())
	}
}

func TestTableConcurrentAdd(t *testing.T) {
	tbl := New[int]()
	var wg sync.WaitGroup
	const goroutines = 50
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tbl.Add(i)
		}()
	}
	wg.Wait()
	if tbl.Len() != goroutines {
		t.Errorf("Len() = %d, want %d", tbl.Len(), goroutines)
	}
}
