package keylock

import (
	"fmt"
	"sync"
	"testing"

	"pgregory.net/rapid"
)

// Property: for any assignment of goroutines to keys, every increment performed
// under the key's exclusion is kept, and the registry ends empty.
func TestProperty_NoLostUpdatesAndFullReclaim(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numKeys := rapid.IntRange(1, 8).Draw(t, "numKeys")
		numGoroutines := rapid.IntRange(1, 64).Draw(t, "numGoroutines")

		// Assign each goroutine a key up front so the concurrent section
		// draws nothing from rapid.
		assignment := make([]int, numGoroutines)
		for i := range assignment {
			assignment[i] = rapid.IntRange(0, numKeys-1).Draw(t, fmt.Sprintf("key-%d", i))
		}

		reg := NewRegistry()
		counters := make([]int, numKeys)

		var wg sync.WaitGroup
		wg.Add(numGoroutines)
		for i := 0; i < numGoroutines; i++ {
			k := assignment[i]
			go func() {
				defer wg.Done()
				h := reg.Acquire(fmt.Sprintf("key-%d", k))
				defer h.Release()
				counters[k]++
			}()
		}
		wg.Wait()

		for k := 0; k < numKeys; k++ {
			want := 0
			for _, a := range assignment {
				if a == k {
					want++
				}
			}
			if counters[k] != want {
				t.Fatalf("key %d: lost updates, got %d want %d", k, counters[k], want)
			}
		}
		if reg.Len() != 0 {
			t.Fatalf("registry should be empty after all releases, has %d entries", reg.Len())
		}
	})
}
