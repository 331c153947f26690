package random

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Deterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestNext_Range(t *testing.T) {
	r := NewRandom()
	for i := 0; i < 1000; i++ {
		n := r.Next()
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, math.MaxInt32)
	}
}

func TestNext_Concurrent(t *testing.T) {
	r := NewRandom()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Next()
			}
		}()
	}
	wg.Wait()
}
