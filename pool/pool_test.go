package pool

import (
	"testing"
)

func TestPoolRoundTrip(t *testing.T) {
	pool := NewLockFreePool(func() interface{} { return new(int) }, OptionPoolSize(16))
	x := pool.Get().(*int)
	*x = 42
	pool.Put(x)
	if y := pool.Get().(*int); y != x {
		t.Error("Put element should be returned first")
	}
}

func TestPoolHungryAlloc(t *testing.T) {
	allocated := 0
	pool := NewLockFreePool(func() interface{} { allocated++; return allocated })
	pool.Get()
	pool.Get()
	if allocated != 2 {
		t.Error("Empty pool should fall back to alloc, actually allocated", allocated)
	}
}

func BenchmarkPoolGet(b *testing.B) {
	pools := make([]LockFreePool, b.N/1024+1)
	for i := range pools {
		pool := NewLockFreePool(func() interface{} { return 0 })
		for j := 0; j < 1024; j++ {
			pool.Put(0)
		}
		pools[i] = pool
	}
	b.ResetTimer()
	for i := range pools {
		p := &pools[i]
		for j := 0; j < 1024; j++ {
			p.Get()
		}
	}
}

func BenchmarkPoolPut(b *testing.B) {
	pools := make([]LockFreePool, b.N/1024+1)
	for i := range pools {
		pools[i] = NewLockFreePool(func() interface{} { return 0 })
	}
	b.ResetTimer()
	for i := range pools {
		p := &pools[i]
		for j := 0; j < 1024; j++ {
			p.Put(0)
		}
	}
}
