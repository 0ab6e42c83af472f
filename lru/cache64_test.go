package lru

import (
	"testing"
)

func TestAddGet(t *testing.T) {
	capacity := 100
	lru := NewCache64(capacity)
	for i := 0; i < capacity; i++ {
		lru.Add(uint64(i), i)
	}
	for i := 0; i < capacity; i++ {
		value, found := lru.Get(uint64(i))
		if !found || value != i {
			t.Errorf("key %d returned (%v, %v)", i, value, found)
			return
		}
	}
}

func TestEviction(t *testing.T) {
	lru := NewCache64(2)
	lru.Add(1, 1)
	lru.Add(2, 2)
	lru.Get(1)
	lru.Add(3, 3)
	if _, found := lru.Get(2); found {
		t.Error("key 2 should have been evicted")
	}
	if _, found := lru.Get(1); !found {
		t.Error("key 1 should still be cached")
	}
	if lru.Len() != 2 {
		t.Errorf("length %d is not expected", lru.Len())
	}
}

func TestUpdate(t *testing.T) {
	lru := NewCache64(2)
	lru.Add(1, 1)
	lru.Add(1, 2)
	if value, _ := lru.Get(1); value != 2 {
		t.Errorf("value %v is not expected", value)
	}
	if lru.Len() != 1 {
		t.Errorf("length %d is not expected", lru.Len())
	}
}

func TestClear(t *testing.T) {
	lru := NewCache64(16)
	for i := 0; i < 16; i++ {
		lru.Add(uint64(i), i)
	}
	lru.Clear()
	if lru.Len() != 0 {
		t.Errorf("length %d is not expected", lru.Len())
	}
	if _, found := lru.Get(0); found {
		t.Error("cache should be empty after Clear")
	}
}

func TestWalkOrder(t *testing.T) {
	lru := NewCache64(3)
	lru.Add(1, 1)
	lru.Add(2, 2)
	lru.Add(3, 3)
	lru.Get(1)
	keys := make([]uint64, 0, 3)
	lru.Walk(func(key uint64, value interface{}) {
		keys = append(keys, key)
	})
	expect := []uint64{1, 3, 2}
	for i := range expect {
		if keys[i] != expect[i] {
			t.Errorf("walk order %v is not expected", keys)
			return
		}
	}
}

func BenchmarkCacheAdd(b *testing.B) {
	lru := NewCache64(1 << 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lru.Add(uint64(i), i)
	}
}

func BenchmarkCacheGet(b *testing.B) {
	lru := NewCache64(1 << 16)
	for i := 0; i < 1<<16; i++ {
		lru.Add(uint64(i), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lru.Get(uint64(i) & (1<<16 - 1))
	}
}
