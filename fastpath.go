package regiontree

import (
	"encoding/binary"

	"github.com/OneOfOne/xxhash"

	"gitlab.x.lan/yunshan/regiontree/lru"
)

type fastPathValue struct {
	point []int64
	found bool
}

// fastPath缓存最近查询点的命中结果，key为坐标序列的哈希值。
// 树重建后必须flush，避免用旧树的结果回答新树的查询
type fastPath struct {
	cache *lru.Cache64

	buffer []byte
}

func newFastPath(capacity int) *fastPath {
	return &fastPath{
		cache:  lru.NewCache64(capacity),
		buffer: make([]byte, 0, 64),
	}
}

func (f *fastPath) hashPoint(point []int64) uint64 {
	buffer := f.buffer[:0]
	scratch := [8]byte{}
	for _, v := range point {
		binary.LittleEndian.PutUint64(scratch[:], uint64(v))
		buffer = append(buffer, scratch[:]...)
	}
	f.buffer = buffer
	return xxhash.Checksum64(buffer)
}

func pointEquals(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (f *fastPath) get(point []int64) (bool, bool) {
	value, ok := f.cache.Get(f.hashPoint(point))
	if !ok {
		return false, false
	}
	stored := value.(*fastPathValue)
	// 哈希冲突按未命中处理，避免返回其它点的结果
	if !pointEquals(stored.point, point) {
		return false, false
	}
	return stored.found, true
}

func (f *fastPath) add(point []int64, found bool) {
	stored := make([]int64, len(point))
	copy(stored, point)
	f.cache.Add(f.hashPoint(point), &fastPathValue{stored, found})
}

func (f *fastPath) flush() {
	f.cache.Clear()
}

func (f *fastPath) len() int {
	return f.cache.Len()
}
