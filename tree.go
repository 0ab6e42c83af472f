package regiontree

import (
	"errors"
	"sort"
	"sync/atomic"

	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("regiontree")

var (
	InvalidDimension       = errors.New("dimension must be greater than 0")
	DimensionMismatchError = errors.New("region or point dimension does not match the tree")
	EmptyTreeError         = errors.New("query on a tree without any region")
)

type Option = interface{}

// OptionFastPathSize开启查询快路径，值为LRU缓存的容量
type OptionFastPathSize int

type Counter struct {
	Region  uint32 `statsd:"region"`
	Node    uint32 `statsd:"node"`
	Rebuild uint32 `statsd:"rebuild"`

	FirstHit uint64 `statsd:"first_hit"`
	FastHit  uint64 `statsd:"fast_hit"`
	FastPath uint32 `statsd:"fast_path"`
}

// Tree是D维区域的成员索引：增量插入区域，查询某个点是否落在
// 至少一个区域内。插入只追加区域并置脏，首次查询时惰性重建决策树。
// 插入、重建与查询必须串行执行，Tree不做内部同步
type Tree struct {
	dimension int

	root    *node
	regions []Region
	dirty   bool

	fastPath *fastPath

	nodeCount    uint32
	rebuildCount uint32

	firstPathHit, firstPathHitTick uint64
	fastPathHit, fastPathHitTick   uint64
}

func NewTree(dimension int, options ...Option) (*Tree, error) {
	if dimension <= 0 {
		return nil, InvalidDimension
	}
	tree := &Tree{dimension: dimension}
	for _, option := range options {
		if size, ok := option.(OptionFastPathSize); ok && size > 0 {
			tree.fastPath = newFastPath(int(size))
		}
	}
	return tree, nil
}

func (t *Tree) Dimension() int {
	return t.dimension
}

// AddRegion追加一个区域并将树置脏，重建推迟到下一次查询
func (t *Tree) AddRegion(region Region) error {
	if len(region) != t.dimension {
		log.Warningf("reject region %v: dimension %d expected", region, t.dimension)
		return DimensionMismatchError
	}
	t.regions = append(t.regions, region)
	t.dirty = true
	return nil
}

// ContainsPoint返回point是否落在至少一个已插入区域内，必要时先重建树。
// 尚无任何区域时查询没有意义，直接报错而不是返回false
func (t *Tree) ContainsPoint(point []int64) (bool, error) {
	if len(point) != t.dimension {
		log.Warningf("reject point %v: dimension %d expected", point, t.dimension)
		return false, DimensionMismatchError
	}
	if len(t.regions) == 0 {
		return false, EmptyTreeError
	}
	t.RebuildIfDirty()

	if t.fastPath != nil {
		if found, hit := t.fastPath.get(point); hit {
			atomic.AddUint64(&t.fastPathHit, 1)
			atomic.AddUint64(&t.fastPathHitTick, 1)
			return found, nil
		}
	}

	found := t.root.findPoint(point)
	atomic.AddUint64(&t.firstPathHit, 1)
	atomic.AddUint64(&t.firstPathHitTick, 1)
	if t.fastPath != nil {
		t.fastPath.add(point, found)
	}
	return found, nil
}

func (t *Tree) RebuildIfDirty() {
	if t.dirty {
		t.Rebuild()
	}
}

// Rebuild无条件丢弃旧树并从全量区域列表重建，
// 供希望单独计量重建开销的调用方使用
func (t *Tree) Rebuild() {
	releaseTree(t.root)
	t.root = nil
	atomic.StoreUint32(&t.nodeCount, 0)
	if len(t.regions) > 0 {
		t.root = t.buildTree(t.regions)
	}
	if t.fastPath != nil {
		// 快路径的结果对应旧树，必须随树一起丢弃
		t.fastPath.flush()
	}
	atomic.AddUint32(&t.rebuildCount, 1)
	t.dirty = false
	log.Debugf("rebuilt with %d regions in %d nodes", len(t.regions), atomic.LoadUint32(&t.nodeCount))
}

type regionsByRight struct {
	regions   []Region
	dimension int
}

func (s *regionsByRight) Len() int {
	return len(s.regions)
}

func (s *regionsByRight) Less(i, j int) bool {
	return s.regions[i][s.dimension].Right < s.regions[j][s.dimension].Right
}

func (s *regionsByRight) Swap(i, j int) {
	s.regions[i], s.regions[j] = s.regions[j], s.regions[i]
}

// buildTree递归切分区域集合，regions非空。每个维度上按区间右端点
// 稳定排序后取下中位数，以其右端点+1作为候选切分值，
// 选择横跨区域数最少的维度，相同时取靠前的维度
func (t *Tree) buildTree(regions []Region) *node {
	n := acquireNode()
	atomic.AddUint32(&t.nodeCount, 1)

	if len(regions) == 1 {
		n.bucket = append(n.bucket, regions[0])
		return n
	}

	best := invalidDecision()
	bestCutCount := 0
	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	for dimension := 0; dimension < t.dimension; dimension++ {
		sort.Stable(&regionsByRight{sorted, dimension})
		median := (len(sorted) - 1) / 2
		candidate := decision{dimension, sorted[median][dimension].Right + 1}

		cutCount := 0
		for _, region := range sorted {
			if candidate.classify(region) == SIDE_CUT {
				cutCount++
			}
		}
		if !best.isValid() || cutCount < bestCutCount {
			best = candidate
			bestCutCount = cutCount
		}
	}

	var pushLeft, pushRight []Region
	for _, region := range regions {
		switch best.classify(region) {
		case SIDE_CUT:
			n.bucket = append(n.bucket, region)
		case SIDE_LEFT:
			pushLeft = append(pushLeft, region)
		case SIDE_RIGHT:
			pushRight = append(pushRight, region)
		}
	}

	// 全部区域被推向同一侧时放弃切分，整个集合留在本节点，
	// 否则下一层还会得到同样的结果，造成无限递归
	if len(pushLeft) == len(regions) || len(pushRight) == len(regions) {
		n.bucket = append(n.bucket[:0], regions...)
		n.decision = invalidDecision()
		return n
	}

	n.decision = best
	if len(pushLeft) > 0 {
		n.left = t.buildTree(pushLeft)
	}
	if len(pushRight) > 0 {
		n.right = t.buildTree(pushRight)
	}
	return n
}

// AllRegions返回全量区域列表，调用方只读，用于与暴力扫描对比验证
func (t *Tree) AllRegions() []Region {
	return t.regions
}

// SumBucketSizes返回所有节点bucket的区域个数之和，
// 树处于干净状态时应等于len(AllRegions())
func (t *Tree) SumBucketSizes() int {
	return t.root.sumBucketSizes()
}

func (t *Tree) GetHitStatus() (uint64, uint64) {
	return atomic.LoadUint64(&t.firstPathHit), atomic.LoadUint64(&t.fastPathHit)
}

func (t *Tree) GetCounter() interface{} {
	counter := &Counter{
		Region:  uint32(len(t.regions)),
		Node:    atomic.LoadUint32(&t.nodeCount),
		Rebuild: atomic.SwapUint32(&t.rebuildCount, 0),

		FirstHit: atomic.SwapUint64(&t.firstPathHitTick, 0),
		FastHit:  atomic.SwapUint64(&t.fastPathHitTick, 0),
	}
	if t.fastPath != nil {
		counter.FastPath = uint32(t.fastPath.len())
	}
	return counter
}

func (t *Tree) Close() error {
	releaseTree(t.root)
	t.root = nil
	return nil
}
