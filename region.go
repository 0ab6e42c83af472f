package regiontree

import (
	"bytes"
)

// Region是D维空间中与坐标轴对齐的超矩形，每个维度对应一个闭区间，
// 插入树后不再修改
type Region []Interval

func NewRegion(intervals ...Interval) Region {
	return Region(intervals)
}

func (r Region) Contains(point []int64) bool {
	for i := range r {
		if !r[i].Contains(point[i]) {
			return false
		}
	}
	return true
}

func (r Region) String() string {
	buffer := bytes.Buffer{}
	for i, interval := range r {
		if i > 0 {
			buffer.WriteString("x")
		}
		buffer.WriteString(interval.String())
	}
	return buffer.String()
}
